package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlanView is the denormalized read model of a subscription plan
type PlanView struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name       string          `gorm:"type:varchar(200);not null;index" json:"name"`
	Price      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Currency   string          `gorm:"type:varchar(3);not null" json:"currency"`
	Interval   BillingInterval `gorm:"type:varchar(10);not null;index" json:"interval"`
	MaxUsers   int             `gorm:"not null" json:"max_users"`
	MaxPrompts int             `gorm:"not null" json:"max_prompts"`
	Active     bool            `gorm:"not null;index" json:"active"`
	CreatedAt  time.Time       `gorm:"not null;index" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null" json:"updated_at"`
}

// TableName returns the read-store table name for GORM
func (PlanView) TableName() string {
	return "subscription_plan_views"
}

// NewPlanView builds the view from a plan snapshot
func NewPlanView(s PlanSnapshot) *PlanView {
	return &PlanView{
		ID:         s.ID,
		Name:       s.Name,
		Price:      s.Price,
		Currency:   s.Currency,
		Interval:   s.Interval,
		MaxUsers:   s.MaxUsers,
		MaxPrompts: s.MaxPrompts,
		Active:     s.Active,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

// PlanViewPatch carries partial updates for a PlanView
type PlanViewPatch struct {
	Name       *string
	Price      *decimal.Decimal
	MaxUsers   *int
	MaxPrompts *int
	Active     *bool
}

// Update applies a patch, bumping UpdatedAt unconditionally
func (v *PlanView) Update(p PlanViewPatch) {
	if p.Name != nil {
		v.Name = *p.Name
	}
	if p.Price != nil {
		v.Price = *p.Price
	}
	if p.MaxUsers != nil {
		v.MaxUsers = *p.MaxUsers
	}
	if p.MaxPrompts != nil {
		v.MaxPrompts = *p.MaxPrompts
	}
	if p.Active != nil {
		v.Active = *p.Active
	}
	v.UpdatedAt = time.Now()
}

// ApplySnapshot replaces the view state with a full snapshot
func (v *PlanView) ApplySnapshot(s PlanSnapshot) {
	v.Name = s.Name
	v.Price = s.Price
	v.Currency = s.Currency
	v.Interval = s.Interval
	v.MaxUsers = s.MaxUsers
	v.MaxPrompts = s.MaxPrompts
	v.Active = s.Active
	v.UpdatedAt = time.Now()
}

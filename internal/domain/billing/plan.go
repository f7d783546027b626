package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/promptdeck/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BillingInterval is how often a plan is charged
type BillingInterval string

const (
	IntervalMonthly BillingInterval = "monthly"
	IntervalYearly  BillingInterval = "yearly"
)

// SubscriptionPlan is the aggregate root for one sellable plan.
// Plans are platform-wide, not tenant-scoped.
type SubscriptionPlan struct {
	shared.BaseAggregateRoot
	Name       string
	Price      decimal.Decimal
	Currency   string
	Interval   BillingInterval
	MaxUsers   int
	MaxPrompts int
	Active     bool
}

// PlanSnapshot is the full-state primitive form of a SubscriptionPlan
type PlanSnapshot struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Currency   string          `json:"currency"`
	Interval   BillingInterval `json:"interval"`
	MaxUsers   int             `json:"max_users"`
	MaxPrompts int             `json:"max_prompts"`
	Active     bool            `json:"active"`
	Version    int             `json:"version"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// NewSubscriptionPlan creates a new active plan
func NewSubscriptionPlan(name string, price decimal.Decimal, currency string, interval BillingInterval, maxUsers, maxPrompts int) (*SubscriptionPlan, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Plan name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Plan price cannot be negative")
	}
	if len(currency) != 3 {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency must be a 3-letter code")
	}
	if err := validateInterval(interval); err != nil {
		return nil, err
	}
	if maxUsers < 0 || maxPrompts < 0 {
		return nil, shared.NewDomainError("INVALID_LIMITS", "Plan limits cannot be negative")
	}

	plan := &SubscriptionPlan{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Price:             price,
		Currency:          currency,
		Interval:          interval,
		MaxUsers:          maxUsers,
		MaxPrompts:        maxPrompts,
		Active:            true,
	}

	plan.AddDomainEvent(NewPlanCreatedEvent(plan))

	return plan, nil
}

// PlanFromSnapshot reconstructs a plan without raising events
func PlanFromSnapshot(s PlanSnapshot) *SubscriptionPlan {
	plan := &SubscriptionPlan{
		Name:       s.Name,
		Price:      s.Price,
		Currency:   s.Currency,
		Interval:   s.Interval,
		MaxUsers:   s.MaxUsers,
		MaxPrompts: s.MaxPrompts,
		Active:     s.Active,
	}
	plan.ID = s.ID
	plan.Version = s.Version
	plan.CreatedAt = s.CreatedAt
	plan.UpdatedAt = s.UpdatedAt
	return plan
}

// ToSnapshot returns the full primitive state of the plan
func (p *SubscriptionPlan) ToSnapshot() PlanSnapshot {
	return PlanSnapshot{
		ID:         p.ID,
		Name:       p.Name,
		Price:      p.Price,
		Currency:   p.Currency,
		Interval:   p.Interval,
		MaxUsers:   p.MaxUsers,
		MaxPrompts: p.MaxPrompts,
		Active:     p.Active,
		Version:    p.Version,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// Update changes the plan's price and limits
func (p *SubscriptionPlan) Update(price decimal.Decimal, maxUsers, maxPrompts int) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Plan price cannot be negative")
	}
	if maxUsers < 0 || maxPrompts < 0 {
		return shared.NewDomainError("INVALID_LIMITS", "Plan limits cannot be negative")
	}

	p.Price = price
	p.MaxUsers = maxUsers
	p.MaxPrompts = maxPrompts
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewPlanUpdatedEvent(p, []string{"price", "max_users", "max_prompts"}))

	return nil
}

// Retire deactivates the plan for new subscriptions
func (p *SubscriptionPlan) Retire() error {
	if !p.Active {
		return shared.NewDomainError("ALREADY_RETIRED", "Plan is already retired")
	}

	p.Active = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewPlanUpdatedEvent(p, []string{"active"}))

	return nil
}

// MarkDeleted raises the deletion event
func (p *SubscriptionPlan) MarkDeleted() {
	p.AddDomainEvent(NewPlanDeletedEvent(p))
}

func validateInterval(interval BillingInterval) error {
	switch interval {
	case IntervalMonthly, IntervalYearly:
		return nil
	default:
		return shared.NewDomainError("INVALID_INTERVAL", "Invalid billing interval")
	}
}

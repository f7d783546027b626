package models

import (
	"github.com/shopspring/decimal"

	"github.com/promptdeck/backend/internal/domain/billing"
)

// PlanModel is the persistence model for the SubscriptionPlan aggregate.
type PlanModel struct {
	AggregateModel
	Name       string                  `gorm:"type:varchar(100);not null;uniqueIndex"`
	Price      decimal.Decimal         `gorm:"type:decimal(12,2);not null"`
	Currency   string                  `gorm:"type:varchar(3);not null"`
	Interval   billing.BillingInterval `gorm:"type:varchar(10);not null"`
	MaxUsers   int                     `gorm:"not null;default:0"`
	MaxPrompts int                     `gorm:"not null;default:0"`
	Active     bool                    `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (PlanModel) TableName() string {
	return "subscription_plans"
}

// ToDomain converts the persistence model to a domain SubscriptionPlan.
func (m *PlanModel) ToDomain() *billing.SubscriptionPlan {
	p := &billing.SubscriptionPlan{
		Name:       m.Name,
		Price:      m.Price,
		Currency:   m.Currency,
		Interval:   m.Interval,
		MaxUsers:   m.MaxUsers,
		MaxPrompts: m.MaxPrompts,
		Active:     m.Active,
	}
	m.PopulateAggregateRoot(&p.BaseAggregateRoot)
	return p
}

// FromDomain populates the persistence model from a domain SubscriptionPlan.
func (m *PlanModel) FromDomain(p *billing.SubscriptionPlan) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.Price = p.Price
	m.Currency = p.Currency
	m.Interval = p.Interval
	m.MaxUsers = p.MaxUsers
	m.MaxPrompts = p.MaxPrompts
	m.Active = p.Active
}

// PlanModelFromDomain creates a new persistence model from a domain SubscriptionPlan.
func PlanModelFromDomain(p *billing.SubscriptionPlan) *PlanModel {
	m := &PlanModel{}
	m.FromDomain(p)
	return m
}

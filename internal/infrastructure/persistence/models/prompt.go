package models

import (
	"github.com/promptdeck/backend/internal/domain/prompt"
)

// PromptModel is the persistence model for the Prompt aggregate.
type PromptModel struct {
	TenantAggregateModel
	Name        string `gorm:"type:varchar(200);not null;index"`
	Template    string `gorm:"type:text;not null"`
	ModelParams string `gorm:"type:text"` // JSON object
	Published   bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (PromptModel) TableName() string {
	return "prompts"
}

// ToDomain converts the persistence model to a domain Prompt.
func (m *PromptModel) ToDomain() *prompt.Prompt {
	p := &prompt.Prompt{
		Name:        m.Name,
		Template:    m.Template,
		ModelParams: m.ModelParams,
		Published:   m.Published,
	}
	m.PopulateTenantAggregateRoot(&p.TenantAggregateRoot)
	return p
}

// FromDomain populates the persistence model from a domain Prompt.
func (m *PromptModel) FromDomain(p *prompt.Prompt) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.Name = p.Name
	m.Template = p.Template
	m.ModelParams = p.ModelParams
	m.Published = p.Published
}

// PromptModelFromDomain creates a new persistence model from a domain Prompt.
func PromptModelFromDomain(p *prompt.Prompt) *PromptModel {
	m := &PromptModel{}
	m.FromDomain(p)
	return m
}

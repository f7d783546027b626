package prompt

import (
	"time"

	"github.com/google/uuid"
	"github.com/promptdeck/backend/internal/domain/shared"
)

// PromptView is the denormalized read model of a prompt
type PromptView struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TenantID    uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name        string    `gorm:"type:varchar(200);not null;index" json:"name"`
	Template    string    `gorm:"type:text;not null" json:"template"`
	ModelParams string    `gorm:"type:text" json:"model_params"`
	Published   bool      `gorm:"not null;index" json:"published"`
	CreatedAt   time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

// TableName returns the read-store table name for GORM
func (PromptView) TableName() string {
	return "prompt_views"
}

// NewPromptView builds the view from a prompt snapshot
func NewPromptView(s PromptSnapshot) *PromptView {
	return &PromptView{
		ID:          s.ID,
		TenantID:    s.TenantID,
		Name:        s.Name,
		Template:    s.Template,
		ModelParams: s.ModelParams,
		Published:   s.Published,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// PromptViewPatch carries partial updates for a PromptView
type PromptViewPatch struct {
	Name        *string
	Template    *string
	ModelParams *string
	Published   *bool
}

// Update applies a patch, bumping UpdatedAt unconditionally
func (v *PromptView) Update(p PromptViewPatch) {
	if p.Name != nil {
		v.Name = *p.Name
	}
	if p.Template != nil {
		v.Template = *p.Template
	}
	if p.ModelParams != nil {
		v.ModelParams = *p.ModelParams
	}
	if p.Published != nil {
		v.Published = *p.Published
	}
	v.UpdatedAt = time.Now()
}

// ApplySnapshot replaces the view state with a full snapshot
func (v *PromptView) ApplySnapshot(s PromptSnapshot) {
	v.Name = s.Name
	v.Template = s.Template
	v.ModelParams = s.ModelParams
	v.Published = s.Published
	v.UpdatedAt = time.Now()
}

// PromptRepository is the write-side store for prompts
type PromptRepository interface {
	shared.TenantRepository[Prompt]
}

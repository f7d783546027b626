package readstore

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "ASC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "DESC" {
		return "DESC"
	}
	return "ASC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// Per-view whitelists of fields that criteria may filter and sort by.
// Field names are the snake_case column names of the view tables.

// TenantViewFields contains allowed fields for tenant views
var TenantViewFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"status":     true,
	"plan_id":    true,
}

// UserViewFields contains allowed fields for user views
var UserViewFields = map[string]bool{
	"id":           true,
	"tenant_id":    true,
	"created_at":   true,
	"updated_at":   true,
	"email":        true,
	"display_name": true,
	"role":         true,
	"status":       true,
}

// PlanViewFields contains allowed fields for subscription plan views
var PlanViewFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"currency":   true,
	"interval":   true,
	"active":     true,
	"price":      true,
}

// FeatureViewFields contains allowed fields for feature flag views
var FeatureViewFields = map[string]bool{
	"id":         true,
	"tenant_id":  true,
	"created_at": true,
	"updated_at": true,
	"key":        true,
	"enabled":    true,
}

// PromptViewFields contains allowed fields for prompt views
var PromptViewFields = map[string]bool{
	"id":         true,
	"tenant_id":  true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"published":  true,
}

// FileViewFields contains allowed fields for stored file views
var FileViewFields = map[string]bool{
	"id":           true,
	"tenant_id":    true,
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"content_type": true,
	"status":       true,
	"size_bytes":   true,
}

// SagaInstanceViewFields contains allowed fields for saga instance views
var SagaInstanceViewFields = map[string]bool{
	"id":         true,
	"tenant_id":  true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"status":     true,
}

// SagaStepViewFields contains allowed fields for saga step views
var SagaStepViewFields = map[string]bool{
	"id":               true,
	"tenant_id":        true,
	"created_at":       true,
	"updated_at":       true,
	"saga_instance_id": true,
	"name":             true,
	"status":           true,
	"step_order":       true,
}

// SagaLogViewFields contains allowed fields for saga log views
var SagaLogViewFields = map[string]bool{
	"id":               true,
	"tenant_id":        true,
	"created_at":       true,
	"saga_instance_id": true,
	"saga_step_id":     true,
	"log_type":         true,
}

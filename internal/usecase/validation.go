package usecase

import (
	"fmt"
	"strings"

	"github.com/digiwolf/leads/internal/entity"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateSubmitLeadInput(input SubmitLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	}

	if strings.TrimSpace(input.Phone) == "" {
		errors = append(errors, ValidationError{"phone", "is required"})
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		errors = append(errors, ValidationError{"category", "is required"})
	} else if !entity.BusinessCategory(category).Valid() {
		errors = append(errors, ValidationError{"category", "is not a known business category"})
	}

	return errors
}

func ValidateAbandonedLeadInput(input AbandonedLeadInput) []ValidationError {
	if strings.TrimSpace(input.Phone) == "" {
		return []ValidationError{{"phone", "is required"}}
	}
	return nil
}

func validationFailed(errs []ValidationError) *DomainError {
	msg := "validation failed: "
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Error())
	}
	return &DomainError{
		Code:    CodeValidation,
		Message: msg + strings.Join(parts, ", "),
		Fields:  errs,
	}
}

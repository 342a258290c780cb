package form

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// FieldValidation holds runtime validation rules for a form field.
type FieldValidation struct {
	Required  bool
	MaxLength int
	// Check runs after the built-in rules on non-empty values.
	Check func(string) error
}

// ValidateText checks a text value against the validation rules and returns
// a message, or "" when the value is acceptable.
func (v FieldValidation) ValidateText(value string) string {
	if strings.TrimSpace(value) == "" {
		if v.Required {
			return "required"
		}
		return ""
	}
	if v.MaxLength > 0 && utf8.RuneCountInString(value) > v.MaxLength {
		return fmt.Sprintf("maximum %d characters", v.MaxLength)
	}
	if v.Check != nil {
		if err := v.Check(value); err != nil {
			return err.Error()
		}
	}
	return ""
}

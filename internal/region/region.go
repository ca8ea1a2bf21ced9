package region

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Code is a two-letter uppercase region (state) abbreviation. Values are only
// produced by Validate.
type Code string

func (c Code) String() string { return string(c) }

// Messages shown to the user, one per violated rule.
const (
	MsgEmpty   = "Please enter a state abbreviation"
	MsgLength  = "State abbreviation must be 2 characters"
	MsgLetters = "State abbreviation must contain only letters"
)

// codeRules is checked in tag order and the first failure wins, so a given
// input always maps to exactly one message.
const codeRules = "required,len=2,alpha"

var ruleMessages = map[string]string{
	"required": MsgEmpty,
	"len":      MsgLength,
	"alpha":    MsgLetters,
}

var validate = validator.New()

// ValidationError is returned for input that fails normalization.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validate trims and uppercases raw and checks it is exactly two ASCII letters.
func Validate(raw string) (Code, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))

	err := validate.Var(normalized, codeRules)
	if err == nil {
		return Code(normalized), nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		if msg, ok := ruleMessages[fieldErrs[0].Tag()]; ok {
			return "", &ValidationError{Message: msg}
		}
	}
	return "", &ValidationError{Message: MsgLetters}
}

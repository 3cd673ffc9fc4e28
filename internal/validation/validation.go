package validation

import (
	"net/mail"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Digits only, optional leading "+", 8-15 digits.
var phoneRegex = regexp.MustCompile(`^\+?[0-9]{8,15}$`)

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func Email(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
		return
	}
	if _, err := mail.ParseAddress(value); err != nil {
		v[field] = "invalid_email"
	}
}

func Phone(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
		return
	}
	if !phoneRegex.MatchString(strings.TrimSpace(value)) {
		v[field] = "invalid_phone"
	}
}

func PositiveAmount(field string, amount decimal.Decimal, v Violations) {
	if !amount.IsPositive() {
		v[field] = "must_be_positive"
	}
}

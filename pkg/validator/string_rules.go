package validator

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
)

// Required fails when the value is nil or a blank string.
func Required() FieldRule {
	return func(_ context.Context, f *Field) error {
		switch v := f.Value.(type) {
		case nil:
			f.Report("The {{ field }} field is required", "validation.required")
		case string:
			if strings.TrimSpace(v) == "" {
				f.Report("The {{ field }} field is required", "validation.required")
			}
		}
		return nil
	}
}

// MinLen fails when a string value is shorter than min bytes.
// Non-string values are left to other rules.
func MinLen(min int) FieldRule {
	return stringRule(
		func(s string) bool { return len(s) >= min },
		fmt.Sprintf("The {{ field }} must be at least %d characters long", min),
		"validation.min_length",
	)
}

// MaxLen fails when a string value is longer than max bytes.
func MaxLen(max int) FieldRule {
	return stringRule(
		func(s string) bool { return len(s) <= max },
		fmt.Sprintf("The {{ field }} must be at most %d characters long", max),
		"validation.max_length",
	)
}

// Email fails when a non-empty string value is not a plain address like user@example.com.
func Email() FieldRule {
	return stringRule(isEmail, "The {{ field }} must be a valid email address", "validation.email")
}

func stringRule(check func(string) bool, template, rule string) FieldRule {
	return func(_ context.Context, f *Field) error {
		s, ok := f.Value.(string)
		if !ok || s == "" {
			return nil
		}
		if !check(s) {
			f.Report(template, rule)
		}
		return nil
	}
}

func isEmail(value string) bool {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}

	local, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || local == "" {
		return false
	}

	// Domain must contain at least one dot and cannot start/end with dot
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	for part := range strings.SplitSeq(domain, ".") {
		if part == "" {
			return false
		}
	}
	return true
}

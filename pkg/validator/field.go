package validator

import (
	"strings"
	"sync"
)

// Field is a single named value under validation. It carries the pass/fail
// state of the field and the side channel rules use to report failures.
type Field struct {
	Name  string
	Value any

	messages map[string]string

	mu   sync.Mutex
	errs ValidationErrors
}

// NewField creates a field outside of a Validator run.
// Useful when a rule is invoked directly.
func NewField(name string, value any) *Field {
	return &Field{Name: name, Value: value}
}

// IsValid reports whether no rule has failed this field yet.
func (f *Field) IsValid() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.errs) == 0
}

// Report records a failure of rule against the field.
// The template may reference the field name as {{ field }}; an override
// registered for rule via WithMessages takes precedence over the template.
func (f *Field) Report(template, rule string) {
	if msg, ok := f.messages[rule]; ok {
		template = msg
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs.Add(ValidationError{
		Field:          f.Name,
		Rule:           rule,
		Message:        renderMessage(template, f.Name),
		TranslationKey: rule,
		TranslationValues: map[string]any{
			"field": f.Name,
		},
	})
}

// Errors returns a copy of the failures reported so far.
func (f *Field) Errors() ValidationErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.errs) == 0 {
		return nil
	}
	out := make(ValidationErrors, len(f.errs))
	copy(out, f.errs)
	return out
}

func renderMessage(template, field string) string {
	return strings.NewReplacer("{{ field }}", field, "{{field}}", field).Replace(template)
}

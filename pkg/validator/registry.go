package validator

import (
	"fmt"
	"slices"
	"sync"
)

// RuleFactory builds a FieldRule from a rule argument.
// Factories return ErrInvalidRuleArgument for arguments they do not understand.
type RuleFactory func(arg any) (FieldRule, error)

// Registry is the extension point through which packages make named rules
// available, e.g. "unique" and "exists" from the dbrule package.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]RuleFactory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]RuleFactory)}
}

// Register adds a factory under name.
func (r *Registry) Register(name string, factory RuleFactory) error {
	if factory == nil {
		return fmt.Errorf("%w: %q", ErrNilRule, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateRule, name)
	}
	r.factories[name] = factory
	return nil
}

// Build creates the rule registered under name.
func (r *Registry) Build(name string, arg any) (FieldRule, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	return factory(arg)
}

// MustBuild is like Build but panics on error. Intended for schema definitions
// evaluated once at startup.
func (r *Registry) MustBuild(name string, arg any) FieldRule {
	rule, err := r.Build(name, arg)
	if err != nil {
		panic(fmt.Sprintf("validator: build rule %q: %v", name, err))
	}
	return rule
}

// Names returns the registered rule names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

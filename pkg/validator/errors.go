package validator

import "errors"

var (
	// ErrUnknownRule is returned by Registry.Build for a name nobody registered.
	ErrUnknownRule = errors.New("unknown validation rule")

	// ErrDuplicateRule is returned when a rule name is registered twice.
	ErrDuplicateRule = errors.New("validation rule already registered")

	// ErrInvalidRuleArgument is returned when a rule factory cannot use the argument it was given.
	ErrInvalidRuleArgument = errors.New("invalid rule argument")

	// ErrNilRule is returned when a nil factory is registered.
	ErrNilRule = errors.New("nil rule factory")
)

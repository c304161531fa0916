package dbrule

import "errors"

// ErrValueType is returned when a field value does not match the rule's type parameter.
var ErrValueType = errors.New("dbrule: unexpected field value type")

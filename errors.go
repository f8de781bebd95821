package pagination

import "fmt"

// RangeError reports a pagination scalar that is present but not a positive
// integer. Field is "page" or "limit".
type RangeError struct {
	Field string
	Value any
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s must be a positive integer, got %v", e.Field, e.Value)
}

// ParseError wraps a failure to parse a JSON document into a parameter model.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse parameter model: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ShapeError reports a generic value that is not the non-nil mapping the
// parameter model requires.
type ShapeError struct {
	Got any
}

func (e *ShapeError) Error() string {
	if e.Got == nil {
		return "parameter model must be a non-nil object"
	}
	return fmt.Sprintf("parameter model must be an object, got %T", e.Got)
}

// UnsupportedOperatorError reports a filter operator outside the recognized
// operator set.
type UnsupportedOperatorError struct {
	Operator string
}

func (e *UnsupportedOperatorError) Error() string {
	return fmt.Sprintf("unsupported filter operator %q", e.Operator)
}

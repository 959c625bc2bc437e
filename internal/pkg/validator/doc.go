// Package validator validates request and dependency structs through struct tags.
package validator

// Validator validates a struct and returns an error describing every violated rule.
type Validator interface {
	Validate(data any) error
}

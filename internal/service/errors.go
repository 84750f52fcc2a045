package service

import (
	"errors"
	"fmt"
)

// Sentinel errors matched with errors.Is
var (
	ErrEmptyData     = errors.New("no qualifying data")
	ErrValidation    = errors.New("invalid purchase input")
	ErrNoPricingData = errors.New("no pricing data")
)

// EmptyDataError reports that an aggregation found no qualifying rows
type EmptyDataError struct {
	Topic string // user-facing topic name, e.g. "precios"
}

func (e *EmptyDataError) Error() string {
	return fmt.Sprintf("no data available for %s", e.Topic)
}

// Is lets errors.Is(err, ErrEmptyData) match
func (e *EmptyDataError) Is(target error) bool {
	return target == ErrEmptyData
}

// ValidationError reports an invalid purchase form field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Is lets errors.Is(err, ErrValidation) match
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func emptyData(topic string) error {
	return &EmptyDataError{Topic: topic}
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

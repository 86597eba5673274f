/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when no entity matches a key tuple
	ErrNotFound = errors.New("entity not found")

	// ErrAlreadyExists is returned when a key tuple is already taken and cannot be regenerated
	ErrAlreadyExists = errors.New("entity already exists")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrTargetMissing is returned when an update addresses a key tuple that was never stored
	ErrTargetMissing = errors.New("update target missing")

	// ErrMetadata is returned when declared metadata does not match an entity set or instance
	ErrMetadata = errors.New("metadata mismatch")
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AlreadyExistsError represents an error when an entity already exists
type AlreadyExistsError struct {
	Type string
	Key  string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s with key %q already exists", e.Type, e.Key)
}

func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// TargetMissingError is reported by updates whose key tuple is absent.
// It signals caller misuse and is deliberately not a NotFoundError.
type TargetMissingError struct {
	Type string
	Key  string
}

func (e *TargetMissingError) Error() string {
	return fmt.Sprintf("cannot update %s with key %q: no such entity", e.Type, e.Key)
}

func (e *TargetMissingError) Is(target error) bool {
	return target == ErrTargetMissing
}

// MetadataError represents a failure to resolve an entity set, property or
// navigation against the registered metadata.
type MetadataError struct {
	Set     string
	Field   string
	Message string
}

func (e *MetadataError) Error() string {
	switch {
	case e.Set != "" && e.Field != "":
		return fmt.Sprintf("metadata error for %s.%s: %s", e.Set, e.Field, e.Message)
	case e.Set != "":
		return fmt.Sprintf("metadata error for %s: %s", e.Set, e.Message)
	default:
		return fmt.Sprintf("metadata error: %s", e.Message)
	}
}

func (e *MetadataError) Is(target error) bool {
	return target == ErrMetadata
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(entityType, key string) error {
	return &NotFoundError{Type: entityType, Key: key}
}

// NewAlreadyExistsError creates a new AlreadyExistsError
func NewAlreadyExistsError(entityType, key string) error {
	return &AlreadyExistsError{Type: entityType, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewTargetMissingError creates a new TargetMissingError
func NewTargetMissingError(entityType, key string) error {
	return &TargetMissingError{Type: entityType, Key: key}
}

// NewMetadataError creates a new MetadataError
func NewMetadataError(set, field, message string) error {
	return &MetadataError{Set: set, Field: field, Message: message}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsTargetMissing checks if an error is an update-target-missing error
func IsTargetMissing(err error) bool {
	return errors.Is(err, ErrTargetMissing)
}

// IsMetadataError checks if an error is a metadata error
func IsMetadataError(err error) bool {
	return errors.Is(err, ErrMetadata)
}

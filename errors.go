package jsonapi

import (
	"errors"
	"fmt"
	"reflect"
)

//Error for all errors within this package
type Error interface {
	error
}

//ConfigurationError marks a serializer that can never produce valid output.
//Errors of this class are returned by NewSerializer and are fatal, the
//configuration must be fixed rather than retried.
type ConfigurationError interface {
	Error
}

//SerializeError marks failures raised while rendering entities
type SerializeError interface {
	Error
}

// Configuration errors
var (
	// ErrNilEntityType is returned if NewSerializer is called without an entity prototype
	ErrNilEntityType ConfigurationError = errors.New("serializer entity type must not be nil")
	// ErrEntityTypeNotStruct if the prototype is not a struct or pointer to struct
	ErrEntityTypeNotStruct ConfigurationError = errors.New("serializer entity type must be a struct or pointer to struct")
	// ErrPrimaryKeyNotInFields if the configured primary key is missing from the field allow-list
	ErrPrimaryKeyNotInFields ConfigurationError = errors.New("serializer fields must contain the primary key")
)

// Serialize errors
var (
	// ErrInvalidCollection is returned when Many wraps anything that is not a slice
	ErrInvalidCollection SerializeError = errors.New("Many only accepts slice types")
)

// An InvalidEntityError is returned when an entity handed to the serializer
// is not an instance of the configured entity type. Entities of another type
// are rejected outright so that a foreign schema can never leak its
// attribute set through a configuration that was not written for it.
type InvalidEntityError struct {
	Expected reflect.Type
	Actual   reflect.Type
}

func (e InvalidEntityError) Error() string {
	return fmt.Sprintf("entity type %s does not match serializer entity type %s", e.Actual, e.Expected)
}

// An UnknownFieldError is returned when a configured field, or the primary
// key itself, does not resolve against the entity's field table. This is
// configuration or schema drift, never a transient condition.
type UnknownFieldError struct {
	Field string
}

func (e UnknownFieldError) Error() string {
	return fmt.Sprintf("field %q is not present on the serializer entity type", e.Field)
}

// A ReservedFieldError is returned when a configured field names an
// association or one of its backing foreign-key attributes. The JSON API
// spec forbids rendering relationship-implementing storage as a plain
// attribute, so the collision is surfaced instead of silently dropped.
type ReservedFieldError struct {
	Field       string
	Association string
}

func (e ReservedFieldError) Error() string {
	return fmt.Sprintf("field %q backs the %q association and cannot be rendered as an attribute", e.Field, e.Association)
}

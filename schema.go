package jsonapi

import (
	"reflect"

	"github.com/gedex/inflector"
	"github.com/iancoleman/strcase"
)

// The EntityNamer interface can be optionally implemented to declare the
// resource type tag of an entity. The returned name is used for the "type"
// member and for relationship link generation.
//
// Note: entities that do not implement EntityNamer get a type tag guessed
// from the pluralized struct name.
type EntityNamer interface {
	TypeTag() string
}

// An Association declares a link from the entity type to another entity
// type. LocalFields lists the native names of the attributes that implement
// the link, those attributes can never double as plain attributes.
type Association struct {
	// Name of the association in native identifier form
	Name string
	// Type tag of the association's target entity type
	Type string
	// LocalFields holds the foreign-key attribute names backing the link
	LocalFields []string
}

// The Relationer interface must be implemented by entities that declare
// associations. Every declared association is rendered into the
// relationships member, independent of the configured field allow-list.
type Relationer interface {
	Associations() []Association
}

// typeTag returns the resource type for an entity value, preferring an
// explicit EntityNamer implementation.
func typeTag(entity interface{}) string {
	if namer, ok := entity.(EntityNamer); ok {
		return namer.TypeTag()
	}

	reflectType := reflect.TypeOf(entity)
	if reflectType.Kind() == reflect.Ptr {
		reflectType = reflectType.Elem()
	}

	return inflector.Pluralize(strcase.ToLowerCamel(reflectType.Name()))
}

// associations returns the declared associations of an entity, or none for
// entities that do not implement Relationer.
func associations(entity interface{}) []Association {
	if relationer, ok := entity.(Relationer); ok {
		return relationer.Associations()
	}

	return nil
}

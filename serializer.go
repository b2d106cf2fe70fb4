// Package jsonapi turns domain entities into documents that follow the
// JSON API resource object shape: a stable identifier, a type tag, an
// attributes object and a relationships object with navigable links.
// Loading, persisting and exposing those entities over HTTP is left to the
// surrounding application.
package jsonapi

import (
	"reflect"
	"strings"

	"github.com/iancoleman/strcase"
)

// A Serializer binds one entity type to the set of attributes it exposes.
// It is immutable after construction and may be shared freely between
// goroutines; every Serialize call is independent.
type Serializer struct {
	entityType reflect.Type
	primaryKey string
	fields     []string
	dasherize  bool
	version    string
	meta       map[string]interface{}
	table      map[string]fieldDescriptor
}

// A fieldDescriptor locates one addressable attribute within the entity
// struct. The table is resolved once per serializer so that render-time
// lookups can only fail with a typed UnknownFieldError, never with a
// reflection panic.
type fieldDescriptor struct {
	index []int
}

// Option configures a Serializer during construction.
type Option func(*Serializer)

// WithPrimaryKey sets the native name of the attribute used as the unique
// identifier. Defaults to "id". The primary key must be listed in the
// fields allow-list.
func WithPrimaryKey(name string) Option {
	return func(s *Serializer) {
		s.primaryKey = name
	}
}

// WithFields sets the ordered allow-list of attribute names eligible for
// exposure. Attribute order in the rendered document follows this order.
func WithFields(fields ...string) Option {
	return func(s *Serializer) {
		s.fields = fields
	}
}

// WithVerbatimNames disables dasherization. Exposed attribute and
// association names then pass through in their native form.
func WithVerbatimNames() Option {
	return func(s *Serializer) {
		s.dasherize = false
	}
}

// WithVersion overrides the serializer version advertised in the document
// meta object. Defaults to the package level Version.
func WithVersion(version string) Option {
	return func(s *Serializer) {
		s.version = version
	}
}

// WithMeta adds entries to the top-level meta object of every document the
// serializer produces. The serializerVersion entry cannot be overridden.
func WithMeta(meta map[string]interface{}) Option {
	return func(s *Serializer) {
		s.meta = meta
	}
}

// NewSerializer builds a serializer for the entity type of the given
// prototype value. The prototype must be a struct or pointer to struct and
// the primary key must appear in the configured fields, otherwise a
// ConfigurationError is returned.
func NewSerializer(entityType interface{}, options ...Option) (*Serializer, error) {
	if entityType == nil {
		return nil, ErrNilEntityType
	}

	reflectType := reflect.TypeOf(entityType)
	if reflectType.Kind() == reflect.Ptr {
		reflectType = reflectType.Elem()
	}
	if reflectType.Kind() != reflect.Struct {
		return nil, ErrEntityTypeNotStruct
	}

	serializer := &Serializer{
		entityType: reflectType,
		primaryKey: "id",
		dasherize:  true,
		version:    Version,
	}

	for _, option := range options {
		option(serializer)
	}

	if !contains(serializer.fields, serializer.primaryKey) {
		return nil, ErrPrimaryKeyNotInFields
	}

	serializer.table = fieldTable(reflectType)

	return serializer, nil
}

// transformName applies the configured naming convention to one identifier.
func (s *Serializer) transformName(name string) string {
	if s.dasherize {
		return strcase.ToKebab(name)
	}

	return name
}

// fieldTable resolves the native attribute name of every addressable struct
// field to its index path. Anonymous embedded structs are flattened, fields
// excluded from encoding via `json:"-"` stay unaddressable.
func fieldTable(reflectType reflect.Type) map[string]fieldDescriptor {
	table := make(map[string]fieldDescriptor)
	collectFields(reflectType, nil, table)

	return table
}

func collectFields(reflectType reflect.Type, parent []int, table map[string]fieldDescriptor) {
	for i := 0; i < reflectType.NumField(); i++ {
		field := reflectType.Field(i)
		if field.PkgPath != "" {
			// unexported
			continue
		}

		index := append(append([]int{}, parent...), i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			collectFields(field.Type, index, table)
			continue
		}

		name := nativeName(field)
		if name == "" {
			continue
		}

		// outer fields shadow embedded ones
		if _, taken := table[name]; !taken {
			table[name] = fieldDescriptor{index: index}
		}
	}
}

// nativeName returns the wire-facing identifier of a struct field: the json
// tag when present, the lowerCamel field name otherwise. An empty result
// marks the field as not addressable.
func nativeName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return ""
	}
	if tag != "" {
		if comma := strings.Index(tag, ","); comma != -1 {
			tag = tag[:comma]
		}
		if tag != "" {
			return tag
		}
	}

	return strcase.ToLowerCamel(field.Name)
}

func contains(haystack []string, needle string) bool {
	for _, value := range haystack {
		if value == needle {
			return true
		}
	}

	return false
}

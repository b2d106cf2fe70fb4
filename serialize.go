package jsonapi

import (
	"fmt"
	"reflect"
	"time"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// Serialize renders a payload into a complete document. Collection order is
// preserved, an empty collection renders as an empty array and a nil
// singleton as null primary data.
func (s *Serializer) Serialize(payload Payload) (*Document, error) {
	document := &Document{
		Meta:    s.documentMeta(),
		JSONAPI: JSONAPIInfo{Version: jsonAPIVersion},
	}

	if !payload.many {
		resource, err := s.renderResource(payload.entity)
		if err != nil {
			return nil, err
		}

		document.Data.DataObject = resource

		return document, nil
	}

	if payload.collection == nil {
		return nil, ErrInvalidCollection
	}

	value := reflect.ValueOf(payload.collection)
	if value.Kind() != reflect.Slice {
		return nil, ErrInvalidCollection
	}

	resources := make([]*Resource, 0, value.Len())
	for i := 0; i < value.Len(); i++ {
		resource, err := s.renderResource(value.Index(i).Interface())
		if err != nil {
			return nil, errors.Wrapf(err, "collection element %d", i)
		}

		resources = append(resources, resource)
	}

	document.Data.DataArray = resources

	return document, nil
}

// SerializeToJSON renders a payload and encodes the document to JSON. It
// works like Serialize but returns the wire bytes instead.
func (s *Serializer) SerializeToJSON(payload Payload) ([]byte, error) {
	document, err := s.Serialize(payload)
	if err != nil {
		return nil, err
	}

	return json.Marshal(document)
}

func (s *Serializer) documentMeta() Meta {
	meta := make(Meta, len(s.meta)+1)
	for key, value := range s.meta {
		meta[key] = value
	}
	meta["serializerVersion"] = s.version

	return meta
}

// renderResource produces the resource object of one entity: id, type,
// attributes and relationships. A nil entity yields a nil resource, the nil
// check deliberately precedes the type check.
func (s *Serializer) renderResource(entity interface{}) (*Resource, error) {
	value, present := entityValue(entity)
	if !present {
		return nil, nil
	}

	// Must not render an entity that has same named attributes as a
	// different entity type.
	if value.Type() != s.entityType {
		return nil, InvalidEntityError{Expected: s.entityType, Actual: reflect.TypeOf(entity)}
	}

	primaryKey, err := s.fieldValue(value, s.primaryKey)
	if err != nil {
		return nil, err
	}

	declared := associations(entity)

	attributes, err := s.renderAttributes(value, declared)
	if err != nil {
		return nil, err
	}

	tag := typeTag(entity)

	return &Resource{
		ID:            fmt.Sprintf("%v", primaryKey),
		Type:          tag,
		Attributes:    attributes,
		Relationships: s.renderRelationships(tag, primaryKey, declared),
	}, nil
}

// renderAttributes renders the allow-listed attributes in declared order,
// skipping the primary key. The exclusion set is built from every declared
// association, not only those reachable through the allow-list: a plain
// attribute sharing its name with relationship-backing storage is always a
// collision and raises instead of rendering.
func (s *Serializer) renderAttributes(entity reflect.Value, declared []Association) (Attributes, error) {
	reserved := make(map[string]string)
	for _, association := range declared {
		reserved[association.Name] = association.Name
		for _, local := range association.LocalFields {
			reserved[local] = association.Name
		}
	}

	attributes := Attributes{}
	for _, field := range s.fields {
		if field == s.primaryKey {
			continue
		}

		if association, collides := reserved[field]; collides {
			return nil, ReservedFieldError{Field: field, Association: association}
		}

		value, err := s.fieldValue(entity, field)
		if err != nil {
			return nil, err
		}

		attributes = append(attributes, Attribute{
			Name:  s.transformName(field),
			Value: coerceValue(value),
		})
	}

	return attributes, nil
}

// renderRelationships emits the links of every declared association. The
// primary-key value substitutes into the URL templates directly, without
// the string conversion applied to the id member.
func (s *Serializer) renderRelationships(tag string, primaryKey interface{}, declared []Association) map[string]Relationship {
	relationships := make(map[string]Relationship, len(declared))
	for _, association := range declared {
		name := s.transformName(association.Name)
		relationships[name] = Relationship{
			Links: RelationshipLinks{
				Self:    fmt.Sprintf("/%s/%v/relationships/%s", tag, primaryKey, name),
				Related: fmt.Sprintf("/%s/%v/%s", tag, primaryKey, name),
			},
		}
	}

	return relationships
}

// fieldValue reads one native attribute off the entity through the field
// table resolved at construction.
func (s *Serializer) fieldValue(entity reflect.Value, name string) (interface{}, error) {
	descriptor, known := s.table[name]
	if !known {
		return nil, UnknownFieldError{Field: name}
	}

	return entity.FieldByIndex(descriptor.index).Interface(), nil
}

// coerceValue prepares one attribute value for wire transport. Temporal
// values become ISO 8601 strings with their offset preserved, everything
// else passes through unchanged.
func coerceValue(value interface{}) interface{} {
	switch typed := value.(type) {
	case time.Time:
		return typed.Format(time.RFC3339Nano)
	case *time.Time:
		if typed == nil {
			return nil
		}
		return typed.Format(time.RFC3339Nano)
	default:
		return value
	}
}

// entityValue dereferences an entity down to its struct value. It reports
// false for nil interfaces and nil pointers.
func entityValue(entity interface{}) (reflect.Value, bool) {
	if entity == nil {
		return reflect.Value{}, false
	}

	value := reflect.ValueOf(entity)
	if value.Kind() == reflect.Ptr {
		if value.IsNil() {
			return reflect.Value{}, false
		}
		value = value.Elem()
	}

	return value, true
}

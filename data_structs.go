package jsonapi

import (
	"bytes"

	json "github.com/goccy/go-json"
)

// A Document represents the envelope of a JSON API document as specified
// here: http://jsonapi.org. Only the meta, jsonapi and data members are
// produced, everything else is the concern of the layer encoding the
// response.
type Document struct {
	Meta    Meta          `json:"meta"`
	JSONAPI JSONAPIInfo   `json:"jsonapi"`
	Data    DataContainer `json:"data"`
}

// Meta holds the top-level meta object, always carrying at least the
// serializerVersion entry.
type Meta map[string]interface{}

// JSONAPIInfo describes the specification level of the document.
type JSONAPIInfo struct {
	Version string `json:"version"`
}

// A DataContainer is used to marshal the primary data as a single resource
// object, an array of resource objects, or null.
type DataContainer struct {
	DataObject *Resource
	DataArray  []*Resource
}

// MarshalJSON returns the JSON encoding of the DataArray field or the
// DataObject field. It will return "null" if neither of them is set.
func (c DataContainer) MarshalJSON() ([]byte, error) {
	if c.DataArray != nil {
		return json.Marshal(c.DataArray)
	}

	return json.Marshal(c.DataObject)
}

// A Resource combines identity, type, attributes and relationship links for
// one entity. Resources are produced fresh per Serialize call and owned by
// the caller on return.
type Resource struct {
	ID            string                  `json:"id"`
	Type          string                  `json:"type"`
	Attributes    Attributes              `json:"attributes"`
	Relationships map[string]Relationship `json:"relationships"`
}

// An Attribute is one rendered name/value pair.
type Attribute struct {
	Name  string
	Value interface{}
}

// Attributes is the ordered attributes object of a resource. Order follows
// the serializer's field allow-list, minus the primary key.
type Attributes []Attribute

// Get returns the value rendered under the given (transformed) name.
func (a Attributes) Get(name string) (interface{}, bool) {
	for _, attribute := range a {
		if attribute.Name == name {
			return attribute.Value, true
		}
	}

	return nil, false
}

// MarshalJSON encodes the attributes as a JSON object preserving insertion
// order. An empty attribute list encodes as an empty object, not null.
func (a Attributes) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteByte('{')

	for i, attribute := range a {
		if i > 0 {
			buffer.WriteByte(',')
		}

		name, err := json.Marshal(attribute.Name)
		if err != nil {
			return nil, err
		}
		buffer.Write(name)
		buffer.WriteByte(':')

		value, err := json.Marshal(attribute.Value)
		if err != nil {
			return nil, err
		}
		buffer.Write(value)
	}

	buffer.WriteByte('}')

	return buffer.Bytes(), nil
}

// A Relationship carries the navigable links of one association. No
// relationship data (linkage to concrete resource identifiers) is produced,
// that is a deliberate scope boundary.
type Relationship struct {
	Links RelationshipLinks `json:"links"`
}

// RelationshipLinks holds the self and related URLs of a relationship.
type RelationshipLinks struct {
	Self    string `json:"self"`
	Related string `json:"related"`
}

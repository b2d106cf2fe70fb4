package jsonapi

// A Payload is the input of Serialize: either one entity or an ordered
// collection of entities. The caller states which one it is via Single or
// Many, the serializer never infers collection-ness from the value itself.
type Payload struct {
	entity     interface{}
	collection interface{}
	many       bool
}

// Single wraps one entity instance. A nil entity renders as null primary
// data.
func Single(entity interface{}) Payload {
	return Payload{entity: entity}
}

// Many wraps an ordered, possibly empty slice of entities. Serialize
// returns ErrInvalidCollection for anything that is not a slice.
func Many(entities interface{}) Payload {
	return Payload{collection: entities, many: true}
}

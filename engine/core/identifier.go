package core

import "github.com/google/uuid"

// InvalidID marks an unused slot in a resource table.
const InvalidID uint32 = 4294967295

// ObjectID uniquely identifies a scene object for the lifetime of the process.
type ObjectID = uuid.UUID

// NilObjectID is the zero ObjectID.
var NilObjectID = uuid.Nil

// NewObjectID acquires a new random identifier for a scene object.
func NewObjectID() ObjectID {
	return uuid.New()
}

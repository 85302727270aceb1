package gymstore

import "errors"

// ErrNotFound indicates no record with the requested id exists in the collection.
var ErrNotFound = errors.New("record not found")

package vecstore

import "fmt"

// ConnectionError means the vector store handle could not be built or the
// backend is unreachable. Fatal for the current run.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("vector store connection failed: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// CollectionError means the collection schema could not be created or
// removed. Fatal for ingestion; retrying the whole run is the recovery.
type CollectionError struct {
	Collection string
	Err        error
}

func (e *CollectionError) Error() string {
	return fmt.Sprintf("collection %q: %v", e.Collection, e.Err)
}

func (e *CollectionError) Unwrap() error {
	return e.Err
}

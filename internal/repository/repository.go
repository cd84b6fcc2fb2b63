package repository

// Mutation tells the store what to do with a record after an atomic
// read-modify-write closure has run.
type Mutation int

const (
	// MutationNone leaves the record untouched
	MutationNone Mutation = iota
	// MutationSave writes the (possibly modified) record back
	MutationSave
	// MutationDelete removes the record
	MutationDelete
)

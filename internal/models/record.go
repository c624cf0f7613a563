package models

// Record is a validated submission that is persisted as one document.
type Record interface {
	// CollectionName is the document collection the record is stored in.
	CollectionName() string
}

// Defaulter is implemented by records that fill in default values after
// decoding and before validation.
type Defaulter interface {
	ApplyDefaults()
}

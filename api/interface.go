// Package api define types and interfaces common to all index
// algorithms implemented by this package.
package api

// NodeCallb callback from Traverse API. Return false to stop
// the traversal. Key and value are read-only, don't keep a
// reference to value beyond the callback.
type NodeCallb func(key uint32, value []byte) bool

// IndexReader interface for fetching one or more entries.
type IndexReader interface {
	// Has check whether key is present in the index.
	Has(key uint32) bool

	// Get value for key, if present.
	Get(key uint32) (value []byte, ok bool)

	// Min return entry with smallest key in the index.
	Min() (key uint32, value []byte, ok bool)

	// Max return entry with largest key in the index.
	Max() (key uint32, value []byte, ok bool)

	// Traverse entries in ascending key order, calling callb for
	// each entry. Mutating the index from within callb is undefined.
	Traverse(callb NodeCallb)

	// Count return number of entries in the index.
	Count() int64
}

// IndexWriter interface for updating one or more entries.
type IndexWriter interface {
	// Upsert a key,value entry. If key is already present its value
	// is replaced and the old value returned, with replaced as true.
	// Returns ErrorOutofMemory if the index has run out of capacity,
	// in which case the index is left untouched.
	Upsert(key uint32, value []byte) (oldvalue []byte, replaced bool, err error)

	// Delete entry for key, if present, and return its value.
	// Missing keys are not an error, ok is false.
	Delete(key uint32) (oldvalue []byte, ok bool)

	// DeleteMin delete the entry with the smallest key.
	DeleteMin() (key uint32, value []byte, ok bool)

	// DeleteMax delete the entry with the largest key.
	DeleteMax() (key uint32, value []byte, ok bool)

	// Reset remove all entries from the index, the instance can
	// be used afterwards as though freshly constructed.
	Reset()
}

// Index composes reader and writer interfaces on a sorted index.
type Index interface {
	IndexReader
	IndexWriter

	// ID return index id, typically human readable and unique.
	ID() string

	// Destroy release all resources held by the index, it is an
	// error to use the index after calling Destroy.
	Destroy()
}

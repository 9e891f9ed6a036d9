// Package dict implement a sorted index of uint32 keys based on
// golang map. Primarily meant as reference for testing more useful
// index algorithms.
package dict

import "sort"

import "github.com/bnclabs/llrbtree/api"

// Dict is a reference data structure, for validation purpose.
type Dict struct {
	id   string
	dict map[uint32][]byte
	dead bool
}

// NewDict create a new golang map for indexing key,value.
func NewDict(id string) *Dict {
	return &Dict{id: id, dict: make(map[uint32][]byte)}
}

//---- api.IndexReader interface.

// Has implement api.IndexReader interface.
func (d *Dict) Has(key uint32) bool {
	_, ok := d.dict[key]
	return ok
}

// Get implement api.IndexReader interface.
func (d *Dict) Get(key uint32) (value []byte, ok bool) {
	value, ok = d.dict[key]
	return value, ok
}

// Min implement api.IndexReader interface.
func (d *Dict) Min() (key uint32, value []byte, ok bool) {
	keys := d.sortkeys()
	if len(keys) == 0 {
		return 0, nil, false
	}
	key = keys[0]
	return key, d.dict[key], true
}

// Max implement api.IndexReader interface.
func (d *Dict) Max() (key uint32, value []byte, ok bool) {
	keys := d.sortkeys()
	if len(keys) == 0 {
		return 0, nil, false
	}
	key = keys[len(keys)-1]
	return key, d.dict[key], true
}

// Traverse implement api.IndexReader interface.
func (d *Dict) Traverse(callb api.NodeCallb) {
	for _, key := range d.sortkeys() {
		if callb != nil && callb(key, d.dict[key]) == false {
			return
		}
	}
}

// Count implement api.IndexReader interface.
func (d *Dict) Count() int64 {
	return int64(len(d.dict))
}

//---- api.IndexWriter interface.

// Upsert implement api.IndexWriter interface.
func (d *Dict) Upsert(
	key uint32, value []byte) (oldvalue []byte, replaced bool, err error) {

	oldvalue, replaced = d.dict[key]
	d.dict[key] = value
	return oldvalue, replaced, nil
}

// Delete implement api.IndexWriter interface.
func (d *Dict) Delete(key uint32) (oldvalue []byte, ok bool) {
	oldvalue, ok = d.dict[key]
	if ok {
		delete(d.dict, key)
	}
	return oldvalue, ok
}

// DeleteMin implement api.IndexWriter interface.
func (d *Dict) DeleteMin() (key uint32, value []byte, ok bool) {
	if key, value, ok = d.Min(); ok {
		delete(d.dict, key)
	}
	return key, value, ok
}

// DeleteMax implement api.IndexWriter interface.
func (d *Dict) DeleteMax() (key uint32, value []byte, ok bool) {
	if key, value, ok = d.Max(); ok {
		delete(d.dict, key)
	}
	return key, value, ok
}

// Reset implement api.IndexWriter interface.
func (d *Dict) Reset() {
	d.dict = make(map[uint32][]byte)
}

//---- api.Index interface.

// ID implement api.Index interface.
func (d *Dict) ID() string {
	return d.id
}

// Destroy implement api.Index interface.
func (d *Dict) Destroy() {
	if d.dead {
		panic("Destroy(): already dead dict")
	}
	d.dict, d.dead = nil, true
}

func (d *Dict) sortkeys() []uint32 {
	keys := make([]uint32, 0, len(d.dict))
	for key := range d.dict {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

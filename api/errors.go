package api

import "errors"

// ErrorOutofMemory operation cannot succeed because the index has
// exhausted its configured memory capacity.
var ErrorOutofMemory = errors.New("llrb.outofmemory")

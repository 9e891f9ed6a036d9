// Package llrb implement a self-balancing version of binary-tree,
// called, LLRB (Left Leaning Red Black), over 32-bit unsigned
// integer keys.
//
//   * Index key, value (value is optional).
//   * Each key shall be unique within the index sample-set.
//   * Node allocations are recycled through a capacity bound freelist.
//   * Insertion can arrange the tree as a 2-3 tree (default) or as
//     a 2-3-4 tree, lookup and deletion are identical in either
//     arrangement.
//
// In single-threaded settings, reads and writes are serialized.
package llrb

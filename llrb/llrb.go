package llrb

import "fmt"
import "io"
import "strings"
import "sync"
import "sync/atomic"

import "github.com/bnclabs/llrbtree/api"
import "github.com/bnclabs/llrbtree/lib"
import s "github.com/bnclabs/gosettings"

// LLRB manage a single instance of in-memory sorted index using
// left-leaning-red-black tree, keyed by 32-bit unsigned integers.
type LLRB struct {
	llrbstats // 64-bit aligned

	name          string
	root          *Llrbnode
	pool          *nodepool
	h_upsertdepth *lib.HistogramInt64
	rw            sync.RWMutex
	dead          bool

	// settings
	mode234     bool
	memcapacity int64
	setts       s.Settings
	logprefix   string
}

// NewLLRB a new instance of in-memory sorted index.
func NewLLRB(name string, setts s.Settings) *LLRB {
	llrb := &LLRB{name: name}
	llrb.logprefix = fmt.Sprintf("LLRB [%s]", name)

	setts = make(s.Settings).Mixin(Defaultsettings(), setts)
	llrb.readsettings(setts)
	llrb.setts = setts

	llrb.pool = newnodepool(llrb.memcapacity)
	llrb.h_upsertdepth = lib.NewhistorgramInt64(1, 256, 1)

	infof("%v started in %v mode ...\n", llrb.logprefix, llrb.mode())
	return llrb
}

func (llrb *LLRB) readsettings(setts s.Settings) {
	llrb.mode234 = setts.Bool("mode234")
	llrb.memcapacity = setts.Int64("memcapacity")
}

func (llrb *LLRB) mode() string {
	if llrb.mode234 {
		return "2-3-4"
	}
	return "2-3"
}

// ID return index id.
func (llrb *LLRB) ID() string {
	return llrb.name
}

// Count return the number of entries in the index.
func (llrb *LLRB) Count() int64 {
	return atomic.LoadInt64(&llrb.n_count)
}

// Dotdump to convert whole tree into dot script that can be
// visualized using graphviz.
func (llrb *LLRB) Dotdump(buffer io.Writer) {
	lines := []string{
		"digraph llrb {",
		"  node[shape=record];\n",
		"}",
	}
	buffer.Write([]byte(strings.Join(lines[:len(lines)-1], "\n")))
	llrb.rw.RLock()
	llrb.root.dotdump(buffer)
	llrb.rw.RUnlock()
	buffer.Write([]byte(lines[len(lines)-1]))
}

//---- api.IndexReader interface.

// Has implement api.IndexReader interface.
func (llrb *LLRB) Has(key uint32) bool {
	_, ok := llrb.Get(key)
	return ok
}

// Get implement api.IndexReader interface. Iterative walk down
// the search path, no allocation, no mutation.
func (llrb *LLRB) Get(key uint32) (value []byte, ok bool) {
	llrb.rw.RLock()
	defer llrb.rw.RUnlock()

	atomic.AddInt64(&llrb.n_lookups, 1)
	nd := llrb.root
	for nd != nil {
		if key < nd.key {
			nd = nd.left
		} else if nd.key < key {
			nd = nd.right
		} else {
			return nd.value, true
		}
	}
	return nil, false // key is not present in the tree
}

// Min implement api.IndexReader interface.
func (llrb *LLRB) Min() (key uint32, value []byte, ok bool) {
	llrb.rw.RLock()
	defer llrb.rw.RUnlock()

	atomic.AddInt64(&llrb.n_lookups, 1)
	nd := llrb.root
	if nd == nil {
		return 0, nil, false
	}
	for nd.left != nil {
		nd = nd.left
	}
	return nd.key, nd.value, true
}

// Max implement api.IndexReader interface.
func (llrb *LLRB) Max() (key uint32, value []byte, ok bool) {
	llrb.rw.RLock()
	defer llrb.rw.RUnlock()

	atomic.AddInt64(&llrb.n_lookups, 1)
	nd := llrb.root
	if nd == nil {
		return 0, nil, false
	}
	for nd.right != nil {
		nd = nd.right
	}
	return nd.key, nd.value, true
}

// Traverse implement api.IndexReader interface. In-order walk
// calling callb for each entry, keys are emitted in ascending
// order. Mutating the tree from within callb is undefined.
func (llrb *LLRB) Traverse(callb api.NodeCallb) {
	llrb.rw.RLock()
	defer llrb.rw.RUnlock()

	atomic.AddInt64(&llrb.n_traverses, 1)
	inorder(llrb.root, callb)
}

func inorder(nd *Llrbnode, callb api.NodeCallb) bool {
	if nd == nil {
		return true
	}
	if inorder(nd.left, callb) == false {
		return false
	}
	if callb != nil && callb(nd.key, nd.value) == false {
		return false
	}
	return inorder(nd.right, callb)
}

//---- api.IndexWriter interface.

// Upsert implement api.IndexWriter interface. If key is already
// present its value is replaced, the tree pays the fix-up pass
// either way. Returns api.ErrorOutofMemory when the pool is out
// of capacity, tree is left untouched.
func (llrb *LLRB) Upsert(
	key uint32, value []byte) (oldvalue []byte, replaced bool, err error) {

	llrb.rw.Lock()
	defer llrb.rw.Unlock()
	llrb.assertalive("Upsert")

	// acquire the node before descending, keeps the insert
	// all-or-nothing when capacity runs out.
	newnd, err := llrb.pool.allocnode(key, value)
	if err != nil {
		// replacement upserts don't need a fresh node.
		for nd := llrb.root; nd != nil; {
			if key < nd.key {
				nd = nd.left
			} else if nd.key < key {
				nd = nd.right
			} else {
				oldvalue, nd.value = nd.value, value
				llrb.valmemory -= int64(len(oldvalue))
				llrb.valmemory += int64(len(value))
				llrb.n_updates++
				return oldvalue, true, nil
			}
		}
		errorf("%v Upsert(%v): %v\n", llrb.logprefix, key, err)
		return nil, false, err
	}

	root, oldvalue, replaced := llrb.upsert(llrb.root, 1 /*depth*/, newnd)
	root.setblack()
	llrb.root = root

	if replaced {
		llrb.pool.freenode(newnd) // value moved into the standing node
		llrb.valmemory -= int64(len(oldvalue))
		llrb.valmemory += int64(len(value))
		llrb.n_updates++
		return oldvalue, true, nil
	}
	atomic.AddInt64(&llrb.n_count, 1)
	llrb.n_inserts++
	llrb.n_nodes++
	llrb.keymemory += keysize
	llrb.valmemory += int64(len(value))
	return nil, false, nil
}

func (llrb *LLRB) upsert(
	nd *Llrbnode, depth int64,
	newnd *Llrbnode) (root *Llrbnode, oldvalue []byte, replaced bool) {

	if nd == nil {
		llrb.h_upsertdepth.Add(depth)
		return newnd, nil, false
	}

	if llrb.mode234 {
		nd = llrb.walkdownrot234(nd)
	} else {
		nd = llrb.walkdownrot23(nd)
	}

	if newnd.key < nd.key {
		nd.left, oldvalue, replaced = llrb.upsert(nd.left, depth+1, newnd)
	} else if nd.key < newnd.key {
		nd.right, oldvalue, replaced = llrb.upsert(nd.right, depth+1, newnd)
	} else {
		oldvalue, nd.value, replaced = nd.value, newnd.value, true
		llrb.h_upsertdepth.Add(depth)
	}

	if llrb.mode234 {
		nd = llrb.walkuprot234(nd)
	} else {
		nd = llrb.walkuprot23(nd)
	}
	return nd, oldvalue, replaced
}

// Delete implement api.IndexWriter interface. Missing key is not
// an error, ok is false and the key-set is left unchanged.
func (llrb *LLRB) Delete(key uint32) (oldvalue []byte, ok bool) {
	llrb.rw.Lock()
	defer llrb.rw.Unlock()
	llrb.assertalive("Delete")

	root, deleted := llrb.delete(llrb.root, key)
	if root != nil {
		root.setblack()
	}
	llrb.root = root

	if deleted == nil {
		return nil, false
	}
	oldvalue = deleted.value
	llrb.delcount(deleted)
	llrb.freenode(deleted)
	return oldvalue, true
}

func (llrb *LLRB) delete(nd *Llrbnode, key uint32) (newnd, deleted *Llrbnode) {
	if nd == nil {
		return nil, nil
	}
	// the movered/fixup transforms expect 2-3 shaped subtrees,
	// standing 4-nodes must be split on the way down.
	if llrb.mode234 {
		nd = llrb.walkdownrot234(nd)
	}

	if key < nd.key {
		if nd.left == nil { // key not present. Nothing to delete
			return nd, nil
		}
		if !isred(nd.left) && !isred(nd.left.left) {
			nd = llrb.moveredleft(nd)
		}
		nd.left, deleted = llrb.delete(nd.left, key)

	} else {
		if isred(nd.left) {
			nd = llrb.rotateright(nd)
		}
		// if key equals node and no right children
		if nd.key == key && nd.right == nil {
			return nil, nd
		}
		if nd.right == nil { // key not present beyond this point
			return llrb.fixup(nd), nil
		}
		if !isred(nd.right) && !isred(nd.right.left) {
			nd = llrb.moveredright(nd)
		}
		if nd.key == key { // node has a right subtree, from above
			var subdeleted *Llrbnode
			nd.right, subdeleted = llrb.deletemin(nd.right)
			if subdeleted == nil {
				panic("delete(): fatal logic, call the programmer")
			}
			// swap contents with the in-order successor, the
			// successor node is the one that gets freed.
			nd.key, subdeleted.key = subdeleted.key, nd.key
			nd.value, subdeleted.value = subdeleted.value, nd.value
			deleted = subdeleted
		} else {
			nd.right, deleted = llrb.delete(nd.right, key)
		}
	}
	return llrb.fixup(nd), deleted
}

// DeleteMin implement api.IndexWriter interface.
func (llrb *LLRB) DeleteMin() (key uint32, value []byte, ok bool) {
	llrb.rw.Lock()
	defer llrb.rw.Unlock()
	llrb.assertalive("DeleteMin")

	root, deleted := llrb.deletemin(llrb.root)
	if root != nil {
		root.setblack()
	}
	llrb.root = root

	if deleted == nil {
		return 0, nil, false
	}
	key, value = deleted.key, deleted.value
	llrb.delcount(deleted)
	llrb.freenode(deleted)
	return key, value, true
}

func (llrb *LLRB) deletemin(nd *Llrbnode) (newnd, deleted *Llrbnode) {
	if nd == nil {
		return nil, nil
	}
	if llrb.mode234 { // split standing 4-nodes, as in delete
		nd = llrb.walkdownrot234(nd)
	}
	if nd.left == nil {
		return nil, nd
	}
	if !isred(nd.left) && !isred(nd.left.left) {
		nd = llrb.moveredleft(nd)
	}
	nd.left, deleted = llrb.deletemin(nd.left)
	return llrb.fixup(nd), deleted
}

// DeleteMax implement api.IndexWriter interface.
func (llrb *LLRB) DeleteMax() (key uint32, value []byte, ok bool) {
	llrb.rw.Lock()
	defer llrb.rw.Unlock()
	llrb.assertalive("DeleteMax")

	root, deleted := llrb.deletemax(llrb.root)
	if root != nil {
		root.setblack()
	}
	llrb.root = root

	if deleted == nil {
		return 0, nil, false
	}
	key, value = deleted.key, deleted.value
	llrb.delcount(deleted)
	llrb.freenode(deleted)
	return key, value, true
}

func (llrb *LLRB) deletemax(nd *Llrbnode) (newnd, deleted *Llrbnode) {
	if nd == nil {
		return nil, nil
	}
	if llrb.mode234 { // split standing 4-nodes, as in delete
		nd = llrb.walkdownrot234(nd)
	}
	if isred(nd.left) {
		nd = llrb.rotateright(nd)
	}
	if nd.right == nil {
		return nil, nd
	}
	if !isred(nd.right) && !isred(nd.right.left) {
		nd = llrb.moveredright(nd)
	}
	nd.right, deleted = llrb.deletemax(nd.right)
	return llrb.fixup(nd), deleted
}

// Reset implement api.IndexWriter interface. Removes all entries,
// every node goes back to the freelist exactly once, in post-order.
// The instance can be used afterwards as though freshly constructed.
func (llrb *LLRB) Reset() {
	llrb.rw.Lock()
	defer llrb.rw.Unlock()
	llrb.assertalive("Reset")

	llrb.freetree(llrb.root)
	llrb.root = nil
	llrb.llrbstats = llrbstats{}
	llrb.h_upsertdepth = lib.NewhistorgramInt64(1, 256, 1)
	infof("%v reset\n", llrb.logprefix)
}

// Destroy release all resources held by the tree. It is an error
// to use the tree after calling Destroy.
func (llrb *LLRB) Destroy() {
	llrb.rw.Lock()
	defer llrb.rw.Unlock()
	if llrb.dead {
		panic("Destroy(): already dead tree")
	}

	llrb.freetree(llrb.root)
	llrb.root, llrb.setts = nil, nil
	llrb.pool.release()
	llrb.dead = true
	infof("%v destroyed\n", llrb.logprefix)
}

//---- tree rewrite primitives.

// rotation driver for 2-3 algorithm, nothing to do on the way down.
func (llrb *LLRB) walkdownrot23(nd *Llrbnode) *Llrbnode {
	return nd
}

// fix-up triple on the way up: normalize right-leaning red, fix
// consecutive left reds, split 4-nodes. The order is load-bearing.
func (llrb *LLRB) walkuprot23(nd *Llrbnode) *Llrbnode {
	if isred(nd.right) && !isred(nd.left) {
		nd = llrb.rotateleft(nd)
	}
	if isred(nd.left) && isred(nd.left.left) {
		nd = llrb.rotateright(nd)
	}
	if isred(nd.left) && isred(nd.right) {
		llrb.flip(nd)
	}
	return nd
}

// rotation driver for 2-3-4 algorithm, split 4-nodes on the way down.
func (llrb *LLRB) walkdownrot234(nd *Llrbnode) *Llrbnode {
	if isred(nd.left) && isred(nd.right) {
		llrb.flip(nd)
	}
	return nd
}

func (llrb *LLRB) walkuprot234(nd *Llrbnode) *Llrbnode {
	if isred(nd.right) && !isred(nd.left) {
		nd = llrb.rotateleft(nd)
	}
	if isred(nd.left) && isred(nd.left.left) {
		nd = llrb.rotateright(nd)
	}
	return nd
}

func (llrb *LLRB) rotateleft(nd *Llrbnode) *Llrbnode {
	y := nd.right
	if y.isblack() {
		panic("rotateleft(): rotating a black link ? call the programmer")
	}
	nd.right = y.left
	y.left = nd
	if nd.isblack() {
		y.setblack()
	} else {
		y.setred()
	}
	nd.setred()
	return y
}

func (llrb *LLRB) rotateright(nd *Llrbnode) *Llrbnode {
	x := nd.left
	if x.isblack() {
		panic("rotateright(): rotating a black link ? call the programmer")
	}
	nd.left = x.right
	x.right = nd
	if nd.isblack() {
		x.setblack()
	} else {
		x.setred()
	}
	nd.setred()
	return x
}

// REQUIRE: Left and Right children must be present
func (llrb *LLRB) flip(nd *Llrbnode) {
	nd.left.togglelink()
	nd.right.togglelink()
	nd.togglelink()
}

// REQUIRE: Left and Right children must be present
func (llrb *LLRB) moveredleft(nd *Llrbnode) *Llrbnode {
	llrb.flip(nd)
	if isred(nd.right.left) {
		nd.right = llrb.rotateright(nd.right)
		nd = llrb.rotateleft(nd)
		llrb.flip(nd)
	}
	return nd
}

// REQUIRE: Left and Right children must be present
func (llrb *LLRB) moveredright(nd *Llrbnode) *Llrbnode {
	llrb.flip(nd)
	if isred(nd.left.left) {
		nd = llrb.rotateright(nd)
		llrb.flip(nd)
	}
	return nd
}

func (llrb *LLRB) fixup(nd *Llrbnode) *Llrbnode {
	if isred(nd.right) {
		nd = llrb.rotateleft(nd)
	}
	if isred(nd.left) && isred(nd.left.left) {
		nd = llrb.rotateright(nd)
	}
	if isred(nd.left) && isred(nd.right) {
		llrb.flip(nd)
	}
	return nd
}

//---- local functions.

func (llrb *LLRB) assertalive(op string) {
	if llrb.dead {
		panic(fmt.Errorf("%v(): using a destroyed tree", op))
	}
}

func (llrb *LLRB) freenode(nd *Llrbnode) {
	if nd != nil {
		llrb.pool.freenode(nd)
		llrb.n_frees++
	}
}

func (llrb *LLRB) freetree(nd *Llrbnode) {
	if nd == nil {
		return
	}
	llrb.freetree(nd.left)
	llrb.freetree(nd.right)
	llrb.freenode(nd)
}

func (llrb *LLRB) delcount(nd *Llrbnode) {
	atomic.AddInt64(&llrb.n_count, -1)
	llrb.n_deletes++
	llrb.keymemory -= keysize
	llrb.valmemory -= int64(len(nd.value))
}

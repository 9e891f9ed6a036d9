package llrb

import "errors"
import "sync/atomic"
import "fmt"
import "math"

import "github.com/bnclabs/llrbtree/lib"

// height of the tree cannot exceed a certain limit. For example if
// the tree holds 1-million entries, a fully balanced tree shall have
// a height of 20 levels. maxheight provide some breathing space on
// top of ideal height.
func maxheight(entries int64) float64 {
	if entries < 5 {
		return (3 * (math.Log2(float64(entries)) + 1)) // 3x breathing space.
	}
	return 2 * math.Log2(float64(entries)) // 2x breathing space
}

// LLRB rule, from sedgewick's paper.
var redafterred = errors.New("consecutive red spotted")

// LLRB rule, red links always lean left.
var rightleaningred = errors.New("right leaning red spotted")

// LLRB rule, from sedgewick's paper.
func unbalancedblacks(lblacks, rblacks int64) error {
	return fmt.Errorf("unbalancedblacks {%v,%v}", lblacks, rblacks)
}

// Validate walk the full tree to confirm left-leaning red-black
// invariants, sort order, height bound and memory accounting.
// Violations are programmer errors and panic.
func (llrb *LLRB) Validate() {
	llrb.rw.RLock()
	defer llrb.rw.RUnlock()

	root := llrb.root
	if isred(root) {
		panic("Validate(): root node is red")
	}

	h := lib.NewhistorgramInt64(1, 256, 1)
	_, km, vm := llrb.validatetree(root, isred(root), 0 /*blacks*/, 1 /*depth*/, h)
	if km != llrb.keymemory {
		fmsg := "validate(): keymemory:%v != actual:%v"
		panic(fmt.Errorf(fmsg, llrb.keymemory, km))
	} else if vm != llrb.valmemory {
		fmsg := "validate(): valmemory:%v != actual:%v"
		panic(fmt.Errorf(fmsg, llrb.valmemory, vm))
	}

	if entries := atomic.LoadInt64(&llrb.n_count); entries > 0 {
		if h.Samples() != entries {
			fmsg := "validate(): h_height.samples:%v != count:%v"
			panic(fmt.Errorf(fmsg, h.Samples(), entries))
		}
		if float64(h.Max()) > maxheight(entries) {
			fmsg := "validate(): max height %v exceeds log2(%v)"
			panic(fmt.Errorf(fmsg, float64(h.Max()), entries))
		}
	}

	llrb.validatestats()
}

func (llrb *LLRB) validatetree(
	nd *Llrbnode, fromred bool, blacks, depth int64,
	h *lib.HistogramInt64) (nblacks, keymem, valmem int64) {

	if nd == nil {
		return blacks, 0, 0
	}
	h.Add(depth)

	if fromred && isred(nd) {
		panic(redafterred)
	}
	if isred(nd.right) {
		// a red right child is allowed only as part of a 4-node,
		// and 4-nodes persist only in 2-3-4 arrangement.
		if llrb.mode234 == false || isred(nd.left) == false {
			panic(rightleaningred)
		}
	}
	if !isred(nd) {
		blacks++
	}

	lblacks, lkm, lvm := llrb.validatetree(
		nd.left, isred(nd), blacks, depth+1, h)
	rblacks, rkm, rvm := llrb.validatetree(
		nd.right, isred(nd), blacks, depth+1, h)

	if lblacks != rblacks {
		panic(unbalancedblacks(lblacks, rblacks))
	}

	if nd.left != nil && nd.left.key >= nd.key {
		fmsg := "validate(): sort order, left node %v is >= node %v"
		panic(fmt.Errorf(fmsg, nd.left.key, nd.key))
	}
	if nd.right != nil && nd.right.key <= nd.key {
		fmsg := "validate(): sort order, right node %v is <= node %v"
		panic(fmt.Errorf(fmsg, nd.right.key, nd.key))
	}

	keymem = lkm + rkm + keysize
	valmem = lvm + rvm + int64(len(nd.value))
	return lblacks, keymem, valmem
}

func (llrb *LLRB) validatestats() {
	// n_count should match (n_inserts - n_deletes)
	n_count := atomic.LoadInt64(&llrb.n_count)
	n_inserts, n_deletes := llrb.n_inserts, llrb.n_deletes
	if n_count != (n_inserts - n_deletes) {
		fmsg := "validatestats(): n_count:%v != (n_inserts:%v - n_deletes:%v)"
		panic(fmt.Errorf(fmsg, n_count, n_inserts, n_deletes))
	}
	// n_nodes should match n_inserts
	n_nodes := llrb.n_nodes
	if n_inserts != n_nodes {
		fmsg := "validatestats(): n_inserts:%v != n_nodes:%v"
		panic(fmt.Errorf(fmsg, n_inserts, n_nodes))
	}
	// every delete releases its node exactly once
	n_frees := llrb.n_frees
	if n_deletes != n_frees {
		fmsg := "validatestats(): n_deletes:%v != n_frees:%v"
		panic(fmt.Errorf(fmsg, n_deletes, n_frees))
	}
	// pool accounting should match the live node count
	if allocated := llrb.pool.allocated; allocated != n_count*nodesize {
		fmsg := "validatestats(): allocated:%v != %v*%v"
		panic(fmt.Errorf(fmsg, allocated, n_count, nodesize))
	}
}

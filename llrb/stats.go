package llrb

import "sync/atomic"

import humanize "github.com/dustin/go-humanize"
import "github.com/bnclabs/llrbtree/lib"

// llrbstats mutation and memory accounting for a single LLRB
// instance, all fields are 64-bit aligned.
type llrbstats struct {
	n_count     int64 // number of entries in the tree
	n_inserts   int64
	n_updates   int64
	n_deletes   int64
	n_nodes     int64 // number of nodes allocated into the tree
	n_frees     int64 // number of nodes released from the tree
	n_lookups   int64
	n_traverses int64
	keymemory   int64 // memory used by all keys
	valmemory   int64 // memory used by all values
}

// Stats return a map of data-structure statistics and memory used.
func (llrb *LLRB) Stats() map[string]interface{} {
	llrb.rw.RLock()
	defer llrb.rw.RUnlock()

	stats := llrb.dostats(make(map[string]interface{}))

	h_height := lib.NewhistorgramInt64(1, 256, 1)
	llrb.heightstats(llrb.root, 1 /*depth*/, h_height)
	stats["h_height"] = h_height.Fullstats()
	stats["n_blacks"] = llrb.countblacks(llrb.root, 0)
	return stats
}

func (llrb *LLRB) dostats(stats map[string]interface{}) map[string]interface{} {
	stats["n_count"] = atomic.LoadInt64(&llrb.n_count)
	stats["n_inserts"] = llrb.n_inserts
	stats["n_updates"] = llrb.n_updates
	stats["n_deletes"] = llrb.n_deletes
	stats["n_nodes"] = llrb.n_nodes
	stats["n_frees"] = llrb.n_frees
	stats["n_lookups"] = atomic.LoadInt64(&llrb.n_lookups)
	stats["n_traverses"] = atomic.LoadInt64(&llrb.n_traverses)
	stats["keymemory"] = llrb.keymemory
	stats["valmemory"] = llrb.valmemory
	stats["node.allocated"] = llrb.pool.allocated
	stats["node.capacity"] = llrb.pool.capacity
	stats["h_upsertdepth"] = llrb.h_upsertdepth.Fullstats()
	return stats
}

func (llrb *LLRB) heightstats(
	nd *Llrbnode, depth int64, h *lib.HistogramInt64) {

	if nd == nil {
		return
	}
	h.Add(depth)
	llrb.heightstats(nd.left, depth+1, h)
	llrb.heightstats(nd.right, depth+1, h)
}

func (llrb *LLRB) countblacks(nd *Llrbnode, count int) int {
	if nd == nil {
		return count
	}
	if isblack(nd) {
		count++
	}
	return llrb.countblacks(nd.left, count) // left path is enough, by balance
}

// Log vital statistics through the llrb logger.
func (llrb *LLRB) Log() {
	llrb.rw.RLock()
	defer llrb.rw.RUnlock()

	lprefix := llrb.logprefix
	fmsg := "%v count %v { inserts %v, updates %v, deletes %v }\n"
	infof(fmsg, lprefix, llrb.n_count, llrb.n_inserts, llrb.n_updates,
		llrb.n_deletes)

	km := humanize.Bytes(uint64(llrb.keymemory))
	vm := humanize.Bytes(uint64(llrb.valmemory))
	al := humanize.Bytes(uint64(llrb.pool.allocated))
	cp := humanize.Bytes(uint64(llrb.pool.capacity))
	fmsg = "%v memory keys %v, values %v, nodes %v of %v\n"
	infof(fmsg, lprefix, km, vm, al, cp)

	infof("%v h_upsertdepth %v\n", lprefix, llrb.h_upsertdepth.Logstring())
}

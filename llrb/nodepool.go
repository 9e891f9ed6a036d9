package llrb

import "github.com/bnclabs/llrbtree/api"

// nodepool recycle Llrbnode allocations through a freelist and
// account node memory against a fixed capacity. Nodes come back to
// the freelist on delete and reset, an allocation beyond capacity
// fails with api.ErrorOutofMemory.
type nodepool struct {
	capacity  int64
	allocated int64
	freelist  []*Llrbnode
}

func newnodepool(capacity int64) *nodepool {
	return &nodepool{
		capacity: capacity,
		freelist: make([]*Llrbnode, 0, 64),
	}
}

func (pool *nodepool) allocnode(key uint32, value []byte) (*Llrbnode, error) {
	if pool.allocated+nodesize > pool.capacity {
		return nil, api.ErrorOutofMemory
	}
	pool.allocated += nodesize

	var nd *Llrbnode
	if ln := len(pool.freelist); ln > 0 {
		nd, pool.freelist = pool.freelist[ln-1], pool.freelist[:ln-1]
	} else {
		nd = &Llrbnode{}
	}
	nd.left, nd.right, nd.hdr = nil, nil, 0
	nd.key, nd.value = key, value
	nd.setred()
	return nd, nil
}

func (pool *nodepool) freenode(nd *Llrbnode) {
	nd.left, nd.right, nd.value = nil, nil, nil
	pool.allocated -= nodesize
	pool.freelist = append(pool.freelist, nd)
}

func (pool *nodepool) release() {
	pool.freelist, pool.allocated = nil, 0
}

package llrb

import "fmt"
import "io"
import "strings"
import "unsafe"

// keysize of a node's key, fixed at 4 bytes for uint32 keys.
const keysize = int64(4)

// nodesize accounted against the pool capacity for every allocation.
const nodesize = int64(unsafe.Sizeof(Llrbnode{}))

const ndBlack uint64 = 0x1

// Llrbnode defines a node in LLRB tree. The color of the link from
// the parent is stored as a bit on the child node, a new node always
// starts red.
type Llrbnode struct {
	left  *Llrbnode
	right *Llrbnode
	hdr   uint64 // flags[4:0]
	key   uint32
	value []byte
}

func (nd *Llrbnode) setblack() *Llrbnode {
	nd.hdr = nd.hdr | ndBlack
	return nd
}

func (nd *Llrbnode) setred() *Llrbnode {
	nd.hdr = nd.hdr & (^ndBlack)
	return nd
}

func (nd *Llrbnode) togglelink() *Llrbnode {
	nd.hdr = nd.hdr ^ ndBlack
	return nd
}

func (nd *Llrbnode) isblack() bool {
	if nd == nil {
		return true
	}
	return (nd.hdr & ndBlack) == ndBlack
}

// isred treats absent children as black, callers can test colors
// without null checks at every site.
func isred(nd *Llrbnode) bool {
	if nd == nil {
		return false
	}
	return nd.isblack() == false
}

func isblack(nd *Llrbnode) bool {
	return isred(nd) == false
}

func (nd *Llrbnode) dotdump(buffer io.Writer) {
	if nd == nil {
		return
	}

	whatcolor := func(childnd *Llrbnode) string {
		if isred(childnd) {
			return "red"
		}
		return "black"
	}

	lines := []string{
		fmt.Sprintf("  %v [label=\"{%v}\"];\n", nd.key, nd.key),
	}
	fmsg := "  %v -> %v [color=%v];\n"
	if nd.left != nil {
		line := fmt.Sprintf(fmsg, nd.key, nd.left.key, whatcolor(nd.left))
		lines = append(lines, line)
	}
	if nd.right != nil {
		line := fmt.Sprintf(fmsg, nd.key, nd.right.key, whatcolor(nd.right))
		lines = append(lines, line)
	}
	buffer.Write([]byte(strings.Join(lines, "")))
	nd.left.dotdump(buffer)
	nd.right.dotdump(buffer)
}

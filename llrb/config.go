package llrb

import s "github.com/bnclabs/gosettings"
import "github.com/cloudfoundry/gosigar"

// Defaultsettings for llrb instance.
//
// "mode234" (bool, default: false)
//      Arrange the tree as a 2-3-4 tree, splitting 4-nodes on the
//      way down during insertion. By default the tree is arranged
//      as a 2-3 tree, splitting 4-nodes on the way up.
//
// "memcapacity" (int64, default: half of free RAM)
//      Memory capacity, in bytes, for tree nodes. Upserting a new
//      key beyond this capacity fails with api.ErrorOutofMemory.
//
func Defaultsettings() s.Settings {
	_, _, free := getsysmem()
	setts := s.Settings{
		"mode234":     false,
		"memcapacity": int64(free / 2),
	}
	return setts
}

func getsysmem() (total, used, free uint64) {
	mem := sigar.Mem{}
	mem.Get()
	return mem.Total, mem.Used, mem.Free
}

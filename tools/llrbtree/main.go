package main

import "flag"
import "fmt"
import "math/rand"
import "os"
import "time"

import s "github.com/bnclabs/gosettings"
import humanize "github.com/dustin/go-humanize"

import "github.com/bnclabs/llrbtree/llrb"

var options struct {
	n       int
	keymax  int
	delat   int
	seed    int64
	mode234 bool
	dotdump bool
}

func argParse() {
	flag.IntVar(&options.n, "n", 10,
		"number of random keys to generate and insert")
	flag.IntVar(&options.keymax, "keymax", 200,
		"generate keys between [1,keymax]")
	flag.IntVar(&options.delat, "delat", 3,
		"offset into the generated array to pick the delete key")
	flag.Int64Var(&options.seed, "seed", time.Now().UnixNano(),
		"seed for the random key generator")
	flag.BoolVar(&options.mode234, "mode234", false,
		"arrange the tree as a 2-3-4 tree")
	flag.BoolVar(&options.dotdump, "dotdump", false,
		"dump the tree as dot script onto stdout")
	flag.Parse()
}

func main() {
	argParse()
	llrb.LogComponents("all")

	keys := loadkeys()
	fmt.Printf("values : %v\n", keys)

	setts := s.Settings{"mode234": options.mode234}
	index := llrb.NewLLRB("demo", setts)
	defer index.Destroy()

	loadindex(index, keys)

	delkey := keys[options.delat%len(keys)]
	fmt.Printf("deleting key %v ...\n", delkey)
	if _, ok := index.Delete(delkey); ok == false {
		fmt.Printf("key %v missing in the index\n", delkey)
	}

	fmt.Println("traversal for proof of deletion ...")
	index.Traverse(func(key uint32, _ []byte) bool {
		fmt.Printf("%v\t", key)
		return true
	})
	fmt.Println()

	index.Validate()
	index.Log()

	stats := index.Stats()
	fmt.Printf("entries   : %v\n", index.Count())
	fmt.Printf("keymemory : %v\n",
		humanize.Bytes(uint64(stats["keymemory"].(int64))))
	fmt.Printf("height    : %v\n",
		stats["h_height"].(map[string]interface{})["max"])

	if options.dotdump {
		index.Dotdump(os.Stdout)
	}
}

func loadkeys() []uint32 {
	rnd := rand.New(rand.NewSource(options.seed))
	keys := make([]uint32, options.n)
	for i := range keys {
		keys[i] = uint32(rnd.Intn(options.keymax)) + 1
	}
	return keys
}

func loadindex(index *llrb.LLRB, keys []uint32) {
	for _, key := range keys {
		value := []byte(fmt.Sprintf("value-%d", key))
		if _, _, err := index.Upsert(key, value); err != nil {
			fmt.Printf("Upsert(%v): %v\n", key, err)
			os.Exit(1)
		}
	}
	fmt.Printf("index loaded with %v keys\n", index.Count())
}

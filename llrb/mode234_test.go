package llrb

import "math/rand"
import "testing"

import s "github.com/bnclabs/gosettings"
import "github.com/bnclabs/llrbtree/dict"

func TestLLRB234Load(t *testing.T) {
	setts := s.Settings{"mode234": true}
	llrb := NewLLRB("load234", setts)
	defer llrb.Destroy()

	if llrb.mode() != "2-3-4" {
		t.Errorf("unexpected %v", llrb.mode())
	}

	d := dict.NewDict("oracle")
	defer d.Destroy()

	rnd := rand.New(rand.NewSource(99))
	for i := 0; i < 2000; i++ {
		key := rnd.Uint32()
		value := []byte{byte(key)}
		llrb.Upsert(key, value)
		d.Upsert(key, value)
	}
	llrb.Validate()
	verifyagainst(t, llrb, d)
}

func TestLLRB234Delete(t *testing.T) {
	setts := s.Settings{"mode234": true}
	llrb := NewLLRB("delete234", setts)
	defer llrb.Destroy()

	d := dict.NewDict("oracle")
	defer d.Destroy()

	rnd := rand.New(rand.NewSource(100))
	keys := make([]uint32, 0, 500)
	for len(keys) < 500 {
		key := rnd.Uint32()
		if d.Has(key) {
			continue
		}
		llrb.Upsert(key, nil)
		d.Upsert(key, nil)
		keys = append(keys, key)
	}

	for _, i := range rnd.Perm(len(keys)) {
		key := keys[i]
		if _, ok := llrb.Delete(key); ok == false {
			t.Fatalf("Delete(%v): missing", key)
		}
		d.Delete(key)
		llrb.Validate()
	}
	if llrb.Count() != 0 {
		t.Errorf("unexpected %v", llrb.Count())
	}
}

func TestLLRB234DeleteMiss(t *testing.T) {
	// a delete descent into a standing 4-node shall split it the
	// way insertion does, even when the key is absent.
	setts := s.Settings{"mode234": true}
	llrb := NewLLRB("delmiss234", setts)
	defer llrb.Destroy()

	keys := []uint32{1244, 875, 1260, 1489, 1811}
	for _, key := range keys {
		llrb.Upsert(key, nil)
	}
	llrb.Validate()

	if _, ok := llrb.Delete(1631); ok {
		t.Errorf("unexpected delete")
	}
	llrb.Validate()

	if llrb.Count() != int64(len(keys)) {
		t.Errorf("unexpected %v", llrb.Count())
	}
	for _, key := range keys {
		if llrb.Has(key) == false {
			t.Errorf("missing key %v", key)
		}
	}
}

func TestLLRB234DeleteMinMax(t *testing.T) {
	setts := s.Settings{"mode234": true}
	llrb := NewLLRB("delminmax234", setts)
	defer llrb.Destroy()

	rnd := rand.New(rand.NewSource(101))
	for i := 0; i < 256; i++ {
		llrb.Upsert(rnd.Uint32(), nil)
	}
	llrb.Validate()

	for llrb.Count() > 0 {
		min, _, _ := llrb.Min()
		if key, _, ok := llrb.DeleteMin(); !ok || key != min {
			t.Fatalf("DeleteMin: expected %v, got %v,%v", min, key, ok)
		}
		llrb.Validate()
		if llrb.Count() == 0 {
			break
		}
		max, _, _ := llrb.Max()
		if key, _, ok := llrb.DeleteMax(); !ok || key != max {
			t.Fatalf("DeleteMax: expected %v, got %v,%v", max, key, ok)
		}
		llrb.Validate()
	}
}

func TestLLRBMixedChurn(t *testing.T) {
	// interleaved upserts and deletes, hits and misses alike, with
	// a full validation after every mutation.
	for _, mode234 := range []bool{false, true} {
		name := map[bool]string{false: "mode23", true: "mode234"}[mode234]
		t.Run(name, func(t *testing.T) {
			setts := s.Settings{"mode234": mode234}
			llrb := NewLLRB("churn-"+name, setts)
			defer llrb.Destroy()
			d := dict.NewDict("oracle")
			defer d.Destroy()

			rnd := rand.New(rand.NewSource(1631))
			for i := 0; i < 5000; i++ {
				key := uint32(rnd.Intn(512)) // keep plenty of misses
				if rnd.Intn(2) == 0 {
					value := []byte{byte(i), byte(i >> 8)}
					lv, lok, err := llrb.Upsert(key, value)
					if err != nil {
						t.Fatalf("Upsert(%v): %v", key, err)
					}
					dv, dok, _ := d.Upsert(key, value)
					if lok != dok || string(lv) != string(dv) {
						t.Fatalf("Upsert(%v): expected %q,%v got %q,%v",
							key, dv, dok, lv, lok)
					}
				} else {
					lv, lok := llrb.Delete(key)
					dv, dok := d.Delete(key)
					if lok != dok || string(lv) != string(dv) {
						t.Fatalf("Delete(%v): expected %q,%v got %q,%v",
							key, dv, dok, lv, lok)
					}
				}
				llrb.Validate()
			}
			verifyagainst(t, llrb, d)
		})
	}
}

func TestLLRB234Upsert(t *testing.T) {
	setts := s.Settings{"mode234": true}
	llrb := NewLLRB("upsert234", setts)
	defer llrb.Destroy()

	for _, key := range []uint32{10, 20, 30, 40, 50} {
		llrb.Upsert(key, []byte("v1"))
	}
	if old, replaced, err := llrb.Upsert(30, []byte("v2")); err != nil {
		t.Fatalf("Upsert(30): %v", err)
	} else if replaced == false || string(old) != "v1" {
		t.Errorf("unexpected %q,%v", old, replaced)
	}
	if value, ok := llrb.Get(30); !ok || string(value) != "v2" {
		t.Errorf("unexpected %q,%v", value, ok)
	}
	llrb.Validate()
}

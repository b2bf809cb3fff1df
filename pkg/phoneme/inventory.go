package phoneme

import "sort"

// Inventory is an immutable mapping from ASCII phoneme key to [Phoneme],
// constructed once at engine initialization and shared read-only by every
// synthesizer instance. There are no exported mutation methods: every
// [Inventory] returned by this package is safe to share across goroutines.
type Inventory struct {
	name      string
	phonemes  map[string]Phoneme
	ipaToKey  map[string]string
}

func newInventory(name string, entries []Phoneme) *Inventory {
	inv := &Inventory{
		name:     name,
		phonemes: make(map[string]Phoneme, len(entries)),
		ipaToKey: make(map[string]string, len(entries)),
	}
	for _, p := range entries {
		inv.phonemes[p.ASCII] = p
		inv.ipaToKey[p.IPA] = p.ASCII
	}
	return inv
}

// Name identifies the inventory, e.g. "english" or "spanish".
func (inv *Inventory) Name() string {
	return inv.name
}

// Get looks up a phoneme by its ASCII key. The second return value is false
// when the key is not present in the inventory.
func (inv *Inventory) Get(key string) (Phoneme, bool) {
	p, ok := inv.phonemes[key]
	return p, ok
}

// GetByIPA looks up a phoneme by its IPA spelling.
func (inv *Inventory) GetByIPA(ipa string) (Phoneme, bool) {
	key, ok := inv.ipaToKey[ipa]
	if !ok {
		return Phoneme{}, false
	}
	return inv.phonemes[key], true
}

// Keys returns every ASCII key in the inventory, sorted for determinism.
func (inv *Inventory) Keys() []string {
	keys := make([]string, 0, len(inv.phonemes))
	for k := range inv.phonemes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of phonemes in the inventory.
func (inv *Inventory) Len() int {
	return len(inv.phonemes)
}

package value

// InternTable is an open-addressed, linear-probed hash set of *ObjString,
// keyed by string content. It is deliberately not a Go map: the spec calls
// for the classic clox string table, and a hand-rolled open-addressed table
// is the direct idiomatic-Go reading of that design (see DESIGN.md).
type InternTable struct {
	entries []*ObjString
	count   int
}

const internInitialCapacity = 8
const internMaxLoad = 0.75

// NewInternTable returns an empty intern table.
func NewInternTable() *InternTable {
	return &InternTable{entries: make([]*ObjString, internInitialCapacity)}
}

// HashString hashes s with the same algorithm the intern table uses
// internally, exported so callers building an ObjString by hand (e.g. the
// VM interning a freshly concatenated string) can populate its Hash field.
func HashString(s string) uint32 { return fnv1a32(s) }

// fnv1a32 hashes s with the 32-bit FNV-1a algorithm, exactly the hash the
// spec names for the intern table.
func fnv1a32(s string) uint32 {
	const offsetBasis uint32 = 2166136261
	const prime uint32 = 16777619
	h := offsetBasis
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= prime
	}
	return h
}

// findEntry returns the slot s belongs in within table, per linear probing
// starting at hash % len(table). A nil slot means the key isn't present.
func findEntry(table []*ObjString, hash uint32, chars string) int {
	mask := uint32(len(table) - 1)
	index := hash & mask
	for {
		entry := table[index]
		if entry == nil || (entry.Hash == hash && entry.Chars == chars) {
			return int(index)
		}
		index = (index + 1) & mask
	}
}

func (t *InternTable) grow() {
	newCap := len(t.entries) * 2
	newEntries := make([]*ObjString, newCap)
	for _, e := range t.entries {
		if e == nil {
			continue
		}
		idx := findEntry(newEntries, e.Hash, e.Chars)
		newEntries[idx] = e
	}
	t.entries = newEntries
}

// InternCopy returns the canonical *ObjString for chars, allocating and
// registering a new one if this exact content hasn't been interned yet.
func (t *InternTable) InternCopy(chars string) *ObjString {
	hash := fnv1a32(chars)
	if existing := t.find(hash, chars); existing != nil {
		return existing
	}
	return t.register(NewObjString(chars, hash))
}

// InternTake registers an already-allocated ObjString, returning the
// canonical instance — either s itself (now owned by the table) or a
// pre-existing equal string (in which case s is discarded).
func (t *InternTable) InternTake(s *ObjString) *ObjString {
	if existing := t.find(s.Hash, s.Chars); existing != nil {
		return existing
	}
	return t.register(s)
}

func (t *InternTable) find(hash uint32, chars string) *ObjString {
	if len(t.entries) == 0 {
		return nil
	}
	idx := findEntry(t.entries, hash, chars)
	return t.entries[idx]
}

func (t *InternTable) register(s *ObjString) *ObjString {
	if float64(t.count+1) > float64(len(t.entries))*internMaxLoad {
		t.grow()
	}
	idx := findEntry(t.entries, s.Hash, s.Chars)
	t.entries[idx] = s
	t.count++
	return s
}

// Count reports how many distinct strings are currently interned.
func (t *InternTable) Count() int { return t.count }

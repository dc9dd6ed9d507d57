package match

import (
	"reflect"
	"sync"
)

// Member is one resolvable field of a struct type.
type Member struct {
	// Name is the Go field name as declared.
	Name string

	// Key is Normalize(Name).
	Key string

	index []int
}

// Index maps normalized keys to the members of one struct type.
// An Index is immutable after construction and safe for concurrent use.
type Index struct {
	members []Member
	byKey   map[string]int
}

type indexEntry struct {
	once sync.Once
	idx  *Index
}

// registry caches one *indexEntry per reflect.Type.
var registry sync.Map

// IndexFor returns the cached index for t, building it on first use.
// Pointer types are indexed by their element type. Non-struct types get an
// empty index.
//
// Concurrent first calls for the same type build the index exactly once.
func IndexFor(t reflect.Type) *Index {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return &Index{byKey: map[string]int{}}
	}

	e, _ := registry.LoadOrStore(t, &indexEntry{})
	entry := e.(*indexEntry)
	entry.once.Do(func() {
		entry.idx = buildIndex(t)
	})
	return entry.idx
}

func buildIndex(t reflect.Type) *Index {
	idx := &Index{byKey: map[string]int{}}
	if t.Kind() != reflect.Struct {
		return idx
	}

	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() {
			continue
		}
		key := Normalize(f.Name)
		if key == "" {
			continue
		}
		idx.members = append(idx.members, Member{Name: f.Name, Key: key, index: f.Index})
		if _, taken := idx.byKey[key]; !taken {
			idx.byKey[key] = len(idx.members) - 1
		}
	}
	return idx
}

// Find returns the member a header resolves to.
func (idx *Index) Find(header string) (Member, bool) {
	i, ok := idx.byKey[Normalize(header)]
	if !ok {
		return Member{}, false
	}
	return idx.members[i], true
}

// Unmatched returns the headers that resolve to no member, in input order.
func (idx *Index) Unmatched(headers []string) []string {
	var out []string
	for _, h := range headers {
		if _, ok := idx.Find(h); !ok {
			out = append(out, h)
		}
	}
	return out
}

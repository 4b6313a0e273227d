// internal/festival/registry.go
//
// The registry is built once at startup and handed to whoever needs it. It
// is never mutated afterwards; every accessor returns copies.

package festival

import (
	"fmt"
	"sort"

	"github.com/kingrea/patro/internal/bs"
)

// Group is one registry entry: every festival on a single BS month/day.
type Group struct {
	Key     Key      `json:"key"`
	Records []Record `json:"festivals"`
}

// Registry maps festival keys to their observances.
type Registry struct {
	entries map[Key][]Record
	keys    []Key
}

// New validates the groups and builds a registry. Keys may use any known
// month spelling; groups that normalise to the same key are merged in the
// order given.
func New(groups ...Group) (*Registry, error) {
	reg := &Registry{entries: make(map[Key][]Record)}
	ids := make(map[string]Key)
	for _, group := range groups {
		key, err := NormalizeKey(string(group.Key))
		if err != nil {
			return nil, err
		}
		if len(group.Records) == 0 {
			return nil, fmt.Errorf("festival: %s has no records", key)
		}
		for i, rec := range group.Records {
			if err := rec.validate(); err != nil {
				return nil, fmt.Errorf("festival: %s[%d]: %w", key, i, err)
			}
			if prev, ok := ids[rec.ID]; ok {
				return nil, fmt.Errorf("festival: duplicate id %q under %s and %s", rec.ID, prev, key)
			}
			ids[rec.ID] = key
		}
		if _, ok := reg.entries[key]; !ok {
			reg.keys = append(reg.keys, key)
		}
		reg.entries[key] = append(reg.entries[key], group.Records...)
	}
	sort.SliceStable(reg.keys, func(i, j int) bool {
		mi, di, _ := ParseKey(string(reg.keys[i]))
		mj, dj, _ := ParseKey(string(reg.keys[j]))
		if mi != mj {
			return mi < mj
		}
		return di < dj
	})
	return reg, nil
}

// Lookup returns the festivals on a BS date in registry order, or nil.
// A miss is the common case and is not an error.
func (r *Registry) Lookup(d bs.BSDate) []Record {
	return r.Get(KeyOf(d))
}

// Get returns the festivals stored under key, or nil.
func (r *Registry) Get(key Key) []Record {
	if r == nil {
		return nil
	}
	records := r.entries[key]
	if len(records) == 0 {
		return nil
	}
	out := make([]Record, len(records))
	copy(out, records)
	return out
}

// Keys lists every key in calendar order.
func (r *Registry) Keys() []Key {
	if r == nil {
		return nil
	}
	out := make([]Key, len(r.keys))
	copy(out, r.keys)
	return out
}

// Groups lists every entry in calendar order.
func (r *Registry) Groups() []Group {
	if r == nil {
		return nil
	}
	out := make([]Group, 0, len(r.keys))
	for _, key := range r.keys {
		out = append(out, Group{Key: key, Records: r.Get(key)})
	}
	return out
}

// Len is the number of keys.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

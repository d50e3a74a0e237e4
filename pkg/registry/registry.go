// Package registry loads and indexes the 592-Tribe registry: the ground
// truth consulted by the matcher, the crosswalk, and every downstream
// component. Grounded on the teacher's pkg/library (a load-once, read-many,
// size-guarded corpus index).
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/coolbeans/regula/pkg/errtax"
	"github.com/coolbeans/regula/pkg/types"
)

// MaxRegistryBytes is the size guard applied to the registry JSON artifact
// (spec §4.1, §5): files larger than this are rejected outright rather than
// partially parsed.
const MaxRegistryBytes = 10 * 1024 * 1024

// Registry is the immutable, indexed Tribal registry.
type Registry struct {
	byID    map[string]*types.Tribe
	byState map[string][]*types.Tribe
	ordered []*types.Tribe // lexicographic by tribe_id, for deterministic iteration
}

// Load reads, size-guards, validates, and indexes a registry JSON artifact.
// Returns a data-integrity error (spec §4.1) on any schema violation,
// missing required field, invalid state code, or id collision.
func Load(path string) (*Registry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errtax.IO(path, fmt.Errorf("stat registry file: %w", err))
	}
	if info.Size() > MaxRegistryBytes {
		return nil, errtax.DataIntegrity(path, fmt.Errorf(
			"registry file is %d bytes, exceeds %d byte guard", info.Size(), MaxRegistryBytes))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errtax.IO(path, fmt.Errorf("read registry file: %w", err))
	}

	var file types.TribeRegistryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errtax.DataIntegrity(path, fmt.Errorf("parse registry JSON: %w", err))
	}

	return build(file.Tribes)
}

// build indexes a slice of Tribes, validating every record.
func build(tribes []*types.Tribe) (*Registry, error) {
	r := &Registry{
		byID:    make(map[string]*types.Tribe, len(tribes)),
		byState: make(map[string][]*types.Tribe),
	}

	for _, t := range tribes {
		if err := types.ValidateTribe(t); err != nil {
			return nil, errtax.DataIntegrity(t.ID, err)
		}
		if _, exists := r.byID[t.ID]; exists {
			return nil, errtax.DataIntegrity(t.ID, fmt.Errorf("duplicate tribe_id"))
		}
		r.byID[t.ID] = t
		for _, s := range t.States {
			r.byState[s] = append(r.byState[s], t)
		}
	}

	r.ordered = make([]*types.Tribe, 0, len(tribes))
	for _, t := range tribes {
		r.ordered = append(r.ordered, t)
	}
	sort.Slice(r.ordered, func(i, j int) bool {
		return r.ordered[i].ID < r.ordered[j].ID
	})

	return r, nil
}

// ByID returns the Tribe with the given id, and whether it was found.
// O(1).
func (r *Registry) ByID(id string) (*types.Tribe, bool) {
	t, ok := r.byID[id]
	return t, ok
}

// ByState returns every Tribe whose state set contains the given code.
func (r *Registry) ByState(state string) []*types.Tribe {
	return r.byState[state]
}

// All returns every Tribe in lexicographic tribe_id order, the stable
// iteration order required for deterministic runs (spec §5, §9).
func (r *Registry) All() []*types.Tribe {
	out := make([]*types.Tribe, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Len returns the number of Tribes in the registry.
func (r *Registry) Len() int {
	return len(r.ordered)
}

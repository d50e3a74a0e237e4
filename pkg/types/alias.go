package types

// AliasMap is a curated mapping from a normalized recipient string
// (lowercased, whitespace-collapsed, trailing punctuation stripped) to a
// known tribe id. Keys are unique; values need not be (many aliases may
// point at the same Tribe).
type AliasMap struct {
	Entries  map[string]string `json:"aliases"`
	Metadata RegistryMetadata  `json:"metadata"`

	// Housing is a filtered sub-map restricted to housing-authority
	// recipient aliases (entities like "XYZ Housing Authority" that file
	// awards under a name distinct from the Tribe's own).
	Housing map[string]string `json:"-"`
}

// AliasMapFile is the on-disk JSON shape: `{metadata, aliases: {...}}`.
type AliasMapFile struct {
	Metadata RegistryMetadata  `json:"metadata"`
	Aliases  map[string]string `json:"aliases"`
}

// Lookup returns the tribe id for a normalized alias, and whether it was
// found.
func (m *AliasMap) Lookup(normalized string) (string, bool) {
	if m == nil || m.Entries == nil {
		return "", false
	}
	id, ok := m.Entries[normalized]
	return id, ok
}

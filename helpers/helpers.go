// Package helpers holds the types referenced by generated pubif manifests.
package helpers

// Member is one member of a gated record.
type Member struct {
	Name string
	// Visible is true when the member is declared visible, so it stays
	// visible whether or not the condition holds.
	Visible bool
}

// Record is a declaration expanded by pubif.
type Record struct {
	Name      string
	File      string
	Condition string
	Members   []Member
}

// Hidden returns the names of the members that are only visible when the
// record's condition holds.
func (r Record) Hidden() []string {
	hidden := make([]string, 0, len(r.Members))
	for _, m := range r.Members {
		if !m.Visible {
			hidden = append(hidden, m.Name)
		}
	}
	return hidden
}

// Find returns the first record with the given name.
func Find(records []Record, name string) (Record, bool) {
	for _, r := range records {
		if r.Name == name {
			return r, true
		}
	}
	return Record{}, false
}

// ByCondition groups record names by the condition that gates them.
func ByCondition(records []Record) map[string][]string {
	grouped := make(map[string][]string)
	for _, r := range records {
		grouped[r.Condition] = append(grouped[r.Condition], r.Name)
	}
	return grouped
}

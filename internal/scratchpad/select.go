// Package scratchpad turns the manager's tree into the ordered list of
// scratchpad windows offered to the user.
package scratchpad

import (
	"errors"
	"fmt"
	"sort"

	"i3-scratchpad/internal/tree"
)

const (
	// Marker is the name of the hidden workspace holding scratchpad windows.
	Marker = "__i3_scratch"
	// Placeholder labels windows without a title.
	Placeholder = "<No title>"
	// WindowKind is the node type of an actual window container.
	WindowKind = "con"
)

var (
	// ErrStructural marks a tree that breaks an assumption about the
	// manager's layout.
	ErrStructural = errors.New("unexpected tree structure")
	// ErrNotFound is returned when the tree has no scratchpad workspace.
	ErrNotFound = fmt.Errorf("%w: scratchpad workspace %q not found", ErrStructural, Marker)
)

// MissingIDError reports a window container without a window identifier.
type MissingIDError struct {
	Label string
}

func (e *MissingIDError) Error() string {
	return fmt.Sprintf("%v: window %q has no identifier", ErrStructural, e.Label)
}

func (e *MissingIDError) Unwrap() error {
	return ErrStructural
}

// Entry is one selectable scratchpad window.
type Entry struct {
	ID    uint64
	Label string
}

// Select finds the scratchpad workspace under root and returns its windows
// ordered by title, untitled first, each labelled "<n>:<title>".
func Select(root *tree.Node) ([]Entry, error) {
	if root == nil {
		return nil, ErrNotFound
	}
	scratch, ok := root.FindByName(Marker)
	if !ok {
		return nil, ErrNotFound
	}
	return FromLeaves(scratch.Leaves())
}

// FromLeaves sorts, filters and labels leaves. Leaves are sorted before
// filtering so that numbering depends only on the surviving windows.
func FromLeaves(leaves []tree.Leaf) ([]Entry, error) {
	sorted := make([]tree.Leaf, len(leaves))
	copy(sorted, leaves)
	sort.SliceStable(sorted, func(i, j int) bool {
		return nameLess(sorted[i].Name, sorted[j].Name)
	})

	entries := make([]Entry, 0, len(sorted))
	for _, leaf := range sorted {
		if leaf.Kind != WindowKind {
			continue
		}
		label := fmt.Sprintf("%d:%s", len(entries)+1, title(leaf))
		if leaf.ID == nil {
			return nil, &MissingIDError{Label: label}
		}
		entries = append(entries, Entry{ID: *leaf.ID, Label: label})
	}
	return entries, nil
}

// nameLess orders absent names before any present name.
func nameLess(a, b *string) bool {
	switch {
	case a == nil:
		return b != nil
	case b == nil:
		return false
	default:
		return *a < *b
	}
}

func title(leaf tree.Leaf) string {
	if leaf.Name == nil {
		return Placeholder
	}
	return *leaf.Name
}

// Labels returns the labels of entries in order.
func Labels(entries []Entry) []string {
	labels := make([]string, len(entries))
	for i, e := range entries {
		labels[i] = e.Label
	}
	return labels
}

// Lookup returns the identifier paired with label.
func Lookup(entries []Entry, label string) (uint64, bool) {
	for _, e := range entries {
		if e.Label == label {
			return e.ID, true
		}
	}
	return 0, false
}

// Package permission resolves a user's effective access over the service
// taxonomy from job defaults and user overrides. Every caller that needs an
// allow/deny answer goes through Resolve.
package permission

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"hejazi/internal/domain"
)

// Level identifies the depth of a taxonomy node.
type Level = domain.TaxonomyLevel

const (
	LevelService       = domain.LevelService
	LevelSubService    = domain.LevelSubService
	LevelSubSubService = domain.LevelSubSubService
)

// ParseLevel validates a level string.
func ParseLevel(s string) (Level, error) {
	if l := Level(s); l.Valid() {
		return l, nil
	}
	return "", domain.ErrInvalidLevel
}

// Key addresses one node of the taxonomy.
type Key struct {
	Level Level     `json:"level"`
	ID    uuid.UUID `json:"resource_id"`
}

func (k Key) String() string {
	return string(k.Level) + ":" + k.ID.String()
}

// ParseKey parses the "<level>:<uuid>" form produced by Key.String.
func ParseKey(s string) (Key, error) {
	level, id, ok := strings.Cut(s, ":")
	if !ok {
		return Key{}, fmt.Errorf("parsing key %q: %w", s, domain.ErrInvalidLevel)
	}
	return NewKey(level, id)
}

// NewKey builds a key from its string parts.
func NewKey(level, id string) (Key, error) {
	l, err := ParseLevel(level)
	if err != nil {
		return Key{}, err
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return Key{}, fmt.Errorf("parsing resource id %q: %w", id, err)
	}
	return Key{Level: l, ID: uid}, nil
}

// Node is one taxonomy entry.
type Node struct {
	Key       Key
	Parent    *Key
	Code      string
	NameAR    string
	NameEN    string
	SortOrder int
}

// Tree is an immutable view of a tenant's active taxonomy.
type Tree struct {
	nodes    map[Key]Node
	children map[Key][]Key
	roots    []Key
	order    []Key // pre-order: every parent precedes its descendants
	byCode   map[string]Key
}

// NewTree builds a tree from the taxonomy tables. Inactive nodes, and nodes
// whose parent is inactive or missing, are left out.
func NewTree(tax *domain.Taxonomy) *Tree {
	t := &Tree{
		nodes:    make(map[Key]Node),
		children: make(map[Key][]Key),
		byCode:   make(map[string]Key),
	}
	if tax == nil {
		return t
	}

	for i := range tax.Services {
		t.add(&tax.Services[i], LevelService)
	}
	for i := range tax.SubServices {
		t.add(&tax.SubServices[i], LevelSubService)
	}
	for i := range tax.SubSubServices {
		t.add(&tax.SubSubServices[i], LevelSubSubService)
	}

	t.sortKeys(t.roots)
	for _, kids := range t.children {
		t.sortKeys(kids)
	}
	for _, r := range t.roots {
		t.walk(r)
	}
	for k, n := range t.nodes {
		t.byCode[codeKey(n.Code)] = k
	}
	return t
}

// add inserts n if it is active and its parent is already in the tree.
// Levels must be added top-down.
func (t *Tree) add(n *domain.TaxonomyNode, level Level) {
	if !n.IsActive {
		return
	}
	k := Key{Level: level, ID: n.ID}
	node := Node{Key: k, Code: n.Code, NameAR: n.NameAR, NameEN: n.NameEN, SortOrder: n.SortOrder}
	if level == LevelService {
		t.nodes[k] = node
		t.roots = append(t.roots, k)
		return
	}
	if n.ParentID == nil {
		return
	}
	parent := Key{Level: level.ParentLevel(), ID: *n.ParentID}
	if _, ok := t.nodes[parent]; !ok {
		return
	}
	node.Parent = &parent
	t.nodes[k] = node
	t.children[parent] = append(t.children[parent], k)
}

func (t *Tree) sortKeys(keys []Key) {
	sort.SliceStable(keys, func(i, j int) bool {
		a, b := t.nodes[keys[i]], t.nodes[keys[j]]
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		return a.Code < b.Code
	})
}

func (t *Tree) walk(k Key) {
	t.order = append(t.order, k)
	for _, c := range t.children[k] {
		t.walk(c)
	}
}

// codeKey is the form codes are indexed under. Codes are unique per tenant
// regardless of case.
func codeKey(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.order) }

// Has reports whether k is part of the tree.
func (t *Tree) Has(k Key) bool {
	_, ok := t.nodes[k]
	return ok
}

// Node returns the node for k.
func (t *Tree) Node(k Key) (Node, bool) {
	n, ok := t.nodes[k]
	return n, ok
}

// Lookup finds a node key by its code, ignoring case.
func (t *Tree) Lookup(code string) (Key, bool) {
	k, ok := t.byCode[codeKey(code)]
	return k, ok
}

// Roots returns the service-level keys in display order.
func (t *Tree) Roots() []Key { return t.roots }

// Children returns the direct children of k in display order.
func (t *Tree) Children(k Key) []Key { return t.children[k] }

// Keys returns every key in pre-order.
func (t *Tree) Keys() []Key { return t.order }

// Validate returns ErrUnknownResource for the first key not in the tree.
func (t *Tree) Validate(keys ...Key) error {
	for _, k := range keys {
		if !t.Has(k) {
			return fmt.Errorf("%s: %w", k, domain.ErrUnknownResource)
		}
	}
	return nil
}

package permission

// Overrides is a sparse map of explicit allow/deny rows for one subject.
type Overrides map[Key]bool

// Keys returns the override keys.
func (o Overrides) Keys() []Key {
	keys := make([]Key, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	return keys
}

// Source records which rule produced a grant.
type Source string

const (
	SourceUser    Source = "user"
	SourceJob     Source = "job"
	SourceImplied Source = "implied"
	SourceDefault Source = "default"
	SourceRole    Source = "role"
)

// Grant is the resolved outcome for one node.
type Grant struct {
	Key
	Code    string `json:"code"`
	Allowed bool   `json:"allowed"`
	Source  Source `json:"source"`
}

// Set is the resolved permission map of one user.
type Set struct {
	grants map[Key]Grant
	order  []Key
	byCode map[string]Key
}

func newSet(n int) Set {
	return Set{
		grants: make(map[Key]Grant, n),
		order:  make([]Key, 0, n),
		byCode: make(map[string]Key, n),
	}
}

func (s *Set) put(g Grant) {
	if _, ok := s.grants[g.Key]; !ok {
		s.order = append(s.order, g.Key)
	}
	s.grants[g.Key] = g
	s.byCode[codeKey(g.Code)] = g.Key
}

// Resolve merges job defaults and user overrides over the tree.
//
// A user row wins over a job row on the same key, and a missing key is
// denied. An allowed node switches on all of its ancestors; such ancestors
// report SourceImplied even if they carried an explicit deny. Rows for keys
// outside the tree are ignored.
func Resolve(tree *Tree, job, user Overrides) Set {
	set := newSet(tree.Len())

	for _, k := range tree.order {
		g := Grant{Key: k, Code: tree.nodes[k].Code, Source: SourceDefault}
		if v, ok := user[k]; ok {
			g.Allowed, g.Source = v, SourceUser
		} else if v, ok := job[k]; ok {
			g.Allowed, g.Source = v, SourceJob
		}
		set.put(g)
	}

	// Reverse pre-order visits every descendant before its ancestors, so a
	// single pass carries a leaf grant all the way to the root.
	for i := len(tree.order) - 1; i >= 0; i-- {
		k := tree.order[i]
		if !set.grants[k].Allowed {
			continue
		}
		parent := tree.nodes[k].Parent
		if parent == nil {
			continue
		}
		if p := set.grants[*parent]; !p.Allowed {
			p.Allowed, p.Source = true, SourceImplied
			set.grants[*parent] = p
		}
	}
	return set
}

// Full grants every node of the tree. Used for tenant admins.
func Full(tree *Tree) Set {
	set := newSet(tree.Len())
	for _, k := range tree.order {
		set.put(Grant{Key: k, Code: tree.nodes[k].Code, Allowed: true, Source: SourceRole})
	}
	return set
}

// FromGrants rebuilds a set from the output of Grants, e.g. after a cache
// round trip.
func FromGrants(grants []Grant) Set {
	set := newSet(len(grants))
	for _, g := range grants {
		set.put(g)
	}
	return set
}

// Len returns the number of grants.
func (s Set) Len() int { return len(s.order) }

// Allowed reports whether k is granted. Unknown keys are denied.
func (s Set) Allowed(k Key) bool {
	return s.grants[k].Allowed
}

// AllowedCode reports whether the node with the given code is granted.
// Codes match regardless of case.
func (s Set) AllowedCode(code string) bool {
	k, ok := s.byCode[codeKey(code)]
	if !ok {
		return false
	}
	return s.Allowed(k)
}

// Lookup returns the key of the node with the given code, ignoring case.
func (s Set) Lookup(code string) (Key, bool) {
	k, ok := s.byCode[codeKey(code)]
	return k, ok
}

// Get returns the grant for k.
func (s Set) Get(k Key) (Grant, bool) {
	g, ok := s.grants[k]
	return g, ok
}

// Grants returns every grant in tree order.
func (s Set) Grants() []Grant {
	out := make([]Grant, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.grants[k])
	}
	return out
}

// AllowedKeys returns the granted keys in tree order.
func (s Set) AllowedKeys() []Key {
	var out []Key
	for _, k := range s.order {
		if s.grants[k].Allowed {
			out = append(out, k)
		}
	}
	return out
}

// AllowedCodes returns the codes of every granted node in tree order.
func (s Set) AllowedCodes() []string {
	keys := s.AllowedKeys()
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.grants[k].Code)
	}
	return out
}

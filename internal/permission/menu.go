package permission

// MenuItem is one entry of the navigation menu rendered for a user.
type MenuItem struct {
	Key
	Code     string     `json:"code"`
	NameAR   string     `json:"name_ar"`
	NameEN   string     `json:"name_en"`
	Children []MenuItem `json:"children,omitempty"`
}

// Menu returns the allowed part of the tree, nested. A denied node hides its
// whole subtree.
func Menu(tree *Tree, set Set) []MenuItem {
	return menuLevel(tree, set, tree.Roots())
}

func menuLevel(tree *Tree, set Set, keys []Key) []MenuItem {
	items := make([]MenuItem, 0, len(keys))
	for _, k := range keys {
		if !set.Allowed(k) {
			continue
		}
		n := tree.nodes[k]
		items = append(items, MenuItem{
			Key:      k,
			Code:     n.Code,
			NameAR:   n.NameAR,
			NameEN:   n.NameEN,
			Children: menuLevel(tree, set, tree.Children(k)),
		})
	}
	return items
}

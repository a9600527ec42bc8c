package identity

import "strings"

// FallbackPolicy decides which group key an item's tag maps to, and which
// owner to use when the directory never answers. The mapping rules are
// configuration, not hard-coded logic, because real directories are messy:
// department folders get renamed, merged, and misspelled faster than any
// rule table keeps up.
type FallbackPolicy struct {
	// Mode is "department" (tag names the group) or "all" (every item
	// falls under one umbrella group).
	Mode string

	// UmbrellaGroup is the group used in "all" mode and the last resort
	// in "department" mode.
	UmbrellaGroup string

	// Aliases maps normalized tag names to canonical group names,
	// absorbing folder-naming chaos ("HR ", "hr-dept", "People Ops").
	Aliases map[string]string
}

// GroupKeyFor resolves an item tag to the directory group to draw an
// owner from.
func (p FallbackPolicy) GroupKeyFor(tag string) string {
	if p.Mode == "all" {
		return p.UmbrellaGroup
	}

	normalized := strings.ToLower(strings.TrimSpace(tag))
	if canonical, ok := p.Aliases[normalized]; ok {
		return canonical
	}
	if normalized == "" {
		return p.UmbrellaGroup
	}
	return tag
}

// FallbackOwner is the identity applied when no directory data is
// available at all. Items still succeed; ownership is just generic.
func (p FallbackPolicy) FallbackOwner() string {
	if p.UmbrellaGroup == "" {
		return "AllEmployees"
	}
	return p.UmbrellaGroup
}

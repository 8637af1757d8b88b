package policy

import "github.com/tsanders-rh/exopolicy/internal/cloudconfig"

// MatchGroup returns the first group, in declared order, whose pattern matches
// the flavor name. No match means the flavor carries no restrictions.
func MatchGroup(flavorName string, groups []cloudconfig.FlavorGroup) (*cloudconfig.FlavorGroup, bool) {
	for i := range groups {
		if groups[i].Matches(flavorName) {
			return &groups[i], true
		}
	}
	return nil, false
}

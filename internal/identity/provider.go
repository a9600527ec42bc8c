// Package identity abstracts the directory service that group membership
// and ownership identities are resolved against. Real deployments inject a
// provider backed by their directory; labs use the static one below.
package identity

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Provider is the upstream directory collaborator. FetchGroup blocks on a
// round trip to the external service.
type Provider interface {
	FetchGroup(key string) ([]string, error)
	Domain() (string, error)
}

// StaticProvider fabricates plausible group membership tables in process.
// Member lists are derived deterministically from the group key so repeated
// runs against the same configuration see the same directory.
type StaticProvider struct {
	domain     string
	groupSizes map[string]int
}

var firstNames = []string{
	"ava", "liam", "noah", "emma", "mia", "ethan", "sofia", "lucas",
	"zoe", "mason", "nina", "oscar", "ruby", "felix", "iris", "hugo",
}

var lastNames = []string{
	"reyes", "tanaka", "novak", "silva", "kumar", "berg", "okafor",
	"lindqvist", "moreau", "castillo", "petrov", "walsh",
}

// NewStaticProvider returns a provider for the given DNS-style domain.
func NewStaticProvider(domain string) *StaticProvider {
	return &StaticProvider{
		domain:     domain,
		groupSizes: make(map[string]int),
	}
}

func (p *StaticProvider) Domain() (string, error) {
	if p.domain == "" {
		return "", fmt.Errorf("no domain configured")
	}
	return p.domain, nil
}

// FetchGroup returns a stable synthetic member list for the group. The
// list size and names are a function of the key alone.
func (p *StaticProvider) FetchGroup(key string) ([]string, error) {
	if key == "" {
		return nil, fmt.Errorf("empty group key")
	}
	if p.domain == "" {
		return nil, fmt.Errorf("no domain configured")
	}

	seed := xxhash.Sum64String(strings.ToLower(key))
	size := 4 + int(seed%13) // 4..16 members

	members := make([]string, 0, size)
	for i := 0; i < size; i++ {
		// Walk the name pools from a key-derived offset so distinct
		// groups get distinct (but stable) rosters.
		f := firstNames[(int(seed>>8)+i*3)%len(firstNames)]
		l := lastNames[(int(seed>>16)+i*5)%len(lastNames)]
		members = append(members, fmt.Sprintf("%s.%s@%s", f, l, p.domain))
	}
	return members, nil
}

package identity_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/identity"
)

func TestStaticProvider_FetchGroup(t *testing.T) {
	p := identity.NewStaticProvider("demo.local")

	members, err := p.FetchGroup("Finance")
	require.NoError(t, err)
	require.NotEmpty(t, members)

	for _, m := range members {
		assert.True(t, strings.HasSuffix(m, "@demo.local"), "member %q should carry the domain", m)
	}

	// Same key, same roster.
	again, err := p.FetchGroup("Finance")
	require.NoError(t, err)
	assert.Equal(t, members, again)

	// Different keys should not share a roster.
	other, err := p.FetchGroup("Engineering")
	require.NoError(t, err)
	assert.NotEqual(t, members, other)
}

func TestStaticProvider_EmptyKey(t *testing.T) {
	p := identity.NewStaticProvider("demo.local")
	_, err := p.FetchGroup("")
	assert.Error(t, err)
}

func TestFallbackPolicy_DepartmentMode(t *testing.T) {
	policy := identity.FallbackPolicy{
		Mode:          "department",
		UmbrellaGroup: "AllEmployees",
		Aliases: map[string]string{
			"people ops": "HR",
			"hr-dept":    "HR",
		},
	}

	assert.Equal(t, "Finance", policy.GroupKeyFor("Finance"))
	assert.Equal(t, "HR", policy.GroupKeyFor("People Ops"))
	assert.Equal(t, "HR", policy.GroupKeyFor("  hr-dept "))
	assert.Equal(t, "AllEmployees", policy.GroupKeyFor(""))
}

func TestFallbackPolicy_AllMode(t *testing.T) {
	policy := identity.FallbackPolicy{Mode: "all", UmbrellaGroup: "AllEmployees"}

	assert.Equal(t, "AllEmployees", policy.GroupKeyFor("Finance"))
	assert.Equal(t, "AllEmployees", policy.GroupKeyFor(""))
	assert.Equal(t, "AllEmployees", policy.FallbackOwner())
}

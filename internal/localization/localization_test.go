package localization_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsanders-rh/exopolicy/internal/localization"
)

func TestResolve(t *testing.T) {
	t.Run("nil overrides resolve to defaults", func(t *testing.T) {
		resolved := localization.Resolve(nil)
		assert.Equal(t, localization.Default(), resolved)
		assert.Equal(t, "instance", resolved[localization.VirtualComputer])
		assert.Equal(t, "volume", resolved[localization.BlockDevice])
		assert.Equal(t, "floating IP address", resolved[localization.FloatingIPAddress])
	})

	t.Run("non-empty override wins", func(t *testing.T) {
		resolved := localization.Resolve(localization.Overrides{
			localization.VirtualComputer: "server",
			localization.UnitOfTenancy:   "allocation",
		})
		assert.Equal(t, "server", resolved[localization.VirtualComputer])
		assert.Equal(t, "allocation", resolved[localization.UnitOfTenancy])
		assert.Equal(t, "volume", resolved[localization.BlockDevice])
	})

	t.Run("empty override falls back to default", func(t *testing.T) {
		resolved := localization.Resolve(localization.Overrides{
			localization.BlockDevice: "",
		})
		assert.Equal(t, "volume", resolved[localization.BlockDevice])
	})

	t.Run("every term is present", func(t *testing.T) {
		overrides := localization.Overrides{
			localization.Hostname:    "name",
			localization.Term("foo"): "bar",
		}
		resolved := localization.Resolve(overrides)
		assert.Len(t, resolved, len(localization.Terms()))
		for _, term := range localization.Terms() {
			want, _ := localization.DefaultFor(term)
			if v := overrides[term]; v != "" {
				want = v
			}
			assert.Equal(t, want, resolved[term], "term %s", term)
		}
		_, hasUnknown := resolved[localization.Term("foo")]
		assert.False(t, hasUnknown)
	})

	t.Run("does not alias the defaults", func(t *testing.T) {
		resolved := localization.Resolve(nil)
		resolved[localization.Share] = "changed"
		assert.Equal(t, "share", localization.Resolve(nil)[localization.Share])
	})
}

func TestTerms(t *testing.T) {
	assert.Len(t, localization.Terms(), 21)
}

func TestUnknownTerms(t *testing.T) {
	unknown := localization.UnknownTerms(localization.Overrides{
		localization.Credential: "secret",
		"zzz":                   "x",
		"aaa":                   "y",
	})
	assert.Equal(t, []localization.Term{"aaa", "zzz"}, unknown)
}

func TestResolved_Get(t *testing.T) {
	r := localization.Resolved{}
	assert.Equal(t, "security group", r.Get(localization.SecurityGroup))

	r[localization.SecurityGroup] = "firewall"
	assert.Equal(t, "firewall", r.Get(localization.SecurityGroup))
}

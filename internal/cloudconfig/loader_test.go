package cloudconfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsanders-rh/exopolicy/internal/cloudconfig"
	"github.com/tsanders-rh/exopolicy/internal/localization"
	"github.com/tsanders-rh/exopolicy/pkg/types"
)

func TestLoader_LoadConfiguration(t *testing.T) {
	t.Run("loads deployment record", func(t *testing.T) {
		loader := cloudconfig.NewLoader("testdata/config.yaml", "testdata/cloud_configs.json")

		cfg, err := loader.LoadConfiguration()
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "Example Cloud Dashboard", cfg.EffectiveAppTitle())
		assert.True(t, cfg.TopBarShowAppTitle)
		assert.Nil(t, cfg.Favicon)
		require.NotNil(t, cfg.DefaultLoginView)
		assert.Equal(t, "oidc", *cfg.DefaultLoginView)
		require.NotNil(t, cfg.SentryConfig)
		assert.Equal(t, "https://abc123@o1234.ingest.sentry.io/42", cfg.SentryConfig.DSN())
		assert.Equal(t, "server", cfg.Localization[localization.VirtualComputer])
		require.NotNil(t, cfg.Palette)
		require.NotNil(t, cfg.Palette.Light)
		assert.Equal(t, 150, *cfg.Palette.Light.Primary.R)
	})

	t.Run("empty path means defaults", func(t *testing.T) {
		loader := cloudconfig.NewLoader("", "testdata/cloud_configs.json")

		cfg, err := loader.LoadConfiguration()
		require.NoError(t, err)
		assert.Nil(t, cfg)
		assert.Equal(t, cloudconfig.DefaultAppTitle, cfg.EffectiveAppTitle())
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		loader := cloudconfig.NewLoader("testdata/non-existent.yaml", "testdata/cloud_configs.json")

		_, err := loader.LoadConfiguration()
		assert.Error(t, err)
	})
}

func TestLoader_LoadCloudConfigs(t *testing.T) {
	loader := cloudconfig.NewLoader("", "testdata/cloud_configs.json")

	configs, err := loader.LoadCloudConfigs()
	require.NoError(t, err)
	require.Len(t, configs.Clouds, 2)

	alpha := configs.Clouds[0]
	assert.Equal(t, "keystone.alpha.example.org", alpha.KeystoneHostname)
	require.NotNil(t, alpha.ImageExcludeFilter)
	assert.Equal(t, "hidden", alpha.ImageExcludeFilter.FilterKey)
	require.Len(t, alpha.InstanceTypes, 2)
	assert.Nil(t, alpha.InstanceTypes[0].Versions[0].RestrictFlavorIDs)
	assert.Equal(t, []string{"gpu-small-id", "gpu-large-id"}, alpha.InstanceTypes[1].Versions[0].RestrictFlavorIDs)
	require.Len(t, alpha.FlavorGroups, 2)
	assert.Equal(t, []types.ServerAction{types.ServerActionShelve, types.ServerActionResize}, alpha.FlavorGroups[0].DisallowedActions)
	assert.Nil(t, alpha.FlavorGroups[1].Description)

	beta := configs.Clouds[1]
	assert.Nil(t, beta.UserAppProxy)
	require.NotNil(t, beta.DesktopMessage)
}

func TestParseCloudConfigs(t *testing.T) {
	t.Run("rejects missing keystone hostname", func(t *testing.T) {
		_, err := cloudconfig.ParseCloudConfigs([]byte(`
clouds:
  - friendlyName: No Hostname
    instanceTypes: []
    flavorGroups: []
`))
		require.Error(t, err)

		var vErr *cloudconfig.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "clouds[0].keystoneHostname", vErr.Field)
	})

	t.Run("rejects unknown visibility", func(t *testing.T) {
		_, err := cloudconfig.ParseCloudConfigs([]byte(`
clouds:
  - keystoneHostname: keystone.example.org
    friendlyName: Example
    instanceTypes:
      - friendlyName: Ubuntu
        versions:
          - friendlyName: "24.04"
            isPrimary: true
            imageFilters:
              visibility: secret
    flavorGroups: []
`))
		require.Error(t, err)

		var vErr *cloudconfig.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Contains(t, vErr.Field, "visibility")
	})

	t.Run("rejects malformed document", func(t *testing.T) {
		_, err := cloudconfig.ParseCloudConfigs([]byte("clouds: [unterminated"))
		assert.Error(t, err)
	})
}

func TestParseConfiguration(t *testing.T) {
	t.Run("null document means defaults", func(t *testing.T) {
		cfg, err := cloudconfig.ParseConfiguration([]byte("null"))
		require.NoError(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("rejects unknown login view", func(t *testing.T) {
		_, err := cloudconfig.ParseConfiguration([]byte(`defaultLoginView: kerberos`))
		require.Error(t, err)

		var vErr *cloudconfig.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "defaultLoginView", vErr.Field)
	})

	t.Run("rejects incomplete sentry config", func(t *testing.T) {
		_, err := cloudconfig.ParseConfiguration([]byte(`
sentryConfig:
  dsnPublicKey: abc
`))
		assert.Error(t, err)
	})
}

func TestLoader_Paths(t *testing.T) {
	dir := t.TempDir()
	clouds := filepath.Join(dir, "cloud_configs.yaml")
	require.NoError(t, os.WriteFile(clouds, []byte("clouds: []\n"), 0o600))

	assert.Equal(t, []string{clouds}, cloudconfig.NewLoader("", clouds).Paths())
	assert.Equal(t, []string{"config.yaml", clouds}, cloudconfig.NewLoader("config.yaml", clouds).Paths())
}

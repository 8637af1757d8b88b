package api_test

import (
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsanders-rh/exopolicy/internal/api"
	"github.com/tsanders-rh/exopolicy/internal/cloudconfig"
	"github.com/tsanders-rh/exopolicy/internal/policy"
)

// releaseConfigs describes alpha as showing one Ubuntu release and featuring
// images with the matching name prefix
func releaseConfigs(osVersion, prefix string) cloudconfig.CloudConfigs {
	return cloudconfig.CloudConfigs{Clouds: []cloudconfig.CloudConfig{{
		KeystoneHostname:        alpha,
		FriendlyName:            "Alpha Cloud",
		FeaturedImageNamePrefix: &prefix,
		InstanceTypes: []cloudconfig.InstanceType{{
			FriendlyName: "Ubuntu",
			Versions: []cloudconfig.InstanceTypeVersion{{
				FriendlyName: "Latest",
				IsPrimary:    true,
				ImageFilters: cloudconfig.ImageFilters{OSVersion: &osVersion},
			}},
		}},
	}}}
}

func TestImageHandler_SelectUsesOneSnapshot(t *testing.T) {
	first := releaseConfigs("22.04", "A-")
	second := releaseConfigs("24.04", "B-")

	registry, err := cloudconfig.NewRegistryFromConfigs(nil, first)
	require.NoError(t, err)

	config := api.DefaultServerConfig()
	config.RateLimitRequests = 0
	s := api.NewServer(config, registry, policy.NewEngine(registry))

	payload := `{"instance_type":"Ubuntu","images":[
		{"id":"a","name":"A-22","os_version":"22.04"},
		{"id":"b","name":"B-24","os_version":"24.04"}
	]}`

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-done:
				return
			default:
			}
			next := first
			if i%2 == 0 {
				next = second
			}
			if _, err := registry.Replace(nil, next); err != nil {
				t.Errorf("replace: %v", err)
				return
			}
		}
	}()

	for range 200 {
		rec := do(t, s, http.MethodPost, "/api/v1/clouds/"+alpha+"/images", payload)
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Images   []struct{ ID string } `json:"images"`
			Featured []struct{ ID string } `json:"featured"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Images, 1)
		require.Len(t, body.Featured, 1)
		assert.Equal(t, body.Images[0].ID, body.Featured[0].ID)
	}

	close(done)
	wg.Wait()
}

package cloudconfig

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tsanders-rh/exopolicy/internal/localization"
	"github.com/tsanders-rh/exopolicy/internal/theme"
	"github.com/tsanders-rh/exopolicy/pkg/types"
)

// Snapshot is an immutable, validated view of the deployment configuration
// and every managed cloud. Readers may hold a snapshot for as long as they
// like; a reload never changes it.
type Snapshot struct {
	id            string
	loadedAt      time.Time
	configuration *Configuration
	clouds        []*CloudConfig
	byHost        map[string]*CloudConfig
}

// Load validates cloud configuration and builds a snapshot from it
func Load(configs CloudConfigs) (*Snapshot, error) {
	return LoadDeployment(nil, configs)
}

// LoadDeployment validates the deployment record and the cloud list together.
// A nil configuration is valid and means "all defaults". The inputs are
// copied, so callers may reuse them afterwards.
func LoadDeployment(cfg *Configuration, configs CloudConfigs) (*Snapshot, error) {
	if cfg != nil {
		if err := validateStruct(cfg); err != nil {
			return nil, err
		}
	}
	if err := validateStruct(&configs); err != nil {
		return nil, err
	}

	s := &Snapshot{
		id:            types.GenerateSnapshotID(),
		loadedAt:      time.Now(),
		configuration: cloneConfiguration(cfg),
		clouds:        make([]*CloudConfig, 0, len(configs.Clouds)),
		byHost:        make(map[string]*CloudConfig, len(configs.Clouds)),
	}

	for i := range configs.Clouds {
		cloud := cloneCloud(&configs.Clouds[i])
		path := fmt.Sprintf("clouds[%d]", i)

		if _, exists := s.byHost[cloud.KeystoneHostname]; exists {
			return nil, newValidationError(path+".keystoneHostname",
				&DuplicateCloudError{KeystoneHostname: cloud.KeystoneHostname})
		}

		if err := validateFlavorGroups(cloud, path); err != nil {
			return nil, err
		}

		if err := validatePrimaryVersions(cloud, path); err != nil {
			return nil, err
		}

		s.clouds = append(s.clouds, cloud)
		s.byHost[cloud.KeystoneHostname] = cloud
	}

	return s, nil
}

func validateFlavorGroups(cloud *CloudConfig, path string) error {
	for j := range cloud.FlavorGroups {
		group := &cloud.FlavorGroups[j]
		field := fmt.Sprintf("%s.flavorGroups[%d].matchOn", path, j)

		if group.MatchOn == "" {
			return newValidationError(field, &InvalidFlavorGroupError{
				KeystoneHostname: cloud.KeystoneHostname,
				Title:            group.Title,
			})
		}

		if err := group.compile(); err != nil {
			return newValidationError(field, &InvalidFlavorGroupError{
				KeystoneHostname: cloud.KeystoneHostname,
				Title:            group.Title,
				MatchOn:          group.MatchOn,
				Err:              err,
			})
		}

		// Unknown actions are kept so newer dashboards can restrict them
		for _, action := range group.DisallowedActions {
			if !action.IsKnown() {
				log.Warn().
					Str("cloud", cloud.KeystoneHostname).
					Str("flavor_group", group.Title).
					Str("action", string(action)).
					Msg("flavor group disallows an unknown server action")
			}
		}
	}
	return nil
}

func validatePrimaryVersions(cloud *CloudConfig, path string) error {
	for j, it := range cloud.InstanceTypes {
		var primaries []string
		for _, v := range it.Versions {
			if v.IsPrimary {
				primaries = append(primaries, v.FriendlyName)
			}
		}

		if len(primaries) > 1 {
			return newValidationError(fmt.Sprintf("%s.instanceTypes[%d].versions", path, j),
				&MultiplePrimaryVersionsError{
					KeystoneHostname: cloud.KeystoneHostname,
					InstanceType:     it.FriendlyName,
					Versions:         primaries,
				})
		}
	}
	return nil
}

// ID returns the snapshot's unique revision identifier
func (s *Snapshot) ID() string {
	return s.id
}

// LoadedAt returns when the snapshot was built
func (s *Snapshot) LoadedAt() time.Time {
	return s.loadedAt
}

// Configuration returns the deployment record, or nil when none was loaded
func (s *Snapshot) Configuration() *Configuration {
	return s.configuration
}

// Lookup finds a cloud by Keystone hostname
func (s *Snapshot) Lookup(keystoneHostname string) (*CloudConfig, bool) {
	cloud, ok := s.byHost[keystoneHostname]
	return cloud, ok
}

// All returns every cloud in declared order
func (s *Snapshot) All() []*CloudConfig {
	out := make([]*CloudConfig, len(s.clouds))
	copy(out, s.clouds)
	return out
}

// Len returns the number of clouds
func (s *Snapshot) Len() int {
	return len(s.clouds)
}

// ErrNoLoader is returned by Reload on a registry built from in-memory data
var ErrNoLoader = errors.New("registry has no loader to reload from")

// Registry holds the current snapshot and swaps it atomically on reload.
// Readers never block and never observe a partially applied reload.
type Registry struct {
	current atomic.Pointer[Snapshot]
	loader  *Loader
}

// NewRegistry creates a registry and performs the initial load from disk
func NewRegistry(loader *Loader) (*Registry, error) {
	r := &Registry{loader: loader}

	if err := r.Reload(); err != nil {
		return nil, fmt.Errorf("initial cloud config load: %w", err)
	}

	return r, nil
}

// NewRegistryFromConfigs creates a registry from already-parsed configuration
func NewRegistryFromConfigs(cfg *Configuration, configs CloudConfigs) (*Registry, error) {
	r := &Registry{}

	if _, err := r.Replace(cfg, configs); err != nil {
		return nil, fmt.Errorf("initial cloud config load: %w", err)
	}

	return r, nil
}

// Snapshot returns the current snapshot. It is never nil once the registry
// has been constructed.
func (r *Registry) Snapshot() *Snapshot {
	return r.current.Load()
}

// Lookup finds a cloud in the current snapshot
func (r *Registry) Lookup(keystoneHostname string) (*CloudConfig, bool) {
	return r.Snapshot().Lookup(keystoneHostname)
}

// All returns every cloud in the current snapshot
func (r *Registry) All() []*CloudConfig {
	return r.Snapshot().All()
}

// Replace validates new configuration and, only if it is valid, makes it the
// current snapshot. On error the previous snapshot stays active.
func (r *Registry) Replace(cfg *Configuration, configs CloudConfigs) (*Snapshot, error) {
	s, err := LoadDeployment(cfg, configs)
	if err != nil {
		recordReload(reloadResultRejected, nil)
		log.Error().Err(err).Msg("rejected cloud configuration, keeping previous snapshot")
		return nil, err
	}

	previous := r.current.Swap(s)
	recordReload(reloadResultApplied, s)
	logThemeWarnings(s.configuration)

	event := log.Info().Str("snapshot", s.ID()).Int("clouds", s.Len())
	if previous != nil {
		event = event.Str("previous", previous.ID())
	}
	event.Msg("cloud configuration applied")

	return s, nil
}

// Reload re-reads configuration through the loader and replaces the current
// snapshot
func (r *Registry) Reload() error {
	if r.loader == nil {
		return ErrNoLoader
	}

	cfg, configs, err := r.loader.LoadAll()
	if err != nil {
		recordReload(reloadResultRejected, nil)
		log.Error().Err(err).Msg("failed to read cloud configuration, keeping previous snapshot")
		return fmt.Errorf("load cloud configuration: %w", err)
	}

	if _, err := r.Replace(cfg, *configs); err != nil {
		return fmt.Errorf("apply cloud configuration: %w", err)
	}

	return nil
}

// Count returns the number of clouds in the current snapshot
func (r *Registry) Count() int {
	return r.Snapshot().Len()
}

func cloneConfiguration(cfg *Configuration) *Configuration {
	if cfg == nil {
		return nil
	}
	out := *cfg
	if cfg.Localization != nil {
		out.Localization = make(localization.Overrides, len(cfg.Localization))
		for k, v := range cfg.Localization {
			out.Localization[k] = v
		}
	}
	out.Palette = cloneTheme(cfg.Palette)
	if cfg.SentryConfig != nil {
		sentry := *cfg.SentryConfig
		out.SentryConfig = &sentry
	}
	if cfg.OpenIDConnectLoginConfig != nil {
		oidc := *cfg.OpenIDConnectLoginConfig
		out.OpenIDConnectLoginConfig = &oidc
	}
	return &out
}

func cloneCloud(c *CloudConfig) *CloudConfig {
	out := *c
	out.ImageExcludeFilter = cloneMetadataFilter(c.ImageExcludeFilter)
	out.FeaturedImageNamePrefix = cloneString(c.FeaturedImageNamePrefix)
	out.DesktopMessage = cloneString(c.DesktopMessage)

	if c.UserAppProxy != nil {
		out.UserAppProxy = make([]UserAppProxy, len(c.UserAppProxy))
		for i, p := range c.UserAppProxy {
			out.UserAppProxy[i] = UserAppProxy{Region: cloneString(p.Region), Hostname: p.Hostname}
		}
	}

	out.InstanceTypes = make([]InstanceType, len(c.InstanceTypes))
	for i, it := range c.InstanceTypes {
		versions := make([]InstanceTypeVersion, len(it.Versions))
		for j, v := range it.Versions {
			versions[j] = InstanceTypeVersion{
				FriendlyName: v.FriendlyName,
				IsPrimary:    v.IsPrimary,
				ImageFilters: ImageFilters{
					Name:       cloneString(v.ImageFilters.Name),
					UUID:       cloneString(v.ImageFilters.UUID),
					Visibility: cloneString(v.ImageFilters.Visibility),
					OSDistro:   cloneString(v.ImageFilters.OSDistro),
					OSVersion:  cloneString(v.ImageFilters.OSVersion),
					Metadata:   cloneMetadataFilter(v.ImageFilters.Metadata),
				},
			}
			if v.RestrictFlavorIDs != nil {
				versions[j].RestrictFlavorIDs = append([]string{}, v.RestrictFlavorIDs...)
			}
		}
		it.Versions = versions
		out.InstanceTypes[i] = it
	}

	out.FlavorGroups = make([]FlavorGroup, len(c.FlavorGroups))
	for i, g := range c.FlavorGroups {
		out.FlavorGroups[i] = FlavorGroup{
			MatchOn:           g.MatchOn,
			Title:             g.Title,
			Description:       cloneString(g.Description),
			DisallowedActions: append([]types.ServerAction{}, g.DisallowedActions...),
		}
	}

	return &out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneMetadataFilter(f *MetadataFilter) *MetadataFilter {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

func cloneTheme(t *theme.Theme) *theme.Theme {
	if t == nil {
		return nil
	}
	return &theme.Theme{
		Light: clonePalette(t.Light),
		Dark:  clonePalette(t.Dark),
	}
}

func clonePalette(p *theme.PaletteOverride) *theme.PaletteOverride {
	if p == nil {
		return nil
	}
	return &theme.PaletteOverride{
		Primary:   cloneRGB(p.Primary),
		Secondary: cloneRGB(p.Secondary),
	}
}

func cloneRGB(c *theme.RGBOverride) *theme.RGBOverride {
	if c == nil {
		return nil
	}
	return &theme.RGBOverride{R: cloneInt(c.R), G: cloneInt(c.G), B: cloneInt(c.B)}
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

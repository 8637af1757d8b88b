package policy

import (
	"iter"
	"slices"
	"strings"

	"github.com/tsanders-rh/exopolicy/internal/cloudconfig"
	"github.com/tsanders-rh/exopolicy/internal/imagefilter"
	"github.com/tsanders-rh/exopolicy/pkg/types"
)

// Engine renders server-action verdicts and resource selections for the
// clouds in a registry. It never performs I/O and never changes cloud state.
type Engine struct {
	registry *cloudconfig.Registry
}

// NewEngine creates a new policy engine
func NewEngine(registry *cloudconfig.Registry) *Engine {
	return &Engine{
		registry: registry,
	}
}

// ActionDecision is the verdict for one flavor on one cloud
type ActionDecision struct {
	KeystoneHostname  string               `json:"keystone_hostname" yaml:"keystoneHostname"`
	FlavorName        string               `json:"flavor_name" yaml:"flavorName"`
	MatchedGroup      string               `json:"matched_group,omitempty" yaml:"matchedGroup,omitempty"`
	DisallowedActions []types.ServerAction `json:"disallowed_actions" yaml:"disallowedActions"`
	Action            types.ServerAction   `json:"action,omitempty" yaml:"action,omitempty"`
	Allowed           *bool                `json:"allowed,omitempty" yaml:"allowed,omitempty"`
}

// DisallowedActions returns the actions the matched flavor group forbids, or
// an empty set when no group matches
func (e *Engine) DisallowedActions(flavorName string, cloud *cloudconfig.CloudConfig) types.ActionSet {
	group, ok := MatchGroup(flavorName, cloud.FlavorGroups)
	if !ok {
		return types.NewActionSet()
	}
	return types.NewActionSet(group.DisallowedActions...)
}

// IsActionAllowed reports whether the action may be offered for a server of
// the given flavor
func (e *Engine) IsActionAllowed(action types.ServerAction, flavorName string, cloud *cloudconfig.CloudConfig) bool {
	return !e.DisallowedActions(flavorName, cloud).Has(action)
}

// AllowedActions returns the known actions not forbidden for the flavor, in
// the order the dashboard lists them
func (e *Engine) AllowedActions(flavorName string, cloud *cloudconfig.CloudConfig) []types.ServerAction {
	disallowed := e.DisallowedActions(flavorName, cloud)

	allowed := make([]types.ServerAction, 0, len(types.KnownServerActions))
	for _, a := range types.KnownServerActions {
		if !disallowed.Has(a) {
			allowed = append(allowed, a)
		}
	}
	return allowed
}

// Decide looks the cloud up in the active snapshot and renders a verdict. An
// empty action returns only the disallowed set.
func (e *Engine) Decide(keystoneHostname, flavorName string, action types.ServerAction) (*ActionDecision, error) {
	cloud, ok := e.registry.Lookup(keystoneHostname)
	if !ok {
		return nil, cloudNotFound(keystoneHostname)
	}

	decision := &ActionDecision{
		KeystoneHostname:  keystoneHostname,
		FlavorName:        flavorName,
		DisallowedActions: []types.ServerAction{},
	}

	if group, ok := MatchGroup(flavorName, cloud.FlavorGroups); ok {
		decision.MatchedGroup = group.Title
		decision.DisallowedActions = types.NewActionSet(group.DisallowedActions...).Sorted()
	}

	if action != "" {
		allowed := e.IsActionAllowed(action, flavorName, cloud)
		decision.Action = action
		decision.Allowed = &allowed
	}

	return decision, nil
}

// ImagesForVersion selects the cloud's images for an instance-type version,
// applying the cloud-wide exclusion filter
func (e *Engine) ImagesForVersion(images []types.Image, cloud *cloudconfig.CloudConfig, version *cloudconfig.InstanceTypeVersion) iter.Seq[types.Image] {
	return imagefilter.Match(images, version.ImageFilters, cloud.ImageExcludeFilter)
}

// SelectImages resolves an instance type and version by name on a cloud in
// the active snapshot. An empty version selects the primary version.
func (e *Engine) SelectImages(images []types.Image, keystoneHostname, instanceType, version string) ([]types.Image, *cloudconfig.InstanceTypeVersion, error) {
	cloud, ok := e.registry.Lookup(keystoneHostname)
	if !ok {
		return nil, nil, cloudNotFound(keystoneHostname)
	}
	return e.SelectImagesFor(images, cloud, instanceType, version)
}

// SelectImagesFor is SelectImages on a cloud the caller already holds, so
// several selections can share one snapshot
func (e *Engine) SelectImagesFor(images []types.Image, cloud *cloudconfig.CloudConfig, instanceType, version string) ([]types.Image, *cloudconfig.InstanceTypeVersion, error) {
	it, ok := cloud.InstanceType(instanceType)
	if !ok {
		return nil, nil, instanceTypeNotFound(cloud.KeystoneHostname, instanceType, "")
	}

	var v *cloudconfig.InstanceTypeVersion
	if version == "" {
		v, ok = it.PrimaryVersion()
	} else {
		v, ok = it.Version(version)
	}
	if !ok {
		return nil, nil, instanceTypeNotFound(cloud.KeystoneHostname, instanceType, version)
	}

	return slices.Collect(e.ImagesForVersion(images, cloud, v)), v, nil
}

// FilterImages applies an ad-hoc filter plus the cloud's exclusion filter
func (e *Engine) FilterImages(images []types.Image, keystoneHostname string, filter cloudconfig.ImageFilters) ([]types.Image, error) {
	cloud, ok := e.registry.Lookup(keystoneHostname)
	if !ok {
		return nil, cloudNotFound(keystoneHostname)
	}
	return e.FilterImagesFor(images, cloud, filter), nil
}

// FilterImagesFor is FilterImages on a cloud the caller already holds
func (e *Engine) FilterImagesFor(images []types.Image, cloud *cloudconfig.CloudConfig, filter cloudconfig.ImageFilters) []types.Image {
	return imagefilter.MatchAll(images, filter, cloud.ImageExcludeFilter)
}

// FeaturedImages returns the non-excluded images whose name starts with the
// cloud's featured prefix. A cloud without a prefix features nothing.
func (e *Engine) FeaturedImages(images []types.Image, cloud *cloudconfig.CloudConfig) []types.Image {
	if cloud.FeaturedImageNamePrefix == nil || *cloud.FeaturedImageNamePrefix == "" {
		return []types.Image{}
	}
	prefix := *cloud.FeaturedImageNamePrefix

	featured := []types.Image{}
	for img := range imagefilter.Match(images, cloudconfig.ImageFilters{}, cloud.ImageExcludeFilter) {
		if strings.HasPrefix(img.Name, prefix) {
			featured = append(featured, img)
		}
	}
	return featured
}

// AllowedFlavors filters flavors by the version's flavor-id allowlist. A
// version without an allowlist accepts every flavor.
func (e *Engine) AllowedFlavors(flavors []types.Flavor, version *cloudconfig.InstanceTypeVersion) []types.Flavor {
	if version.RestrictFlavorIDs == nil {
		return append([]types.Flavor{}, flavors...)
	}

	allowed := []types.Flavor{}
	for _, f := range flavors {
		if slices.Contains(version.RestrictFlavorIDs, f.ID) {
			allowed = append(allowed, f)
		}
	}
	return allowed
}

// FeaturedImagesFor looks the cloud up in the active snapshot and returns its
// featured images
func (e *Engine) FeaturedImagesFor(keystoneHostname string, images []types.Image) ([]types.Image, error) {
	cloud, ok := e.registry.Lookup(keystoneHostname)
	if !ok {
		return nil, cloudNotFound(keystoneHostname)
	}
	return e.FeaturedImages(images, cloud), nil
}

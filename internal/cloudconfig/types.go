package cloudconfig

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tsanders-rh/exopolicy/internal/localization"
	"github.com/tsanders-rh/exopolicy/internal/theme"
	"github.com/tsanders-rh/exopolicy/pkg/types"
)

// DefaultAppTitle is shown when the deployment sets no app title
const DefaultAppTitle = "Exosphere"

// Configuration is the top-level deployment record. Nil fields mean "use
// engine defaults", not "feature absent".
type Configuration struct {
	ShowDebugMsgs                 bool                   `yaml:"showDebugMsgs" json:"show_debug_msgs"`
	CloudCorsProxyURL             *string                `yaml:"cloudCorsProxyUrl" json:"cloud_cors_proxy_url,omitempty" validate:"omitempty,url"`
	URLPathPrefix                 *string                `yaml:"urlPathPrefix" json:"url_path_prefix,omitempty"`
	Palette                       *theme.Theme           `yaml:"palette" json:"palette,omitempty"`
	TopBarShowAppTitle            bool                   `yaml:"topBarShowAppTitle" json:"top_bar_show_app_title"`
	AppTitle                      *string                `yaml:"appTitle" json:"app_title,omitempty"`
	Logo                          *string                `yaml:"logo" json:"logo,omitempty"`
	Favicon                       *string                `yaml:"favicon" json:"favicon,omitempty"`
	DefaultLoginView              *string                `yaml:"defaultLoginView" json:"default_login_view,omitempty" validate:"omitempty,oneof=openstack oidc jetstream1"`
	AboutAppMarkdown              *string                `yaml:"aboutAppMarkdown" json:"about_app_markdown,omitempty"`
	SupportInfoMarkdown           *string                `yaml:"supportInfoMarkdown" json:"support_info_markdown,omitempty"`
	UserSupportEmailAddress       *string                `yaml:"userSupportEmailAddress" json:"user_support_email_address,omitempty" validate:"omitempty,email"`
	UserSupportEmailSubject       *string                `yaml:"userSupportEmailSubject" json:"user_support_email_subject,omitempty"`
	InstanceConfigMgtRepoURL      *string                `yaml:"instanceConfigMgtRepoUrl" json:"instance_config_mgt_repo_url,omitempty"`
	InstanceConfigMgtRepoCheckout *string                `yaml:"instanceConfigMgtRepoCheckout" json:"instance_config_mgt_repo_checkout,omitempty"`
	SentryConfig                  *SentryConfig          `yaml:"sentryConfig" json:"sentry_config,omitempty"`
	OpenIDConnectLoginConfig      *OIDCLoginConfig       `yaml:"openIdConnectLoginConfig" json:"openid_connect_login_config,omitempty"`
	Localization                  localization.Overrides `yaml:"localization" json:"localization,omitempty"`
}

// EffectiveAppTitle returns the configured title or DefaultAppTitle
func (c *Configuration) EffectiveAppTitle() string {
	if c == nil || c.AppTitle == nil || *c.AppTitle == "" {
		return DefaultAppTitle
	}
	return *c.AppTitle
}

// SentryConfig holds error-reporting settings
type SentryConfig struct {
	DSNPublicKey    string `yaml:"dsnPublicKey" json:"dsn_public_key" validate:"required"`
	DSNHost         string `yaml:"dsnHost" json:"dsn_host" validate:"required"`
	DSNProjectID    string `yaml:"dsnProjectId" json:"dsn_project_id" validate:"required"`
	ReleaseVersion  string `yaml:"releaseVersion" json:"release_version"`
	EnvironmentName string `yaml:"environmentName" json:"environment_name"`
}

// DSN assembles the client DSN from its parts
func (s *SentryConfig) DSN() string {
	return fmt.Sprintf("https://%s@%s/%s", s.DSNPublicKey, s.DSNHost, s.DSNProjectID)
}

// OIDCLoginConfig configures federated login through Keystone
type OIDCLoginConfig struct {
	KeystoneAuthURL            string `yaml:"keystoneAuthUrl" json:"keystone_auth_url" validate:"required,url"`
	WebSSOKeystoneEndpoint     string `yaml:"webssoKeystoneEndpoint" json:"websso_keystone_endpoint" validate:"required"`
	OIDCLoginIcon              string `yaml:"oidcLoginIcon" json:"oidc_login_icon"`
	OIDCLoginButtonLabel       string `yaml:"oidcLoginButtonLabel" json:"oidc_login_button_label"`
	OIDCLoginButtonDescription string `yaml:"oidcLoginButtonDescription" json:"oidc_login_button_description"`
}

// CloudConfigs is the list of managed clouds as written in configuration
type CloudConfigs struct {
	Clouds []CloudConfig `yaml:"clouds" json:"clouds" validate:"dive"`
}

// CloudConfig describes one managed cloud, keyed by its Keystone hostname
type CloudConfig struct {
	KeystoneHostname        string          `yaml:"keystoneHostname" json:"keystone_hostname" validate:"required"`
	FriendlyName            string          `yaml:"friendlyName" json:"friendly_name" validate:"required"`
	UserAppProxy            []UserAppProxy  `yaml:"userAppProxy" json:"user_app_proxy,omitempty" validate:"dive"`
	ImageExcludeFilter      *MetadataFilter `yaml:"imageExcludeFilter" json:"image_exclude_filter,omitempty"`
	FeaturedImageNamePrefix *string         `yaml:"featuredImageNamePrefix" json:"featured_image_name_prefix,omitempty"`
	InstanceTypes           []InstanceType  `yaml:"instanceTypes" json:"instance_types" validate:"dive"`
	FlavorGroups            []FlavorGroup   `yaml:"flavorGroups" json:"flavor_groups" validate:"dive"`
	DesktopMessage          *string         `yaml:"desktopMessage" json:"desktop_message,omitempty"`
}

// UserAppProxyFor returns the application proxy hostname for a region. A
// proxy scoped to the region wins over a region-less one.
func (c *CloudConfig) UserAppProxyFor(region string) (string, bool) {
	fallback := ""
	found := false
	for _, p := range c.UserAppProxy {
		if p.Region == nil {
			if !found {
				fallback = p.Hostname
				found = true
			}
			continue
		}
		if *p.Region == region {
			return p.Hostname, true
		}
	}
	return fallback, found
}

// InstanceType finds an instance type by friendly name
func (c *CloudConfig) InstanceType(name string) (*InstanceType, bool) {
	for i := range c.InstanceTypes {
		if c.InstanceTypes[i].FriendlyName == name {
			return &c.InstanceTypes[i], true
		}
	}
	return nil, false
}

// UserAppProxy is an application proxy, optionally scoped to one region
type UserAppProxy struct {
	Region   *string `yaml:"region" json:"region"`
	Hostname string  `yaml:"hostname" json:"hostname" validate:"required"`
}

// MetadataFilter is a single image metadata key/value condition
type MetadataFilter struct {
	FilterKey   string `yaml:"filterKey" json:"filter_key" validate:"required"`
	FilterValue string `yaml:"filterValue" json:"filter_value" validate:"required"`
}

// Matches reports whether the metadata carries the key with the exact value
func (f *MetadataFilter) Matches(metadata map[string]string) bool {
	v, ok := metadata[f.FilterKey]
	return ok && v == f.FilterValue
}

// InstanceType is a curated, user-facing category of deployable images
type InstanceType struct {
	FriendlyName string                `yaml:"friendlyName" json:"friendly_name" validate:"required"`
	Description  string                `yaml:"description" json:"description"`
	Logo         string                `yaml:"logo" json:"logo"`
	Versions     []InstanceTypeVersion `yaml:"versions" json:"versions" validate:"dive"`
}

// PrimaryVersion returns the version flagged primary, else the first one
func (it *InstanceType) PrimaryVersion() (*InstanceTypeVersion, bool) {
	if len(it.Versions) == 0 {
		return nil, false
	}
	for i := range it.Versions {
		if it.Versions[i].IsPrimary {
			return &it.Versions[i], true
		}
	}
	return &it.Versions[0], true
}

// Version finds a version by friendly name
func (it *InstanceType) Version(name string) (*InstanceTypeVersion, bool) {
	for i := range it.Versions {
		if it.Versions[i].FriendlyName == name {
			return &it.Versions[i], true
		}
	}
	return nil, false
}

// InstanceTypeVersion selects images and, optionally, flavors
type InstanceTypeVersion struct {
	FriendlyName      string       `yaml:"friendlyName" json:"friendly_name" validate:"required"`
	IsPrimary         bool         `yaml:"isPrimary" json:"is_primary"`
	ImageFilters      ImageFilters `yaml:"imageFilters" json:"image_filters"`
	RestrictFlavorIDs []string     `yaml:"restrictFlavorIds" json:"restrict_flavor_ids,omitempty"`
}

// ImageFilters are optional image match criteria; a nil field matches anything
type ImageFilters struct {
	Name       *string         `yaml:"name" json:"name,omitempty"`
	UUID       *string         `yaml:"uuid" json:"uuid,omitempty"`
	Visibility *string         `yaml:"visibility" json:"visibility,omitempty" validate:"omitempty,oneof=private shared community public"`
	OSDistro   *string         `yaml:"osDistro" json:"os_distro,omitempty"`
	OSVersion  *string         `yaml:"osVersion" json:"os_version,omitempty"`
	Metadata   *MetadataFilter `yaml:"metadata" json:"metadata,omitempty"`
}

// IsEmpty reports whether no criteria are set
func (f ImageFilters) IsEmpty() bool {
	return f.Name == nil && f.UUID == nil && f.Visibility == nil &&
		f.OSDistro == nil && f.OSVersion == nil && f.Metadata == nil
}

// FlavorGroup restricts server actions for flavors whose name matches MatchOn.
// Groups are evaluated in order and the first match wins. MatchOn is checked
// by Load rather than by tag so that an empty pattern reports
// InvalidFlavorGroupError.
type FlavorGroup struct {
	MatchOn           string               `yaml:"matchOn" json:"match_on"`
	Title             string               `yaml:"title" json:"title" validate:"required"`
	Description       *string              `yaml:"description" json:"description,omitempty"`
	DisallowedActions []types.ServerAction `yaml:"disallowedActions" json:"disallowed_actions"`

	pattern *regexp.Regexp
}

// Matches reports whether the flavor name matches this group's pattern.
// Groups built outside Load are compiled on demand; a pattern that does not
// compile degrades to a plain substring test.
func (g *FlavorGroup) Matches(flavorName string) bool {
	if g.MatchOn == "" {
		return false
	}
	pattern := g.pattern
	if pattern == nil {
		compiled, err := regexp.Compile(g.MatchOn)
		if err != nil {
			return strings.Contains(flavorName, g.MatchOn)
		}
		pattern = compiled
	}
	return pattern.MatchString(flavorName)
}

func (g *FlavorGroup) compile() error {
	compiled, err := regexp.Compile(g.MatchOn)
	if err != nil {
		return err
	}
	g.pattern = compiled
	return nil
}

package cloudconfig

import (
	"github.com/rs/zerolog/log"
	"github.com/tsanders-rh/exopolicy/internal/localization"
	"github.com/tsanders-rh/exopolicy/internal/theme"
)

// Presentation is the deployment record with every default applied
type Presentation struct {
	AppTitle                      string                `json:"app_title"`
	TopBarShowAppTitle            bool                  `json:"top_bar_show_app_title"`
	ShowDebugMsgs                 bool                  `json:"show_debug_msgs"`
	Logo                          *string               `json:"logo,omitempty"`
	Favicon                       *string               `json:"favicon,omitempty"`
	URLPathPrefix                 *string               `json:"url_path_prefix,omitempty"`
	CloudCorsProxyURL             *string               `json:"cloud_cors_proxy_url,omitempty"`
	DefaultLoginView              *string               `json:"default_login_view,omitempty"`
	AboutAppMarkdown              *string               `json:"about_app_markdown,omitempty"`
	SupportInfoMarkdown           *string               `json:"support_info_markdown,omitempty"`
	UserSupportEmailAddress       *string               `json:"user_support_email_address,omitempty"`
	UserSupportEmailSubject       *string               `json:"user_support_email_subject,omitempty"`
	InstanceConfigMgtRepoURL      *string               `json:"instance_config_mgt_repo_url,omitempty"`
	InstanceConfigMgtRepoCheckout *string               `json:"instance_config_mgt_repo_checkout,omitempty"`
	SentryDSN                     *string               `json:"sentry_dsn,omitempty"`
	SentryReleaseVersion          *string               `json:"sentry_release_version,omitempty"`
	SentryEnvironmentName         *string               `json:"sentry_environment_name,omitempty"`
	OpenIDConnectLogin            *OIDCLoginConfig      `json:"openid_connect_login,omitempty"`
	Localization                  localization.Resolved `json:"localization"`
	Theme                         theme.Resolved        `json:"theme"`
	ThemeWarnings                 []theme.Warning       `json:"theme_warnings,omitempty"`
}

// Resolve applies localization and theme defaults to a deployment record. A
// nil record resolves to the defaults. Resolve does not log; theme warnings
// are logged once when a snapshot is applied.
func Resolve(cfg *Configuration) Presentation {
	if cfg == nil {
		resolved, _ := theme.Resolve(nil)
		return Presentation{
			AppTitle:     DefaultAppTitle,
			Localization: localization.Resolve(nil),
			Theme:        resolved,
		}
	}

	resolvedTheme, warnings := theme.Resolve(cfg.Palette)

	p := Presentation{
		AppTitle:                cfg.EffectiveAppTitle(),
		TopBarShowAppTitle:      cfg.TopBarShowAppTitle,
		ShowDebugMsgs:           cfg.ShowDebugMsgs,
		Logo:                    cfg.Logo,
		Favicon:                 cfg.Favicon,
		URLPathPrefix:           cfg.URLPathPrefix,
		CloudCorsProxyURL:       cfg.CloudCorsProxyURL,
		DefaultLoginView:        cfg.DefaultLoginView,
		AboutAppMarkdown:        cfg.AboutAppMarkdown,
		SupportInfoMarkdown:     cfg.SupportInfoMarkdown,
		UserSupportEmailAddress: cfg.UserSupportEmailAddress,
		UserSupportEmailSubject: cfg.UserSupportEmailSubject,
		OpenIDConnectLogin:      cfg.OpenIDConnectLoginConfig,
		Localization:            localization.Resolve(cfg.Localization),
		Theme:                   resolvedTheme,
		ThemeWarnings:           warnings,

		InstanceConfigMgtRepoURL:      cfg.InstanceConfigMgtRepoURL,
		InstanceConfigMgtRepoCheckout: cfg.InstanceConfigMgtRepoCheckout,
	}

	if sentry := cfg.SentryConfig; sentry != nil {
		dsn := sentry.DSN()
		p.SentryDSN = &dsn
		p.SentryReleaseVersion = nonEmpty(sentry.ReleaseVersion)
		p.SentryEnvironmentName = nonEmpty(sentry.EnvironmentName)
	}

	return p
}

// logThemeWarnings reports palette overrides that fell back to defaults
func logThemeWarnings(cfg *Configuration) {
	if cfg == nil {
		return
	}
	_, warnings := theme.Resolve(cfg.Palette)
	for _, w := range warnings {
		log.Warn().Str("kind", string(w.Kind)).Str("mode", w.Mode).Str("role", w.Role).
			Str("channel", w.Channel).Msg("palette override replaced by default colour")
	}
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

package api

import (
	"github.com/labstack/echo/v4"
	"github.com/tsanders-rh/exopolicy/internal/cloudconfig"
)

// ConfigurationHandler serves the resolved deployment presentation
type ConfigurationHandler struct {
	registry *cloudconfig.Registry
}

// NewConfigurationHandler creates a new configuration handler
func NewConfigurationHandler(registry *cloudconfig.Registry) *ConfigurationHandler {
	return &ConfigurationHandler{
		registry: registry,
	}
}

// ConfigurationResponse is the presentation plus the snapshot it came from
type ConfigurationResponse struct {
	Snapshot string `json:"snapshot"`
	cloudconfig.Presentation
}

// Get handles GET /api/v1/configuration
func (h *ConfigurationHandler) Get(c echo.Context) error {
	snapshot := h.registry.Snapshot()

	return SuccessOK(c, &ConfigurationResponse{
		Snapshot:     snapshot.ID(),
		Presentation: cloudconfig.Resolve(snapshot.Configuration()),
	})
}

// GetLocalization handles GET /api/v1/configuration/localization
func (h *ConfigurationHandler) GetLocalization(c echo.Context) error {
	p := cloudconfig.Resolve(h.registry.Snapshot().Configuration())
	return SuccessOK(c, p.Localization)
}

// GetTheme handles GET /api/v1/configuration/theme
func (h *ConfigurationHandler) GetTheme(c echo.Context) error {
	p := cloudconfig.Resolve(h.registry.Snapshot().Configuration())
	return SuccessOK(c, map[string]interface{}{
		"theme":    p.Theme,
		"warnings": p.ThemeWarnings,
	})
}

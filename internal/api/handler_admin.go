package api

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/tsanders-rh/exopolicy/internal/cloudconfig"
)

// AdminHandler handles operator endpoints
type AdminHandler struct {
	registry *cloudconfig.Registry
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(registry *cloudconfig.Registry) *AdminHandler {
	return &AdminHandler{
		registry: registry,
	}
}

// Reload handles POST /api/v1/admin/reload. A rejected reload leaves the
// previous snapshot active.
func (h *AdminHandler) Reload(c echo.Context) error {
	previous := h.registry.Snapshot()

	if err := h.registry.Reload(); err != nil {
		var vErr *cloudconfig.ValidationError
		switch {
		case errors.As(err, &vErr):
			return ErrorValidation(c, vErr)
		case errors.Is(err, cloudconfig.ErrNoLoader):
			return ErrorServiceUnavailable(c, err.Error())
		default:
			return ErrorInternal(c, err.Error())
		}
	}

	current := h.registry.Snapshot()
	return SuccessOK(c, map[string]interface{}{
		"previous": previous.ID(),
		"snapshot": current.ID(),
		"clouds":   current.Len(),
	})
}

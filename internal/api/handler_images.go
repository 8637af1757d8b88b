package api

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/tsanders-rh/exopolicy/internal/cloudconfig"
	"github.com/tsanders-rh/exopolicy/internal/policy"
	"github.com/tsanders-rh/exopolicy/pkg/types"
)

// ImageHandler selects images for instance types
type ImageHandler struct {
	registry *cloudconfig.Registry
	policy   *policy.Engine
}

// NewImageHandler creates a new image handler
func NewImageHandler(registry *cloudconfig.Registry, policyEngine *policy.Engine) *ImageHandler {
	return &ImageHandler{
		registry: registry,
		policy:   policyEngine,
	}
}

// ImageSelectRequest carries the cloud's image list and what to select.
// InstanceType takes precedence over Filters.
type ImageSelectRequest struct {
	Images       []types.Image             `json:"images" validate:"dive"`
	InstanceType string                    `json:"instance_type"`
	Version      string                    `json:"version"`
	Filters      *cloudconfig.ImageFilters `json:"filters"`
}

// ImageSelectResponse lists the selected and featured images
type ImageSelectResponse struct {
	Version  string        `json:"version,omitempty"`
	Images   []types.Image `json:"images"`
	Featured []types.Image `json:"featured"`
}

// Select handles POST /api/v1/clouds/:hostname/images. The selection and
// the featured list are computed from one snapshot.
func (h *ImageHandler) Select(c echo.Context) error {
	hostname := c.Param("hostname")

	var req ImageSelectRequest
	if err := c.Bind(&req); err != nil {
		return ErrorBadRequest(c, "Invalid request body: "+err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	cloud, ok := h.registry.Snapshot().Lookup(hostname)
	if !ok {
		return ErrorNotFound(c, "Cloud not found: "+hostname)
	}

	response := &ImageSelectResponse{
		Featured: h.policy.FeaturedImages(req.Images, cloud),
	}

	if req.InstanceType != "" {
		images, version, err := h.policy.SelectImagesFor(req.Images, cloud, req.InstanceType, req.Version)
		if err != nil {
			if errors.Is(err, policy.ErrInstanceTypeNotFound) {
				return ErrorNotFound(c, err.Error())
			}
			return ErrorInternal(c, err.Error())
		}
		response.Images = images
		response.Version = version.FriendlyName
	} else {
		filter := cloudconfig.ImageFilters{}
		if req.Filters != nil {
			filter = *req.Filters
		}
		response.Images = h.policy.FilterImagesFor(req.Images, cloud, filter)
	}

	return SuccessOK(c, response)
}

package api

import (
	"github.com/labstack/echo/v4"
	"github.com/tsanders-rh/exopolicy/internal/cloudconfig"
)

// CloudHandler handles cloud catalog endpoints
type CloudHandler struct {
	registry *cloudconfig.Registry
}

// NewCloudHandler creates a new cloud handler
func NewCloudHandler(registry *cloudconfig.Registry) *CloudHandler {
	return &CloudHandler{
		registry: registry,
	}
}

// CloudSummary represents a cloud in list responses
type CloudSummary struct {
	KeystoneHostname  string  `json:"keystone_hostname"`
	FriendlyName      string  `json:"friendly_name"`
	InstanceTypeCount int     `json:"instance_type_count"`
	FlavorGroupCount  int     `json:"flavor_group_count"`
	DesktopMessage    *string `json:"desktop_message,omitempty"`
}

func toCloudSummary(c *cloudconfig.CloudConfig) *CloudSummary {
	return &CloudSummary{
		KeystoneHostname:  c.KeystoneHostname,
		FriendlyName:      c.FriendlyName,
		InstanceTypeCount: len(c.InstanceTypes),
		FlavorGroupCount:  len(c.FlavorGroups),
		DesktopMessage:    c.DesktopMessage,
	}
}

// List handles GET /api/v1/clouds
func (h *CloudHandler) List(c echo.Context) error {
	params := ParsePaginationParams(c)
	clouds := h.registry.All()

	page := Paginate(clouds, params)
	response := make([]*CloudSummary, len(page))
	for i, cloud := range page {
		response[i] = toCloudSummary(cloud)
	}

	return SuccessPaginated(c, response, CalculatePagination(params.Page, params.PerPage, len(clouds)), nil)
}

// Get handles GET /api/v1/clouds/:hostname
func (h *CloudHandler) Get(c echo.Context) error {
	hostname := c.Param("hostname")

	cloud, ok := h.registry.Lookup(hostname)
	if !ok {
		return ErrorNotFound(c, "Cloud not found: "+hostname)
	}

	return SuccessOK(c, cloud)
}

// GetUserAppProxy handles GET /api/v1/clouds/:hostname/proxy?region=
func (h *CloudHandler) GetUserAppProxy(c echo.Context) error {
	hostname := c.Param("hostname")
	region := c.QueryParam("region")

	cloud, ok := h.registry.Lookup(hostname)
	if !ok {
		return ErrorNotFound(c, "Cloud not found: "+hostname)
	}

	proxy, ok := cloud.UserAppProxyFor(region)
	if !ok {
		return ErrorNotFound(c, "No application proxy for region: "+region)
	}

	return SuccessOK(c, map[string]string{
		"region":   region,
		"hostname": proxy,
	})
}

package api

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/tsanders-rh/exopolicy/internal/cloudconfig"
	"github.com/tsanders-rh/exopolicy/internal/policy"
	"github.com/tsanders-rh/exopolicy/pkg/types"
)

// PolicyHandler serves flavor-group matches and action verdicts
type PolicyHandler struct {
	registry *cloudconfig.Registry
	policy   *policy.Engine
}

// NewPolicyHandler creates a new policy handler
func NewPolicyHandler(registry *cloudconfig.Registry, policyEngine *policy.Engine) *PolicyHandler {
	return &PolicyHandler{
		registry: registry,
		policy:   policyEngine,
	}
}

// ActionRequest asks for the verdict on one flavor and, optionally, one action
type ActionRequest struct {
	FlavorName string             `json:"flavor_name" validate:"required"`
	Action     types.ServerAction `json:"action"`
}

// FlavorsRequest asks which flavors an instance-type version may use
type FlavorsRequest struct {
	Flavors      []types.Flavor `json:"flavors" validate:"dive"`
	InstanceType string         `json:"instance_type"`
	Version      string         `json:"version"`
}

// FlavorVerdict is one allowed flavor with its action restrictions
type FlavorVerdict struct {
	types.Flavor
	FlavorGroup       string               `json:"flavor_group,omitempty"`
	DisallowedActions []types.ServerAction `json:"disallowed_actions"`
}

// MatchFlavorGroup handles GET /api/v1/clouds/:hostname/flavor-groups/match?flavor=
func (h *PolicyHandler) MatchFlavorGroup(c echo.Context) error {
	hostname := c.Param("hostname")
	flavor := c.QueryParam("flavor")
	if flavor == "" {
		return ErrorBadRequest(c, "flavor query parameter is required")
	}

	cloud, ok := h.registry.Lookup(hostname)
	if !ok {
		return ErrorNotFound(c, "Cloud not found: "+hostname)
	}

	group, ok := policy.MatchGroup(flavor, cloud.FlavorGroups)
	if !ok {
		return SuccessOK(c, map[string]interface{}{
			"flavor_name": flavor,
			"matched":     false,
		})
	}

	return SuccessOK(c, map[string]interface{}{
		"flavor_name": flavor,
		"matched":     true,
		"group":       group,
	})
}

// CheckActions handles POST /api/v1/clouds/:hostname/actions
func (h *PolicyHandler) CheckActions(c echo.Context) error {
	hostname := c.Param("hostname")

	var req ActionRequest
	if err := c.Bind(&req); err != nil {
		return ErrorBadRequest(c, "Invalid request body: "+err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	decision, err := h.policy.Decide(hostname, req.FlavorName, req.Action)
	if err != nil {
		if errors.Is(err, policy.ErrCloudNotFound) {
			return ErrorNotFound(c, err.Error())
		}
		return ErrorInternal(c, err.Error())
	}

	recordActionDecision(hostname, decision.Allowed)
	return SuccessOK(c, decision)
}

// AllowedFlavors handles POST /api/v1/clouds/:hostname/flavors
func (h *PolicyHandler) AllowedFlavors(c echo.Context) error {
	hostname := c.Param("hostname")

	var req FlavorsRequest
	if err := c.Bind(&req); err != nil {
		return ErrorBadRequest(c, "Invalid request body: "+err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	cloud, ok := h.registry.Lookup(hostname)
	if !ok {
		return ErrorNotFound(c, "Cloud not found: "+hostname)
	}

	flavors := req.Flavors
	if req.InstanceType != "" {
		it, ok := cloud.InstanceType(req.InstanceType)
		if !ok {
			return ErrorNotFound(c, "Instance type not found: "+req.InstanceType)
		}

		version, ok := it.PrimaryVersion()
		if req.Version != "" {
			version, ok = it.Version(req.Version)
		}
		if !ok {
			return ErrorNotFound(c, "Instance type version not found: "+req.Version)
		}

		flavors = h.policy.AllowedFlavors(flavors, version)
	}

	response := make([]*FlavorVerdict, 0, len(flavors))
	for _, f := range flavors {
		verdict := &FlavorVerdict{
			Flavor:            f,
			DisallowedActions: h.policy.DisallowedActions(f.Name, cloud).Sorted(),
		}
		if group, ok := policy.MatchGroup(f.Name, cloud.FlavorGroups); ok {
			verdict.FlavorGroup = group.Title
		}
		response = append(response, verdict)
	}

	return SuccessOK(c, response)
}

package types

// ImageVisibility is the Glance visibility of a disk image
type ImageVisibility string

const (
	ImageVisibilityPrivate   ImageVisibility = "private"
	ImageVisibilityShared    ImageVisibility = "shared"
	ImageVisibilityCommunity ImageVisibility = "community"
	ImageVisibilityPublic    ImageVisibility = "public"
)

// Image is a disk image as reported by the cloud's image service.
// The engine never fetches images itself; callers supply them.
type Image struct {
	ID         string            `json:"id" yaml:"id" validate:"required"`
	Name       string            `json:"name" yaml:"name"`
	Visibility ImageVisibility   `json:"visibility" yaml:"visibility"`
	OSDistro   string            `json:"os_distro,omitempty" yaml:"os_distro,omitempty"`
	OSVersion  string            `json:"os_version,omitempty" yaml:"os_version,omitempty"`
	Status     string            `json:"status,omitempty" yaml:"status,omitempty"`
	SizeBytes  int64             `json:"size_bytes,omitempty" yaml:"size_bytes,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Flavor is a compute sizing template offered by a cloud
type Flavor struct {
	ID       string `json:"id" yaml:"id" validate:"required"`
	Name     string `json:"name" yaml:"name" validate:"required"`
	VCPUs    int    `json:"vcpus" yaml:"vcpus"`
	RAMMB    int    `json:"ram_mb" yaml:"ram_mb"`
	DiskGB   int    `json:"disk_gb" yaml:"disk_gb"`
	Disabled bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

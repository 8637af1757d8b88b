// Package imagefilter selects the disk images that belong to an instance-type
// version.
package imagefilter

import (
	"iter"
	"slices"

	"github.com/tsanders-rh/exopolicy/internal/cloudconfig"
	"github.com/tsanders-rh/exopolicy/pkg/types"
)

// Match yields, in input order, every image that is not excluded by the
// cloud-wide filter and satisfies every field set in filter. The sequence is
// lazy and may be ranged over any number of times.
func Match(images []types.Image, filter cloudconfig.ImageFilters, exclude *cloudconfig.MetadataFilter) iter.Seq[types.Image] {
	return func(yield func(types.Image) bool) {
		for _, img := range images {
			if Excluded(img, exclude) || !Matches(img, filter) {
				continue
			}
			if !yield(img) {
				return
			}
		}
	}
}

// MatchAll collects Match into a slice
func MatchAll(images []types.Image, filter cloudconfig.ImageFilters, exclude *cloudconfig.MetadataFilter) []types.Image {
	return slices.Collect(Match(images, filter, exclude))
}

// Excluded reports whether the cloud-wide exclusion filter drops the image
func Excluded(img types.Image, exclude *cloudconfig.MetadataFilter) bool {
	return exclude != nil && exclude.Matches(img.Metadata)
}

// Matches reports whether the image satisfies every field set in filter.
// Comparison is exact string equality.
func Matches(img types.Image, filter cloudconfig.ImageFilters) bool {
	if filter.IsEmpty() {
		return true
	}
	if filter.Name != nil && img.Name != *filter.Name {
		return false
	}
	if filter.UUID != nil && img.ID != *filter.UUID {
		return false
	}
	if filter.Visibility != nil && string(img.Visibility) != *filter.Visibility {
		return false
	}
	if filter.OSDistro != nil && img.OSDistro != *filter.OSDistro {
		return false
	}
	if filter.OSVersion != nil && img.OSVersion != *filter.OSVersion {
		return false
	}
	if filter.Metadata != nil && !filter.Metadata.Matches(img.Metadata) {
		return false
	}
	return true
}

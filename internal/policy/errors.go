package policy

import (
	"errors"
	"fmt"
)

// ErrCloudNotFound is returned when a Keystone hostname is not in the active
// snapshot
var ErrCloudNotFound = errors.New("cloud not found")

// ErrInstanceTypeNotFound is returned when an instance type or version name
// does not exist on a cloud
var ErrInstanceTypeNotFound = errors.New("instance type not found")

func cloudNotFound(keystoneHostname string) error {
	return fmt.Errorf("%w: %s", ErrCloudNotFound, keystoneHostname)
}

func instanceTypeNotFound(keystoneHostname, instanceType, version string) error {
	if version == "" {
		return fmt.Errorf("%w: %q on %s", ErrInstanceTypeNotFound, instanceType, keystoneHostname)
	}
	return fmt.Errorf("%w: %q version %q on %s", ErrInstanceTypeNotFound, instanceType, version, keystoneHostname)
}

// Package naming provides the Compute Engine resource naming conventions used
// when assembling instance descriptors. This includes partial resource paths
// (projects/{project}/zones/{zone}/...), fully qualified zone URIs, and the
// zone to region derivation.
//
// Every helper is a pure string transform so the results can be checked
// in isolation and reused by any component that needs a resource path.
package naming

import (
	"fmt"
	"strings"
)

const (
	// ComputeBaseURL is the prefix of fully qualified compute resource URIs.
	ComputeBaseURL = "https://www.googleapis.com/compute/v1/"

	// DefaultSubnetwork is the subnetwork every instance is attached to.
	DefaultSubnetwork = "default"
)

// RegionFromZone derives the region a zone belongs to by dropping the last
// hyphen-delimited token.
//
// Example: southamerica-east1-a → southamerica-east1
func RegionFromZone(zone string) string {
	parts := strings.Split(zone, "-")
	return strings.Join(parts[:len(parts)-1], "-")
}

// ZonePath returns the partial resource path of a zone.
// Format: projects/{project}/zones/{zone}
func ZonePath(project, zone string) string {
	return fmt.Sprintf("projects/%s/zones/%s", project, zone)
}

// ZoneURI returns the fully qualified URI of a zone, the form returned by
// the regions API in its zones list.
func ZoneURI(project, zone string) string {
	return ComputeBaseURL + ZonePath(project, zone)
}

// MachineTypePath returns the partial resource path of a machine type.
// Format: projects/{project}/zones/{zone}/machineTypes/{machineType}
func MachineTypePath(project, zone, machineType string) string {
	return fmt.Sprintf("%s/machineTypes/%s", ZonePath(project, zone), machineType)
}

// DiskTypePath returns the partial resource path of a disk type.
// Format: projects/{project}/zones/{zone}/diskTypes/{diskType}
func DiskTypePath(project, zone, diskType string) string {
	return fmt.Sprintf("%s/diskTypes/%s", ZonePath(project, zone), diskType)
}

// SubnetworkPath returns the partial resource path of a regional subnetwork.
// Format: projects/{project}/regions/{region}/subnetworks/{subnetwork}
func SubnetworkPath(project, region, subnetwork string) string {
	return fmt.Sprintf("projects/%s/regions/%s/subnetworks/%s", project, region, subnetwork)
}

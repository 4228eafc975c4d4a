package gcpconf

import (
	"fmt"
	"regexp"
)

var zoneURIPattern = regexp.MustCompile(`^.+/zones/(.+)$`)

// ZoneNameFromURI returns the zone name at the end of a zone URI such as
// https://www.googleapis.com/compute/v1/projects/p/zones/us-central1-a.
//
// An empty uri yields an empty name and no error. A non-empty uri without a
// /zones/ segment returns ErrMalformedURI.
func ZoneNameFromURI(uri string) (string, error) {
	if uri == "" {
		return "", nil
	}
	m := zoneURIPattern.FindStringSubmatch(uri)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrMalformedURI, uri)
	}
	return m[1], nil
}

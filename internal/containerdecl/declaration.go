// Package containerdecl renders the container declaration that
// Container-Optimized OS reads from the gce-container-declaration metadata
// key at boot to start the instance's single container.
//
// The konlet agent on the image parses this document with a fixed schema, so
// the field order, indentation and trailing notice are reproduced exactly as
// the Cloud Console and gcloud emit them.
package containerdecl

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// MetadataKey is the instance metadata key the declaration is stored under.
const MetadataKey = "gce-container-declaration"

// Notice is the trailer appended to every declaration.
const Notice = "# This container declaration format is not public API and may change without notice. Please\n" +
	"# use gcloud command-line tool or Google Cloud Console to run Containers on Google Compute Engine."

const template = `spec:
  containers:
    - name: %s
      image: %s
      stdin: false
      tty: false
  restartPolicy: %s

`

// Declaration is the input for a single-container declaration.
type Declaration struct {
	// Name is the container name; the instance name is used by convention.
	Name string
	// Image is the container image reference, e.g. gcr.io/proj/app:latest.
	Image string
	// RestartPolicy is one of Always, OnFailure, Never.
	RestartPolicy string
}

// Document is a parsed declaration.
type Document struct {
	Spec Spec `yaml:"spec"`
}

// Spec is the pod-like body of a declaration.
type Spec struct {
	Containers    []Container `yaml:"containers"`
	RestartPolicy string      `yaml:"restartPolicy"`
}

// Container is one container entry of a declaration.
type Container struct {
	Name  string `yaml:"name"`
	Image string `yaml:"image"`
	Stdin bool   `yaml:"stdin"`
	TTY   bool   `yaml:"tty"`
}

// Validate checks that every field needed to render the declaration is set
// and contains no line breaks.
func (d Declaration) Validate() error {
	fields := []struct{ key, value string }{
		{"name", d.Name},
		{"image", d.Image},
		{"restartPolicy", d.RestartPolicy},
	}
	for _, f := range fields {
		if f.value == "" {
			return fmt.Errorf("%s is required", f.key)
		}
		if strings.ContainsAny(f.value, "\r\n") {
			return fmt.Errorf("%s must be a single line, got %q", f.key, f.value)
		}
	}
	return nil
}

// Render returns the declaration text. It does not validate its input; call
// Validate first when the values come from users.
func Render(d Declaration) string {
	return fmt.Sprintf(template, d.Name, d.Image, d.RestartPolicy) + Notice
}

// Parse reads a declaration back, e.g. from an instance's metadata.
func Parse(text string) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return Document{}, fmt.Errorf("failed to parse container declaration: %w", err)
	}
	return doc, nil
}

// Image returns the image of the first container, or "" when there is none.
func (d Document) Image() string {
	if len(d.Spec.Containers) == 0 {
		return ""
	}
	return d.Spec.Containers[0].Image
}

package output

import (
	"bytes"
	"fmt"
	"path"
	"text/tabwriter"
	"time"

	compute "google.golang.org/api/compute/v1"

	"github.com/anewmanvs/gcpinfra/api/v1alpha1"
	"github.com/anewmanvs/gcpinfra/internal/containerdecl"
)

// TableFormatter formats objects as human-readable tables.
type TableFormatter struct {
	// NoHeaders omits the header row.
	NoHeaders bool
}

// FormatVM formats a ContainerVM as a table row.
func (f *TableFormatter) FormatVM(vm *v1alpha1.ContainerVM) (string, error) {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	if !f.NoHeaders {
		_, _ = fmt.Fprintln(w, "NAME\tPHASE\tZONE\tMACHINE\tIMAGE\tAGE")
	}

	zone := orDash(vm.Status.Zone)
	if zone == "-" {
		zone = orDash(vm.Spec.Zone)
	}
	age := "-"
	if !vm.CreationTimestamp.IsZero() {
		age = formatAge(time.Since(vm.CreationTimestamp.Time))
	}

	_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		vm.Name, orDash(string(vm.Status.Phase)), zone, orDash(vm.Spec.MachineType), orDash(vm.Spec.Container.Image), age)

	_ = w.Flush()
	return buf.String(), nil
}

// FormatDescriptor formats a descriptor as a table row.
func (f *TableFormatter) FormatDescriptor(inst *compute.Instance) (string, error) {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	if !f.NoHeaders {
		_, _ = fmt.Fprintln(w, "NAME\tZONE\tMACHINE\tDISK\tIMAGE\tSERVICE ACCOUNT")
	}

	disk := "-"
	if len(inst.Disks) > 0 && inst.Disks[0].InitializeParams != nil {
		p := inst.Disks[0].InitializeParams
		disk = fmt.Sprintf("%s %dGB", path.Base(p.DiskType), p.DiskSizeGb)
	}
	account := "-"
	if len(inst.ServiceAccounts) > 0 {
		account = inst.ServiceAccounts[0].Email
	}

	_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		inst.Name, lastSegment(inst.Zone), lastSegment(inst.MachineType), disk, descriptorImage(inst), account)

	_ = w.Flush()
	return buf.String(), nil
}

// descriptorImage returns the container image from the descriptor's
// container declaration.
func descriptorImage(inst *compute.Instance) string {
	if inst.Metadata == nil {
		return "-"
	}
	for _, item := range inst.Metadata.Items {
		if item.Key != containerdecl.MetadataKey || item.Value == nil {
			continue
		}
		doc, err := containerdecl.Parse(*item.Value)
		if err != nil {
			return "-"
		}
		return orDash(doc.Image())
	}
	return "-"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func lastSegment(p string) string {
	if p == "" {
		return "-"
	}
	return path.Base(p)
}

// formatAge formats a duration as a short age string such as 5s, 3h or 2w.
func formatAge(d time.Duration) string {
	if d < 0 {
		return "unknown"
	}

	seconds := int(d.Seconds())
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh", hours)
	}
	days := hours / 24
	if days < 7 {
		return fmt.Sprintf("%dd", days)
	}
	weeks := days / 7
	if weeks < 8 {
		return fmt.Sprintf("%dw", weeks)
	}
	if years := days / 365; years > 0 {
		return fmt.Sprintf("%dy", years)
	}
	return fmt.Sprintf("%dd", days)
}

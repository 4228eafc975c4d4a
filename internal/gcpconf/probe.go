package gcpconf

import (
	"context"
	"errors"
	"log/slog"

	compute "google.golang.org/api/compute/v1"
	"google.golang.org/api/googleapi"
)

// regionGetter is the compute call the probe needs.
//
// In production, this is satisfied by *gcpclient.ComputeService.
type regionGetter interface {
	RegionsGet(ctx context.Context, project, region string) (*compute.Region, error)
}

// probeDefaultZone returns the first zone URI listed for region, in provider
// order, or "" when none could be determined. It never fails.
func probeDefaultZone(ctx context.Context, svc regionGetter, project, region string, opts Options) string {
	ctx, cancel := context.WithTimeout(ctx, opts.probeTimeout())
	defer cancel()

	r, err := svc.RegionsGet(ctx, project, region)
	if err != nil {
		var ae *googleapi.Error
		if errors.As(err, &ae) {
			slog.Warn("Configuration works but is limited.",
				"component", "gcpconf", "region", region, "status", ae.Code, "error", ae.Message)
			opts.logf(ctx, "Region probe rejected.", "region", region, "body", ae.Body)
			return ""
		}
		opts.logf(ctx, "Failed to retrieve region information.", "region", region, "error", err)
		return ""
	}

	if len(r.Zones) == 0 {
		opts.logf(ctx, "No zone available for region.", "region", region)
		return ""
	}
	return r.Zones[0]
}

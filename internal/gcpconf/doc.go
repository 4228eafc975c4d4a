// Package gcpconf resolves the provider configuration every other gcpinfra
// component works from: service account credentials, the project they belong
// to, and a default region and zone.
//
// Resolution is expensive (it performs one call to the Compute Engine regions
// API), so a Provider constructs its Config once and hands the same pointer to
// every caller afterwards:
//
//	conf, err := gcpconf.GetOrCreate(ctx, gcpconf.Options{CredentialsPath: "/etc/gcp/auth.json"})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(conf.ProjectID, conf.DefaultZoneName)
//
// First success wins:
//
// Once a Provider holds a Config, later GetOrCreate calls return it unchanged
// even when they name a different credentials file. Only one configuration
// per Provider is supported; create a separate Provider when a second one is
// really needed. A failed construction (for example a missing credentials
// file) is not cached, so the next call tries again.
//
// Region probe:
//
// The default zone is the first zone the regions API lists for the default
// region. The probe is best effort: timeouts, transport errors, non-200
// replies and empty zone lists are logged and the Config falls back to
// southamerica-east1-a. A zone URI the provider returns in an unexpected shape
// is the one probe outcome that fails construction, with ErrMalformedURI.
package gcpconf

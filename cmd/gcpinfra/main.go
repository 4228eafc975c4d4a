package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anewmanvs/gcpinfra/internal/gcpconf"
	"github.com/anewmanvs/gcpinfra/internal/logging"
)

var (
	version = "dev"
	commit  = "unknown"
)

// credentialsEnvVar overrides the default credentials path when --credentials is not given.
const credentialsEnvVar = "GCPINFRA_CREDENTIALS"

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	credentials string
	endpoint    string
	verbose     bool
	logLevel    string
}

func (f *globalFlags) providerOptions() gcpconf.Options {
	return gcpconf.Options{
		CredentialsPath: f.credentials,
		Verbose:         f.verbose,
		Endpoint:        f.endpoint,
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "gcpinfra",
		Short: "gcpinfra - Container VMs on Google Compute Engine",
		Long: `gcpinfra creates Compute Engine instances that run a single container on
Container-Optimized OS, described by simple YAML resource files.

Credentials are read from a service account JSON key. The default location is
auth/auth.json under the installation directory; override it with
--credentials or the ` + credentialsEnvVar + ` environment variable.`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := flags.logLevel
			if flags.verbose && level == logging.LevelInfo {
				level = logging.LevelDebug
			}
			return logging.Configure(level)
		},
	}

	root.PersistentFlags().StringVar(&flags.credentials, "credentials", os.Getenv(credentialsEnvVar),
		"Path to the service account JSON key")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log provider probe details")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", logging.LevelInfo, "Log level: debug, info, warn, error")

	// Compute API base URL, for emulators and tests.
	root.PersistentFlags().StringVar(&flags.endpoint, "compute-endpoint", "", "")
	_ = root.PersistentFlags().MarkHidden("compute-endpoint")

	root.AddCommand(initCmd())
	root.AddCommand(createCmd(flags))
	root.AddCommand(renderCmd(flags))
	root.AddCommand(configCmd(flags))
	root.AddCommand(zoneNameCmd())

	return root
}

package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/extreg/internal/branding"
	"github.com/agentx-labs/extreg/internal/catalog"
	"github.com/agentx-labs/extreg/internal/config"
	"github.com/agentx-labs/extreg/internal/errutil"
	"github.com/agentx-labs/extreg/internal/logging"
	"github.com/agentx-labs/extreg/internal/registry"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// Persistent flag values.
var (
	configFile  string
	hostFlag    string
	modulePaths []string
	logFormat   string
	logLevel    string
)

// Populated by PersistentPreRunE before any command runs.
var (
	cfg      *config.Config
	settings *config.Settings
	logger   = slog.Default()
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Config file (default "+config.FilePath()+")")
	flags.StringVar(&hostFlag, "host", "", "Host module name (default "+branding.HostModule()+")")
	flags.StringSliceVar(&modulePaths, "module-path", nil, "Directory searched for installed modules (repeatable)")
	flags.StringVar(&logFormat, "log-format", "", "Log format: text or json")
	flags.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` resolves which installed version of an extension module should be
activated against which installed version of the host, and records that
decision as a link file in the host's registry root (<host>/` + branding.RegistryDir() + `).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.New(configFile)
		if err := cfg.BindFlags(cmd.Root().PersistentFlags()); err != nil {
			return err
		}
		s, err := cfg.Load()
		if err != nil {
			return err
		}
		settings = s
		logger = logging.SetDefault(logging.Options{
			Service: branding.CLIName(),
			Version: buildVersion,
			Format:  s.LogFormat,
			Level:   s.LogLevel,
			Writer:  cmd.ErrOrStderr(),
		})
		return nil
	},
}

// newRegistry builds a Registry from the loaded settings. Modules listed
// under "loaded" take precedence over installs found on the search paths.
func newRegistry() *registry.Registry {
	loaded := catalog.NewLoaded()
	for _, m := range settings.Loaded {
		loaded.Register(catalog.Candidate{Name: m.Name, Version: m.Version, BasePath: m.Path})
	}
	disk := catalog.NewDisk(settings.ModulePaths, catalog.WithDiskLogger(logger))

	return registry.New(
		registry.WithHost(settings.Host),
		registry.WithCatalog(catalog.Compose(loaded, disk)),
		registry.WithLogger(logger),
	)
}

// Execute runs the root command with build info injected via ldflags.
// Cancelling ctx aborts module discovery. Failures are logged once, with
// their error code when they carry one.
func Execute(ctx context.Context, version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		errutil.LogError(ctx, logger, "command failed", err)
		return err
	}
	return nil
}

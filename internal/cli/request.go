package cli

import (
	"github.com/spf13/cobra"

	"github.com/agentx-labs/extreg/internal/registry"
)

// requestFlags holds the version pattern flags shared by resolve, enable
// and disable.
type requestFlags struct {
	moduleVersion string
	hostVersion   string
}

func (f *requestFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.moduleVersion, "module-version", "", "Extension version or wildcard pattern (default: newest)")
	cmd.Flags().StringVar(&f.hostVersion, "host-version", "", "Host version or wildcard pattern (default: newest)")
}

func (f *requestFlags) request(module string) registry.Request {
	return registry.Request{
		Module:        module,
		ModuleVersion: f.moduleVersion,
		HostVersion:   f.hostVersion,
	}
}

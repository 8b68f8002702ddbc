package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/agentx-labs/extreg/internal/catalog"
	"github.com/agentx-labs/extreg/internal/registry"
)

type candidateView struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Path     string `json:"path"`
	Loaded   bool   `json:"loaded"`
	Requires string `json:"requires_host,omitempty"`
}

type resolutionView struct {
	Host         candidateView `json:"host"`
	Extension    candidateView `json:"extension"`
	RegistryRoot string        `json:"registry_root"`
	LinkPath     string        `json:"link_path"`
}

func newCandidateView(c catalog.Candidate) candidateView {
	return candidateView{
		Name:     c.Name,
		Version:  c.Version,
		Path:     c.BasePath,
		Loaded:   c.IsLoaded,
		Requires: c.HostConstraint,
	}
}

func newResolutionView(res *registry.Resolution) resolutionView {
	return resolutionView{
		Host:         newCandidateView(res.Host),
		Extension:    newCandidateView(res.Extension),
		RegistryRoot: res.RegistryRoot,
		LinkPath:     res.LinkPath,
	}
}

func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
}

func source(c catalog.Candidate) string {
	if c.IsLoaded {
		return "loaded"
	}
	return "installed"
}

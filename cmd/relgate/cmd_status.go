package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fbkclanna/relgate/internal/git"
	"github.com/fbkclanna/relgate/internal/release"
	"github.com/fbkclanna/relgate/internal/ui"
	"github.com/fbkclanna/relgate/internal/workspace"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the release state of changed workspaces",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	cmd.Flags().StringSlice("base", nil, "Base branch candidates (overrides base_branches)")
	return cmd
}

type workspaceStatus struct {
	Name      string   `json:"name"`
	Path      string   `json:"path"`
	Version   string   `json:"version,omitempty"`
	State     string   `json:"state"`
	Target    string   `json:"target,omitempty"`
	DependsOn []string `json:"depends_on,omitempty"`
}

type statusReport struct {
	Base       string            `json:"base"`
	BaseRef    string            `json:"base_ref"`
	Files      int               `json:"files"`
	Workspaces []workspaceStatus `json:"workspaces"`
}

func runStatus(cmd *cobra.Command, _ []string) error {
	root, _ := cmd.Flags().GetString("root")
	base, _ := cmd.Flags().GetStringSlice("base")
	asJSON, _ := cmd.Flags().GetBool("json")

	log := loggerFor(cmd)
	defer func() { _ = log.Sync() }()

	ev, err := evaluate(root, base, log)
	if err != nil {
		return err
	}
	report := collectStatus(ev)

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	tbl := ui.NewTable(out, "WORKSPACE", "PATH", "VERSION", "STATE", "TARGET", "DEPENDS ON")
	for _, s := range report.Workspaces {
		tbl.Row(s.Name, s.Path, s.Version, s.State, s.Target, strings.Join(s.DependsOn, ", "))
	}
	if err := tbl.Flush(); err != nil {
		return err
	}
	if tbl.Len() == 0 {
		_, _ = fmt.Fprintf(out, "No workspace changed since %s (%s).\n", git.ShortHash(report.Base), report.BaseRef)
	}
	return nil
}

// collectStatus lists impacted workspaces first, then the dependents that
// must be decided because of them. A workspace that is both is listed once.
func collectStatus(ev *evaluation) statusReport {
	report := statusReport{
		Base:       ev.cs.Base.Hash,
		BaseRef:    ev.cs.Base.Ref,
		Files:      len(ev.cs.Files),
		Workspaces: []workspaceStatus{},
	}
	index := make(map[workspace.Locator]int)
	for _, w := range ev.impacted {
		s := workspaceStatus{Name: w.Name, Path: w.RelDir, Version: w.Version()}
		switch ev.status.Outcome(w) {
		case release.OutcomeDecided:
			s.State = "decided"
			s.Target = w.Manifest.TargetVersion()
		case release.OutcomeDeclined:
			s.State = "declined"
		case release.OutcomeUndecided:
			s.State = "undecided"
		default:
			s.State = "unversioned"
		}
		index[w.Locator] = len(report.Workspaces)
		report.Workspaces = append(report.Workspaces, s)
	}
	for _, d := range release.GroupDependents(ev.pairs) {
		deps := workspaceNames(d.Dependencies)
		if i, ok := index[d.Workspace.Locator]; ok {
			report.Workspaces[i].DependsOn = deps
			continue
		}
		report.Workspaces = append(report.Workspaces, workspaceStatus{
			Name:      d.Workspace.Name,
			Path:      d.Workspace.RelDir,
			Version:   d.Workspace.Version(),
			State:     "dependent",
			DependsOn: deps,
		})
	}
	return report
}

func workspaceNames(ws []*workspace.Workspace) []string {
	names := make([]string, 0, len(ws))
	for _, w := range ws {
		names = append(names, w.Name)
	}
	return names
}

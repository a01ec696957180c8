package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fbkclanna/relgate/internal/manifest"
	"github.com/fbkclanna/relgate/internal/release"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version <strategy|version>",
		Short: "Record a release decision for the current workspace",
		Long: `Records a release decision for the workspace containing the current
directory (or --root). The argument is one of decline, major, minor, patch,
prerelease, or an explicit semantic version.`,
		Args: cobra.ExactArgs(1),
		RunE: runVersion,
	}
}

func runVersion(cmd *cobra.Command, args []string) error {
	root, _ := cmd.Flags().GetString("root")
	dir, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}

	ctx, err := loadProject(dir)
	if err != nil {
		return err
	}
	w := ctx.Graph.Owner(dir)
	if w == nil {
		return fmt.Errorf("%s is not inside a workspace", dir)
	}

	pkg := w.Manifest
	if s, perr := release.ParseStrategy(args[0]); perr == nil {
		if s == release.Undecided {
			return fmt.Errorf("nothing to record for strategy %q", s)
		}
		err = release.Record(pkg, s)
	} else {
		err = release.RecordVersion(pkg, args[0])
	}
	if err != nil {
		return err
	}
	if err := manifest.SaveRelease(w.ManifestPath(), pkg); err != nil {
		return err
	}

	target := pkg.TargetVersion()
	if target == pkg.Version {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: declined release (stays at %s)\n", w.Name, pkg.Version)
		return nil
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s -> %s\n", w.Name, pkg.Version, target)
	return nil
}

package release

import (
	"fmt"
	"io"

	"github.com/fbkclanna/relgate/internal/changeset"
	"github.com/fbkclanna/relgate/internal/git"
	"github.com/fbkclanna/relgate/internal/ui"
)

// Report writes the diagnostics of a non-interactive check and returns
// true when nothing is left to decide.
func Report(out io.Writer, p ui.Palette, cs *changeset.ChangeSet, st Status, pairs []Pair) bool {
	_, _ = fmt.Fprintf(out, "Your branch diverged from %s (%s) on %s\n",
		p.Strong(git.ShortHash(cs.Base.Hash)), cs.Base.Title, cs.Base.Ref)
	if len(cs.Files) == 0 {
		_, _ = fmt.Fprintln(out, "No files changed since then.")
	} else {
		_, _ = fmt.Fprintln(out, "Changed files since then:")
		for _, f := range cs.Files {
			_, _ = fmt.Fprintf(out, "  %s\n", p.Dim(cs.Rel(f)))
		}
	}
	_, _ = fmt.Fprintln(out)

	for _, w := range st.Undecided {
		_, _ = fmt.Fprintf(out, "%s %s has been modified but has no release strategy attached\n",
			p.Warn("!"), p.Strong(w.Name))
	}
	for _, pair := range pairs {
		_, _ = fmt.Fprintf(out, "%s %s has no release strategy attached, but depends on %s which is planned for release\n",
			p.Warn("!"), p.Strong(pair.Dependent.Name), p.Strong(pair.Dependency.Name))
	}

	clean := len(st.Undecided) == 0 && len(pairs) == 0
	if clean {
		_, _ = fmt.Fprintln(out, p.OK("Every changed workspace has a release decision."))
	} else {
		_, _ = fmt.Fprintln(out, "Run with --interactive to record the missing decisions.")
	}
	return clean
}

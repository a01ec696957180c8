package release

import "github.com/fbkclanna/relgate/internal/workspace"

// Row is one workspace awaiting a decision in an interactive session.
type Row struct {
	Workspace *workspace.Workspace
	// DependsOn lists the decided dependencies that surfaced the row.
	// It is empty for workspaces that changed themselves.
	DependsOn []*workspace.Workspace
	Strategy  Strategy
	Options   []Strategy
}

// Decision is a strategy chosen for a workspace.
type Decision struct {
	Workspace *workspace.Workspace
	Strategy  Strategy
}

// Session holds the state of an interactive decision run. It is not safe
// for concurrent use; one event loop owns it.
type Session struct {
	status    Status
	graph     *workspace.Graph
	decisions map[workspace.Locator]Strategy
	active    workspace.Locator
}

// NewSession starts a session with the cursor on the first row.
func NewSession(status Status, graph *workspace.Graph) *Session {
	s := &Session{
		status:    status,
		graph:     graph,
		decisions: make(map[workspace.Locator]Strategy),
	}
	s.Rows()
	return s
}

// Rows derives the current rows: undecided workspaces first, then every
// dependent surfaced by the decisions made so far. Workspaces the user has
// touched stay listed so rows do not vanish while being edited. If the
// active row disappeared, the cursor moves to the first row.
func (s *Session) Rows() []Row {
	decided := append([]*workspace.Workspace(nil), s.status.Decided...)
	declined := append([]*workspace.Workspace(nil), s.status.Declined...)
	exclude := make(map[workspace.Locator]bool, len(s.decisions))
	for _, w := range s.graph.Workspaces() {
		d, ok := s.decisions[w.Locator]
		if !ok {
			continue
		}
		exclude[w.Locator] = true
		if d == Decline {
			declined = append(declined, w)
		} else {
			decided = append(decided, w)
		}
	}

	rows := make([]Row, 0, len(s.status.Undecided))
	index := make(map[workspace.Locator]int)
	for _, w := range s.status.Undecided {
		index[w.Locator] = len(rows)
		rows = append(rows, s.row(w))
	}
	for _, d := range GroupDependents(Propagate(decided, declined, s.graph, exclude)) {
		if i, ok := index[d.Workspace.Locator]; ok {
			rows[i].DependsOn = d.Dependencies
			continue
		}
		r := s.row(d.Workspace)
		r.DependsOn = d.Dependencies
		index[d.Workspace.Locator] = len(rows)
		rows = append(rows, r)
	}

	if _, ok := index[s.active]; !ok {
		s.active = ""
		if len(rows) > 0 {
			s.active = rows[0].Workspace.Locator
		}
	}
	return rows
}

func (s *Session) row(w *workspace.Workspace) Row {
	return Row{
		Workspace: w,
		Strategy:  s.Decision(w.Locator),
		Options:   StrategiesFor(w.Version()),
	}
}

// Active returns the locator of the row holding the cursor, "" when there
// are no rows.
func (s *Session) Active() workspace.Locator { return s.active }

// MoveCursor moves the cursor delta rows, wrapping around the current rows.
func (s *Session) MoveCursor(delta int) {
	rows := s.Rows()
	if len(rows) == 0 {
		return
	}
	i := 0
	for j, r := range rows {
		if r.Workspace.Locator == s.active {
			i = j
			break
		}
	}
	n := len(rows)
	s.active = rows[((i+delta)%n+n)%n].Workspace.Locator
}

// CycleDecision moves the active row's strategy delta steps through the
// strategies offered for it, wrapping around.
func (s *Session) CycleDecision(delta int) {
	for _, r := range s.Rows() {
		if r.Workspace.Locator == s.active {
			s.Set(r.Workspace, Cycle(r.Strategy, r.Options, delta))
			return
		}
	}
}

// Set records strategy for w. Undecided removes the entry.
func (s *Session) Set(w *workspace.Workspace, strategy Strategy) {
	if strategy == Undecided {
		delete(s.decisions, w.Locator)
		return
	}
	s.decisions[w.Locator] = strategy
}

// Decision returns the strategy chosen for l, Undecided when none.
func (s *Session) Decision(l workspace.Locator) Strategy {
	if d, ok := s.decisions[l]; ok {
		return d
	}
	return Undecided
}

// Decisions returns a copy of the decision map. It never holds Undecided.
func (s *Session) Decisions() map[workspace.Locator]Strategy {
	m := make(map[workspace.Locator]Strategy, len(s.decisions))
	for k, v := range s.decisions {
		m[k] = v
	}
	return m
}

// Plan returns the decisions to apply, in workspace declaration order.
func (s *Session) Plan() []Decision {
	var plan []Decision
	for _, w := range s.graph.Workspaces() {
		if d, ok := s.decisions[w.Locator]; ok {
			plan = append(plan, Decision{Workspace: w, Strategy: d})
		}
	}
	return plan
}

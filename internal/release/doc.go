// Package release decides which workspaces need a release decision.
//
// Classify sorts changed workspaces into decided, undecided and declined by
// comparing the decision nonce in each manifest with the nonce recorded at
// the baseline. Propagate surfaces public dependents of decided workspaces.
// It only looks one hop away; deeper dependents appear once their direct
// dependency is decided and Propagate runs again, which is what Session does
// after every decision. Report and ApplyAll are the two ways a run ends.
package release

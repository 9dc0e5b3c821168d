// Package pipeline sequences the fetch, merge, resolve, commit, and push
// phases that integrate remote changes without human review.
package pipeline

// Phase identifies a stage of the pipeline. Phases are strictly sequential;
// the Result records the last phase the run completed.
type Phase string

// Pipeline phases in execution order.
const (
	PhaseStart     Phase = "start"
	PhasePreflight Phase = "preflight"
	PhaseFetch     Phase = "fetch"
	PhaseMerge     Phase = "merge"
	PhaseResolve   Phase = "resolve"
	PhaseCommit    Phase = "commit"
	PhasePush      Phase = "push"
	PhaseDone      Phase = "done"
)

// Result describes the outcome of a single pipeline run. Entities here are
// transient; the repository itself is the durable store of truth.
type Result struct {
	// RunID uniquely identifies this run in log output.
	RunID string `json:"run_id"`
	// Branch is the local branch the run integrated into.
	Branch string `json:"branch"`
	// Phase is the last phase the run completed.
	Phase Phase `json:"phase"`
	// FirstPublish is true when no tracking reference existed and the branch
	// was pushed directly without a merge.
	FirstPublish bool `json:"first_publish"`
	// CleanMerge is true when the merge completed without conflicts.
	CleanMerge bool `json:"clean_merge"`
	// ResolvedFiles lists the conflicted paths resolved, in resolution order.
	ResolvedFiles []string `json:"resolved_files,omitempty"`
	// Committed is true when a conflict-resolution commit was created.
	Committed bool `json:"committed"`
	// Duration is the wall-clock run time, formatted like "1.2s".
	Duration string `json:"duration"`
}

// Package update is the self-update collaborator: it compares the local file
// tree against a remote git reference and replaces drifted files. The command
// layer only triggers Check/Sync and reports; nothing in here feeds back into
// dispatch.
package update

import "context"

// Status is the outcome of a dry check.
type Status struct {
	UpToDate bool
	Changed  []string // files whose content differs
	Added    []string // files present remotely but not locally
}

// Report summarizes an applied sync.
type Report struct {
	Updated int
	Added   int
}

// Syncer is the opaque sync contract the update command consumes.
type Syncer interface {
	Check(ctx context.Context) (*Status, error)
	Sync(ctx context.Context) (*Report, error)
}

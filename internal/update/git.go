package update

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/rs/zerolog"
)

// GitSyncer clones the reference repository into a temp dir and diffs it
// against the local tree by content hash.
type GitSyncer struct {
	RepoURL  string
	LocalDir string
	log      zerolog.Logger
}

func NewGitSyncer(repoURL, localDir string, log zerolog.Logger) *GitSyncer {
	return &GitSyncer{
		RepoURL:  repoURL,
		LocalDir: localDir,
		log:      log.With().Str("component", "update").Logger(),
	}
}

func (g *GitSyncer) Check(ctx context.Context) (*Status, error) {
	remote, cleanup, err := g.clone(ctx)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	diff, err := diffTrees(g.LocalDir, remote)
	if err != nil {
		return nil, err
	}

	return &Status{
		UpToDate: len(diff.Changed) == 0 && len(diff.Added) == 0,
		Changed:  diff.Changed,
		Added:    diff.Added,
	}, nil
}

func (g *GitSyncer) Sync(ctx context.Context) (*Report, error) {
	remote, cleanup, err := g.clone(ctx)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	diff, err := diffTrees(g.LocalDir, remote)
	if err != nil {
		return nil, err
	}

	for _, rel := range append(append([]string{}, diff.Changed...), diff.Added...) {
		if err := copyFile(filepath.Join(remote, rel), filepath.Join(g.LocalDir, rel)); err != nil {
			return nil, fmt.Errorf("apply %s: %w", rel, err)
		}
		g.log.Info().Str("file", rel).Msg("updated")
	}

	return &Report{Updated: len(diff.Changed), Added: len(diff.Added)}, nil
}

// clone fetches a shallow copy of the reference repo. The caller must run the
// returned cleanup.
func (g *GitSyncer) clone(ctx context.Context) (string, func(), error) {
	if g.RepoURL == "" {
		return "", nil, fmt.Errorf("no update repository configured")
	}

	dir, err := os.MkdirTemp("", "botsync-*")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { os.RemoveAll(dir) }

	cmd := exec.CommandContext(ctx, "git", "clone", "--depth", "1", g.RepoURL, dir)
	if out, err := cmd.CombinedOutput(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("git clone: %w: %s", err, out)
	}
	return dir, cleanup, nil
}

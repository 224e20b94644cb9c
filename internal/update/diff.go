package update

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// skipNames are never compared or replaced: VCS internals, local secrets, and
// runtime state must survive an update untouched.
var skipNames = map[string]bool{
	".git":         true,
	".env":         true,
	"node_modules": true,
	"data":         true,
	"session":      true,
	"logs":         true,
}

type treeDiff struct {
	Changed []string
	Added   []string
}

// diffTrees compares remote against local by SHA-256. Files only present
// locally are left alone; an update adds and replaces, it never deletes.
func diffTrees(localDir, remoteDir string) (*treeDiff, error) {
	remoteHashes, err := hashTree(remoteDir)
	if err != nil {
		return nil, err
	}
	localHashes, err := hashTree(localDir)
	if err != nil {
		return nil, err
	}

	diff := &treeDiff{}
	for rel, remoteHash := range remoteHashes {
		localHash, ok := localHashes[rel]
		switch {
		case !ok:
			diff.Added = append(diff.Added, rel)
		case localHash != remoteHash:
			diff.Changed = append(diff.Changed, rel)
		}
	}
	sort.Strings(diff.Changed)
	sort.Strings(diff.Added)
	return diff, nil
}

// hashTree maps slash-separated relative paths to content hashes.
func hashTree(root string) (map[string]string, error) {
	hashes := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipNames[d.Name()] && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if skipNames[d.Name()] {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		sum, err := hashFile(path)
		if err != nil {
			return err
		}
		hashes[strings.ReplaceAll(rel, string(filepath.Separator), "/")] = sum
		return nil
	})
	if os.IsNotExist(err) {
		return hashes, nil
	}
	return hashes, err
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

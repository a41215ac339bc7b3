package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/crate/internal/logger"
	"github.com/MrSnakeDoc/crate/internal/store"
	"github.com/MrSnakeDoc/crate/internal/utils"
)

// Build lists the repository and returns one Entry per artifact ending in
// ext, in the repository's enumeration order. Every digest is computed from
// the bytes on disk at call time.
func Build(ctx context.Context, repo store.Repository, ext string) ([]Entry, error) {
	if ext == "" {
		ext = DefaultExtension
	}

	names, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list store: %w", err)
	}
	names = utils.Filter(names, func(n string) bool { return strings.HasSuffix(n, ext) })

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		sum, err := hashArtifact(ctx, repo, name)
		if errors.Is(err, store.ErrNotFound) {
			// removed between List and Open
			logger.Debug("skipping vanished artifact %s", name)
			continue
		}
		if err != nil {
			return nil, err
		}

		entries = append(entries, Entry{
			PackageName: name,
			SHA256:      sum,
			Version:     utils.ParseArtifactVersion(name),
		})
	}
	return entries, nil
}

func hashArtifact(ctx context.Context, repo store.Repository, name string) (sum string, err error) {
	rc, _, err := repo.Open(ctx, name)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close failed: %w", cerr)
		}
	}()

	sum, err = utils.SHA256Reader(rc)
	if err != nil {
		return "", fmt.Errorf("hash %s: %w", name, err)
	}
	return sum, nil
}

// Latest keeps the highest-versioned entry per package stem, preserving the
// order in which each stem first appears.
func Latest(entries []Entry) []Entry {
	best := make(map[string]int, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		stem := utils.PackageStem(e.PackageName)
		i, seen := best[stem]
		if !seen {
			best[stem] = len(out)
			out = append(out, e)
			continue
		}
		if newer, err := utils.IsNewerVersion(e.Version, out[i].Version); err == nil && newer {
			out[i] = e
		}
	}
	return out
}

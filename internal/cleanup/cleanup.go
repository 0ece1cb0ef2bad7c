// Package cleanup prunes old downloaded sketches from the output directory.
package cleanup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/sketchify-dev/sketchify/internal/download"
)

// Sketch is a downloaded sketch found in the output directory.
type Sketch struct {
	Name  string
	Taken time.Time
	Size  int64
}

// List returns the downloaded sketches in dir, oldest first. Files that do
// not follow the download naming scheme are ignored. A missing dir yields
// no sketches.
func List(dir string) ([]Sketch, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading output directory: %w", err)
	}

	var sketches []Sketch
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		t, ok := download.ParseFilename(entry.Name())
		if !ok {
			continue
		}
		var size int64
		if info, err := entry.Info(); err == nil {
			size = info.Size()
		}
		sketches = append(sketches, Sketch{Name: entry.Name(), Taken: t, Size: size})
	}

	sort.Slice(sketches, func(i, j int) bool {
		return sketches[i].Taken.Before(sketches[j].Taken)
	})
	return sketches, nil
}

// PruneByAge removes sketches older than maxAgeDays.
// If dryRun is true, nothing is deleted; the function only returns the
// sketches that would be removed.
func PruneByAge(dir string, maxAgeDays int, dryRun bool) ([]Sketch, error) {
	sketches, err := List(dir)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().AddDate(0, 0, -maxAgeDays)
	var old []Sketch
	for _, s := range sketches {
		if s.Taken.Before(cutoff) {
			old = append(old, s)
		}
	}
	return remove(dir, old, dryRun)
}

// PruneKeepRecent removes all sketches except the most recent keep.
// If dryRun is true, nothing is deleted.
func PruneKeepRecent(dir string, keep int, dryRun bool) ([]Sketch, error) {
	sketches, err := List(dir)
	if err != nil {
		return nil, err
	}
	if keep < 0 {
		keep = 0
	}
	if len(sketches) <= keep {
		return nil, nil
	}
	return remove(dir, sketches[:len(sketches)-keep], dryRun)
}

func remove(dir string, sketches []Sketch, dryRun bool) ([]Sketch, error) {
	var pruned []Sketch
	for _, s := range sketches {
		if !dryRun {
			if err := os.Remove(filepath.Join(dir, s.Name)); err != nil {
				return pruned, fmt.Errorf("removing %s: %w", s.Name, err)
			}
		}
		pruned = append(pruned, s)
	}
	return pruned, nil
}

// Package output persists the published data bundle: one JSON file per
// resort (which doubles as the last-known-good store for the next run),
// an aggregated latest.json, and summary.json. All writes are atomic.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mweston/tahoe-conditions/internal/logging"
	"github.com/mweston/tahoe-conditions/internal/models"
)

// Store reads and writes the output directory tree.
type Store struct {
	outputDir  string
	resortsDir string
}

// NewStore creates a store rooted at outputDir; per-resort files live
// under outputDir/resorts.
func NewStore(outputDir string) *Store {
	return &Store{
		outputDir:  outputDir,
		resortsDir: filepath.Join(outputDir, "resorts"),
	}
}

// LoadResort returns the previously published record for a slug, or nil
// when none exists or the file no longer parses. It never fails the
// caller: last-known-good is best-effort by design.
func (s *Store) LoadResort(slug string) *models.ResortConditions {
	path := filepath.Join(s.resortsDir, slug+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logging.S().Warnw("failed to read existing resort data", "slug", slug, "error", err)
		}
		return nil
	}

	var record models.ResortConditions
	if err := json.Unmarshal(data, &record); err != nil {
		logging.S().Warnw("failed to parse existing resort data", "slug", slug, "error", err)
		return nil
	}
	return &record
}

// WriteAll persists every resort record plus the aggregate files.
func (s *Store) WriteAll(resorts []models.ResortConditions, summary models.Summary) error {
	if err := os.MkdirAll(s.resortsDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, resort := range resorts {
		path := filepath.Join(s.resortsDir, resort.Slug+".json")
		if err := writeJSONAtomic(path, resort); err != nil {
			return fmt.Errorf("failed to write resort %s: %w", resort.Slug, err)
		}
	}

	latest := struct {
		GeneratedAtUTC time.Time                 `json:"generated_at_utc"`
		Resorts        []models.ResortConditions `json:"resorts"`
	}{
		GeneratedAtUTC: time.Now().UTC(),
		Resorts:        resorts,
	}
	if err := writeJSONAtomic(filepath.Join(s.outputDir, "latest.json"), latest); err != nil {
		return fmt.Errorf("failed to write latest.json: %w", err)
	}

	if err := writeJSONAtomic(filepath.Join(s.outputDir, "summary.json"), summary); err != nil {
		return fmt.Errorf("failed to write summary.json: %w", err)
	}

	logging.S().Infow("wrote output bundle", "dir", s.outputDir, "resorts", len(resorts))
	return nil
}

// writeJSONAtomic writes via a temp file in the target directory
// followed by a rename, so readers never observe a partial file.
func writeJSONAtomic(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"_*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	return os.Rename(tmpPath, path)
}

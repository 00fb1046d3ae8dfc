// Package registry loads the resort roster from resorts.yaml.
package registry

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/mweston/tahoe-conditions/internal/logging"
	"github.com/mweston/tahoe-conditions/internal/models"
)

type registryFile struct {
	Resorts []models.ResortConfig `yaml:"resorts"`
}

var validate = validator.New()

// Load reads and validates the resort registry. Entries failing
// validation are skipped with a warning rather than failing the load;
// a missing or unparseable file is an error.
func Load(path string) ([]models.ResortConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resort registry %s: %w", path, err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse resort registry %s: %w", path, err)
	}

	log := logging.S()
	resorts := make([]models.ResortConfig, 0, len(file.Resorts))
	for _, resort := range file.Resorts {
		if err := validate.Struct(resort); err != nil {
			log.Warnw("invalid resort config, skipping", "slug", resort.Slug, "error", err)
			continue
		}
		resorts = append(resorts, resort)
	}

	log.Infow("loaded resort registry", "path", path, "resorts", len(resorts))
	return resorts, nil
}

// LoadEnabled returns only the enabled registry entries.
func LoadEnabled(path string) ([]models.ResortConfig, error) {
	resorts, err := Load(path)
	if err != nil {
		return nil, err
	}

	enabled := resorts[:0]
	for _, r := range resorts {
		if r.Enabled {
			enabled = append(enabled, r)
		}
	}
	return enabled, nil
}

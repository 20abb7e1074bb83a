package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kylasweb/IOC-Spinwheel/internal/domain"
	"github.com/kylasweb/IOC-Spinwheel/internal/validation"
)

// Seed is the on-disk catalog document
type Seed struct {
	Config  domain.GameConfig         `json:"config" yaml:"config"`
	Prizes  []domain.Prize            `json:"prizes" yaml:"prizes"`
	Rewards []domain.RedeemableReward `json:"rewards" yaml:"rewards"`
}

// LoadFile reads a YAML or JSON seed, checks it against the catalog schema
// and fills omitted sections from the defaults.
func LoadFile(path string, schemas validation.SchemaValidator) (Seed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read catalog %s: %w", path, err)
	}

	asJSON := raw
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".json" {
		if asJSON, err = yamlToJSON(raw); err != nil {
			return Seed{}, fmt.Errorf("parse catalog %s: %w", path, err)
		}
	}
	if schemas != nil {
		if err := schemas.ValidateBytes(asJSON, validation.CatalogSchema); err != nil {
			return Seed{}, fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, path, err)
		}
	}

	var doc struct {
		Config  *domain.GameConfig        `json:"config"`
		Prizes  []domain.Prize            `json:"prizes"`
		Rewards []domain.RedeemableReward `json:"rewards"`
	}
	if err := json.Unmarshal(asJSON, &doc); err != nil {
		return Seed{}, fmt.Errorf("decode catalog %s: %w", path, err)
	}

	seed := DefaultSeed()
	seed.Prizes = doc.Prizes
	if doc.Config != nil {
		seed.Config = *doc.Config
	}
	if len(doc.Rewards) > 0 {
		seed.Rewards = doc.Rewards
	}
	return seed, nil
}

// yamlToJSON normalizes a YAML document so one schema and one set of
// json tags cover both formats.
func yamlToJSON(raw []byte) ([]byte, error) {
	var doc interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

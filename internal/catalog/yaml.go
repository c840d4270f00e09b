package catalog

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a full catalog from a YAML file, replacing the built-in
// defaults. The file holds a top-level `constraints` list of entries in
// catalog order.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: read %s", path)
	}

	var doc struct {
		Constraints []ConstraintConfig `yaml:"constraints"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrapf(err, "catalog: parse %s", path)
	}
	if len(doc.Constraints) == 0 {
		return nil, eris.Errorf("catalog: %s defines no constraints", path)
	}

	return New(doc.Constraints)
}

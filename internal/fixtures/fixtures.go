// Package fixtures provides the seed catalog: an embedded default dataset and a
// loader for operator-supplied JSON or YAML files.
package fixtures

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	authModels "github.com/lMelkorl/b2bminiui/auth/models"
	orderModels "github.com/lMelkorl/b2bminiui/orders/models"
	productModels "github.com/lMelkorl/b2bminiui/products/models"
)

//go:embed data.json
var defaultData []byte

// Dataset is one seed snapshot.
type Dataset struct {
	Users    []authModels.User       `json:"users" yaml:"users"`
	Products []productModels.Product `json:"products" yaml:"products"`
	Orders   []orderModels.Order     `json:"orders" yaml:"orders"`
}

// Default returns a fresh copy of the embedded dataset.
func Default() (*Dataset, error) {
	return decodeJSON(defaultData)
}

// Load returns the dataset at path, or the embedded one when path is empty.
// The format follows the file extension: .json, .yaml or .yml.
func Load(path string) (*Dataset, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return decodeJSON(data)
	case ".yaml", ".yml":
		return decodeYAML(data)
	default:
		return nil, fmt.Errorf("unsupported fixture format %q", filepath.Ext(path))
	}
}

func decodeJSON(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decode fixture json: %w", err)
	}
	return &ds, ds.validate()
}

func decodeYAML(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decode fixture yaml: %w", err)
	}
	return &ds, ds.validate()
}

// validate rejects duplicate ids, which would make lookups ambiguous.
func (d *Dataset) validate() error {
	seen := map[string]bool{}
	for _, p := range d.Products {
		if p.ID == "" || seen["p:"+p.ID] {
			return fmt.Errorf("fixture product id %q is empty or duplicated", p.ID)
		}
		seen["p:"+p.ID] = true
	}
	for _, o := range d.Orders {
		if o.ID == "" || seen["o:"+o.ID] {
			return fmt.Errorf("fixture order id %q is empty or duplicated", o.ID)
		}
		seen["o:"+o.ID] = true
	}
	for _, u := range d.Users {
		if u.Email == "" || seen["u:"+u.Email] {
			return fmt.Errorf("fixture user email %q is empty or duplicated", u.Email)
		}
		seen["u:"+u.Email] = true
	}
	return nil
}

package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/lMelkorl/b2bminiui/internal/pkg/log"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { log.SetOutput(nil) })

	out := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestQueryProducts(t *testing.T) {
	out, err := run(t, "query", "products", "--category", "Kolye", "--sort", "price", "--order", "asc")
	require.NoError(t, err)

	var got []struct {
		ID    string  `json:"id"`
		Price float64 `json:"price"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 3)
	assert.Equal(t, []float64{2100, 12500, 21900}, []float64{got[0].Price, got[1].Price, got[2].Price})
}

func TestQueryProductsRejectsUnknownSort(t *testing.T) {
	_, err := run(t, "query", "products", "--sort", "color")
	require.Error(t, err)
}

func TestQueryOrdersDefaultsToNewestFirst(t *testing.T) {
	out, err := run(t, "query", "orders", "--limit", "2")
	require.NoError(t, err)

	var got []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "ORD-1008", got[0].ID)
	assert.Equal(t, "ORD-1007", got[1].ID)
}

func TestQueryOrdersYAMLOutput(t *testing.T) {
	out, err := run(t, "--format", "yaml", "query", "orders", "--status", "Kargoda")
	require.NoError(t, err)

	var got []map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "ORD-1006", got[0]["id"])
	assert.Equal(t, "ORD-1002", got[1]["id"])
}

func TestSummary(t *testing.T) {
	out, err := run(t, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, `"totalRevenue": 243250`)
	assert.Contains(t, out, `"lowStockProducts": 6`)
}

func TestFixtureFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
users:
  - id: "1"
    email: a@example.com
    name: A
    role: admin
    password: secret
products:
  - id: p1
    name: Bileklik
    category: Bileklik
    price: 10
    stock: 1
    weight: 2g
    createdAt: 2024-01-01T00:00:00Z
orders: []
`), 0o600))

	out, err := run(t, "--fixtures", path, "query", "products")
	require.NoError(t, err)
	assert.Contains(t, out, `"id": "p1"`)
}

func TestKeygen(t *testing.T) {
	out, err := run(t, "keygen")
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "PRIVATE KEY"))
	assert.True(t, strings.Contains(out, "PUBLIC KEY"))
}

func TestInvalidFormat(t *testing.T) {
	_, err := run(t, "--format", "xml", "summary")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestSeedRequiresDSN(t *testing.T) {
	_, err := run(t, "seed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--dsn")
}

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Andrela2025/Agro-Conecta/internal/repository"
)

const sampleCSV = `coffee_variety,price,ranking,year,name,location,properties,carbon_credits
Caturra,3.0,84,2021,Ana Gómez,Huila,Chocolate,1.2
Caturra,5.0,86,2022,Luis Pérez,Nariño,Frutal,1.1
Geisha,10.0,92,2022,Ana Gómez,Huila,Floral,2.0
`

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lots.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))
	return path
}

func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DATABASE_URL", "DB_DSN", "DB_DRIVER", "DATASET_TABLE", "PRICING_SEED"} {
		t.Setenv(key, "")
	}
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAsk(t *testing.T) {
	isolateEnv(t)
	path := writeDataset(t)

	out, err := run(t, "", "--dataset", path, "ask", "--show-intent", "cuál", "es", "el", "café", "más", "caro")
	require.NoError(t, err)
	assert.Contains(t, out, "El café más costoso es Geisha")
	assert.Contains(t, out, "price_max")
}

func TestAsk_RequiresQuestion(t *testing.T) {
	isolateEnv(t)

	_, err := run(t, "", "--dataset", writeDataset(t), "ask")
	assert.Error(t, err)
}

func TestAsk_MissingDataset(t *testing.T) {
	isolateEnv(t)

	_, err := run(t, "", "--dataset", filepath.Join(t.TempDir(), "missing.csv"), "ask", "hola")
	assert.Error(t, err)
}

func TestChat(t *testing.T) {
	isolateEnv(t)
	path := writeDataset(t)

	out, err := run(t, "hola\n\nquién tiene más créditos de carbono\nsalir\nhola\n", "--dataset", path, "--name", "Ana", "chat")
	require.NoError(t, err)
	assert.Contains(t, out, "¡Hola Ana!")
	assert.Contains(t, out, "El productor con más créditos de carbono es Ana Gómez")
	assert.Equal(t, 1, strings.Count(out, "¡Hola Ana!"), "input after salir is ignored")
}

func TestBuy(t *testing.T) {
	isolateEnv(t)
	path := writeDataset(t)

	out, err := run(t, "", "--dataset", path, "buy",
		"--variety", "Caturra", "--producer", "Ana Gómez", "--properties", "Chocolate",
		"--quantity", "10", "--seed", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Total: $30.00 USD")
	assert.NotContains(t, out, "Compra registrada")

	out, err = run(t, "", "--dataset", path, "buy",
		"--variety", "Caturra", "--producer", "Ana Gómez", "--properties", "Chocolate",
		"--quantity", "mucho")
	require.NoError(t, err)
	assert.Contains(t, out, "la cantidad debe ser un número")
}

func TestVarieties(t *testing.T) {
	isolateEnv(t)

	out, err := run(t, "", "--dataset", writeDataset(t), "varieties")
	require.NoError(t, err)
	assert.Contains(t, out, "Caturra")
	assert.Contains(t, out, "  Luis Pérez")
	assert.Less(t, strings.Index(out, "Caturra"), strings.Index(out, "Geisha"))
}

func TestImportAndBuyWithLedger(t *testing.T) {
	isolateEnv(t)
	path := writeDataset(t)
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", filepath.Join(t.TempDir(), "agro.db"))

	out, err := run(t, "", "--dataset", path, "import", "--table", "lots")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 3 lots into lots")

	t.Setenv("DATASET_TABLE", "lots")
	out, err = run(t, "", "buy",
		"--variety", "Geisha", "--producer", "Ana Gómez", "--properties", "Floral",
		"--quantity", "1", "--unit", "kg", "--currency", "COP")
	require.NoError(t, err)
	assert.Contains(t, out, "COL$")
	assert.Contains(t, out, "Compra registrada")
}

func TestImport_RefusesNonEmptyTable(t *testing.T) {
	isolateEnv(t)
	path := writeDataset(t)
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", filepath.Join(t.TempDir(), "agro.db"))

	_, err := run(t, "", "--dataset", path, "import")
	require.NoError(t, err)

	_, err = run(t, "", "--dataset", path, "import")
	require.ErrorIs(t, err, repository.ErrTableNotEmpty)

	out, err := run(t, "", "--dataset", path, "import", "--replace")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 3 lots into coffee_lots")

	// credits are not doubled after the second import
	t.Setenv("DATASET_TABLE", "coffee_lots")
	out, err = run(t, "", "ask", "quién", "tiene", "más", "créditos", "de", "carbono")
	require.NoError(t, err)
	assert.Contains(t, out, "Ana Gómez, con 3.2 créditos")
}

func TestImport_RequiresDatabase(t *testing.T) {
	isolateEnv(t)

	_, err := run(t, "", "--dataset", writeDataset(t), "import")
	assert.Error(t, err)
}

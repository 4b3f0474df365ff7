package settings_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/goldscore/internal/adapters/settings"
	"github.com/alejandrodnm/goldscore/internal/domain"
)

func storeAt(t *testing.T) (*settings.FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Config.json")
	return settings.NewFileStore(path), path
}

func TestFileStore_RoundTrip(t *testing.T) {
	store, _ := storeAt(t)

	in := domain.Settings{
		APIKey:       "abc",
		Region:       domain.RegionUS,
		Realm:        "Tichondrius",
		PriceSource:  domain.SourceMinBuyout,
		MinGoldScore: 2000,
	}
	require.NoError(t, store.Save(in))

	out, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestFileStore_MissingFileCreatesDefaults(t *testing.T) {
	store, path := storeAt(t)

	s, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), s)

	// Y el archivo queda escrito para que el usuario lo complete
	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)
}

func TestFileStore_CorruptFileResetsDefaults(t *testing.T) {
	store, path := storeAt(t)
	require.NoError(t, os.WriteFile(path, []byte("{{{not json"), 0o644))

	s, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), s)
}

func TestFileStore_InvalidRegionResetsDefaults(t *testing.T) {
	store, path := storeAt(t)
	raw := `{"apiKey":"k","region":"KR","realm":"r","priceSource":"MarketValue","minGoldScore":1500}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	s, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), s)
}

func TestFileStore_ZeroMinScoreResetsDefaults(t *testing.T) {
	store, path := storeAt(t)
	raw := `{"apiKey":"k","region":"EU","realm":"r","priceSource":"","minGoldScore":0}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	s, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), s)
}

func TestFileStore_UnknownPriceSourceIsKept(t *testing.T) {
	// Una fuente desconocida no corrompe el archivo: se carga tal cual y el
	// error se reporta recién al construir la lista.
	store, path := storeAt(t)
	raw := `{"apiKey":"k","region":"EU","realm":"r","priceSource":"Bogus","minGoldScore":1500}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	s, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, domain.PriceSource("Bogus"), s.PriceSource)
	assert.Equal(t, "r", s.Realm)
}

func TestFileStore_SaveWritesContractFieldNames(t *testing.T) {
	store, path := storeAt(t)
	require.NoError(t, store.Save(domain.DefaultSettings()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	for _, key := range []string{"apiKey", "region", "realm", "priceSource", "minGoldScore"} {
		assert.Contains(t, fields, key)
	}
}

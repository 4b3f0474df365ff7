package tsm_test

import (
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/goldscore/internal/adapters/tsm"
	"github.com/alejandrodnm/goldscore/internal/domain"
)

const sampleBody = `[
	{"Id": 1234, "RegionMarketAvg": 25000, "RegionAvgDailySold": 12.5, "RegionSaleRate": 0.42},
	{"Id": 5678, "MarketValue": 900, "MinBuyout": 800}
]`

func testSettings() domain.Settings {
	return domain.Settings{
		APIKey:       "secret-key",
		Region:       domain.RegionEU,
		Realm:        "Blackhand",
		PriceSource:  domain.SourceRegionMarketAvg,
		MinGoldScore: 1500,
	}
}

func newClient(t *testing.T, baseURL string) (*tsm.Client, string) {
	t.Helper()
	artifact := filepath.Join(t.TempDir(), "TSMData.json")
	return tsm.NewClient(baseURL, artifact, 5*time.Second), artifact
}

func TestClient_FetchItems_Success(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		assert.Equal(t, "gzip, deflate", r.Header.Get("Accept-Encoding"))
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla/5.0")
		w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	client, artifact := newClient(t, srv.URL)
	items, err := client.FetchItems(context.Background(), testSettings())
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, int64(1234), items[0].ID)
	assert.Equal(t, int64(25000), items[0].RegionMarketAvg)
	assert.InDelta(t, 12.5, items[0].RegionAvgDailySold, 0.001)
	assert.InDelta(t, 0.42, items[0].RegionSaleRate, 0.001)

	// Campos ausentes decodifican a cero
	assert.Equal(t, int64(5678), items[1].ID)
	assert.Equal(t, int64(0), items[1].RegionMarketAvg)
	assert.Equal(t, 0.0, items[1].RegionSaleRate)

	assert.Equal(t, "/EU/Blackhand", gotPath)
	assert.Contains(t, gotQuery, "apiKey=secret-key")
	assert.Contains(t, gotQuery, "format=json")

	// El artefacto contiene el body crudo, byte a byte
	raw, err := os.ReadFile(artifact)
	require.NoError(t, err)
	assert.Equal(t, sampleBody, string(raw))
}

func TestClient_FetchItems_GzipResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		gz.Write([]byte(sampleBody))
		gz.Close()
	}))
	defer srv.Close()

	client, _ := newClient(t, srv.URL)
	items, err := client.FetchItems(context.Background(), testSettings())
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestClient_FetchItems_BadRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client, artifact := newClient(t, srv.URL)
	_, err := client.FetchItems(context.Background(), testSettings())
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// Sin respuesta exitosa no hay artefacto
	_, statErr := os.Stat(artifact)
	assert.True(t, os.IsNotExist(statErr))
}

func TestClient_FetchItems_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, _ := newClient(t, srv.URL)
	_, err := client.FetchItems(context.Background(), testSettings())
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestClient_FetchItems_UnmappedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	client, _ := newClient(t, srv.URL)
	_, err := client.FetchItems(context.Background(), testSettings())

	var statusErr *domain.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 418, statusErr.Code)
}

func TestClient_FetchItems_MalformedBody_ArtifactStillWritten(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "an array"`))
	}))
	defer srv.Close()

	client, artifact := newClient(t, srv.URL)
	_, err := client.FetchItems(context.Background(), testSettings())
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)

	// El artefacto se escribe ANTES del parse — queda para depurar
	raw, readErr := os.ReadFile(artifact)
	require.NoError(t, readErr)
	assert.Equal(t, `{"not": "an array"`, string(raw))
}

func TestClient_FetchItems_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	artifact := filepath.Join(t.TempDir(), "TSMData.json")
	client := tsm.NewClient(srv.URL, artifact, 50*time.Millisecond)

	_, err := client.FetchItems(context.Background(), testSettings())
	assert.ErrorIs(t, err, domain.ErrTimeout)
}

func TestClient_FetchItems_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	client, _ := newClient(t, srv.URL)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := client.FetchItems(ctx, testSettings())
	assert.Error(t, err)
}

func TestClient_FetchItems_EmptyArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	client, _ := newClient(t, srv.URL)
	items, err := client.FetchItems(context.Background(), testSettings())
	require.NoError(t, err)
	assert.Empty(t, items)
}

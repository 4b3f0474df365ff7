package tsm

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/alejandrodnm/goldscore/internal/domain"
)

const (
	defaultBaseURL = "http://api.tradeskillmaster.com/v1/item"
	defaultTimeout = 30 * time.Second

	// requestFields pide los diez campos del wire, así cualquier price source
	// configurado tiene su dato disponible sin otra request.
	requestFields = "Id,MarketValue,MinBuyout,HistoricalPrice,RegionMarketAvg," +
		"RegionMinBuyoutAvg,RegionHistoricalPrice,RegionSaleAvg," +
		"RegionAvgDailySold,RegionSaleRate"

	// TSM mide las requests por API key; una cada 6s deja margen de sobra
	// para una herramienta que hace una request por ejecución.
	minRequestGap = 6 * time.Second
)

// Headers fijos de la request, tal como los espera el endpoint.
const userAgent = "Mozilla/5.0 (Windows NT 6.2; WOW64; rv:19.0) Gecko/20100101 Firefox/19.0"

// Client es el HTTP client de la API de precios de TSM.
// Implementa ports.ItemProvider. Sin retries: cada fallo se clasifica y se
// reporta una sola vez (la herramienta corre una vez por trigger del usuario).
type Client struct {
	http         *http.Client
	baseURL      string
	artifactPath string
	limiter      *rate.Limiter
}

// NewClient crea un Client. baseURL vacío usa la API de producción;
// timeout <= 0 usa el default de 30s. artifactPath es donde se persiste la
// respuesta cruda como artefacto de diagnóstico ("" lo desactiva).
func NewClient(baseURL, artifactPath string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http:         &http.Client{Timeout: timeout},
		baseURL:      strings.TrimRight(baseURL, "/"),
		artifactPath: artifactPath,
		limiter:      rate.NewLimiter(rate.Every(minRequestGap), 1),
	}
}

// FetchItems hace un único GET a la API y parsea la respuesta.
// En cualquier status 2xx el body crudo se escribe al artefacto ANTES de
// parsear — si el parse falla después, el artefacto queda para depurar.
func (c *Client) FetchItems(ctx context.Context, s domain.Settings) ([]domain.Item, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("tsm.FetchItems: rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(s), nil)
	if err != nil {
		return nil, fmt.Errorf("tsm.FetchItems: build request: %w", err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml")
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Charset", "ISO-8859-1")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		return nil, domain.ErrInvalidCredentials
	case resp.StatusCode == http.StatusInternalServerError:
		return nil, domain.ErrUpstreamUnavailable
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &domain.StatusError{Code: resp.StatusCode}
	}

	body, err := readBody(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrMalformedResponse, err)
	}

	c.writeArtifact(body)

	var raw []tsmItem
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	slog.Debug("tsm items fetched",
		"region", s.Region,
		"realm", s.Realm,
		"items", len(raw),
	)
	return mapItems(raw), nil
}

// requestURL arma la URL parametrizada por región, realm y API key.
func (c *Client) requestURL(s domain.Settings) string {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("fields", requestFields)
	q.Set("apiKey", s.APIKey)
	return fmt.Sprintf("%s/%s/%s?%s",
		c.baseURL, s.Region, url.PathEscape(s.Realm), q.Encode())
}

// readBody devuelve el body descomprimido. Como seteamos Accept-Encoding a
// mano, el transporte de Go no descomprime automáticamente: lo hacemos acá
// según el Content-Encoding de la respuesta.
func readBody(resp *http.Response) ([]byte, error) {
	var r io.Reader = resp.Body
	switch strings.ToLower(resp.Header.Get("Content-Encoding")) {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	case "deflate":
		fl := flate.NewReader(resp.Body)
		defer fl.Close()
		r = fl
	}
	return io.ReadAll(r)
}

// writeArtifact persiste la respuesta cruda para diagnóstico.
// Un fallo acá se loguea pero no aborta la ejecución.
func (c *Client) writeArtifact(body []byte) {
	if c.artifactPath == "" {
		return
	}
	if err := os.WriteFile(c.artifactPath, body, 0o644); err != nil {
		slog.Warn("failed to write raw response artifact",
			"path", c.artifactPath, "err", err)
		return
	}
	slog.Debug("raw response persisted", "path", c.artifactPath, "bytes", len(body))
}

// classifyTransportError separa timeouts del resto de errores de red.
func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	}
	return fmt.Errorf("tsm.FetchItems: %w", err)
}

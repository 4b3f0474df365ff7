package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alejandrodnm/goldscore/internal/domain"
	"github.com/alejandrodnm/goldscore/internal/ports"
)

// State es el estado del pipeline. Lineal, sin loops: en el primer fallo
// pasa a StateError y la ejecución termina.
type State int

const (
	StateIdle State = iota
	StateConfigValidated
	StateFetching
	StateFetched
	StateListBuilt
	StateDone
	StateError
)

// String implementa fmt.Stringer para logs.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConfigValidated:
		return "config_validated"
	case StateFetching:
		return "fetching"
	case StateFetched:
		return "fetched"
	case StateListBuilt:
		return "list_built"
	case StateDone:
		return "done"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Result es lo que produce una ejecución que llegó a construir la lista.
type Result struct {
	List   string
	Scored []domain.ScoredItem
	Record domain.RunRecord
}

// Pipeline es el orquestador: valida settings → persiste → fetch →
// construye la lista → la entrega al presenter. Una instancia por proceso;
// cada Run es independiente y reemplaza cualquier estado anterior entero.
type Pipeline struct {
	provider  ports.ItemProvider
	settings  ports.SettingsStore
	storage   ports.RunStorage // opcional: nil desactiva el historial
	presenter ports.Presenter
	state     State
}

// New crea un Pipeline con todas las dependencias inyectadas.
func New(
	provider ports.ItemProvider,
	settings ports.SettingsStore,
	storage ports.RunStorage,
	presenter ports.Presenter,
) *Pipeline {
	return &Pipeline{
		provider:  provider,
		settings:  settings,
		storage:   storage,
		presenter: presenter,
		state:     StateIdle,
	}
}

// State devuelve el estado actual del pipeline.
func (p *Pipeline) State() State {
	return p.state
}

// Run ejecuta el pipeline completo una vez. Los settings llegan ya editados
// por la capa de presentación; acá se validan, se persisten y recién después
// se toca la red. Cada error se reporta exactamente una vez al presenter y
// termina la ejecución — sin retries, sin output parcial.
func (p *Pipeline) Run(ctx context.Context, s domain.Settings) (Result, error) {
	start := time.Now()
	rec := domain.RunRecord{
		ID:          uuid.New().String(),
		StartedAt:   start.UTC(),
		Region:      s.Region,
		Realm:       s.Realm,
		PriceSource: s.PriceSource,
	}

	if err := s.Validate(); err != nil {
		msg := fmt.Sprintf("Configuration invalid: %v.", err)
		return p.fail(ctx, rec, start, "config_invalid", msg, err)
	}
	p.state = StateConfigValidated

	if err := p.settings.Save(s); err != nil {
		msg := fmt.Sprintf("Could not save settings: %v.", err)
		return p.fail(ctx, rec, start, "settings_save_failed", msg, err)
	}

	p.presenter.Info(fmt.Sprintf("Downloading market data for %s-%s...", s.Region, s.Realm))
	p.state = StateFetching

	items, err := p.provider.FetchItems(ctx, s)
	if err != nil {
		return p.fail(ctx, rec, start, fetchOutcome(err), fetchMessage(err), err)
	}
	p.state = StateFetched
	rec.Items = len(items)

	scored, err := domain.ScoreItems(items, s)
	if err != nil {
		// Solo ErrNoPriceSource llega acá: aborta la lista entera.
		msg := fmt.Sprintf("No price source selected. Choose one of: %s.", priceSourceNames())
		return p.fail(ctx, rec, start, "no_price_source", msg, err)
	}
	if len(scored) == 0 {
		// Resultado benigno: se informa, no se escribe artefacto vacío.
		rec.Outcome = "empty"
		rec.Duration = time.Since(start)
		p.state = StateError
		p.presenter.Info(fmt.Sprintf(
			"No items reached a gold score of %d — import list not written.", s.MinGoldScore))
		p.saveRecord(ctx, rec)
		return Result{Scored: scored, Record: rec}, domain.ErrEmptyImportList
	}

	list := domain.RenderImportList(scored)
	p.state = StateListBuilt
	rec.Matches = len(scored)
	rec.BestScore = bestScore(scored)

	if err := p.presenter.DeliverList(list); err != nil {
		msg := fmt.Sprintf("Could not deliver the import list: %v.", err)
		return p.fail(ctx, rec, start, "deliver_failed", msg, err)
	}

	p.state = StateDone
	rec.Outcome = "done"
	rec.Duration = time.Since(start)
	p.presenter.Success(fmt.Sprintf(
		"Import list created: %d of %d items scored %d or better.",
		len(scored), len(items), s.MinGoldScore))
	p.saveRecord(ctx, rec)

	return Result{List: list, Scored: scored, Record: rec}, nil
}

// fail pasa a StateError, reporta el mensaje y registra la ejecución.
func (p *Pipeline) fail(ctx context.Context, rec domain.RunRecord, start time.Time, outcome, msg string, err error) (Result, error) {
	p.state = StateError
	rec.Outcome = outcome
	rec.Duration = time.Since(start)
	p.presenter.Error(msg)
	p.saveRecord(ctx, rec)
	return Result{Record: rec}, err
}

// saveRecord persiste el historial; un fallo acá no cambia el resultado.
func (p *Pipeline) saveRecord(ctx context.Context, rec domain.RunRecord) {
	if p.storage == nil {
		return
	}
	if err := p.storage.SaveRun(ctx, rec); err != nil {
		slog.Warn("failed to record run", "run_id", rec.ID, "err", err)
	}
}

// fetchMessage mapea cada tipo de error del fetch a su mensaje user-facing.
func fetchMessage(err error) string {
	var statusErr *domain.StatusError
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "TSM rejected the request — check your API key and realm."
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return "TSM is unavailable right now — try again later."
	case errors.Is(err, domain.ErrTimeout):
		return "The request to TSM timed out."
	case errors.Is(err, domain.ErrMalformedResponse):
		return "TSM returned a response that could not be parsed (raw response saved for inspection)."
	case errors.As(err, &statusErr):
		return fmt.Sprintf("TSM returned unexpected status %d.", statusErr.Code)
	default:
		return fmt.Sprintf("Could not reach TSM: %v.", err)
	}
}

// fetchOutcome mapea el error del fetch al outcome que se persiste.
func fetchOutcome(err error) string {
	var statusErr *domain.StatusError
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return "upstream_unavailable"
	case errors.Is(err, domain.ErrTimeout):
		return "timeout"
	case errors.Is(err, domain.ErrMalformedResponse):
		return "malformed_response"
	case errors.As(err, &statusErr):
		return fmt.Sprintf("status_%d", statusErr.Code)
	default:
		return "fetch_failed"
	}
}

// bestScore devuelve el mayor score entre los matches.
func bestScore(scored []domain.ScoredItem) float64 {
	best := 0.0
	for _, sc := range scored {
		if sc.Score > best {
			best = sc.Score
		}
	}
	return best
}

// priceSourceNames lista las fuentes válidas para el mensaje de error.
func priceSourceNames() string {
	names := make([]string, len(domain.PriceSources))
	for i, ps := range domain.PriceSources {
		names[i] = string(ps)
	}
	return strings.Join(names, ", ")
}

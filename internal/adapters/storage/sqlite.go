package storage

// sqlite.go — registro de ejecuciones.
//
// Guarda una fila por ejecución del pipeline: región, realm, fuente de
// precio, conteos y resultado. No guarda datos de mercado descargados —
// el único artefacto de la respuesta cruda es el TSMData.json que escribe
// el cliente. Prune automático al abrir para mantener la DB liviana.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alejandrodnm/goldscore/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id           TEXT PRIMARY KEY,
    started_at   DATETIME NOT NULL,
    region       TEXT     NOT NULL,
    realm        TEXT     NOT NULL,
    price_source TEXT     NOT NULL DEFAULT '',
    items        INTEGER  NOT NULL DEFAULT 0,
    matches      INTEGER  NOT NULL DEFAULT 0,
    best_score   REAL     NOT NULL DEFAULT 0,
    outcome      TEXT     NOT NULL,
    duration_ms  INTEGER  NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_runs_at ON runs(started_at DESC);
`

// retentionRuns: más de 90 días de historial no aporta nada para una
// herramienta de uso manual.
const retentionRuns = 90 * 24 * time.Hour

// SQLiteStorage implementa ports.RunStorage usando SQLite (pure Go, sin CGo).
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage abre (o crea) la base de datos en la ruta dada.
// Aplica el schema y limpia ejecuciones antiguas.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}

	s := &SQLiteStorage{db: db}
	s.pruneOld(context.Background())
	return s, nil
}

// SaveRun inserta el resumen de una ejecución.
func (s *SQLiteStorage) SaveRun(ctx context.Context, r domain.RunRecord) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO runs
			(id, started_at, region, realm, price_source,
			 items, matches, best_score, outcome, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.StartedAt.UTC(),
		string(r.Region),
		r.Realm,
		string(r.PriceSource),
		r.Items,
		r.Matches,
		r.BestScore,
		r.Outcome,
		r.Duration.Milliseconds(),
	); err != nil {
		return fmt.Errorf("storage.SaveRun: insert %s: %w", r.ID, err)
	}
	return nil
}

// RecentRuns devuelve las últimas ejecuciones, más reciente primero.
func (s *SQLiteStorage) RecentRuns(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, region, realm, price_source,
		       items, matches, best_score, outcome, duration_ms
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("storage.RecentRuns: query: %w", err)
	}
	defer rows.Close()

	var runs []domain.RunRecord
	for rows.Next() {
		var r domain.RunRecord
		var region, source, startedAt string
		var durationMS int64

		if err := rows.Scan(
			&r.ID,
			&startedAt,
			&region,
			&r.Realm,
			&source,
			&r.Items,
			&r.Matches,
			&r.BestScore,
			&r.Outcome,
			&durationMS,
		); err != nil {
			return nil, fmt.Errorf("storage.RecentRuns: scan row: %w", err)
		}

		r.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		r.Region = domain.Region(region)
		r.PriceSource = domain.PriceSource(source)
		r.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// pruneOld elimina ejecuciones fuera de la ventana de retención.
func (s *SQLiteStorage) pruneOld(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-retentionRuns)
	s.db.ExecContext(ctx, `DELETE FROM runs WHERE started_at < ?`, cutoff)
}

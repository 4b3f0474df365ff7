package ports

import (
	"context"

	"github.com/alejandrodnm/goldscore/internal/domain"
)

// RunStorage persiste el resumen de cada ejecución del pipeline.
type RunStorage interface {
	// SaveRun registra el resultado de una ejecución.
	SaveRun(ctx context.Context, r domain.RunRecord) error

	// RecentRuns devuelve las últimas ejecuciones, más reciente primero.
	RecentRuns(ctx context.Context, limit int) ([]domain.RunRecord, error)

	// Close cierra la conexión a la base de datos limpiamente.
	Close() error
}

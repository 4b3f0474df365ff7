package ports

import (
	"context"

	"github.com/alejandrodnm/goldscore/internal/domain"
)

// ItemProvider obtiene los datos de mercado desde el servicio de precios.
type ItemProvider interface {
	// FetchItems descarga y parsea los datos de mercado para la región y
	// realm configurados. Es la única operación bloqueante del pipeline;
	// respeta la cancelación del contexto en la llamada de red.
	FetchItems(ctx context.Context, s domain.Settings) ([]domain.Item, error)
}

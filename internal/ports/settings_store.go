package ports

import "github.com/alejandrodnm/goldscore/internal/domain"

// SettingsStore carga y persiste la configuración del usuario.
type SettingsStore interface {
	// Load devuelve la configuración guardada. Si no existe o está corrupta,
	// crea y devuelve los defaults — nunca falla por archivo ausente.
	Load() (domain.Settings, error)

	// Save sobreescribe el archivo completo con la configuración dada.
	Save(s domain.Settings) error
}

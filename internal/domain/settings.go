package domain

import (
	"errors"
	"fmt"
)

// Region es la partición de mercado que acota la consulta a la API.
type Region string

const (
	RegionEU Region = "EU"
	RegionUS Region = "US"
)

// ParseRegion valida un string de región. Cualquier valor fuera de EU/US
// es un error duro de configuración.
func ParseRegion(s string) (Region, error) {
	switch Region(s) {
	case RegionEU, RegionUS:
		return Region(s), nil
	default:
		return "", fmt.Errorf("unknown region %q (must be EU or US)", s)
	}
}

// Settings es la configuración del usuario para una ejecución.
// La carga y persistencia en disco es responsabilidad del SettingsStore;
// el pipeline la recibe por valor y nunca la comparte entre ejecuciones.
type Settings struct {
	APIKey       string
	Region       Region
	Realm        string
	PriceSource  PriceSource
	MinGoldScore int
}

// DefaultSettings devuelve la configuración que se crea cuando no hay
// archivo o el archivo está corrupto.
func DefaultSettings() Settings {
	return Settings{
		Region:       RegionEU,
		MinGoldScore: 1500,
	}
}

// Validate comprueba los campos requeridos antes de cualquier llamada de red.
// PriceSource vacío NO se valida acá: eso se detecta al construir la lista
// (es un error de input del usuario, no bloquea el guardado de settings).
func (s Settings) Validate() error {
	if s.APIKey == "" {
		return errors.New("apiKey is required")
	}
	if _, err := ParseRegion(string(s.Region)); err != nil {
		return err
	}
	if s.Realm == "" {
		return errors.New("realm is required")
	}
	if s.MinGoldScore <= 0 {
		return fmt.Errorf("minGoldScore must be > 0, got %d", s.MinGoldScore)
	}
	return nil
}

package settings

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/alejandrodnm/goldscore/internal/domain"
)

// fileSettings es el formato en disco de Config.json. Los nombres de campo
// son contrato: archivos escritos por versiones anteriores de la herramienta
// tienen que seguir cargando.
type fileSettings struct {
	APIKey       string `json:"apiKey"`
	Region       string `json:"region"`
	Realm        string `json:"realm"`
	PriceSource  string `json:"priceSource"`
	MinGoldScore int    `json:"minGoldScore"`
}

// FileStore implementa ports.SettingsStore sobre un archivo JSON.
type FileStore struct {
	path string
}

// NewFileStore crea un store sobre la ruta dada.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load lee Config.json. Si el archivo no existe o está corrupto, escribe
// los defaults y los devuelve — el pipeline los re-valida igual antes de
// usarlos, así que un default incompleto (apiKey vacía) se detecta ahí.
func (f *FileStore) Load() (domain.Settings, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		slog.Info("no settings file, creating defaults", "path", f.path)
		return f.resetDefaults()
	}
	if err != nil {
		return domain.Settings{}, fmt.Errorf("settings.Load: read %q: %w", f.path, err)
	}

	var fs fileSettings
	if err := json.Unmarshal(data, &fs); err != nil {
		slog.Warn("settings file corrupt, recreating defaults",
			"path", f.path, "err", err)
		return f.resetDefaults()
	}

	region, err := domain.ParseRegion(fs.Region)
	if err != nil {
		slog.Warn("settings file has invalid region, recreating defaults",
			"path", f.path, "region", fs.Region)
		return f.resetDefaults()
	}

	if fs.MinGoldScore <= 0 {
		slog.Warn("settings file has invalid minGoldScore, recreating defaults",
			"path", f.path, "minGoldScore", fs.MinGoldScore)
		return f.resetDefaults()
	}

	// PriceSource desconocido se carga tal cual: que esté mal elegido es un
	// error de usuario que se reporta al construir la lista, no al cargar.
	return domain.Settings{
		APIKey:       fs.APIKey,
		Region:       region,
		Realm:        fs.Realm,
		PriceSource:  domain.PriceSource(fs.PriceSource),
		MinGoldScore: fs.MinGoldScore,
	}, nil
}

// Save sobreescribe el archivo completo con JSON indentado.
func (f *FileStore) Save(s domain.Settings) error {
	fs := fileSettings{
		APIKey:       s.APIKey,
		Region:       string(s.Region),
		Realm:        s.Realm,
		PriceSource:  string(s.PriceSource),
		MinGoldScore: s.MinGoldScore,
	}
	data, err := json.MarshalIndent(fs, "", "  ")
	if err != nil {
		return fmt.Errorf("settings.Save: marshal: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("settings.Save: write %q: %w", f.path, err)
	}
	return nil
}

// resetDefaults escribe y devuelve la configuración por defecto.
func (f *FileStore) resetDefaults() (domain.Settings, error) {
	defaults := domain.DefaultSettings()
	if err := f.Save(defaults); err != nil {
		return domain.Settings{}, fmt.Errorf("settings.Load: create defaults: %w", err)
	}
	return defaults, nil
}

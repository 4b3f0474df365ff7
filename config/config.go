package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración de la aplicación (rutas, API, logging).
// La configuración del usuario (API key, realm, umbral) vive aparte en
// Config.json — ese formato es contrato y lo maneja el SettingsStore.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Paths   PathsConfig   `yaml:"paths"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// APIConfig contiene el base URL y el timeout del servicio de precios.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// PathsConfig controla dónde se escriben los archivos de la herramienta.
type PathsConfig struct {
	Settings    string `yaml:"settings"`     // Config.json del usuario
	RawResponse string `yaml:"raw_response"` // artefacto de diagnóstico
	ImportList  string `yaml:"import_list"`  // salida final
}

// StorageConfig controla dónde se persiste el historial de ejecuciones.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, ":memory:", o "" para desactivar
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si
// existe. Con path vacío usa solo defaults + variables de entorno — la
// herramienta tiene que funcionar sin ningún archivo al lado del binario.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// Timeout devuelve el timeout del cliente HTTP como time.Duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("TSM_API_BASE"); v != "" {
		cfg.API.BaseURL = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "http://api.tradeskillmaster.com/v1/item"
	}
	if cfg.API.TimeoutSeconds <= 0 {
		cfg.API.TimeoutSeconds = 30
	}
	if cfg.Paths.Settings == "" {
		cfg.Paths.Settings = "Config.json"
	}
	if cfg.Paths.RawResponse == "" {
		cfg.Paths.RawResponse = "TSMData.json"
	}
	if cfg.Paths.ImportList == "" {
		cfg.Paths.ImportList = "Imports.txt"
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "goldscore.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

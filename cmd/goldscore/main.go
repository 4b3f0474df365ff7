package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/alejandrodnm/goldscore/config"
	"github.com/alejandrodnm/goldscore/internal/adapters/notify"
	"github.com/alejandrodnm/goldscore/internal/adapters/settings"
	"github.com/alejandrodnm/goldscore/internal/adapters/storage"
	"github.com/alejandrodnm/goldscore/internal/adapters/tsm"
	"github.com/alejandrodnm/goldscore/internal/domain"
	"github.com/alejandrodnm/goldscore/internal/pipeline"
	"github.com/alejandrodnm/goldscore/internal/ports"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	apiKey := flag.String("key", "", "TSM API key (overrides Config.json)")
	region := flag.String("region", "", "region: EU or US (overrides Config.json)")
	realm := flag.String("realm", "", "realm name (overrides Config.json)")
	source := flag.String("source", "", "price source, e.g. RegionMarketAvg (overrides Config.json)")
	minScore := flag.String("min-score", "", "minimum gold score (overrides Config.json)")
	table := flag.Bool("table", false, "print top matching items as a table")
	history := flag.Bool("history", false, "print recent runs and exit")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	var store *storage.SQLiteStorage
	if cfg.Storage.DSN != "" {
		store, err = storage.NewSQLiteStorage(cfg.Storage.DSN)
		if err != nil {
			slog.Error("failed to open run history", "err", err, "dsn", cfg.Storage.DSN)
			os.Exit(1)
		}
		defer store.Close()
	}

	console := notify.NewConsole(cfg.Paths.ImportList)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *history {
		printHistory(ctx, store, console)
		return
	}

	settingsStore := settings.NewFileStore(cfg.Paths.Settings)
	userSettings, err := settingsStore.Load()
	if err != nil {
		slog.Error("failed to load settings", "err", err, "path", cfg.Paths.Settings)
		os.Exit(1)
	}

	if err := applyOverrides(&userSettings, *apiKey, *region, *realm, *source, *minScore); err != nil {
		console.Error(err.Error())
		os.Exit(1)
	}

	client := tsm.NewClient(cfg.API.BaseURL, cfg.Paths.RawResponse, cfg.Timeout())

	// Evitar el puntero nil tipado dentro de la interfaz.
	var runStore ports.RunStorage
	if store != nil {
		runStore = store
	}
	p := pipeline.New(client, settingsStore, runStore, console)

	slog.Info("goldscore starting",
		"region", userSettings.Region,
		"realm", userSettings.Realm,
		"price_source", userSettings.PriceSource,
		"min_gold_score", userSettings.MinGoldScore,
	)

	result, err := p.Run(ctx, userSettings)
	if err != nil {
		// Lista vacía es un resultado benigno, no un fallo del proceso.
		if errors.Is(err, domain.ErrEmptyImportList) {
			return
		}
		os.Exit(1)
	}

	if *table {
		console.PrintTopItems(result.Scored, 15)
	}
}

// applyOverrides aplica los flags del usuario sobre los settings cargados.
// Los flags llegan como strings crudos; el parseo/validación es del core.
func applyOverrides(s *domain.Settings, apiKey, region, realm, source, minScore string) error {
	if apiKey != "" {
		s.APIKey = apiKey
	} else if v := os.Getenv("TSM_API_KEY"); v != "" {
		s.APIKey = v
	}
	if region != "" {
		r, err := domain.ParseRegion(region)
		if err != nil {
			return err
		}
		s.Region = r
	}
	if realm != "" {
		s.Realm = realm
	}
	if source != "" {
		// Se guarda tal cual: una fuente desconocida se reporta al construir
		// la lista, igual que si viniera del archivo.
		s.PriceSource = domain.PriceSource(source)
	}
	if minScore != "" {
		n, err := strconv.Atoi(minScore)
		if err != nil {
			return errors.New("min-score must be an integer")
		}
		s.MinGoldScore = n
	}
	return nil
}

func printHistory(ctx context.Context, store *storage.SQLiteStorage, console *notify.Console) {
	if store == nil {
		slog.Error("run history is disabled (storage.dsn is empty)")
		os.Exit(1)
	}
	runs, err := store.RecentRuns(ctx, 20)
	if err != nil {
		slog.Error("failed to read run history", "err", err)
		os.Exit(1)
	}
	console.PrintHistory(runs)
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

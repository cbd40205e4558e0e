package main

import (
	"context"
	"errors"
	"os"
	"time"

	"clubhouse-backend/lib/configutil"
	"clubhouse-backend/lib/serviceutil"
	"clubhouse-backend/lib/sqliteutil"
	"clubhouse-backend/lib/telemetry"
	"clubhouse-backend/services/api"
	"clubhouse-backend/services/booking"
	bookingdb "clubhouse-backend/services/booking/db"
	"clubhouse-backend/services/catalog"
	catalogdb "clubhouse-backend/services/catalog/db"
	"clubhouse-backend/services/console"
	"clubhouse-backend/services/sheets"
	syncsvc "clubhouse-backend/services/sync"
	syncdb "clubhouse-backend/services/sync/db"
	"clubhouse-backend/services/telegram"

	"log/slog"
)

type ConsoleConfig struct {
	BaseUrl  string `json:"base_url"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type Config struct {
	Database sqliteutil.Config `json:"database"`
	Console  ConsoleConfig     `json:"console"`
	Telegram telegram.Config   `json:"telegram"`
	Sheets   sheets.Config     `json:"sheets"`
	// hours between scrape cycles, 6 if unset
	ScrapeInterval int `json:"scrape_interval_hours"`
	// attempts per entity scrape, 5 if unset
	ScrapeRetryAttempts int `json:"scrape_retry_attempts"`
	Port                int `json:"port"`
}

func main() {
	ctx := serviceutil.SignalContext()

	config, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	// credentials stay out of the config file in production
	if v := os.Getenv("CONSOLE_USERNAME"); v != "" {
		config.Console.Username = v
	}
	if v := os.Getenv("CONSOLE_PASSWORD"); v != "" {
		config.Console.Password = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		config.Telegram.Token = v
	}
	if config.ScrapeInterval <= 0 {
		config.ScrapeInterval = 6
	}
	if config.Port == 0 {
		config.Port = 8080
	}

	db, err := config.Database.OpenDB(catalogdb.Schema, syncdb.Schema, bookingdb.Schema)
	if err != nil {
		serviceutil.Fatal("failed to open database", err)
	}

	t, err := telemetry.SetupFromEnv(ctx, "clubd")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer t.Shutdown(context.Background())
	telemetry.InstrumentPerfStats(ctx)

	consoleClient, err := console.NewClient(console.Options{
		BaseUrl:  config.Console.BaseUrl,
		Username: config.Console.Username,
		Password: config.Console.Password,
	})
	if err != nil {
		serviceutil.Fatal("failed to create console client", err)
	}

	var bot *telegram.Bot
	var alerter syncsvc.Alerter
	var notifier booking.Notifier
	if config.Telegram.Token != "" {
		bot = telegram.NewBot(config.Telegram)
		alerter = bot
		notifier = bot
	} else {
		slog.Warn("telegram is not configured, notifications are disabled")
	}

	var mirror syncsvc.Mirror
	if config.Sheets.SpreadsheetId != "" {
		m, err := sheets.NewMirror(ctx, config.Sheets)
		if err != nil {
			serviceutil.Fatal("failed to create sheets mirror", err)
		}
		mirror = m
	} else {
		slog.Warn("sheets is not configured, mirroring is disabled")
	}

	syncService := syncsvc.New(db, consoleClient, mirror, alerter)
	syncService.SetRetryAttempts(config.ScrapeRetryAttempts)
	go runScrapeLoop(ctx, syncService, time.Duration(config.ScrapeInterval)*time.Hour)

	server := api.NewServer(
		catalog.NewService(db),
		booking.NewService(db, notifier),
		syncService,
	)
	go serviceutil.StartHttpServer(config.Port, server.Handler())

	<-ctx.Done()
}

func runScrapeLoop(ctx context.Context, svc *syncsvc.Service, interval time.Duration) {
	run := func() {
		_, err := svc.RunFullCycle(ctx, false)
		if err != nil && !errors.Is(err, syncsvc.ErrCycleInProgress) {
			slog.Error("sync cycle failed", "err", err)
		}
	}

	// first cycle right away so a fresh deployment has data
	run()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}

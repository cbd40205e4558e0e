package main

import (
	"fmt"
	"os"
	"time"

	"clubhouse-backend/lib/configutil"
	"clubhouse-backend/lib/serviceutil"
	"clubhouse-backend/lib/sqliteutil"
	"clubhouse-backend/lib/timezone"
	bookingdb "clubhouse-backend/services/booking/db"
	catalogdb "clubhouse-backend/services/catalog/db"
	"clubhouse-backend/services/console"
	syncsvc "clubhouse-backend/services/sync"
	syncdb "clubhouse-backend/services/sync/db"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

type ConsoleConfig struct {
	BaseUrl  string `json:"base_url"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type Config struct {
	Database sqliteutil.Config `json:"database"`
	Console  ConsoleConfig     `json:"console"`
}

func readConfig() Config {
	config, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if v := os.Getenv("CONSOLE_USERNAME"); v != "" {
		config.Console.Username = v
	}
	if v := os.Getenv("CONSOLE_PASSWORD"); v != "" {
		config.Console.Password = v
	}
	return config
}

func newConsoleClient(config Config) *console.Client {
	client, err := console.NewClient(console.Options{
		BaseUrl:  config.Console.BaseUrl,
		Username: config.Console.Username,
		Password: config.Console.Password,
	})
	if err != nil {
		serviceutil.Fatal("failed to create console client", err)
	}
	return client
}

func newSyncService(config Config) *syncsvc.Service {
	db, err := config.Database.OpenDB(catalogdb.Schema, syncdb.Schema, bookingdb.Schema)
	if err != nil {
		serviceutil.Fatal("failed to open database", err)
	}
	return syncsvc.New(db, newConsoleClient(config), nil, nil)
}

func renderReport(report syncsvc.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Entity", "Added", "Updated", "Deleted", "Errors"})
	for _, entity := range []string{"categories", "locations", "memberships", "sessions"} {
		if failure, ok := report.Errors[entity]; ok {
			t.AppendRow(table.Row{entity, "-", "-", "-", failure})
			continue
		}
		stats := report.Stats[entity]
		t.AppendRow(table.Row{entity, stats.Added, stats.Updated, stats.Deleted, stats.Errors})
	}
	t.Render()
	fmt.Printf("kind=%s success=%v duration=%dms\n",
		report.Kind, report.Success, report.DurationMs)
}

func main() {
	root := &cobra.Command{
		Use:   "club-cli",
		Short: "Operations tooling for the club booking backend",
	}

	var forceWeekly bool
	cycle := &cobra.Command{
		Use:   "cycle",
		Short: "Run one scrape-and-reconcile cycle",
		Run: func(cmd *cobra.Command, args []string) {
			report, err := newSyncService(readConfig()).RunFullCycle(cmd.Context(), forceWeekly)
			if err != nil {
				serviceutil.Fatal("cycle failed", err)
			}
			renderReport(report)
		},
	}
	cycle.Flags().BoolVar(&forceWeekly, "force-weekly", false, "purge stale sessions regardless of weekday")

	var limit int64
	history := &cobra.Command{
		Use:   "history",
		Short: "Show recent sync cycles",
		Run: func(cmd *cobra.Command, args []string) {
			reports, err := newSyncService(readConfig()).History(cmd.Context(), limit)
			if err != nil {
				serviceutil.Fatal("failed to read history", err)
			}
			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"Started", "Kind", "Success", "Duration", "Entity errors"})
			for _, report := range reports {
				t.AppendRow(table.Row{
					report.StartedAt.In(timezone.Location).Format("02.01.2006 15:04"),
					report.Kind,
					report.Success,
					(time.Duration(report.DurationMs) * time.Millisecond).String(),
					len(report.Errors),
				})
			}
			t.Render()
		},
	}
	history.Flags().Int64Var(&limit, "limit", 20, "number of cycles to show")

	check := &cobra.Command{
		Use:   "check",
		Short: "Verify the admin console accepts our credentials",
		Run: func(cmd *cobra.Command, args []string) {
			client := newConsoleClient(readConfig())
			if err := client.EnsureSession(cmd.Context()); err != nil {
				serviceutil.Fatal("console check failed", err)
			}
			fmt.Println("console login ok")
		},
	}

	root.AddCommand(cycle, history, check)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

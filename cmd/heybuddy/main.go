package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/heybuddy/internal/cli"
	"github.com/julianstephens/heybuddy/internal/config"
	"github.com/julianstephens/heybuddy/internal/constants"
	"github.com/julianstephens/heybuddy/internal/errors"
	"github.com/julianstephens/heybuddy/internal/logger"
)

var CLI struct {
	Version    kong.VersionFlag
	Storage    string `help:"Database path, *.json file, or postgres:// / redis:// URL. PostgreSQL passwords must come from the keyring or HEYBUDDY_DB_CONNECTION." placeholder:"PATH|URL"`
	ConfigFile string `help:"Config file path." type:"path" placeholder:"FILE"`
	Debug      bool   `help:"Enable debug logging to stderr."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize heybuddy storage."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Checkin  cli.CheckinCmd  `cmd:"" help:"Check in for today."`
	Mood     cli.MoodCmd     `cmd:"" help:"Record and review moods."`
	Meds     cli.MedsCmd     `cmd:"" help:"Track today's medication."`
	Buddy    cli.BuddyCmd    `cmd:"" help:"Choose and hear from your buddy."`
	Joke     cli.JokeCmd     `cmd:"" help:"Tell a joke."`
	Stats    cli.StatsCmd    `cmd:"" help:"Show streak and mood statistics."`
	Calendar cli.CalendarCmd `cmd:"" help:"Show a month of moods."`
	Settings cli.SettingsCmd `cmd:"" help:"Manage application settings."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Migrate  cli.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Backup   cli.BackupCmd   `cmd:"" help:"Manage database backups."`
	Keyring  cli.KeyringCmd  `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	DebugCmd cli.DebugCmd    `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("A friendly wellness companion: check-ins, moods and a buddy to cheer you on"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load(CLI.ConfigFile, "")
	if err != nil {
		errors.Fatalf("failed to load config: %v", err)
	}
	if CLI.Storage != "" {
		cfg.Storage = config.ExpandPath(CLI.Storage)
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	if err := logger.Init(logger.Config{
		Debug:     cfg.Debug,
		ConfigDir: cfg.ConfigDir(),
		LogDir:    cfg.LogDir,
	}); err != nil {
		logger.InitWriter(os.Stderr, cfg.Debug)
		logger.Warn("Failed to initialize log file, logging to stderr", "error", err)
	}

	store, err := cli.NewStore(cfg.Storage)
	if err != nil {
		errors.Fatal(err)
	}

	appCtx := &cli.Context{
		Store:  store,
		Config: cfg,
	}

	err = ctx.Run(appCtx)
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("Failed to close storage", "error", closeErr)
	}
	errors.Fatal(err)
}

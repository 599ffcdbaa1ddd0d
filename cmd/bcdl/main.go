package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/handiism/bcdl/internal/config"
	"github.com/handiism/bcdl/internal/download"
	"github.com/handiism/bcdl/internal/log"
	"github.com/handiism/bcdl/internal/progress"
)

const (
	flagURL     = "url"
	flagDebug   = "debug"
	flagOutput  = "output"
	flagConfig  = "config"
	flagVerbose = "verbose"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))
)

func main() {
	logger := log.NewPretty(os.Stderr).Level(config.DefaultSettings().Level())
	if err := godotenv.Load(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Debug().Msg(".env file was not found")
		} else {
			logger.Warn().Err(err).Msg("Failed to load .env file")
		}
	}

	app := &cli.App{
		Name:            "bcdl",
		Usage:           "Download albums and tracks from Bandcamp",
		HideHelpCommand: true,
		Action:          run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     flagURL,
				Aliases:  []string{"u"},
				Usage:    "Download from bandcamp URL",
				Required: true,
			},
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"d"},
				Usage:   "Don't actually save the songs",
			},
			&cli.StringFlag{
				Name:    flagOutput,
				Aliases: []string{"o"},
				Usage:   "Output directory (default: current directory)",
				EnvVars: []string{config.EnvOutputDir},
			},
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "Config file path",
			},
			&cli.BoolFlag{
				Name:  flagVerbose,
				Usage: "Show verbose output",
			},
		},
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return err
		},
	}

	if err := app.Run(os.Args); err != nil {
		printError(os.Stderr, err)
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		os.Exit(1)
	}
}

func run(cliCtx *cli.Context) error {
	ctx, cancel := signal.NotifyContext(cliCtx.Context, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	settings, err := loadSettings(cliCtx)
	if err != nil {
		return err
	}

	level := settings.Level()
	if cliCtx.Bool(flagVerbose) {
		level = zerolog.DebugLevel
	}
	logger := log.NewPretty(os.Stderr).Level(level)
	logger.Debug().Str("output_dir", settings.OutputDir).Str("user_agent", settings.UserAgent).Msg("Settings loaded")

	console := progress.NewConsole(os.Stdout, cliCtx.Bool(flagVerbose))
	defer console.Close()

	pageURL := cliCtx.String(flagURL)
	manager := download.NewManager(settings, console, logger)

	kind, err := kindLabel(pageURL)
	if err != nil {
		return err
	}
	fmt.Println(headingStyle.Render(fmt.Sprintf("Downloading %s page...", kind)))

	if err := manager.Initialize(ctx, pageURL); err != nil {
		return err
	}

	start := time.Now()
	size, err := manager.StartDownloads(ctx, cliCtx.Bool(flagDebug))
	if err != nil {
		if ctx.Err() != nil {
			return context.Canceled
		}
		return err
	}

	fmt.Println(summaryStyle.Render(summary(len(manager.Songs()), size, time.Since(start))))
	return nil
}

// loadSettings applies the config file, then BCDL_* variables, then flags.
func loadSettings(cliCtx *cli.Context) (*config.Settings, error) {
	path := cliCtx.String(flagConfig)
	if path == "" {
		path = config.DefaultPath()
	}

	settings, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	config.ApplyEnv(settings)

	if cliCtx.IsSet(flagOutput) {
		settings.OutputDir = cliCtx.String(flagOutput)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

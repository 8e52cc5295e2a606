package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/timebudget/timebudget/internal/config"
	"github.com/timebudget/timebudget/pkg/client"
	"github.com/timebudget/timebudget/pkg/navigation"
	"github.com/timebudget/timebudget/pkg/tui"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

const debugLogFile = "timebudget-cli.log"

func main() {
	app := &cli.App{
		Name:  "timebudget-cli",
		Usage: "browse and edit time budgets in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Usage: "API base URL, e.g. http://localhost:5000"},
			&cli.BoolFlag{Name: "debug", Usage: "write debug logs to " + debugLogFile},
			&cli.StringFlag{Name: "config", Usage: "path to a YAML client config", Value: "./config/client.yaml"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("loading .env: %w", err)
	}

	// the TUI owns stdout, logs go to a file or nowhere
	log.SetOutput(io.Discard)
	cfg, err := config.LoadClient(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("url") {
		cfg.Api.Url = c.String("url")
	}
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}

	if cfg.Debug {
		logFile, err := os.OpenFile(debugLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer logFile.Close()
		log.SetOutput(logFile)
		log.SetLevel(log.DebugLevel)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("timebudget-cli needs an interactive terminal")
	}

	api := client.New(cfg.Api.Url, &http.Client{Timeout: 10 * time.Second})
	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if err := api.Health(ctx); err != nil {
		log.Warnf("server at %s is not healthy: %v", cfg.Api.Url, err)
	}

	program := tea.NewProgram(tui.New(ctx, navigation.New(api)), tea.WithAltScreen())
	_, err = program.Run()
	return err
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gravitrone/taxdesk/internal/api"
	"github.com/gravitrone/taxdesk/internal/cmd"
	"github.com/gravitrone/taxdesk/internal/config"
	"github.com/gravitrone/taxdesk/internal/logging"
	"github.com/gravitrone/taxdesk/internal/ui"
)

var errNoTerminal = errors.New("the interactive client needs a terminal; try 'taxdesk list'")

func main() {
	root := &cobra.Command{
		Use:     "taxdesk",
		Short:   "Taxdesk - tax records by country",
		Long:    "Taxdesk: browse tax records, correct a record's name or country, and retry when the service is down.",
		Version: api.Version,
		RunE: func(c *cobra.Command, _ []string) error {
			return runTUI(c.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(cmd.ListCmd())
	root.AddCommand(cmd.CountriesCmd())
	root.AddCommand(cmd.EditCmd())
	root.AddCommand(cmd.ConfigCmd())
	root.AddCommand(cmd.MockServerCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Force truecolor so hex colors render correctly
	// Must be set before any lipgloss style initialization
	os.Setenv("COLORTERM", "truecolor")
}

func runTUI(ctx context.Context) error {
	if !isInteractiveTerminal(os.Stdin) || !isInteractiveTerminal(os.Stdout) {
		return errNoTerminal
	}

	cfg, err := config.LoadOrDefault()
	if err != nil {
		return err
	}

	logger, closer, err := logging.OpenFile(cfg.LogPath(), logging.ParseLevel(cfg.LogLevel))
	if err != nil {
		return err
	}
	defer closer.Close()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, &logger)
	logger.Info().Str("base_url", cfg.BaseURL).Msg("starting interactive client")

	app := ui.NewApp(ctx, cfg.Client())
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func isInteractiveTerminal(file *os.File) bool {
	if file == nil {
		return false
	}
	info, err := file.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

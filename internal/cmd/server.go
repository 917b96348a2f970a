package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gravitrone/taxdesk/internal/logging"
	"github.com/gravitrone/taxdesk/internal/mockapi"
)

// MockServerCmd returns the `taxdesk mock-server` command, a local stand-in
// for the hosted records service.
func MockServerCmd() *cobra.Command {
	var (
		addr          string
		level         string
		failRecords   int
		failCountries int
	)
	cmd := &cobra.Command{
		Use:   "mock-server",
		Short: "Serve seeded records and countries over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFaultStatus("fail-records", failRecords); err != nil {
				return err
			}
			if err := checkFaultStatus("fail-countries", failCountries); err != nil {
				return err
			}

			logger := logging.NewConsole(cmd.ErrOrStderr(), logging.ParseLevel(level))
			srv := mockapi.NewServer(mockapi.NewSeededStore(), mockapi.WithLogger(logger))
			if failRecords != 0 {
				srv.Fail("records", failRecords)
			}
			if failCountries != 0 {
				srv.Fail("countries", failCountries)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info().Str("addr", addr).Msg("mock server listening")
			if err := srv.ListenAndServe(ctx, addr); err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			logger.Info().Msg("mock server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	cmd.Flags().StringVar(&level, "log-level", "info", "log level")
	cmd.Flags().IntVar(&failRecords, "fail-records", 0, "answer record requests with this HTTP status")
	cmd.Flags().IntVar(&failCountries, "fail-countries", 0, "answer country requests with this HTTP status")
	return cmd
}

// checkFaultStatus accepts 0 (no fault) or an HTTP error status.
func checkFaultStatus(flag string, status int) error {
	if status == 0 || (status >= 400 && status <= 599) {
		return nil
	}
	return fmt.Errorf("--%s must be an HTTP error status (400-599), got %d", flag, status)
}

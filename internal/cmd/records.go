package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gravitrone/taxdesk/internal/api"
	"github.com/gravitrone/taxdesk/internal/config"
	"github.com/gravitrone/taxdesk/internal/edit"
	"github.com/gravitrone/taxdesk/internal/logging"
	"github.com/gravitrone/taxdesk/internal/session"
	"github.com/gravitrone/taxdesk/internal/ui"
)

// commandTimeout bounds a single non-interactive command end to end.
const commandTimeout = time.Minute

// setup loads the config, sends logs to stderr at the configured level and
// returns a client with a context bounded by commandTimeout.
func setup(cmd *cobra.Command) (*api.Client, context.Context, context.CancelFunc, error) {
	cfg, err := config.LoadOrDefault()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger := logging.NewConsole(cmd.ErrOrStderr(), logging.ParseLevel(cfg.LogLevel))
	logging.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, &logger)
	ctx = logging.WithField(ctx, "command", cmd.Name())
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	return cfg.Client(), ctx, cancel, nil
}

// ListCmd returns the `taxdesk list` command.
func ListCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tax records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, ctx, cancel, err := setup(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			records, err := client.ListRecords(ctx)
			if err != nil {
				return fmt.Errorf("list records: %w", err)
			}
			logging.FromContext(ctx).Debug().Int("records", len(records)).Msg("records listed")

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}
			if len(records) == 0 {
				fmt.Fprintln(out, "no records found")
				return nil
			}
			fmt.Fprintln(out, ui.RecordsGrid(records, 0))
			fmt.Fprintf(out, "total records: %d\n", len(records))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print records as JSON")
	return cmd
}

// CountriesCmd returns the `taxdesk countries` command.
func CountriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "List selectable countries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, ctx, cancel, err := setup(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			countries, err := client.ListCountries(ctx)
			if err != nil {
				return fmt.Errorf("list countries: %w", err)
			}
			logging.FromContext(ctx).Debug().Int("countries", len(countries)).Msg("countries listed")

			out := cmd.OutOrStdout()
			if len(countries) == 0 {
				fmt.Fprintln(out, "no countries found")
				return nil
			}
			for _, c := range countries {
				fmt.Fprintf(out, "  %s\n", c.Name)
			}
			return nil
		},
	}
}

// EditCmd returns the `taxdesk edit` command. It runs the same load, edit
// and reconcile path as the interactive client, without the form.
func EditCmd() *cobra.Command {
	var name, country string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a record's name or country",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("name") && !cmd.Flags().Changed("country") {
				return errors.New("nothing to change: pass --name and/or --country")
			}
			client, ctx, cancel, err := setup(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			ctx = logging.WithField(ctx, "record_id", args[0])
			log := logging.FromContext(ctx)

			sess := session.New()
			sess.ApplyLoad(session.Load(ctx, client))
			if sess.Err != nil {
				return fmt.Errorf("load data: %w", sess.Err)
			}
			log.Debug().
				Int("records", len(sess.Records)).
				Int("countries", len(sess.Countries)).
				Msg("data loaded")

			rec, err := sess.EditIntent(args[0])
			if err != nil {
				return err
			}

			var ctl edit.Controller
			if err := ctl.Open(rec, sess.Countries); err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				if err := ctl.SetName(name); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("country") {
				if err := ctl.SetCountry(country); err != nil {
					return err
				}
			}

			saved, err := ctl.Submit(ctx, client)
			if err != nil {
				var ve *edit.ValidationError
				if errors.As(err, &ve) {
					return errors.New(ve.Message)
				}
				log.Error().Err(err).Msg("save failed")
				return err
			}

			row := saved
			if sess.Reconcile(ctx, saved) {
				row, _ = sess.Record(saved.ID)
			} else {
				log.Warn().Msg("saved record is no longer listed")
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: #%s is no longer listed\n", saved.ID)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved #%s: %s (%s)\n", row.ID, row.Name, row.Country)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "new name")
	cmd.Flags().StringVarP(&country, "country", "c", "", "new country")
	return cmd
}

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/atinyakov/go-link-tracker/internal/app/service"
	"github.com/atinyakov/go-link-tracker/internal/config"
	"github.com/atinyakov/go-link-tracker/internal/models"
)

func newStatsCmd() *cobra.Command {
	var userID, email string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the dashboard of one user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (userID == "") == (email == "") {
				return errors.New("exactly one of --user or --email is required")
			}

			opts, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			if opts.DatabaseDSN == "" && opts.SQLitePath == "" {
				return errNoPersistentStore
			}

			store, closeStore, err := openStorage(cmd.Context(), opts, zap.NewNop())
			if err != nil {
				return err
			}
			defer closeStore()

			if email != "" {
				user, err := store.FindUserByEmail(cmd.Context(), strings.ToLower(strings.TrimSpace(email)))
				if err != nil {
					return fmt.Errorf("find user %s: %w", email, err)
				}
				userID = user.ID
			}

			dash, err := service.NewStatsService(store, opts.Location()).Dashboard(cmd.Context(), userID)
			if err != nil {
				return err
			}

			printDashboard(cmd.OutOrStdout(), dash)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id")
	cmd.Flags().StringVar(&email, "email", "", "user email")

	return cmd
}

func printDashboard(w io.Writer, d *models.Dashboard) {
	if d.Empty {
		fmt.Fprintln(w, "No links yet.")
		return
	}

	fmt.Fprintf(w, "Links: %d (public %d, private %d)\n", d.TotalLinks, d.Categories.Public, d.Categories.Private)
	fmt.Fprintf(w, "Views: %d total, %d today, %.1f per link\n", d.TotalViews, d.TodayViews, d.AverageViews)

	fmt.Fprintln(w, "Top links:")
	for _, l := range d.TopLinks {
		fmt.Fprintf(w, "  %-30s %-10s %d\n", l.Name, l.Token, l.Views)
	}

	fmt.Fprintf(w, "Last %d days:\n", len(d.Daily))
	for _, day := range d.Daily {
		fmt.Fprintf(w, "  %s %d\n", day.Date, day.Views)
	}
}

package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-waste-sync/models"
	"github.com/spf13/cobra"
)

// areasFromArgs resolves an optional area argument. No argument selects every
// queue.
func areasFromArgs(args []string) ([]models.QueueArea, error) {
	if len(args) == 0 {
		return models.QueueAreas, nil
	}
	area, err := parseArea(args[0])
	if err != nil {
		return nil, err
	}
	return []models.QueueArea{area}, nil
}

func parseArea(s string) (models.QueueArea, error) {
	for _, area := range models.QueueAreas {
		if string(area) == s {
			return area, nil
		}
	}
	return "", fmt.Errorf("%w: %q (want one of %v)", ErrUnknownQueue, s, models.QueueAreas)
}

func NewQueueCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect and retry the offline mutation queues",
	}
	cmd.AddCommand(newQueueListCommand(opts))
	cmd.AddCommand(newQueueDeadCommand(opts))
	cmd.AddCommand(newQueueRetryCommand(opts))
	return cmd
}

type lister func(ctx context.Context, area models.QueueArea) ([]models.PendingMutation, error)

func queueListing(opts *RootOptions, cmd *cobra.Command, args []string, list func(*App) lister) error {
	areas, err := areasFromArgs(args)
	if err != nil {
		return err
	}
	return opts.withApp(cmd, func(ctx context.Context, app *App) error {
		entries := make(map[models.QueueArea][]models.PendingMutation, len(areas))
		for _, area := range areas {
			items, err := list(app)(ctx, area)
			if err != nil {
				return err
			}
			entries[area] = items
		}
		return opts.printer(cmd).list(areas, entries)
	})
}

func newQueueListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "list [area]",
		Short:     "List mutations waiting for the server",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: areaNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return queueListing(opts, cmd, args, func(app *App) lister { return app.Pending })
		},
	}
}

func newQueueDeadCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "dead [area]",
		Short:     "List mutations the server rejected",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: areaNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return queueListing(opts, cmd, args, func(app *App) lister { return app.DeadLetters })
		},
	}
}

func newQueueRetryCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "retry <area> [localId]",
		Short: "Flush a queue now, ignoring backoff. With a localId the dead letter is requeued first",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			area, err := parseArea(args[0])
			if err != nil {
				return err
			}
			var localID string
			if len(args) == 2 {
				localID = args[1]
			}

			return opts.withStartedApp(cmd, func(ctx context.Context, app *App) error {
				report, err := app.Retry(ctx, area, localID)
				if err != nil {
					return err
				}
				return opts.printer(cmd).reports([]models.FlushReport{report})
			})
		},
	}
}

func areaNames() []string {
	names := make([]string, 0, len(models.QueueAreas))
	for _, area := range models.QueueAreas {
		names = append(names, string(area))
	}
	return names
}

package client

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-waste-sync/models"
	"github.com/spf13/cobra"
)

// submit queues payload and prints the outcome.
func (o *RootOptions) submit(cmd *cobra.Command, area models.QueueArea, payload models.Payload) error {
	return o.withStartedApp(cmd, func(ctx context.Context, app *App) error {
		entry, report, err := app.Submit(ctx, area, payload)
		if err != nil {
			return err
		}
		return o.printer(cmd).submitted(area, entry, report)
	})
}

func NewPickupCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pickup",
		Short: "Pickup requests",
	}
	cmd.AddCommand(newPickupRequestCommand(opts))
	return cmd
}

func newPickupRequestCommand(opts *RootOptions) *cobra.Command {
	var (
		wasteType   string
		description string
		scheduled   string
	)

	cmd := &cobra.Command{
		Use:   "request",
		Short: "Request a waste pickup. Works offline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !models.WasteType(wasteType).Valid() {
				return fmt.Errorf("unknown waste type %q", wasteType)
			}
			payload := models.Payload{"wasteType": wasteType}
			if description != "" {
				payload["description"] = description
			}
			if scheduled != "" {
				at, err := time.Parse(time.RFC3339, scheduled)
				if err != nil {
					return fmt.Errorf("scheduled date must be RFC3339: %w", err)
				}
				payload["scheduledDate"] = at.UTC().Format(time.RFC3339)
			}
			return opts.submit(cmd, models.QueuePickups, payload)
		},
	}

	cmd.Flags().StringVarP(&wasteType, "waste-type", "t", string(models.WasteTypeGeneral), "general|recyclable|organic|ewaste|bulky")
	cmd.Flags().StringVarP(&description, "description", "d", "", "free text for the crew")
	cmd.Flags().StringVar(&scheduled, "scheduled-date", "", "preferred date (RFC3339)")
	return cmd
}

func NewPayCommand(opts *RootOptions) *cobra.Command {
	var (
		amount  float64
		txType  string
		comment string
	)

	cmd := &cobra.Command{
		Use:   "pay",
		Short: "Pay a bill or request a payback. Works offline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if amount <= 0 {
				return fmt.Errorf("amount must be positive")
			}
			if !models.TransactionType(txType).Valid() {
				return fmt.Errorf("unknown transaction type %q", txType)
			}
			payload := models.Payload{"amount": amount, "type": txType}
			if comment != "" {
				payload["description"] = comment
			}
			return opts.submit(cmd, models.QueuePayments, payload)
		},
	}

	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "amount to pay")
	cmd.Flags().StringVar(&txType, "type", string(models.TransactionPayment), "payment|payback")
	cmd.Flags().StringVar(&comment, "comment", "", "optional note")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func NewScanCommand(opts *RootOptions) *cobra.Command {
	var (
		binID    string
		weight   float64
		lat, lng float64
		accuracy float64
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Record a bin collection. Works offline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if weight < 0 {
				return fmt.Errorf("weight must not be negative")
			}
			payload := models.Payload{"binId": binID, "weight": weight}

			flags := cmd.Flags()
			if flags.Changed("lat") && flags.Changed("lng") {
				location := map[string]any{
					"latitude":   lat,
					"longitude":  lng,
					"capturedAt": time.Now().UTC().Format(time.RFC3339),
				}
				if flags.Changed("accuracy") {
					location["accuracy"] = accuracy
				}
				payload["location"] = location
			}
			return opts.submit(cmd, models.QueueCollections, payload)
		},
	}

	cmd.Flags().StringVarP(&binID, "bin-id", "b", "", "scanned bin code, e.g. BIN-001")
	cmd.Flags().Float64VarP(&weight, "weight", "w", 0, "collected weight in kg")
	cmd.Flags().Float64Var(&lat, "lat", 0, "device latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "device longitude")
	cmd.Flags().Float64Var(&accuracy, "accuracy", 0, "location accuracy in meters")
	_ = cmd.MarkFlagRequired("bin-id")
	_ = cmd.MarkFlagRequired("weight")
	return cmd
}

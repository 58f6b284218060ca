package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Sayan30092004/load-main/internal/cli"
	"github.com/Sayan30092004/load-main/internal/common"
	"github.com/Sayan30092004/load-main/internal/metrics"
	"github.com/Sayan30092004/load-main/internal/model"
	"github.com/Sayan30092004/load-main/internal/tui/components"
	"github.com/Sayan30092004/load-main/internal/workflow"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// errMismatchedResponse is reported when the service answered for a different region.
var errMismatchedResponse = errors.New("prediction service answered for a different region")

func predictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict <region>",
		Short: "Fetch one prediction without the dashboard",
		Long: `Fetch the supply, demand and blackout-risk prediction for a region and date.

Region names containing spaces must be quoted, e.g. loadmap predict "North 24 Parganas".`,
		Args: cobra.ExactArgs(1),
		RunE: runPredict,
	}

	// Flags
	cmd.Flags().StringP("date", "d", "", "Prediction date (YYYY-MM-DD, default dashboard.date)")
	cmd.Flags().StringP("output", "o", "table", "Output format (table, json)")

	// Bind to viper
	_ = viper.BindPFlag("predict.output", cmd.Flags().Lookup("output"))

	return cmd
}

func runPredict(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dateFlag, _ := cmd.Flags().GetString("date")
	date, err := parseDate(dateFlag, cfg.DefaultDate)
	if err != nil {
		return err
	}

	controller, err := newController(cfg)
	if err != nil {
		return err
	}

	region := strings.TrimSpace(args[0])
	state, err := fetchPrediction(cmd.Context(), controller, region, date)
	if err != nil {
		return err
	}

	return renderPrediction(cmd.OutOrStdout(), state, viper.GetString("predict.output"))
}

// fetchPrediction runs one selection cycle and waits for it to settle.
func fetchPrediction(ctx context.Context, c *workflow.Controller, region string, date time.Time) (model.WorkflowState, error) {
	updates, cancel := c.Subscribe()
	defer cancel()

	if _, err := c.SelectRegion(ctx, region, date); err != nil {
		if errors.Is(err, model.ErrUnknownRegion) {
			return model.WorkflowState{}, unknownRegionError(region, c.Regions(), err)
		}
		return model.WorkflowState{}, err
	}
	defer c.Wait()

	for {
		select {
		case <-ctx.Done():
			return model.WorkflowState{}, ctx.Err()
		case state := <-updates:
			if state.IsLoading {
				continue
			}
			switch {
			case state.LastError != nil:
				return state, common.NewUserError(
					fmt.Sprintf("Prediction for %s failed", region),
					errors.New(state.LastError.String()))
			case state.LastResult == nil:
				return state, common.NewUserError(fmt.Sprintf("Prediction for %s was discarded", region), errMismatchedResponse)
			}
			return state, nil
		}
	}
}

type predictionOutput struct {
	Price               *float64 `json:"price,omitempty"`
	Region              string   `json:"region"`
	Date                string   `json:"date"`
	Risk                string   `json:"risk"`
	Demand              float64  `json:"demand"`
	Supply              float64  `json:"supply"`
	Balance             float64  `json:"balance"`
	BlackoutProbability float64  `json:"blackoutProbability"`
}

// renderPrediction writes the settled result as a styled box or as JSON.
func renderPrediction(w io.Writer, state model.WorkflowState, format string) error {
	if state.LastResult == nil {
		return common.NewUserError("No prediction to show", common.ErrMissingConfig)
	}
	summary := metrics.Summarize(*state.LastResult, state.UpdatedAt)

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(predictionOutput{
			Region:              summary.Region,
			Date:                model.FormatDate(state.Date),
			Demand:              summary.Demand,
			Supply:              summary.Supply,
			Balance:             summary.Balance,
			BlackoutProbability: summary.BlackoutProbability,
			Risk:                string(summary.Risk),
			Price:               summary.Price,
		})

	case "table", "":
		risk := cli.SuccessStyle.Render(fmt.Sprintf("%s (%s)", metrics.Percent(summary.BlackoutProbability), summary.Risk))
		if summary.Risk == metrics.RiskElevated {
			risk = cli.ErrorStyle.Render(fmt.Sprintf("%s (%s)", metrics.Percent(summary.BlackoutProbability), summary.Risk))
		}
		balance := fmt.Sprintf("%+.1f MW", summary.Balance)
		if summary.Deficit() {
			balance = cli.WarningStyle.Render(balance + " deficit")
		}

		lines := []string{
			cli.KeyValue("Date", components.FormatLongDate(state.Date)),
			cli.KeyValue("Demand", fmt.Sprintf("%.1f MW", summary.Demand)),
			cli.KeyValue("Supply", fmt.Sprintf("%.1f MW", summary.Supply)),
			cli.KeyValue("Balance", balance),
			cli.KeyValue("Blackout risk", risk),
		}
		if summary.Price != nil {
			lines = append(lines, cli.KeyValue("Energy price", fmt.Sprintf("%.2f", *summary.Price)))
		}

		_, err := fmt.Fprintln(w, cli.RenderBox(cli.BoltIcon+" "+summary.Region, strings.Join(lines, "\n")))
		return err

	default:
		return common.NewUserError(fmt.Sprintf("Unknown output format %q (use table or json)", format), common.ErrInvalidConfig)
	}
}

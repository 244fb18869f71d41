package commands

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"fxconvert/internal/app"
	"fxconvert/internal/conversion"
	"fxconvert/internal/domain"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func convertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <amount> [from]",
		Short: "Fetch the latest rates and convert an amount into every target currency",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(args[0], 64)
			if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
				return fmt.Errorf("invalid amount %q", args[0])
			}
			from := domain.BaseCurrency
			if len(args) == 2 {
				from = domain.NormalizeCode(args[1])
			}

			logrus.SetOutput(cmd.ErrOrStderr())
			components, err := app.Build(cmd.Context(), appCfg)
			if err != nil {
				return err
			}
			defer components.Close()

			if err = components.Catalog.ValidateCode(from); err != nil {
				return fmt.Errorf("%s: %w", from, err)
			}

			refreshErr := components.State.Refresh(cmd.Context())
			snap := components.State.Snapshot()
			if snap.Error != nil {
				color.New(color.FgRed).Fprintf(cmd.ErrOrStderr(), "%s\n", snap.Error.Message)
			}
			renderConversions(cmd.OutOrStdout(), amount, from, components.State.Conversions(amount, from), snap)
			return refreshErr
		},
	}
}

func renderConversions(w io.Writer, amount float64, from string, rows []conversion.ConversionRow, snap conversion.Snapshot) {
	header := color.New(color.Bold)
	code := color.New(color.FgCyan)
	value := color.New(color.FgGreen)
	muted := color.New(color.Faint)

	header.Fprintf(w, "%s %s\n", strconv.FormatFloat(amount, 'f', 2, 64), from)
	if len(rows) == 0 {
		muted.Fprintln(w, "no target currencies selected")
	}
	for _, row := range rows {
		code.Fprintf(w, "%-4s", row.Target)
		value.Fprintf(w, " %14.2f", row.Amount)
		muted.Fprintf(w, "   1 %s = %.4f %s\n", from, row.Rate, row.Target)
	}
	muted.Fprintf(w, "Last updated: %s\n", snap.TimeSinceUpdate)
}

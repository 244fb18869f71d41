package commands

import (
	"fmt"
	"io"
	"strings"

	"fxconvert/internal/app"
	"fxconvert/internal/domain"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func targetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "targets",
		Short: "Show or change the selected target currencies",
	}
	cmd.AddCommand(targetsListCmd(), targetsAddCmd(), targetsRemoveCmd())
	return cmd
}

func targetsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the selected and the available currencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logrus.SetOutput(cmd.ErrOrStderr())
			components, err := app.Build(cmd.Context(), appCfg)
			if err != nil {
				return err
			}
			defer components.Close()

			snap := components.State.Snapshot()
			renderTargets(cmd.OutOrStdout(), snap.TargetCurrencies)
			color.New(color.Faint).Fprintf(cmd.OutOrStdout(), "available: %s\n", strings.Join(snap.AvailableCurrencies, " "))
			return nil
		},
	}
}

func targetsAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <code>",
		Short: "Select a target currency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logrus.SetOutput(cmd.ErrOrStderr())
			components, err := app.Build(cmd.Context(), appCfg)
			if err != nil {
				return err
			}
			defer components.Close()

			code := domain.NormalizeCode(args[0])
			if err = components.Catalog.ValidateCode(code); err != nil {
				return fmt.Errorf("%s: %w", code, err)
			}
			if !components.State.AddTargetCurrency(cmd.Context(), code) {
				color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), "%s is already selected\n", code)
			}
			renderTargets(cmd.OutOrStdout(), components.State.Snapshot().TargetCurrencies)
			return nil
		},
	}
}

func targetsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <code>",
		Short: "Deselect a target currency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logrus.SetOutput(cmd.ErrOrStderr())
			components, err := app.Build(cmd.Context(), appCfg)
			if err != nil {
				return err
			}
			defer components.Close()

			code := domain.NormalizeCode(args[0])
			if !components.State.RemoveTargetCurrency(cmd.Context(), code) {
				color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), "%s is not selected\n", code)
			}
			renderTargets(cmd.OutOrStdout(), components.State.Snapshot().TargetCurrencies)
			return nil
		},
	}
}

func renderTargets(w io.Writer, targets []string) {
	if len(targets) == 0 {
		color.New(color.Faint).Fprintln(w, "targets: none")
		return
	}
	fmt.Fprint(w, "targets: ")
	color.New(color.FgCyan).Fprintln(w, strings.Join(targets, " "))
}

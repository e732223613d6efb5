package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"execview/cli/api"
	"execview/cli/history"
	"execview/cli/style"
)

var showCmd = &cobra.Command{
	Use:     "show <execution-id>",
	Short:   "Print one execution with its log",
	Aliases: []string{"s"},
	Args:    cobra.ExactArgs(1),
	RunE:    runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	res := history.NewResource(client, logger)
	defer res.Close()
	view := history.NewDetailView(res, loc)

	id := api.ParseID(args[0])
	if fetch := view.SetExecutionID(id); fetch != nil {
		view.Update(fetch())
	}

	snap := view.Snapshot()
	if snap.Err != nil {
		return fmt.Errorf("failed to fetch execution: %w", snap.Err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), style.Banner.Render("⚡ EXECUTION")+style.DimText.Render("  "+id.String()))
	fmt.Fprintln(cmd.OutOrStdout(), view.Render(0))
	return nil
}

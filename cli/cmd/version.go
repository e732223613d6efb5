package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"execview/cli/style"
)

var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		logo := lipgloss.NewStyle().
			Bold(true).
			Foreground(style.Primary).
			Render("  execview")

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, logo)
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  %s %s\n", style.Key.Render("Version"), style.Val.Render(Version))
		fmt.Fprintf(out, "  %s %s\n", style.Key.Render("API"), style.Val.Render(cfg.APIURL))
		fmt.Fprintln(out)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"execview/cli/style"
)

var healthCmd = &cobra.Command{
	Use:     "health",
	Short:   "Check health of the history server's backing services",
	Aliases: []string{"doctor", "h"},
	RunE:    runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	h, err := client.Health(cmd.Context())
	if err != nil {
		return fmt.Errorf("cannot reach history API at %s: %w", cfg.APIURL, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, style.Banner.Render("⚡ HISTORY HEALTH"))
	fmt.Fprintln(out)

	serviceNames := map[string]string{
		"postgres": "PostgreSQL",
		"s3":       "Log archive",
	}

	allUp := true
	for _, s := range h.Services {
		name := serviceNames[s.Name]
		if name == "" {
			name = s.Name
		}

		var label string
		switch s.Status {
		case "up":
			label = style.StatusOK.Render("up")
		case "down":
			label = style.StatusFailed.Render("down")
			allUp = false
		default:
			label = style.Warning.Render(s.Status)
		}
		if s.Details != "" {
			label += style.DimText.Render("  " + s.Details)
		}

		fmt.Fprintf(out, "  %s %s\n", style.Key.Render(name), label)
	}

	fmt.Fprintln(out)
	if allUp {
		fmt.Fprintln(out, style.StatusOK.Render("All services healthy"))
	} else {
		fmt.Fprintln(out, style.StatusFailed.Render("Some services are down"))
	}
	return nil
}

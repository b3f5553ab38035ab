package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <character_id>",
		Short: "Show a character and the episodes it appears in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid character id %q", args[0])
			}

			ch, err := client.GetCharacter(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("get character: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Character: %s (#%d)\n", ch.Name, ch.ID)
			fmt.Fprintf(out, "  Status:   %s\n", colorStatus(ch.Status, ch.Status.String()))
			fmt.Fprintf(out, "  Species:  %s\n", ch.Species)
			if ch.Type != "" {
				fmt.Fprintf(out, "  Type:     %s\n", ch.Type)
			}
			fmt.Fprintf(out, "  Gender:   %s\n", ch.Gender)
			fmt.Fprintf(out, "  Origin:   %s\n", ch.Origin.Name)
			fmt.Fprintf(out, "  Location: %s\n", ch.Location.Name)
			if !ch.Created.IsZero() {
				fmt.Fprintf(out, "  Created:  %s\n", ch.Created.Format("2006-01-02"))
			}

			// Episodes are best effort, like on the detail page.
			eps, err := client.GetEpisodes(cmd.Context(), id)
			if err != nil {
				logger.Warn("load episodes failed", "id", id, "error", err)
				return nil
			}
			if len(eps) > 0 {
				fmt.Fprintf(out, "  Episodes (%d):\n", len(eps))
				for _, ep := range eps {
					fmt.Fprintf(out, "    - %s  %s (%s)\n", ep.Code, ep.Name, ep.AirDate)
				}
			}
			return nil
		},
	}
}

package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/me/rickdex/pkg/model"
)

// colorStatus renders text in the colour of the character status.
func colorStatus(s model.CharacterStatus, text string) string {
	switch s {
	case model.StatusAlive:
		return color.GreenString("%s", text)
	case model.StatusDead:
		return color.RedString("%s", text)
	default:
		return color.New(color.FgHiBlack).Sprint(text)
	}
}

func newListCmd() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of characters",
		RunE: func(cmd *cobra.Command, args []string) error {
			if page < 1 {
				page = 1
			}
			chars, pg, err := client.ListCharacters(cmd.Context(), page)
			if err != nil {
				return fmt.Errorf("list characters: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(chars) == 0 {
				fmt.Fprintln(out, "No characters found.")
				return nil
			}

			fmt.Fprintf(out, "%-6s  %-30s  %-8s  %-16s  %s\n", "ID", "NAME", "STATUS", "SPECIES", "LOCATION")
			fmt.Fprintf(out, "%-6s  %-30s  %-8s  %-16s  %s\n", "--", "----", "------", "-------", "--------")
			for _, ch := range chars {
				// Pad before colouring so escape codes do not break alignment.
				status := colorStatus(ch.Status, fmt.Sprintf("%-8s", ch.Status))
				fmt.Fprintf(out, "%-6d  %-30s  %s  %-16s  %s\n",
					ch.ID, ch.Name, status, ch.Species, ch.Location.Name)
			}

			if pg != nil {
				fmt.Fprintf(out, "\nPage %d of %d (%d characters)\n", pg.Page, pg.Pages, pg.Count)
				if pg.HasNext {
					fmt.Fprintf(out, "Next: rickdex list --page %d\n", pg.Page+1)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	return cmd
}

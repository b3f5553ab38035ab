package cli

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/me/rickdex/internal/nav"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

func newShareCmd() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "share",
		Short: "Copy the link to a list page to the clipboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			link := nav.ListState{Page: page}.ShareURL(client.BaseURL)
			out := cmd.OutOrStdout()

			if err := clipboardWriteAll(link); err != nil {
				fmt.Fprintf(out, "%s %s\n", color.RedString("Copy failed:"), link)
				return fmt.Errorf("copy link to clipboard: %w", err)
			}
			fmt.Fprintf(out, "%s %s\n", color.GreenString("Link copied!"), link)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	return cmd
}

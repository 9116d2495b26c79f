package main

import (
	"fmt"
	"sort"

	"github.com/deppfellow/petcare-api/internal/lib/email"
	"github.com/spf13/cobra"
)

func newPreviewEmailCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "preview-email [template]",
		Short: "Render an email template with sample data to stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				names := make([]string, 0, len(email.PreviewData))
				for name := range email.PreviewData {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}

			html, err := email.RenderPreview(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), html)
			return nil
		},
	}
}

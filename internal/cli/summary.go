package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/mcoot/trampoline/internal/api/response"
)

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "summaries",
		Aliases: []string{"summary"},
		Short:   "Completed game history",
	}

	cmd.AddCommand(newSummaryListCmd())
	cmd.AddCommand(newSummaryGetCmd())

	return cmd
}

func newSummaryListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recently completed games",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.SummaryList
			if err := client.Get(fmt.Sprintf("/api/v1/summaries?limit=%d", limit), &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of summaries")

	return cmd
}

func newSummaryGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show the summary of a completed game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.GameSummary
			if err := client.Get("/api/v1/summaries/"+url.PathEscape(args[0]), &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

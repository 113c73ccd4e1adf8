package cli

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/mcoot/trampoline/internal/api/response"
	"github.com/mcoot/trampoline/internal/services/dictionary"
	"github.com/mcoot/trampoline/internal/storage/memory"
)

func newDictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dict",
		Short: "Dictionary commands",
	}

	cmd.AddCommand(newDictStatusCmd())
	cmd.AddCommand(newDictCheckCmd())

	return cmd
}

func newDictStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the server dictionary is loaded",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.DictionaryStatus
			if err := client.Get("/api/v1/dictionary", &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newDictCheckCmd() *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "check <word>...",
		Short: "Check whether words are in the dictionary",
		Long: `Check words against the server dictionary.

With --local the word list is read from disk instead (env: TRAMPOLINE_DICTIONARY),
so no server is needed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			check := checkRemote
			if local {
				dict, err := loadLocalDictionary(cmd.Context(), cfg.DictionaryPath)
				if err != nil {
					return err
				}
				check = func(word string) (response.WordCheck, error) {
					return response.WordCheck{
						Word:       word,
						Normalized: dictionary.Normalize(word),
						Valid:      dict.IsValidWord(word),
					}, nil
				}
			}

			out := NewOutput(cfg.Output)
			for _, word := range args {
				result, err := check(word)
				if err != nil {
					return err
				}
				out.Print(result)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "Check against the local word list")

	return cmd
}

func checkRemote(word string) (response.WordCheck, error) {
	var result response.WordCheck
	err := client.Get("/api/v1/dictionary/"+url.PathEscape(word), &result)
	return result, err
}

func loadLocalDictionary(ctx context.Context, path string) (*dictionary.Service, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := slog.New(slog.DiscardHandler)
	dict := dictionary.New(memory.New(), logger)
	if err := dict.LoadFromFile(ctx, path); err != nil {
		return nil, err
	}
	return dict, nil
}

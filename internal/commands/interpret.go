package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FelipeMTN/pocket-prodigy-plan/internal/assistant"
	"github.com/FelipeMTN/pocket-prodigy-plan/internal/completion"
	"github.com/FelipeMTN/pocket-prodigy-plan/internal/config"
	"github.com/FelipeMTN/pocket-prodigy-plan/internal/services"
)

func newInterpretCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interpret <message...>",
		Short: "Run the assistant on a message against the local database",
		Long: `Runs the chat assistant on a single message and prints the reply.
Recognized commands (expenses, goals, summaries) mutate the local database;
anything else is answered by the language model when OPENAI_API_KEY is set.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openStorage(cmd)
			if err != nil {
				return err
			}
			defer repo.Close()

			cfg := config.Load()
			var complete assistant.Completer
			if cfg.OpenAIAPIKey != "" {
				var opts []completion.Option
				if cfg.OpenAIBaseURL != "" {
					opts = append(opts, completion.WithBaseURL(cfg.OpenAIBaseURL))
				}
				if cfg.OpenAIModel != "" {
					opts = append(opts, completion.WithModel(cfg.OpenAIModel))
				}
				complete = completion.NewClient(cfg.OpenAIAPIKey, opts...)
			}

			expenses := services.NewExpenseService(repo, nil)
			service := services.NewAssistantService(expenses, repo, complete)

			reply, err := service.HandleMessage(cmd.Context(), resolveOwner(cmd), strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("interpret: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		},
	}

	return cmd
}

package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Rorical/RoriFunc/internal/console"
	"github.com/Rorical/RoriFunc/internal/core"
	"github.com/Rorical/RoriFunc/internal/tools"
)

var (
	counterPremium        bool
	counterLastSuggestion string
)

var counterCmd = &cobra.Command{
	Use:   "counter",
	Short: "Chat that counts your questions",
	Long: `Start a non-streaming chat where the model calls increment_question_counter for every question
and congratulates the user on the third one. Premium users get an extra greeting when the last one
was at least a week ago.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		counter := &tools.QuestionCounter{}
		svc := core.NewService(requireClient(cfg), mustRegistry(tools.CounterTools(counter)), core.Options{
			Model:       cfg.GetModel(),
			Temperature: 1,
			TopP:        0.95,
			MaxTokens:   400,
		})

		last, err := time.Parse(time.DateOnly, counterLastSuggestion)
		if err != nil {
			fatalf("Invalid --last-suggestion: %v", err)
		}

		conv := core.NewConversation(counterSystemPrompt)
		if greetPremium(counterPremium, time.Now(), last) {
			conv.AugmentSystemPrompt(premiumGreeting)
		}

		reader := console.NewLineReader(os.Stdin, os.Stdout)
		if err := console.Loop(commandContext(cmd.Context()), reader, os.Stdout, turnHandler(svc, conv, os.Stdout, 0)); err != nil {
			fatalf("Chat failed: %v", err)
		}
	},
}

// greetPremium reports whether a premium user is due the extra greeting.
func greetPremium(premium bool, now, lastSuggestion time.Time) bool {
	return premium && now.Sub(lastSuggestion) >= 7*24*time.Hour
}

func init() {
	counterCmd.Flags().BoolVar(&counterPremium, "premium", true, "treat the user as a premium user")
	counterCmd.Flags().StringVar(&counterLastSuggestion, "last-suggestion", "2022-01-01", "date the premium greeting was last shown")
	rootCmd.AddCommand(counterCmd)
}

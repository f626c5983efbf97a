package cmd

import (
	"fmt"
	"os"

	"github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"

	"github.com/Rorical/RoriFunc/internal/core"
	"github.com/Rorical/RoriFunc/internal/tools"
)

var historyFile string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Summarize a stored conversation history as JSON",
	Long:  `Ask the model to summarize a stored conversation history and suggest next prompts. The answer is a JSON object.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		svc := core.NewService(requireClient(cfg), mustRegistry(tools.HistoryTools(tools.FileHistory(historyFile))), core.Options{
			Model: cfg.GetModel(),
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		})

		conv := core.NewConversation(historySystemPrompt)
		res, err := svc.Turn(commandContext(cmd.Context()), conv, historyQuestion, traceHooks(os.Stderr))
		if err != nil {
			fatalf("Turn failed: %v", err)
		}
		fmt.Println(res.Text)
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyFile, "file", "", "conversation history JSON file (defaults to the bundled sample)")
	rootCmd.AddCommand(historyCmd)
}

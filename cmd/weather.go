package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Rorical/RoriFunc/internal/console"
	"github.com/Rorical/RoriFunc/internal/core"
	"github.com/Rorical/RoriFunc/internal/tools"
)

var weatherStream bool

var weatherCmd = &cobra.Command{
	Use:   "weather [question]",
	Short: "Ask one weather question and exit",
	Long:  `Ask a single question with get_current_weather available. Defaults to the weather in San Francisco, Tokyo, and Paris.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		svc := core.NewService(requireClient(cfg), mustRegistry(tools.WeatherTools()), core.Options{
			Model:  cfg.GetModel(),
			Stream: weatherStream,
		})

		question := weatherQuestion
		if len(args) > 0 {
			question = args[0]
		}
		fmt.Printf("User:> %s\n", question)

		printer := console.NewPrinter(os.Stdout, 0)
		hooks := traceHooks(os.Stdout)
		hooks.OnText = printer.Text

		conv := core.NewConversation(weatherSystemPrompt)
		_, err := svc.Turn(commandContext(cmd.Context()), conv, question, hooks)
		printer.End()
		if err != nil {
			fatalf("Turn failed: %v", err)
		}
	},
}

func init() {
	weatherCmd.Flags().BoolVar(&weatherStream, "stream", false, "stream the answer")
	rootCmd.AddCommand(weatherCmd)
}

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Rorical/RoriFunc/internal/console"
	"github.com/Rorical/RoriFunc/internal/core"
	"github.com/Rorical/RoriFunc/internal/tools"
)

var sequentialMaxRounds int

var sequentialCmd = &cobra.Command{
	Use:   "sequential [question]",
	Short: "Let the model chain time, stock data and calculator calls",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		svc := core.NewService(requireClient(cfg), mustRegistry(tools.SequentialTools(time.Now)), core.Options{
			Model:         cfg.GetModel(),
			MaxToolRounds: sequentialMaxRounds,
		})

		question := sequentialQuestion
		if len(args) > 0 {
			question = args[0]
		}
		fmt.Printf("User:> %s\n", question)

		conv := core.NewConversation(sequentialSystemPrompt)
		res, err := svc.Turn(commandContext(cmd.Context()), conv, question, traceHooks(os.Stdout))
		if err != nil {
			fatalf("Turn failed: %v", err)
		}

		printer := console.NewPrinter(os.Stdout, 0)
		printer.Text(res.Text)
		printer.End()
		if len(res.Dropped) > 0 {
			fmt.Printf("(stopped after %d tool rounds; %d further call(s) ignored)\n", res.ToolRounds, len(res.Dropped))
		}
	},
}

func init() {
	sequentialCmd.Flags().IntVar(&sequentialMaxRounds, "max-rounds", 5, "tool call rounds allowed before the model must answer")
	rootCmd.AddCommand(sequentialCmd)
}

package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rorifunc",
	Short: "Function calling chat examples for OpenAI compatible models",
	Long:  `RoriFunc runs chat sessions where the model can call local functions, over Azure OpenAI, OpenAI or Ollama.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
	// Default behavior: run the weather chat
	Run: runChat,
}

func Execute() {
	// Ctrl-C cancels the command context so chats print their goodbye.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.SetOutput(os.Stderr)
		log.Printf("Command execution error: %v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with API_HOST and provider settings")
	rootCmd.PersistentFlags().StringVarP(&profileName, "profile", "p", "", "profile to use instead of the active one")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log tool calls and requests to stderr")
	addChatFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(profileCmd)
}

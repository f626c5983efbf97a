package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Rorical/RoriFunc/internal/app"
	"github.com/Rorical/RoriFunc/internal/config"
	"github.com/Rorical/RoriFunc/internal/console"
	"github.com/Rorical/RoriFunc/internal/core"
	"github.com/Rorical/RoriFunc/internal/models"
	"github.com/Rorical/RoriFunc/internal/tools"
)

var (
	chatTUI   bool
	chatDelay time.Duration
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with a model that can look up the weather",
	Long:  `Start an interactive streaming chat. The model may call get_current_weather once per question before answering.`,
	Run:   runChat,
}

func addChatFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&chatTUI, "tui", false, "use the full screen terminal UI")
	cmd.Flags().DurationVar(&chatDelay, "delay", 0, "pause between streamed chunks, e.g. 100ms")
}

func runChat(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	client := newClient(cfg)
	svc := core.NewService(client, mustRegistry(tools.WeatherTools()), core.Options{
		Model:  cfg.GetModel(),
		Stream: true,
	})
	conv := core.NewConversation(weatherSystemPrompt)

	if chatTUI {
		runTUI(cfg, svc, conv, client != nil)
		return
	}

	if client == nil {
		fatalf("Profile '%s' has no API key. Run 'rorifunc profile edit' or set API_HOST in %s", cfg.ActiveName(), envFile)
	}
	reader := console.NewLineReader(os.Stdin, os.Stdout)
	if err := console.Loop(commandContext(cmd.Context()), reader, os.Stdout, turnHandler(svc, conv, os.Stdout, chatDelay)); err != nil {
		fatalf("Chat failed: %v", err)
	}
}

func runTUI(cfg *config.Config, svc *core.Service, conv *core.Conversation, ready bool) {
	welcome := models.Message{
		Type:    models.Program,
		Content: "RoriFunc weather chat. Ask about the weather anywhere; type exit to leave.",
	}
	label := fmt.Sprintf("%s · %s", cfg.ActiveName(), cfg.GetModel())
	application := app.NewApplication(svc, conv, ready, label, welcome)
	defer application.Stop()

	if err := application.Start(); err != nil {
		fatalf("Application error: %v", err)
	}
}

func init() {
	addChatFlags(chatCmd)
	rootCmd.AddCommand(chatCmd)
}

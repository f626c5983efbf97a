package cmd

import (
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Rorical/RoriFunc/internal/core"
	"github.com/Rorical/RoriFunc/internal/server"
	"github.com/Rorical/RoriFunc/internal/tools"
)

var (
	serveAddr  string
	serveDelay time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the weather chat over HTTP",
	Long: `Serve POST /chat, which runs one turn for the posted messages and streams the reply
as newline delimited JSON chunks, and GET /healthz.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		svc := core.NewService(requireClient(cfg), mustRegistry(tools.WeatherTools()), core.Options{
			Model:     cfg.GetModel(),
			TopP:      0.95,
			MaxTokens: 4096,
			Stream:    true,
		})

		conf := server.ServerConfigs()
		conf.Addr = serveAddr
		conf.ChunkDelay = serveDelay
		conf.SystemPrompt = weatherSystemPrompt

		// The server logs even without --verbose.
		log.SetOutput(os.Stderr)
		if err := server.NewServer(conf, svc).Run(commandContext(cmd.Context())); err != nil {
			fatalf("%v", err)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "localhost:9090", "listen address")
	serveCmd.Flags().DurationVar(&serveDelay, "delay", 100*time.Millisecond, "pause between streamed chunks")
	rootCmd.AddCommand(serveCmd)
}

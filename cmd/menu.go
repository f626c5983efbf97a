package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Rorical/RoriFunc/internal/core"
	"github.com/Rorical/RoriFunc/internal/structured"
)

var menuFile string

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Parse a raw coffee menu into structured items",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		raw := structured.SampleMenuText
		if menuFile != "" {
			data, err := os.ReadFile(menuFile)
			if err != nil {
				fatalf("Failed to read menu: %v", err)
			}
			raw = string(data)
		}

		format, err := structured.NewFormat[structured.CoffeeMenu]("CoffeeMenu", "Items of a coffee menu")
		if err != nil {
			fatalf("Failed to build response format: %v", err)
		}

		svc := core.NewService(requireClient(cfg), nil, core.Options{Model: cfg.GetModel()})
		conv := core.NewConversation(menuSystemPrompt)
		conv.Append(userMessage(structured.MenuPrompt(raw)))

		menu, err := core.Parse(commandContext(cmd.Context()), svc, conv, format).Unwrap()
		if err != nil {
			fatalf("Failed to parse menu: %v", err)
		}
		structured.PrintMenu(os.Stdout, menu)
	},
}

func init() {
	menuCmd.Flags().StringVar(&menuFile, "file", "", "raw menu text file (defaults to a sample menu)")
	rootCmd.AddCommand(menuCmd)
}

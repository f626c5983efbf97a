package cmd

import (
	"github.com/spf13/cobra"
)

var useCmd = &cobra.Command{
	Use:   "use [profile-name]",
	Short: "Switch to a profile and start the chat",
	Long:  `Switch to the specified profile, save it as active and immediately start the weather chat.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		if err := cfg.UseProfile(args[0]); err != nil {
			fatalf("%v", err)
		}
		if err := cfg.Save(); err != nil {
			fatalf("Failed to save config: %v", err)
		}

		// The chat reloads the config and picks up the saved profile.
		profileName = args[0]
		runChat(cmd, nil)
	},
}

func init() {
	addChatFlags(useCmd)
	rootCmd.AddCommand(useCmd)
}

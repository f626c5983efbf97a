package cmd

import (
	"fmt"
	"sort"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/Rorical/RoriFunc/internal/config"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage API profiles",
	Long:  `Manage API profiles for Azure OpenAI, OpenAI and Ollama.`,
}

var hosts = []string{config.HostOpenAI, config.HostAzure, config.HostOllama}

func sortedProfileNames(cfg *config.Config, skip string) []string {
	names := make([]string, 0, len(cfg.Profiles))
	for name := range cfg.Profiles {
		if name != skip {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// selectProfile returns args[0] or lets the user pick one of names.
func selectProfile(args []string, label string, names []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if len(names) == 0 {
		fatalf("No profiles available")
	}
	prompt := promptui.Select{
		Label: label,
		Items: names,
	}
	_, name, err := prompt.Run()
	if err != nil {
		fatalf("Selection failed: %v", err)
	}
	return name
}

func runPrompt(prompt promptui.Prompt) string {
	value, err := prompt.Run()
	if err != nil {
		fatalf("Prompt failed: %v", err)
	}
	return value
}

// promptProfile asks for every profile field, offering current values as defaults.
func promptProfile(profile config.Profile) config.Profile {
	hostPrompt := promptui.Select{
		Label: "API host",
		Items: hosts,
	}
	if profile.APIHost != "" {
		for i, h := range hosts {
			if h == profile.APIHost {
				hostPrompt.CursorPos = i
			}
		}
	}
	_, host, err := hostPrompt.Run()
	if err != nil {
		fatalf("Selection failed: %v", err)
	}
	profile.APIHost = host

	if host != config.HostOllama {
		profile.APIKey = runPrompt(promptui.Prompt{
			Label:   "API Key",
			Default: profile.APIKey,
			Mask:    '*',
		})
	}

	switch host {
	case config.HostAzure:
		profile.BaseURL = runPrompt(promptui.Prompt{
			Label:   "Azure endpoint",
			Default: profile.BaseURL,
		})
		profile.APIVersion = runPrompt(promptui.Prompt{
			Label:   "API version",
			Default: profile.APIVersion,
		})
		profile.Model = runPrompt(promptui.Prompt{
			Label:   "Deployment name",
			Default: orDefault(profile.Model, config.DefaultModel),
		})
	case config.HostOllama:
		profile.BaseURL = runPrompt(promptui.Prompt{
			Label:   "Base URL",
			Default: orDefault(profile.BaseURL, config.DefaultOllamaBaseURL),
		})
		profile.Model = runPrompt(promptui.Prompt{
			Label:   "Model",
			Default: orDefault(profile.Model, "llama3.1"),
		})
	default:
		profile.Model = runPrompt(promptui.Prompt{
			Label:   "Model",
			Default: orDefault(profile.Model, config.DefaultModel),
		})
		profile.BaseURL = runPrompt(promptui.Prompt{
			Label:   "Base URL (optional)",
			Default: profile.BaseURL,
		})
	}
	return profile
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

var listProfilesCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		fmt.Printf("Active Profile: %s\n\n", cfg.ActiveName())
		fmt.Println("Available Profiles:")
		for _, name := range sortedProfileNames(cfg, "") {
			profile := cfg.Profiles[name]
			marker := ""
			if name == cfg.ActiveProfile {
				marker = " (active)"
			}
			fmt.Printf("  %s%s\n", name, marker)
			fmt.Printf("    Host: %s\n", orDefault(profile.APIHost, config.HostOpenAI))
			fmt.Printf("    Model: %s\n", profile.Model)
			if profile.BaseURL != "" {
				fmt.Printf("    Base URL: %s\n", profile.BaseURL)
			}
			hasKey := "No"
			if profile.APIKey != "" {
				hasKey = "Yes"
			}
			fmt.Printf("    API Key: %s\n", hasKey)
			fmt.Println()
		}
	},
}

var showProfileCmd = &cobra.Command{
	Use:   "show [profile-name]",
	Short: "Show profile details",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		profileName := args[0]
		profile, exists := cfg.Profiles[profileName]
		if !exists {
			fatalf("Profile '%s' does not exist", profileName)
		}

		fmt.Printf("Profile: %s\n", profileName)
		fmt.Printf("Host: %s\n", orDefault(profile.APIHost, config.HostOpenAI))
		fmt.Printf("Model: %s\n", profile.Model)
		fmt.Printf("Base URL: %s\n", profile.BaseURL)
		if profile.APIVersion != "" {
			fmt.Printf("API Version: %s\n", profile.APIVersion)
		}
		hasKey := "Not set"
		if profile.APIKey != "" {
			hasKey = "Set (hidden for security)"
		}
		fmt.Printf("API Key: %s\n", hasKey)
	},
}

var addProfileCmd = &cobra.Command{
	Use:   "add [profile-name]",
	Short: "Add a new profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		var name string
		if len(args) > 0 {
			name = args[0]
		} else {
			name = runPrompt(promptui.Prompt{Label: "Profile name"})
		}

		if _, exists := cfg.Profiles[name]; exists {
			fatalf("Profile '%s' already exists", name)
		}

		cfg.Profiles[name] = promptProfile(config.Profile{})
		if err := cfg.Save(); err != nil {
			fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' added successfully!\n", name)
	},
}

var editProfileCmd = &cobra.Command{
	Use:   "edit [profile-name]",
	Short: "Edit an existing profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		name := selectProfile(args, "Select profile to edit", sortedProfileNames(cfg, ""))
		profile, exists := cfg.Profiles[name]
		if !exists {
			fatalf("Profile '%s' does not exist", name)
		}

		cfg.Profiles[name] = promptProfile(profile)
		if err := cfg.Save(); err != nil {
			fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' updated successfully!\n", name)
	},
}

var deleteProfileCmd = &cobra.Command{
	Use:   "delete [profile-name]",
	Short: "Delete a profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		name := selectProfile(args, "Select profile to delete", sortedProfileNames(cfg, ""))
		if _, exists := cfg.Profiles[name]; !exists {
			fatalf("Profile '%s' does not exist", name)
		}

		confirmPrompt := promptui.Prompt{
			Label:     fmt.Sprintf("Delete profile '%s'", name),
			IsConfirm: true,
		}
		if _, err := confirmPrompt.Run(); err != nil {
			fmt.Println("Deletion cancelled")
			return
		}

		delete(cfg.Profiles, name)
		if cfg.ActiveProfile == name {
			// Fall back to another profile, or a fresh default when none is left
			if rest := sortedProfileNames(cfg, ""); len(rest) > 0 {
				cfg.ActiveProfile = rest[0]
			} else {
				cfg.ActiveProfile = "default"
				cfg.Profiles["default"] = config.Profile{
					APIHost: config.HostOpenAI,
					Model:   config.DefaultModel,
				}
			}
		}

		if err := cfg.Save(); err != nil {
			fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' deleted successfully!\n", name)
	},
}

var switchProfileCmd = &cobra.Command{
	Use:   "switch [profile-name]",
	Short: "Switch to a different profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		others := sortedProfileNames(cfg, cfg.ActiveProfile)
		if len(args) == 0 && len(others) == 0 {
			fmt.Println("No other profiles available to switch to")
			return
		}
		name := selectProfile(args, "Select profile to switch to", others)

		if err := cfg.UseProfile(name); err != nil {
			fatalf("%v", err)
		}
		if err := cfg.Save(); err != nil {
			fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Switched to profile '%s'\n", name)
	},
}

func init() {
	// Add subcommands to profile
	profileCmd.AddCommand(listProfilesCmd)
	profileCmd.AddCommand(showProfileCmd)
	profileCmd.AddCommand(addProfileCmd)
	profileCmd.AddCommand(editProfileCmd)
	profileCmd.AddCommand(deleteProfileCmd)
	profileCmd.AddCommand(switchProfileCmd)
}

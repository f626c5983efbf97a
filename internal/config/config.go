package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	HostAzure  = "azure"
	HostOpenAI = "openai"
	HostOllama = "ollama"

	DefaultModel         = "gpt-4o-mini"
	DefaultOllamaBaseURL = "http://localhost:11434/v1"

	// EnvProfileName is the name reported for a profile assembled from the environment.
	EnvProfileName = "env"
)

type Profile struct {
	APIHost    string `json:"api_host"`
	APIKey     string `json:"api_key"`
	BaseURL    string `json:"base_url,omitempty"`
	APIVersion string `json:"api_version,omitempty"`
	Model      string `json:"model"`
}

type Config struct {
	Profiles       map[string]Profile `json:"profiles"`
	ActiveProfile  string             `json:"active_profile"`
	currentProfile *Profile
	fromEnv        bool
	path           string
}

// LoadConfig reads the profiles file, creating it with a default profile when
// missing, and overlays the environment read from envFile (may be empty).
func LoadConfig(envFile string) (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	if err := ensureConfigDir(configPath); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	config.path = configPath

	if err := config.setCurrentProfile(); err != nil {
		return nil, fmt.Errorf("failed to set current profile: %w", err)
	}

	env, err := LoadEnv(envFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if profile, ok := env.Profile(); ok {
		config.currentProfile = &profile
		config.fromEnv = true
	}

	return config, nil
}

// UseProfile makes name the current profile for this process without saving.
func (c *Config) UseProfile(name string) error {
	profile, exists := c.Profiles[name]
	if !exists {
		return fmt.Errorf("profile '%s' does not exist", name)
	}
	c.ActiveProfile = name
	c.currentProfile = &profile
	c.fromEnv = false
	return nil
}

// ActiveName reports where the current profile came from.
func (c *Config) ActiveName() string {
	if c.fromEnv {
		return EnvProfileName
	}
	return c.ActiveProfile
}

func (c *Config) IsValid() bool {
	if c.currentProfile == nil {
		return false
	}
	// Ollama does not check keys.
	return c.currentProfile.APIKey != "" || c.currentProfile.host() == HostOllama
}

func (c *Config) Current() Profile {
	if c.currentProfile == nil {
		return Profile{APIHost: HostOpenAI, Model: DefaultModel}
	}
	return *c.currentProfile
}

func (c *Config) GetModel() string {
	if c.currentProfile == nil || c.currentProfile.Model == "" {
		return DefaultModel
	}
	return c.currentProfile.Model
}

func (p Profile) host() string {
	if p.APIHost == "" {
		return HostOpenAI
	}
	return p.APIHost
}

func getConfigPath() (string, error) {
	var configDir string

	if home := os.Getenv("RORIFUNC_HOME"); home != "" {
		configDir = home
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = homeDir
	}

	return filepath.Join(configDir, ".rorifunc", "config.json"), nil
}

func ensureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0755)
}

func loadConfigFile(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

func createDefaultConfig(configPath string) (*Config, error) {
	config := &Config{
		Profiles: map[string]Profile{
			"default": {
				APIHost: HostOpenAI,
				Model:   DefaultModel,
			},
		},
		ActiveProfile: "default",
	}

	if err := saveConfig(config, configPath); err != nil {
		return nil, err
	}

	return config, nil
}

func saveConfig(config *Config, configPath string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

func (c *Config) Save() error {
	if c.path == "" {
		configPath, err := getConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		c.path = configPath
	}

	return saveConfig(c, c.path)
}

func (c *Config) setCurrentProfile() error {
	if c.Profiles == nil {
		return fmt.Errorf("no profiles defined")
	}

	profile, exists := c.Profiles[c.ActiveProfile]
	if !exists {
		for name, p := range c.Profiles {
			c.ActiveProfile = name
			profile = p
			exists = true
			break
		}
	}

	if !exists {
		return fmt.Errorf("no valid profiles found")
	}

	c.currentProfile = &profile
	return nil
}

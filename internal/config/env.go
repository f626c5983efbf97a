package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Env holds the provider settings read from a dotenv file and the process
// environment. Process variables take precedence over the file.
type Env struct {
	APIHost string

	AzureEndpoint   string
	AzureAPIKey     string
	AzureAPIVersion string
	AzureDeployment string

	OpenAIKey   string
	OpenAIModel string

	OllamaModel   string
	OllamaBaseURL string
}

// LoadEnv reads envFile when it exists; a missing file is not an error.
func LoadEnv(envFile string) (*Env, error) {
	v := viper.New()
	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
			}
		}
	}
	v.AutomaticEnv()
	v.SetDefault("OLLAMA_BASE_URL", DefaultOllamaBaseURL)

	deployment := v.GetString("AZURE_OPENAI_DEPLOYMENT_NAME")
	if deployment == "" {
		deployment = v.GetString("AZURE_OPENAI_CHAT_DEPLOYMENT_NAME")
	}

	return &Env{
		APIHost:         strings.ToLower(strings.TrimSpace(v.GetString("API_HOST"))),
		AzureEndpoint:   v.GetString("AZURE_OPENAI_ENDPOINT"),
		AzureAPIKey:     v.GetString("AZURE_OPENAI_API_KEY"),
		AzureAPIVersion: v.GetString("AZURE_OPENAI_API_VERSION"),
		AzureDeployment: deployment,
		OpenAIKey:       v.GetString("OPENAI_KEY"),
		OpenAIModel:     v.GetString("OPENAI_MODEL"),
		OllamaModel:     v.GetString("OLLAMA_MODEL"),
		OllamaBaseURL:   v.GetString("OLLAMA_BASE_URL"),
	}, nil
}

// Profile builds a profile for API_HOST. It reports false when API_HOST is
// unset or names an unknown provider.
func (e *Env) Profile() (Profile, bool) {
	switch e.APIHost {
	case HostAzure:
		return Profile{
			APIHost:    HostAzure,
			APIKey:     e.AzureAPIKey,
			BaseURL:    e.AzureEndpoint,
			APIVersion: e.AzureAPIVersion,
			Model:      e.AzureDeployment,
		}, true
	case HostOpenAI:
		return Profile{
			APIHost: HostOpenAI,
			APIKey:  e.OpenAIKey,
			Model:   e.OpenAIModel,
		}, true
	case HostOllama:
		return Profile{
			APIHost: HostOllama,
			APIKey:  "nokeyneeded",
			BaseURL: e.OllamaBaseURL,
			Model:   e.OllamaModel,
		}, true
	}
	return Profile{}, false
}

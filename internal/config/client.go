package config

import (
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// ClientConfig returns the go-openai configuration for the profile. Azure
// requests are routed to the profile model as the deployment name.
func (p Profile) ClientConfig() (openai.ClientConfig, error) {
	switch p.host() {
	case HostAzure:
		if p.BaseURL == "" {
			return openai.ClientConfig{}, fmt.Errorf("azure profile needs an endpoint")
		}
		cfg := openai.DefaultAzureConfig(p.APIKey, p.BaseURL)
		if p.APIVersion != "" {
			cfg.APIVersion = p.APIVersion
		}
		deployment := p.Model
		cfg.AzureModelMapperFunc = func(string) string {
			return deployment
		}
		return cfg, nil
	case HostOllama:
		cfg := openai.DefaultConfig(p.APIKey)
		cfg.BaseURL = p.BaseURL
		if cfg.BaseURL == "" {
			cfg.BaseURL = DefaultOllamaBaseURL
		}
		return cfg, nil
	case HostOpenAI:
		cfg := openai.DefaultConfig(p.APIKey)
		if p.BaseURL != "" {
			cfg.BaseURL = p.BaseURL
		}
		return cfg, nil
	}
	return openai.ClientConfig{}, fmt.Errorf("unknown api host '%s'", p.APIHost)
}

// NewClient builds a go-openai client for the profile.
func (p Profile) NewClient() (*openai.Client, error) {
	cfg, err := p.ClientConfig()
	if err != nil {
		return nil, err
	}
	return openai.NewClientWithConfig(cfg), nil
}

package cmd

import (
	"os"

	"github.com/spf13/viper"

	"github.com/omegalabs/studio/internal/genai"
)

// newGenerator creates a generation client from config/env, or returns nil if
// no API key is configured.
func newGenerator() genai.Generator {
	apiKey := viper.GetString("anthropic.api_key")
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return nil
	}
	return genai.NewClient(apiKey, viper.GetString("anthropic.model"))
}

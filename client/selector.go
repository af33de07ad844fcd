package client

import (
	"strings"

	"github.com/mahmudulbisd/stockgen-ai-pro/providers/googlegemini"
	"github.com/mahmudulbisd/stockgen-ai-pro/providers/openai"
)

// ProviderID names one of the two upstream adapters.
type ProviderID string

const (
	ProviderOpenAI ProviderID = openai.ProviderName
	ProviderGemini ProviderID = googlegemini.ProviderName
)

const openAIKeyPrefix = "sk-"

// SelectProvider routes a credential by its shape: keys starting with "sk-"
// go to OpenAI, everything else goes to Gemini.
func SelectProvider(credential string) ProviderID {
	if strings.HasPrefix(credential, openAIKeyPrefix) {
		return ProviderOpenAI
	}
	return ProviderGemini
}

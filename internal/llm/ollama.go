package llm

// DefaultOllamaURL is the OpenAI-compatible endpoint of a local Ollama server
const DefaultOllamaURL = "http://localhost:11434/v1"

// NewOllamaProvider creates a provider for a local Ollama server. Ollama
// speaks the OpenAI chat API, so the OpenAI client is reused and no API key
// is needed.
func NewOllamaProvider(config Config) (*OpenAIProvider, error) {
	if config.BaseURL == "" {
		config.BaseURL = DefaultOllamaURL
	}
	if config.APIKey == "" {
		config.APIKey = "ollama"
	}
	return newChatProvider("ollama", "llama3.1", config), nil
}

package llm

// CustomProvider is any server speaking the OpenAI chat completions API
type CustomProvider struct {
	*OpenAIProvider
}

func NewCustomProvider(baseURL, apiKey, model string) *CustomProvider {
	return &CustomProvider{
		OpenAIProvider: newOpenAICompatible("custom", baseURL, apiKey, model, jsonModeObject),
	}
}

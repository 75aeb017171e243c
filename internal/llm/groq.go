package llm

// GroqProvider talks to Groq's OpenAI-compatible endpoint. Groq only offers
// json_object mode for most models, so the schema travels in the prompt.
type GroqProvider struct {
	*OpenAIProvider
}

func NewGroqProvider(apiKey, model string) *GroqProvider {
	if model == "" {
		model = "llama-3.3-70b-versatile"
	}
	return &GroqProvider{
		OpenAIProvider: newOpenAICompatible("groq", "https://api.groq.com/openai/v1", apiKey, model, jsonModeObject),
	}
}

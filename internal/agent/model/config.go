package model

// ================ Config ================
type SessionConfig struct {
	TTL        string `envconfig:"SESSION_TTL" default:"30m"`
	Transcript struct {
		MaxTurns int `envconfig:"SESSION_TRANSCRIPT_MAX_TURNS" default:"20"`
	}
}

type FallbackModelConfig struct {
	Model       string  `envconfig:"FALLBACK_MODEL" default:"gemini-2.5-flash-lite"`
	MaxTokens   int     `envconfig:"FALLBACK_MAX_TOKENS" default:"1024"`
	Temperature float32 `envconfig:"FALLBACK_TEMPERATURE" default:"0.3"`
}

type FallbackPromptConfig struct {
	BusinessType string `envconfig:"PROMPT_BUSINESS_TYPE" default:"coffee chain"`
	BusinessName string `envconfig:"PROMPT_BUSINESS_NAME" default:"ZUS Coffee"`
}

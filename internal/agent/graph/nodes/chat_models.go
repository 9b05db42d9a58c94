package nodes

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	einomodel "github.com/cloudwego/eino/components/model"
	"google.golang.org/genai"

	"github.com/kopichat-core-poc/server/internal/agent/model"
	logx "github.com/kopichat-core-poc/server/pkg/logger"
)

// ChatModelConfig holds the configuration for chat model creation
type ChatModelConfig struct {
	APIKey         string
	BaseURL        string
	FallbackConfig *model.FallbackModelConfig
}

// ChatModels holds the fallback chat model behind the Eino model interface
// so tests can substitute a stub.
type ChatModels struct {
	Fallback          einomodel.BaseChatModel
	FallbackModelName string
}

// NewChatModels creates the Gemini-backed fallback chat model.
func NewChatModels(ctx context.Context, config ChatModelConfig) (*ChatModels, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = config.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	chatModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.FallbackConfig.Model,
		Temperature: &config.FallbackConfig.Temperature,
		MaxTokens:   &config.FallbackConfig.MaxTokens,
		// no thinking budget for short conversational replies
		ThinkingConfig: &genai.ThinkingConfig{
			IncludeThoughts: false,
			ThinkingBudget:  genai.Ptr(int32(0)),
		},
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating fallback model")
		return nil, fmt.Errorf("error creating fallback model: %w", err)
	}

	return &ChatModels{
		Fallback:          chatModel,
		FallbackModelName: config.FallbackConfig.Model,
	}, nil
}

// NewFallbackChatModelNode exposes the fallback model for use as a graph node.
func NewFallbackChatModelNode(chatModel einomodel.BaseChatModel) einomodel.BaseChatModel {
	return chatModel
}

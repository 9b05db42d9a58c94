package prompts

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/kopichat-core-poc/server/internal/agent/model"
)

//go:embed template/fallback_prompt.txt
var fallbackSystemPrompt string

// RenderFallbackSystem renders the fallback system prompt via the Eino prompt
// component (Go template) so prompt callbacks fire on every render.
func RenderFallbackSystem(ctx context.Context, config model.FallbackPromptConfig) (string, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(fallbackSystemPrompt),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"BusinessType": config.BusinessType,
		"BusinessName": config.BusinessName,
	})
	if err != nil {
		return "", fmt.Errorf("fallback prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("fallback prompt render: empty result")
	}
	return msgs[0].Content, nil
}

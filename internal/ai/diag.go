package ai

import (
	"context"

	"github.com/gioco-play/easy-i18n/i18n"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/pascalleclercq/google-upload-plugin/internal/log"
	"github.com/pascalleclercq/google-upload-plugin/internal/pkg/errors"
)

const (
	// DashScopeBaseURL is the OpenAI compatible endpoint of Alibaba Cloud DashScope
	DashScopeBaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1/"

	// Model is the Qwen model used for diagnosis
	Model = "qwen-max-latest"
)

// QwenClient handles AI diagnosis using Alibaba Cloud Qwen
type QwenClient struct {
	apiKey  string
	baseURL string
}

// NewQwenClient creates a new Qwen AI client
func NewQwenClient(apiKey string) *QwenClient {
	return &QwenClient{apiKey: apiKey, baseURL: DashScopeBaseURL}
}

// WithBaseURL points the client at another OpenAI compatible endpoint
func (c *QwenClient) WithBaseURL(baseURL string) *QwenClient {
	c.baseURL = baseURL
	return c
}

// Diagnose analyzes log content and provides diagnosis suggestions.
// module selects the system prompt (UPLOAD, CREDENTIALS), anything else
// gets the generic one.
func (c *QwenClient) Diagnose(ctx context.Context, module string, logContent string) (string, error) {
	return c.complete(ctx, prompt(module), logContent)
}

// Ask answers a free form question about release uploads
func (c *QwenClient) Ask(ctx context.Context, question string) (string, error) {
	return c.complete(ctx, i18n.Sprintf("AI_DIAG_PROMPT"), question)
}

func (c *QwenClient) complete(ctx context.Context, system, user string) (string, error) {
	if c.apiKey == "" {
		return "", errors.NewDiagnosisError("DashScope API Key is not set", nil)
	}

	client := openai.NewClient(
		option.WithAPIKey(c.apiKey),
		option.WithBaseURL(c.baseURL),
	)

	chatCompletion, err := client.Chat.Completions.New(
		ctx, openai.ChatCompletionNewParams{
			Messages: openai.F(
				[]openai.ChatCompletionMessageParamUnion{
					openai.SystemMessage(system),
					openai.UserMessage(user),
				},
			),
			Model: openai.F(Model),
		},
	)
	if err != nil {
		return "", errors.NewDiagnosisError("Qwen request failed", err)
	}
	if len(chatCompletion.Choices) == 0 {
		return "", errors.NewDiagnosisError("Qwen returned no choices", nil)
	}
	return chatCompletion.Choices[0].Message.Content, nil
}

// prompt returns the module-specific diagnosis prompt
func prompt(module string) string {
	switch module {
	case log.ModuleUpload:
		return i18n.Sprintf("AI_DIAG_PROMPT_UPLOAD")
	case log.ModuleCredentials:
		return i18n.Sprintf("AI_DIAG_PROMPT_CREDENTIALS")
	default:
		return i18n.Sprintf("AI_DIAG_PROMPT")
	}
}

// Package model provides the dependency-injected client for the hosted
// inference services: text and vision tasks against the Anthropic API,
// image generation against Bedrock. Every outbound call passes through a
// bounded exponential-backoff retry that engages only on throttling.
package model

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

// System is the boundary to the hosted inference services.
type System interface {
	// Name returns the text model identifier, recorded on validation
	// results for traceability.
	Name() string
	// Complete sends a text task and returns the reply text.
	Complete(ctx context.Context, system, prompt string) (string, error)
	// Vision sends an image plus a text task and returns the reply text.
	Vision(ctx context.Context, system, prompt string, image []byte, mediaType string) (string, error)
	// GenerateImage renders an image from a text prompt.
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

type client struct {
	anthropic  anthropic.Client
	bedrock    *bedrockruntime.Client
	model      string
	imageModel string
	maxTokens  int64
	retrier    *retrier
}

// New creates a model client. The SDK's own retry layer is disabled so
// the retrier fully controls backoff behavior.
func New(cfg *Config, awsCfg aws.Config, logger *slog.Logger) System {
	opts := []option.RequestOption{option.WithMaxRetries(0)}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}

	return &client{
		anthropic:  anthropic.NewClient(opts...),
		bedrock:    bedrockruntime.NewFromConfig(awsCfg),
		model:      cfg.Model,
		imageModel: cfg.ImageModel,
		maxTokens:  cfg.MaxTokens,
		retrier: &retrier{
			maxAttempts: cfg.MaxAttempts,
			baseDelay:   cfg.BaseDelayDuration(),
			logger:      logger.With("system", "model"),
		},
	}
}

func (c *client) Name() string {
	return c.model
}

func (c *client) Complete(ctx context.Context, system, prompt string) (string, error) {
	return callWithRetry(ctx, c.retrier, func(ctx context.Context) (string, error) {
		return c.message(ctx, system, anthropic.NewTextBlock(prompt))
	})
}

func (c *client) Vision(ctx context.Context, system, prompt string, image []byte, mediaType string) (string, error) {
	encoded := base64.StdEncoding.EncodeToString(image)

	return callWithRetry(ctx, c.retrier, func(ctx context.Context) (string, error) {
		return c.message(
			ctx, system,
			anthropic.NewImageBlockBase64(mediaType, encoded),
			anthropic.NewTextBlock(prompt),
		)
	})
}

func (c *client) message(ctx context.Context, system string, blocks ...anthropic.ContentBlockParamUnion) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(blocks...),
		},
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	msg, err := c.anthropic.Messages.New(ctx, params)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		sb.WriteString(block.Text)
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("empty model reply")
	}

	return sb.String(), nil
}

type imageGenerationRequest struct {
	TaskType          string `json:"taskType"`
	TextToImageParams struct {
		Text string `json:"text"`
	} `json:"textToImageParams"`
	ImageGenerationConfig struct {
		NumberOfImages int     `json:"numberOfImages"`
		Width          int     `json:"width"`
		Height         int     `json:"height"`
		CfgScale       float64 `json:"cfgScale"`
	} `json:"imageGenerationConfig"`
}

type imageGenerationReply struct {
	Images []string `json:"images"`
	Error  string   `json:"error"`
}

func (c *client) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	request := imageGenerationRequest{TaskType: "TEXT_IMAGE"}
	request.TextToImageParams.Text = prompt
	request.ImageGenerationConfig.NumberOfImages = 1
	request.ImageGenerationConfig.Width = 512
	request.ImageGenerationConfig.Height = 512
	request.ImageGenerationConfig.CfgScale = 8.0

	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("marshal generation request: %w", err)
	}

	return callWithRetry(ctx, c.retrier, func(ctx context.Context) ([]byte, error) {
		out, err := c.bedrock.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
			ModelId:     aws.String(c.imageModel),
			ContentType: aws.String("application/json"),
			Accept:      aws.String("application/json"),
			Body:        body,
		})
		if err != nil {
			return nil, err
		}

		var reply imageGenerationReply
		if err := json.Unmarshal(out.Body, &reply); err != nil {
			return nil, &CallError{Kind: KindParse, Err: err}
		}
		if reply.Error != "" {
			return nil, fmt.Errorf("image generation rejected: %s", reply.Error)
		}
		if len(reply.Images) == 0 {
			return nil, &CallError{Kind: KindParse, Err: fmt.Errorf("reply contains no images")}
		}

		decoded, err := base64.StdEncoding.DecodeString(reply.Images[0])
		if err != nil {
			return nil, &CallError{Kind: KindParse, Err: err}
		}

		return decoded, nil
	})
}

// Package vision wraps the model client's image capabilities: breed
// classification, sentiment tagging, and photo generation.
package vision

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pupperworks/pupper/internal/model"
	"github.com/pupperworks/pupper/pkg/formatting"
)

// Classification is the outcome of a breed check on a photo.
type Classification struct {
	IsLabrador  bool    `json:"is_labrador"`
	Confidence  float64 `json:"confidence"`
	Explanation string  `json:"explanation,omitempty"`
}

// System defines the image analysis and generation operations.
type System interface {
	// Classify determines whether the photographed dog is a Labrador.
	Classify(ctx context.Context, image []byte, mediaType string) (*Classification, error)
	// Sentiment derives mood tags from a dog photo.
	Sentiment(ctx context.Context, image []byte, mediaType string) ([]string, error)
	// SentimentFromText derives mood tags from a description when no
	// usable photo exists.
	SentimentFromText(ctx context.Context, description string) ([]string, error)
	// Generate renders a Labrador photo from a description.
	Generate(ctx context.Context, description string) ([]byte, error)
}

type system struct {
	model  model.System
	logger *slog.Logger
}

// New creates a vision system bound to the given model client.
func New(m model.System, logger *slog.Logger) System {
	return &system{
		model:  m,
		logger: logger.With("system", "vision"),
	}
}

const classifyInstruction = `You are an expert dog breed classifier. Given a photo, determine whether the dog is a Labrador Retriever (purebred or obvious Lab mix). Respond with ONLY a JSON object: {"is_labrador": boolean, "confidence": float (0.0-1.0), "explanation": "brief reason"}`

func (s *system) Classify(ctx context.Context, image []byte, mediaType string) (*Classification, error) {
	reply, err := s.model.Vision(ctx, classifyInstruction, "Is this dog a Labrador Retriever?", image, mediaType)
	if err != nil {
		return nil, fmt.Errorf("classify image: %w", err)
	}

	result, err := formatting.Parse[Classification](reply)
	if err != nil {
		return nil, fmt.Errorf("classify image: %w", err)
	}

	return &result, nil
}

const sentimentInstruction = `You are an expert at reading dog body language and demeanor. Produce short lowercase mood tags (e.g. "playful", "calm", "curious") describing the dog. Respond with ONLY a JSON object: {"tags": ["tag", ...]}`

type sentimentReply struct {
	Tags []string `json:"tags"`
}

func (s *system) Sentiment(ctx context.Context, image []byte, mediaType string) ([]string, error) {
	reply, err := s.model.Vision(ctx, sentimentInstruction, "Describe this dog's demeanor as tags.", image, mediaType)
	if err != nil {
		return nil, fmt.Errorf("image sentiment: %w", err)
	}

	return parseTags(reply)
}

func (s *system) SentimentFromText(ctx context.Context, description string) ([]string, error) {
	reply, err := s.model.Complete(
		ctx,
		sentimentInstruction,
		fmt.Sprintf("Describe this dog's demeanor as tags based on its description: %s", description),
	)
	if err != nil {
		return nil, fmt.Errorf("text sentiment: %w", err)
	}

	return parseTags(reply)
}

func parseTags(reply string) ([]string, error) {
	parsed, err := formatting.Parse[sentimentReply](reply)
	if err != nil {
		return nil, fmt.Errorf("sentiment reply: %w", err)
	}

	tags := make([]string, 0, len(parsed.Tags))
	for _, tag := range parsed.Tags {
		if trimmed := strings.ToLower(strings.TrimSpace(tag)); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}

	return tags, nil
}

func (s *system) Generate(ctx context.Context, description string) ([]byte, error) {
	prompt := fmt.Sprintf("A Labrador Retriever dog, %s", description)

	image, err := s.model.GenerateImage(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate image: %w", err)
	}

	return image, nil
}

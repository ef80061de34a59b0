package vision_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/pupperworks/pupper/internal/vision"
)

type fakeModel struct {
	reply      string
	image      []byte
	err        error
	lastPrompt string
	visionImg  []byte
}

func (m *fakeModel) Name() string { return "fake-model" }

func (m *fakeModel) Complete(ctx context.Context, system, prompt string) (string, error) {
	m.lastPrompt = prompt
	return m.reply, m.err
}

func (m *fakeModel) Vision(ctx context.Context, system, prompt string, image []byte, mediaType string) (string, error) {
	m.visionImg = image
	return m.reply, m.err
}

func (m *fakeModel) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	m.lastPrompt = prompt
	return m.image, m.err
}

func newSystem(m *fakeModel) vision.System {
	return vision.New(m, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  bool
	}{
		{"labrador", `{"is_labrador": true, "confidence": 0.95, "explanation": "classic yellow lab"}`, true},
		{"not labrador", `{"is_labrador": false, "confidence": 0.9, "explanation": "poodle"}`, false},
		{"fenced reply", "```json\n" + `{"is_labrador": true, "confidence": 0.8}` + "\n```", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &fakeModel{reply: tt.reply}
			sys := newSystem(m)

			result, err := sys.Classify(context.Background(), []byte("photo"), "image/jpeg")
			if err != nil {
				t.Fatalf("Classify error: %v", err)
			}
			if result.IsLabrador != tt.want {
				t.Errorf("IsLabrador = %v, want %v", result.IsLabrador, tt.want)
			}
			if string(m.visionImg) != "photo" {
				t.Errorf("image bytes not forwarded")
			}
		})
	}
}

func TestClassifyUnparseableReply(t *testing.T) {
	sys := newSystem(&fakeModel{reply: "I think it might be a lab?"})

	if _, err := sys.Classify(context.Background(), []byte("photo"), "image/jpeg"); err == nil {
		t.Error("expected error for unparseable reply")
	}
}

func TestClassifyModelFailure(t *testing.T) {
	sys := newSystem(&fakeModel{err: errors.New("model unavailable")})

	if _, err := sys.Classify(context.Background(), []byte("photo"), "image/jpeg"); err == nil {
		t.Error("expected error from failed call")
	}
}

func TestSentiment(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  []string
	}{
		{"plain tags", `{"tags": ["playful", "curious"]}`, []string{"playful", "curious"}},
		{"normalized", `{"tags": [" Playful ", "CALM", ""]}`, []string{"playful", "calm"}},
		{"empty", `{"tags": []}`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := newSystem(&fakeModel{reply: tt.reply})

			tags, err := sys.Sentiment(context.Background(), []byte("photo"), "image/jpeg")
			if err != nil {
				t.Fatalf("Sentiment error: %v", err)
			}
			if !reflect.DeepEqual(tags, tt.want) {
				t.Errorf("tags = %v, want %v", tags, tt.want)
			}
		})
	}
}

func TestSentimentFromText(t *testing.T) {
	m := &fakeModel{reply: `{"tags": ["gentle"]}`}
	sys := newSystem(m)

	tags, err := sys.SentimentFromText(context.Background(), "a sweet older lab")
	if err != nil {
		t.Fatalf("SentimentFromText error: %v", err)
	}
	if !reflect.DeepEqual(tags, []string{"gentle"}) {
		t.Errorf("tags = %v, want [gentle]", tags)
	}
	if !strings.Contains(m.lastPrompt, "a sweet older lab") {
		t.Errorf("prompt = %q, want description included", m.lastPrompt)
	}
}

func TestGenerate(t *testing.T) {
	m := &fakeModel{image: []byte("png bytes")}
	sys := newSystem(m)

	image, err := sys.Generate(context.Background(), "playing in a park")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if string(image) != "png bytes" {
		t.Errorf("image = %q", image)
	}
	if !strings.HasPrefix(m.lastPrompt, "A Labrador Retriever dog, ") {
		t.Errorf("prompt = %q, want breed prefix", m.lastPrompt)
	}
}

// Package gemini is the generative-AI collaborator: concept drafting,
// sector reverse-engineering, lesson tutoring and the oracle chat.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"orca-backend/logger"
	"orca-backend/models"
)

// DefaultModel is used when no model name is configured
const DefaultModel = "gemini-2.5-flash"

// Client wraps a genai client with the prompts and schemas of each request shape
type Client struct {
	genai *genai.Client
	model string
	log   *logger.Logger
}

// New dials the Gemini API with apiKey
func New(ctx context.Context, apiKey, model string, log *logger.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY not set")
	}
	gc, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return NewWithClient(gc, model, log), nil
}

// NewWithClient wraps an existing genai client
func NewWithClient(gc *genai.Client, model string, log *logger.Logger) *Client {
	if model == "" {
		model = DefaultModel
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{genai: gc, model: model, log: log.With("service", "Gemini")}
}

// Close releases the underlying connection
func (c *Client) Close() error {
	return c.genai.Close()
}

// DraftConcept turns a free-text idea into an app concept
func (c *Client) DraftConcept(ctx context.Context, idea string) (*models.GeneratedAppConcept, error) {
	m := c.jsonModel(generatorInstruction, conceptSchema(false))
	text, err := c.generate(ctx, m, idea)
	if err != nil {
		return nil, err
	}
	return ParseConcept(text, false)
}

// ReverseEngineer invents an app for a sector along with a 5-module curriculum
func (c *Client) ReverseEngineer(ctx context.Context, sector string) (*models.GeneratedAppConcept, error) {
	m := c.jsonModel(reverseEngineerInstruction, conceptSchema(true))
	prompt := fmt.Sprintf("Sector: %s. Create a comprehensive 5-module curriculum to build a specific app for this sector. "+
		"Ensure Module 5 contains the specific Google AI Studio deployment links.", sector)
	text, err := c.generate(ctx, m, prompt)
	if err != nil {
		return nil, err
	}
	return ParseConcept(text, true)
}

// Tutor answers a student question using the lesson content as context
func (c *Client) Tutor(ctx context.Context, lessonContext, question string) (string, error) {
	m := c.textModel(tutorInstruction, tutorMaxTokens)
	prompt := fmt.Sprintf("Lesson Context: %s\n\nStudent Question: %s", lessonContext, question)
	text, err := c.generate(ctx, m, prompt)
	if errors.Is(err, ErrEmptyResponse) {
		return TutorFallback, nil
	}
	return text, err
}

// Chat replies to a message given prior "User:"/"VibeArchitect:" history lines
func (c *Client) Chat(ctx context.Context, message string, history []string) (string, error) {
	m := c.textModel(chatInstruction, chatMaxTokens)
	prompt := fmt.Sprintf("History: %s\nUser: %s", strings.Join(history, "\n"), message)
	text, err := c.generate(ctx, m, prompt)
	if errors.Is(err, ErrEmptyResponse) {
		return ChatFallback, nil
	}
	return text, err
}

func (c *Client) jsonModel(instruction string, schema *genai.Schema) *genai.GenerativeModel {
	m := c.genai.GenerativeModel(c.model)
	m.SystemInstruction = genai.NewUserContent(genai.Text(instruction))
	m.ResponseMIMEType = "application/json"
	m.ResponseSchema = schema
	return m
}

func (c *Client) textModel(instruction string, maxTokens int32) *genai.GenerativeModel {
	m := c.genai.GenerativeModel(c.model)
	m.SystemInstruction = genai.NewUserContent(genai.Text(instruction))
	m.SetMaxOutputTokens(maxTokens)
	return m
}

// generate runs a single attempt; callers surface failures without retrying
func (c *Client) generate(ctx context.Context, m *genai.GenerativeModel, prompt string) (string, error) {
	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		c.log.Warn("gemini request failed", "model", c.model, "error", err)
		return "", fmt.Errorf("gemini request: %w", err)
	}
	return responseText(resp)
}

// responseText concatenates the text parts of every candidate
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", ErrEmptyResponse
	}
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

package gemini

import (
	"context"
	"errors"

	"orca-backend/models"
)

// ErrNotConfigured is returned by Unavailable for every request
var ErrNotConfigured = errors.New("gemini api key not configured")

// Backend is every request shape the server sends to the model
type Backend interface {
	DraftConcept(ctx context.Context, idea string) (*models.GeneratedAppConcept, error)
	ReverseEngineer(ctx context.Context, sector string) (*models.GeneratedAppConcept, error)
	Tutor(ctx context.Context, lessonContext, question string) (string, error)
	Chat(ctx context.Context, message string, history []string) (string, error)
}

var (
	_ Backend = (*Client)(nil)
	_ Backend = Unavailable{}
)

// Unavailable stands in for Client when no API key is configured
type Unavailable struct{}

func (Unavailable) DraftConcept(context.Context, string) (*models.GeneratedAppConcept, error) {
	return nil, ErrNotConfigured
}

func (Unavailable) ReverseEngineer(context.Context, string) (*models.GeneratedAppConcept, error) {
	return nil, ErrNotConfigured
}

func (Unavailable) Tutor(context.Context, string, string) (string, error) {
	return "", ErrNotConfigured
}

func (Unavailable) Chat(context.Context, string, []string) (string, error) {
	return "", ErrNotConfigured
}

package gemini

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnavailableRejectsEveryRequest(t *testing.T) {
	ctx := context.Background()
	var b Backend = Unavailable{}

	_, err := b.DraftConcept(ctx, "idea")
	assert.ErrorIs(t, err, ErrNotConfigured)
	_, err = b.ReverseEngineer(ctx, "fintech")
	assert.ErrorIs(t, err, ErrNotConfigured)
	_, err = b.Tutor(ctx, "lesson", "question")
	assert.ErrorIs(t, err, ErrNotConfigured)
	_, err = b.Chat(ctx, "hi", nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

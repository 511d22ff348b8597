package gemini

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"orca-backend/models"
)

var (
	// ErrEmptyResponse means the model returned no usable text
	ErrEmptyResponse = errors.New("empty response from model")
	// ErrInvalidConcept means the model output did not satisfy the concept contract
	ErrInvalidConcept = errors.New("invalid concept")
)

// conceptWire accepts potentialMrr as any JSON number
type conceptWire struct {
	Name             string              `json:"name"`
	Desc             string              `json:"desc"`
	Category         models.AppCategory  `json:"category"`
	PotentialMRR     float64             `json:"potentialMrr"`
	HypeComment      string              `json:"hypeComment"`
	Blueprint        models.AppBlueprint `json:"blueprint"`
	CustomCurriculum []models.CourseNode `json:"customCurriculum"`
}

// ParseConcept decodes and validates generator output. Sector requests must
// carry a non-empty curriculum; draft requests have any curriculum dropped.
func ParseConcept(text string, requireCurriculum bool) (*models.GeneratedAppConcept, error) {
	text = stripFences(text)
	if text == "" {
		return nil, ErrEmptyResponse
	}

	var w conceptWire
	if err := json.Unmarshal([]byte(text), &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConcept, err)
	}

	w.Name = strings.TrimSpace(w.Name)
	if w.Name == "" {
		return nil, fmt.Errorf("%w: missing name", ErrInvalidConcept)
	}
	if !w.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidConcept, w.Category)
	}
	if w.PotentialMRR < 0 || math.IsNaN(w.PotentialMRR) || w.PotentialMRR > math.MaxInt32 {
		return nil, fmt.Errorf("%w: potentialMrr out of range", ErrInvalidConcept)
	}

	concept := &models.GeneratedAppConcept{
		Name:         w.Name,
		Desc:         strings.TrimSpace(w.Desc),
		Category:     w.Category,
		PotentialMRR: int(math.Round(w.PotentialMRR)),
		HypeComment:  strings.TrimSpace(w.HypeComment),
		Blueprint:    w.Blueprint,
	}

	if !requireCurriculum {
		return concept, nil
	}
	if len(w.CustomCurriculum) == 0 {
		return nil, fmt.Errorf("%w: missing curriculum", ErrInvalidConcept)
	}
	for i, node := range w.CustomCurriculum {
		if strings.TrimSpace(node.Title) == "" {
			return nil, fmt.Errorf("%w: module %d has no title", ErrInvalidConcept, i+1)
		}
		if node.XPReward < 0 || node.ReputationReward < 0 {
			return nil, fmt.Errorf("%w: module %d has negative rewards", ErrInvalidConcept, i+1)
		}
		for j, q := range node.Quiz {
			if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
				return nil, fmt.Errorf("%w: module %d question %d has no valid answer", ErrInvalidConcept, i+1, j+1)
			}
		}
	}
	concept.CustomCurriculum = w.CustomCurriculum
	return concept, nil
}

// stripFences removes a surrounding markdown code fence if the model added one
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[nl+1:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

// FormatHistory renders chat history lines as "User: ..." and "VibeArchitect: ..."
func FormatHistory(history []models.Notification) []string {
	lines := make([]string, 0, len(history))
	for _, m := range history {
		speaker := "VibeArchitect"
		if m.Sender == models.SenderUser {
			speaker = "User"
		}
		lines = append(lines, speaker+": "+m.Text)
	}
	return lines
}

package gemini

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orca-backend/models"
)

const draftJSON = `{
	"name": "ShipFast",
	"desc": "Boilerplate that ships itself",
	"category": "Dev Tool",
	"potentialMrr": 4200.4,
	"hypeComment": "lfg",
	"blueprint": {"techStack": "React", "coreFeatures": ["auth", "billing"], "monetizationStrategy": "one-off", "uniModuleRef": "101"}
}`

const sectorJSON = `{
	"name": "FarmBot",
	"desc": "Crop planning",
	"category": "AI Tool",
	"potentialMrr": 9000,
	"hypeComment": "based",
	"blueprint": {"techStack": "Gemini", "coreFeatures": [], "monetizationStrategy": "subs", "uniModuleRef": "custom"},
	"customCurriculum": [
		{"id": "x", "title": "Plant", "description": "d", "xpReward": 100, "reputationReward": 10, "status": "completed", "category": "growth", "content": "c",
		 "tasks": [{"id": "t1", "text": "do it"}],
		 "quiz": [{"question": "q", "options": ["a", "b"], "correctIndex": 1, "explanation": "e"}]},
		{"id": "y", "title": "Harvest", "description": "d", "content": "c", "tasks": []}
	]
}`

func TestParseDraftConcept(t *testing.T) {
	c, err := ParseConcept(draftJSON, false)
	require.NoError(t, err)
	assert.Equal(t, "ShipFast", c.Name)
	assert.Equal(t, models.CategoryTool, c.Category)
	assert.Equal(t, 4200, c.PotentialMRR)
	assert.Equal(t, []string{"auth", "billing"}, c.Blueprint.CoreFeatures)
	assert.Empty(t, c.CustomCurriculum)
}

func TestParseDropsCurriculumForDrafts(t *testing.T) {
	c, err := ParseConcept(sectorJSON, false)
	require.NoError(t, err)
	assert.Empty(t, c.CustomCurriculum)
}

func TestParseSectorConcept(t *testing.T) {
	c, err := ParseConcept(sectorJSON, true)
	require.NoError(t, err)
	require.Len(t, c.CustomCurriculum, 2)
	assert.Equal(t, "Plant", c.CustomCurriculum[0].Title)
}

func TestParseStripsCodeFence(t *testing.T) {
	c, err := ParseConcept("```json\n"+draftJSON+"\n```", false)
	require.NoError(t, err)
	assert.Equal(t, "ShipFast", c.Name)
}

func TestParseRejectsInvalidOutput(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		curriculum bool
		wantEmpty  bool
	}{
		{name: "empty", text: "  ", wantEmpty: true},
		{name: "not json", text: "Sure! Here is your app"},
		{name: "missing name", text: `{"name":" ","category":"Dev Tool","potentialMrr":1}`},
		{name: "unknown category", text: `{"name":"A","category":"Crypto","potentialMrr":1}`},
		{name: "negative mrr", text: `{"name":"A","category":"Dev Tool","potentialMrr":-5}`},
		{name: "sector without curriculum", text: draftJSON, curriculum: true},
		{name: "untitled module", text: `{"name":"A","category":"Dev Tool","potentialMrr":1,"customCurriculum":[{"title":""}]}`, curriculum: true},
		{name: "quiz answer out of range", text: `{"name":"A","category":"Dev Tool","potentialMrr":1,"customCurriculum":[{"title":"T","quiz":[{"options":["a"],"correctIndex":3}]}]}`, curriculum: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseConcept(tt.text, tt.curriculum)
			assert.Nil(t, c)
			if tt.wantEmpty {
				assert.ErrorIs(t, err, ErrEmptyResponse)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConcept)
			}
		})
	}
}

func TestFormatHistory(t *testing.T) {
	lines := FormatHistory([]models.Notification{
		{Sender: models.SenderUser, Text: "hi"},
		{Sender: models.SenderAI, Text: "ship it"},
	})
	assert.Equal(t, []string{"User: hi", "VibeArchitect: ship it"}, lines)
}

func TestResponseText(t *testing.T) {
	_, err := responseText(nil)
	assert.ErrorIs(t, err, ErrEmptyResponse)

	_, err = responseText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}})
	assert.ErrorIs(t, err, ErrEmptyResponse)

	text, err := responseText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{
		{Content: &genai.Content{Parts: []genai.Part{genai.Text("hello "), genai.Text("world")}}},
	}})
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
}

func TestConceptSchemaShape(t *testing.T) {
	draft := conceptSchema(false)
	assert.NotContains(t, draft.Properties, "customCurriculum")
	assert.Len(t, draft.Properties["category"].Enum, len(models.AppCategories))

	sector := conceptSchema(true)
	assert.Contains(t, sector.Required, "customCurriculum")
	assert.Equal(t, genai.TypeArray, sector.Properties["customCurriculum"].Type)
}

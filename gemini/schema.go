package gemini

import (
	"github.com/google/generative-ai-go/genai"

	"orca-backend/models"
)

func categoryEnum() []string {
	out := make([]string, 0, len(models.AppCategories))
	for _, c := range models.AppCategories {
		out = append(out, string(c))
	}
	return out
}

func stringSchema(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: desc}
}

func stringList() *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}}
}

func blueprintSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"techStack":            stringSchema(""),
			"coreFeatures":         stringList(),
			"monetizationStrategy": stringSchema(""),
			"uniModuleRef":         stringSchema(""),
		},
		Required: []string{"techStack", "coreFeatures", "monetizationStrategy", "uniModuleRef"},
	}
}

// conceptSchema describes GeneratedAppConcept; withCurriculum adds the required customCurriculum array
func conceptSchema(withCurriculum bool) *genai.Schema {
	s := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":         stringSchema(""),
			"desc":         stringSchema("Max 12 words description"),
			"category":     {Type: genai.TypeString, Enum: categoryEnum()},
			"potentialMrr": {Type: genai.TypeInteger, Description: "Projected MRR integer between 500 and 15000"},
			"hypeComment":  stringSchema("A short reaction to the launch"),
			"blueprint":    blueprintSchema(),
		},
		Required: []string{"name", "desc", "category", "potentialMrr", "hypeComment", "blueprint"},
	}
	if withCurriculum {
		s.Properties["customCurriculum"] = &genai.Schema{Type: genai.TypeArray, Items: courseNodeSchema()}
		s.Required = append(s.Required, "customCurriculum")
	}
	return s
}

func courseNodeSchema() *genai.Schema {
	task := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"id":          stringSchema(""),
			"text":        stringSchema(""),
			"codeSnippet": stringSchema(""),
		},
	}
	option := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"text":      stringSchema(""),
			"isCorrect": {Type: genai.TypeBoolean},
			"feedback":  stringSchema(""),
		},
	}
	scenario := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":     stringSchema(""),
			"situation": stringSchema(""),
			"options":   {Type: genai.TypeArray, Items: option},
		},
	}
	question := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"question":     stringSchema(""),
			"options":      stringList(),
			"correctIndex": {Type: genai.TypeInteger},
			"explanation":  stringSchema(""),
		},
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"id":               stringSchema(""),
			"title":            stringSchema(""),
			"description":      stringSchema(""),
			"xpReward":         {Type: genai.TypeInteger},
			"reputationReward": {Type: genai.TypeInteger},
			"isProOnly":        {Type: genai.TypeBoolean},
			"content":          stringSchema(""),
			"tasks":            {Type: genai.TypeArray, Items: task},
			"storyScenarios":   {Type: genai.TypeArray, Items: scenario},
			"quiz":             {Type: genai.TypeArray, Items: question},
		},
		Required: []string{"id", "title", "description", "content", "tasks"},
	}
}

package models

// AppStatus represents the lifecycle stage of an app project
type AppStatus string

const (
	AppStatusConcept AppStatus = "Concept"
	AppStatusDev     AppStatus = "Dev"
	AppStatusBeta    AppStatus = "Beta"
	AppStatusLive    AppStatus = "Live"
)

// AppCategory represents the market category of an app
type AppCategory string

const (
	CategorySaaS       AppCategory = "SaaS Product"
	CategoryGame       AppCategory = "Indie Game"
	CategoryTool       AppCategory = "Dev Tool"
	CategoryFinance    AppCategory = "Fintech"
	CategoryAITool     AppCategory = "AI Tool"
	CategoryDataTool   AppCategory = "Data Tool"
	CategoryAutomation AppCategory = "Automation"
	CategoryContentGen AppCategory = "Content Gen"
)

// AppCategories lists every valid category in display order
var AppCategories = []AppCategory{
	CategorySaaS,
	CategoryGame,
	CategoryTool,
	CategoryFinance,
	CategoryAITool,
	CategoryDataTool,
	CategoryAutomation,
	CategoryContentGen,
}

// Valid reports whether c is one of the fixed categories
func (c AppCategory) Valid() bool {
	for _, known := range AppCategories {
		if c == known {
			return true
		}
	}
	return false
}

// AppBlueprint is the generated build plan attached to a concept
type AppBlueprint struct {
	TechStack            string   `json:"techStack"`
	CoreFeatures         []string `json:"coreFeatures"`
	MonetizationStrategy string   `json:"monetizationStrategy"`
	UniModuleRef         string   `json:"uniModuleRef"`
}

// AppProject represents one app in the founder's portfolio
type AppProject struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Description    string        `json:"description"`
	Category       AppCategory   `json:"category"`
	MRR            int           `json:"mrr"` // only meaningful when Status is Live
	PotentialMRR   int           `json:"potentialMrr"`
	Status         AppStatus     `json:"status"`
	CreatedAt      int64         `json:"createdAt"` // unix millis
	Blueprint      *AppBlueprint `json:"blueprint,omitempty"`
	URL            string        `json:"url,omitempty"`
	IsPublic       bool          `json:"isPublic"`
	LinkedCourseID string        `json:"linkedCourseId,omitempty"`
}

// IsLive reports whether the app has been shipped
func (a *AppProject) IsLive() bool {
	return a.Status == AppStatusLive
}

// AppPatch holds the editable metadata of an app. Nil fields are left untouched.
type AppPatch struct {
	Name        *string       `json:"name,omitempty"`
	Description *string       `json:"description,omitempty"`
	URL         *string       `json:"url,omitempty"`
	Blueprint   *AppBlueprint `json:"blueprint,omitempty"`
}

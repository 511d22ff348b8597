package models

// GeneratedAppConcept is the structured output of the concept generator
type GeneratedAppConcept struct {
	Name             string       `json:"name"`
	Desc             string       `json:"desc"`
	Category         AppCategory  `json:"category"`
	PotentialMRR     int          `json:"potentialMrr"`
	HypeComment      string       `json:"hypeComment"`
	Blueprint        AppBlueprint `json:"blueprint"`
	CustomCurriculum []CourseNode `json:"customCurriculum,omitempty"`
}

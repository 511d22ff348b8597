package models

// NodeStatus represents the progression state of a curriculum node
type NodeStatus string

const (
	NodeLocked    NodeStatus = "locked"
	NodeUnlocked  NodeStatus = "unlocked"
	NodeCompleted NodeStatus = "completed"
)

// NodeCategory groups curriculum nodes into phases
type NodeCategory string

const (
	NodeFoundation  NodeCategory = "foundation"
	NodeBuild       NodeCategory = "build"
	NodeGrowth      NodeCategory = "growth"
	NodeSpecialized NodeCategory = "specialized"
)

// TaskItem is one checklist step of a lesson
type TaskItem struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	CodeSnippet string `json:"codeSnippet,omitempty"` // copyable prompt
}

// StoryOption is one pre-labeled answer to a story scenario
type StoryOption struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
	Feedback  string `json:"feedback"`
}

// StoryScenario is a single-step decision exercise
type StoryScenario struct {
	Title     string        `json:"title"`
	Situation string        `json:"situation"`
	Options   []StoryOption `json:"options"`
}

// QuizQuestion is a multiple-choice exam question
type QuizQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
}

// CourseNode represents one lesson in the curriculum progression chain
type CourseNode struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	XPReward         int             `json:"xpReward"`
	ReputationReward int             `json:"reputationReward"`
	Status           NodeStatus      `json:"status"`
	Category         NodeCategory    `json:"category"`
	IsProOnly        bool            `json:"isProOnly,omitempty"`
	DependsOn        string          `json:"dependsOn,omitempty"` // id of the prerequisite node
	Content          string          `json:"content,omitempty"`
	Tasks            []TaskItem      `json:"tasks,omitempty"`
	StoryScenarios   []StoryScenario `json:"storyScenarios,omitempty"`
	Quiz             []QuizQuestion  `json:"quiz,omitempty"`
}

// AccessibleTo reports whether the Pro gate lets the given tier open this node
func (n *CourseNode) AccessibleTo(isPro bool) bool {
	return !n.IsProOnly || isPro
}

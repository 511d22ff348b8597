package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"orca-backend/logger"
	"orca-backend/metrics"
	"orca-backend/models"
	"orca-backend/notify"
	"orca-backend/state"
)

// CurriculumService runs the lesson progression chain. Persisted status only
// changes through Complete; quiz answers, scenario picks and task ticks are
// in-memory attempt state.
type CurriculumService struct {
	store   *state.Store
	session *SessionService
	notes   *notify.Log
	metrics *metrics.Metrics
	log     *logger.Logger

	mu       sync.Mutex
	attempts map[string]*attempt
}

type attempt struct {
	answers   []int
	submitted bool
	passed    bool
	scenarios map[int]int
	tasks     map[string]bool
}

// CurriculumServiceOption is a functional option for CurriculumService
type CurriculumServiceOption func(*CurriculumService)

// CurriculumWithMetrics sets the metrics sink
func CurriculumWithMetrics(m *metrics.Metrics) CurriculumServiceOption {
	return func(s *CurriculumService) {
		s.metrics = m
	}
}

// CurriculumWithLogger sets the logger
func CurriculumWithLogger(log *logger.Logger) CurriculumServiceOption {
	return func(s *CurriculumService) {
		s.log = log
	}
}

// NewCurriculumService creates a new curriculum service
func NewCurriculumService(store *state.Store, session *SessionService, notes *notify.Log, opts ...CurriculumServiceOption) *CurriculumService {
	s := &CurriculumService{
		store:    store,
		session:  session,
		notes:    notes,
		log:      logger.Nop(),
		attempts: make(map[string]*attempt),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("service", "CurriculumService")
	if session != nil {
		session.OnChange(s.Reset)
	}
	return s
}

// Reset drops every quiz, scenario and task attempt. A new session never
// inherits the previous one's progress.
func (s *CurriculumService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts = make(map[string]*attempt)
}

// NodeView is a curriculum node plus the caller's access and attempt state
type NodeView struct {
	models.CourseNode
	Accessible bool         `json:"accessible"`
	Progress   ProgressView `json:"progress"`
}

// ProgressView is the in-memory attempt state of one node
type ProgressView struct {
	QuizAnswers   []int           `json:"quizAnswers,omitempty"`
	QuizSubmitted bool            `json:"quizSubmitted"`
	QuizPassed    bool            `json:"quizPassed"`
	Scenarios     map[int]int     `json:"scenarios,omitempty"` // scenario index -> chosen option
	Tasks         map[string]bool `json:"tasks,omitempty"`
}

// List returns the whole chain in stored order
func (s *CurriculumService) List(ctx context.Context) ([]NodeView, error) {
	user, err := s.session.Require(ctx)
	if err != nil {
		return nil, err
	}
	nodes, err := s.store.LoadCurriculum(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	views := make([]NodeView, 0, len(nodes))
	for i := range nodes {
		views = append(views, NodeView{
			CourseNode: nodes[i],
			Accessible: nodes[i].AccessibleTo(user.IsPro),
			Progress:   s.progressLocked(nodes[i].ID),
		})
	}
	return views, nil
}

// Node returns one node if the caller may open it
func (s *CurriculumService) Node(ctx context.Context, nodeID string) (*models.CourseNode, error) {
	node, _, err := s.accessibleNode(ctx, nodeID)
	return node, err
}

// QuestionResult is the graded outcome of one quiz question
type QuestionResult struct {
	Correct      bool   `json:"correct"`
	CorrectIndex int    `json:"correctIndex"`
	Explanation  string `json:"explanation"`
}

// QuizResult represents the result of submitting a quiz
type QuizResult struct {
	Passed  bool             `json:"passed"`
	Results []QuestionResult `json:"results"`
}

// SubmitQuiz grades answers. The quiz passes only when every answer is correct.
func (s *CurriculumService) SubmitQuiz(ctx context.Context, nodeID string, answers []int) (*QuizResult, error) {
	node, _, err := s.accessibleNode(ctx, nodeID)
	if err != nil {
		return nil, err
	}
	switch node.Status {
	case models.NodeCompleted:
		return nil, ErrAlreadyCompleted
	case models.NodeLocked:
		return nil, ErrNodeLocked
	}
	if len(answers) != len(node.Quiz) {
		return nil, ErrIncompleteAnswers
	}
	for i, a := range answers {
		if a < 0 || a >= len(node.Quiz[i].Options) {
			return nil, fmt.Errorf("%w: question %d", ErrInvalidOption, i+1)
		}
	}

	result := &QuizResult{Passed: true, Results: make([]QuestionResult, 0, len(answers))}
	for i, q := range node.Quiz {
		correct := answers[i] == q.CorrectIndex
		if !correct {
			result.Passed = false
		}
		result.Results = append(result.Results, QuestionResult{
			Correct:      correct,
			CorrectIndex: q.CorrectIndex,
			Explanation:  q.Explanation,
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.attemptLocked(nodeID)
	if a.submitted {
		return nil, ErrQuizAlreadySubmitted
	}
	a.answers = append([]int(nil), answers...)
	a.submitted = true
	a.passed = result.Passed
	return result, nil
}

// RetryQuiz clears the previous submission. Retries are unlimited and free.
func (s *CurriculumService) RetryQuiz(ctx context.Context, nodeID string) error {
	if _, _, err := s.accessibleNode(ctx, nodeID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if a, ok := s.attempts[nodeID]; ok {
		a.answers = nil
		a.submitted = false
		a.passed = false
	}
	return nil
}

// CompleteResult represents the result of completing a node
type CompleteResult struct {
	Node       models.CourseNode   `json:"node"`
	UnlockedID string              `json:"unlockedId,omitempty"`
	User       *models.UserProfile `json:"user"`
}

// Complete marks a passed node completed, unlocks its successor and grants the reputation reward
func (s *CurriculumService) Complete(ctx context.Context, nodeID string) (*CompleteResult, error) {
	var result *CompleteResult
	err := s.store.WithLock(func() error {
		user, err := s.session.Require(ctx)
		if err != nil {
			return err
		}
		nodes, err := s.store.LoadCurriculum(ctx)
		if err != nil {
			return err
		}
		idx := indexOfNode(nodes, nodeID)
		if idx < 0 {
			return ErrNodeNotFound
		}
		if !nodes[idx].AccessibleTo(user.IsPro) {
			return ErrProOnly
		}
		switch nodes[idx].Status {
		case models.NodeCompleted:
			return ErrAlreadyCompleted
		case models.NodeLocked:
			return ErrNodeLocked
		}
		if !s.quizPassed(nodeID) {
			return ErrQuizNotPassed
		}

		unlocked := completeAndUnlock(nodes, idx)
		if err := s.store.SaveCurriculum(ctx, nodes); err != nil {
			return err
		}
		user, err = s.session.addReputationLocked(ctx, nodes[idx].ReputationReward)
		if err != nil {
			return err
		}

		result = &CompleteResult{Node: nodes[idx], UnlockedID: unlocked, User: user}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	delete(s.attempts, nodeID)
	s.mu.Unlock()

	s.metrics.NodeCompleted()
	s.notes.Append(models.SenderSystem, fmt.Sprintf("🎓 Lesson Completed! +%d Reputation Gained.", result.Node.ReputationReward))
	s.log.Info("node completed", "node_id", nodeID, "unlocked", result.UnlockedID)
	return result, nil
}

// ScenarioResult is the outcome of answering a story scenario
type ScenarioResult struct {
	Correct  bool   `json:"correct"`
	Feedback string `json:"feedback"`
}

// AnswerScenario records a terminal pick for a scenario instance. It never
// touches node status or rewards.
func (s *CurriculumService) AnswerScenario(ctx context.Context, nodeID string, scenarioIdx, optionIdx int) (*ScenarioResult, error) {
	node, _, err := s.accessibleNode(ctx, nodeID)
	if err != nil {
		return nil, err
	}
	if scenarioIdx < 0 || scenarioIdx >= len(node.StoryScenarios) {
		return nil, ErrScenarioNotFound
	}
	options := node.StoryScenarios[scenarioIdx].Options
	if optionIdx < 0 || optionIdx >= len(options) {
		return nil, ErrInvalidOption
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.attemptLocked(nodeID)
	if _, answered := a.scenarios[scenarioIdx]; answered {
		return nil, ErrScenarioAnswered
	}
	a.scenarios[scenarioIdx] = optionIdx
	return &ScenarioResult{Correct: options[optionIdx].IsCorrect, Feedback: options[optionIdx].Feedback}, nil
}

// ResetScenario starts a new instance of a scenario
func (s *CurriculumService) ResetScenario(ctx context.Context, nodeID string, scenarioIdx int) error {
	node, _, err := s.accessibleNode(ctx, nodeID)
	if err != nil {
		return err
	}
	if scenarioIdx < 0 || scenarioIdx >= len(node.StoryScenarios) {
		return ErrScenarioNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if a, ok := s.attempts[nodeID]; ok {
		delete(a.scenarios, scenarioIdx)
	}
	return nil
}

// ToggleTask flips a checklist item and returns its new state
func (s *CurriculumService) ToggleTask(ctx context.Context, nodeID, taskID string) (bool, error) {
	node, _, err := s.accessibleNode(ctx, nodeID)
	if err != nil {
		return false, err
	}
	found := false
	for _, t := range node.Tasks {
		if t.ID == taskID {
			found = true
			break
		}
	}
	if !found {
		return false, ErrTaskNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.attemptLocked(nodeID)
	a.tasks[taskID] = !a.tasks[taskID]
	return a.tasks[taskID], nil
}

// AppendSpecialized appends a generated sub-chain and returns the id of its first node
func (s *CurriculumService) AppendSpecialized(ctx context.Context, nodes []models.CourseNode) (string, error) {
	var first string
	err := s.store.WithLock(func() error {
		var err error
		first, err = s.appendSpecializedLocked(ctx, nodes)
		return err
	})
	return first, err
}

// appendSpecializedLocked must run inside store.WithLock
func (s *CurriculumService) appendSpecializedLocked(ctx context.Context, nodes []models.CourseNode) (string, error) {
	if len(nodes) == 0 {
		return "", nil
	}
	current, err := s.store.LoadCurriculum(ctx)
	if err != nil {
		return "", err
	}
	chain := normalizeSpecialized(nodes)
	if err := s.store.SaveCurriculum(ctx, append(current, chain...)); err != nil {
		return "", err
	}
	return chain[0].ID, nil
}

// normalizeSpecialized overrides generator-supplied ids, status and category.
// The first node is unlocked, the rest locked, each depending on the previous one.
func normalizeSpecialized(nodes []models.CourseNode) []models.CourseNode {
	chain := make([]models.CourseNode, len(nodes))
	copy(chain, nodes)
	for i := range chain {
		chain[i].ID = "custom-" + uuid.NewString()
		chain[i].Category = models.NodeSpecialized
		chain[i].DependsOn = ""
		if i == 0 {
			chain[i].Status = models.NodeUnlocked
		} else {
			chain[i].Status = models.NodeLocked
			chain[i].DependsOn = chain[i-1].ID
		}
	}
	return chain
}

// completeAndUnlock marks nodes[idx] completed and unlocks exactly one
// successor if it is locked. The successor is the first node declaring
// dependsOn on the completed id, else the next node in stored order.
func completeAndUnlock(nodes []models.CourseNode, idx int) string {
	nodes[idx].Status = models.NodeCompleted
	id := nodes[idx].ID

	next := -1
	for i := range nodes {
		if i != idx && nodes[i].DependsOn == id {
			next = i
			break
		}
	}
	if next < 0 && idx+1 < len(nodes) {
		next = idx + 1
	}
	if next < 0 || nodes[next].Status != models.NodeLocked {
		return ""
	}
	nodes[next].Status = models.NodeUnlocked
	return nodes[next].ID
}

func indexOfNode(nodes []models.CourseNode, id string) int {
	for i := range nodes {
		if nodes[i].ID == id {
			return i
		}
	}
	return -1
}

// accessibleNode loads a node and applies the session and Pro gates
func (s *CurriculumService) accessibleNode(ctx context.Context, nodeID string) (*models.CourseNode, *models.UserProfile, error) {
	user, err := s.session.Require(ctx)
	if err != nil {
		return nil, nil, err
	}
	nodes, err := s.store.LoadCurriculum(ctx)
	if err != nil {
		return nil, nil, err
	}
	idx := indexOfNode(nodes, nodeID)
	if idx < 0 {
		return nil, nil, ErrNodeNotFound
	}
	if !nodes[idx].AccessibleTo(user.IsPro) {
		return nil, nil, ErrProOnly
	}
	return &nodes[idx], user, nil
}

func (s *CurriculumService) quizPassed(nodeID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attempts[nodeID]
	return ok && a.submitted && a.passed
}

func (s *CurriculumService) attemptLocked(nodeID string) *attempt {
	a, ok := s.attempts[nodeID]
	if !ok {
		a = &attempt{scenarios: make(map[int]int), tasks: make(map[string]bool)}
		s.attempts[nodeID] = a
	}
	return a
}

func (s *CurriculumService) progressLocked(nodeID string) ProgressView {
	a, ok := s.attempts[nodeID]
	if !ok {
		return ProgressView{}
	}
	p := ProgressView{
		QuizAnswers:   append([]int(nil), a.answers...),
		QuizSubmitted: a.submitted,
		QuizPassed:    a.passed,
	}
	if len(a.scenarios) > 0 {
		p.Scenarios = make(map[int]int, len(a.scenarios))
		for k, v := range a.scenarios {
			p.Scenarios[k] = v
		}
	}
	if len(a.tasks) > 0 {
		p.Tasks = make(map[string]bool, len(a.tasks))
		for k, v := range a.tasks {
			p.Tasks[k] = v
		}
	}
	return p
}

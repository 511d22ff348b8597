package service

import (
	"context"
	"fmt"
	"strings"

	"orca-backend/gemini"
	"orca-backend/logger"
	"orca-backend/models"
	"orca-backend/notify"
)

// Assistant is the free-text collaborator behind the tutor and the oracle chat
type Assistant interface {
	Tutor(ctx context.Context, lessonContext, question string) (string, error)
	Chat(ctx context.Context, message string, history []string) (string, error)
}

// chatHistorySize is how many prior user/ai messages accompany a chat turn
const chatHistorySize = 5

// MentorService answers lesson questions and runs the oracle chat
type MentorService struct {
	assistant  Assistant
	curriculum *CurriculumService
	session    *SessionService
	notes      *notify.Log
	log        *logger.Logger
}

// NewMentorService creates a new mentor service
func NewMentorService(assistant Assistant, curriculum *CurriculumService, session *SessionService, notes *notify.Log, log *logger.Logger) *MentorService {
	if log == nil {
		log = logger.Nop()
	}
	return &MentorService{
		assistant:  assistant,
		curriculum: curriculum,
		session:    session,
		notes:      notes,
		log:        log.With("service", "MentorService"),
	}
}

// AskTutor answers a question about one lesson, using its content as context
func (s *MentorService) AskTutor(ctx context.Context, nodeID, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyMessage
	}
	node, err := s.curriculum.Node(ctx, nodeID)
	if err != nil {
		return "", err
	}

	answer, err := s.assistant.Tutor(ctx, node.Title+"\n\n"+node.Content, question)
	if err != nil {
		s.log.Warn("tutor request failed", "node_id", nodeID, "error", err)
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if strings.TrimSpace(answer) == "" {
		answer = gemini.TutorFallback
	}
	return answer, nil
}

// ChatResult holds both sides of one chat turn
type ChatResult struct {
	Message models.Notification `json:"message"`
	Reply   models.Notification `json:"reply"`
}

// Chat posts a user message to the feed and appends the oracle's reply.
// On failure a single system notice is appended instead of a reply.
func (s *MentorService) Chat(ctx context.Context, message string) (*ChatResult, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}
	if _, err := s.session.Require(ctx); err != nil {
		return nil, err
	}

	history := gemini.FormatHistory(s.notes.Recent(chatHistorySize, models.SenderUser, models.SenderAI))
	userMsg := s.notes.Append(models.SenderUser, message)

	reply, err := s.assistant.Chat(ctx, message, history)
	if err != nil {
		s.notes.Append(models.SenderSystem, "⚠️ Oracle connection lost. Try again.")
		s.log.Warn("chat request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if strings.TrimSpace(reply) == "" {
		reply = gemini.ChatFallback
	}

	return &ChatResult{
		Message: userMsg,
		Reply:   s.notes.Append(models.SenderAI, reply),
	}, nil
}

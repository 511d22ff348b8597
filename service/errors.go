package service

import "errors"

var (
	ErrNotAuthenticated     = errors.New("not authenticated")
	ErrUsernameRequired     = errors.New("username is required")
	ErrAlreadyAuthenticated = errors.New("already authenticated")

	ErrAppNotFound          = errors.New("app not found")
	ErrURLRequired          = errors.New("url is required")
	ErrInvalidCategory      = errors.New("invalid category")
	ErrConfirmationRequired = errors.New("confirmation required")

	ErrNodeNotFound         = errors.New("curriculum node not found")
	ErrNodeLocked           = errors.New("curriculum node is locked")
	ErrProOnly              = errors.New("curriculum node requires a Pro account")
	ErrQuizNotPassed        = errors.New("quiz not passed")
	ErrQuizAlreadySubmitted = errors.New("quiz already submitted")
	ErrIncompleteAnswers    = errors.New("every quiz question needs an answer")
	ErrAlreadyCompleted     = errors.New("curriculum node already completed")
	ErrScenarioNotFound     = errors.New("story scenario not found")
	ErrScenarioAnswered     = errors.New("story scenario already answered")
	ErrInvalidOption        = errors.New("invalid option")
	ErrTaskNotFound         = errors.New("task not found")

	ErrInvalidGenerationInput = errors.New("invalid generation input")
	ErrJobNotFound            = errors.New("generation job not found")
	ErrGenerationFailed       = errors.New("failed to generate content")

	ErrEmptyMessage  = errors.New("message is required")
	ErrInvalidBackup = errors.New("invalid backup")
)

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"orca-backend/models"
	"orca-backend/notify"
	"orca-backend/state"
	"orca-backend/storage"
)

var testEpoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type harness struct {
	ctx        context.Context
	backend    *storage.MemoryStorage
	store      *state.Store
	clock      *notify.ManualClock
	notes      *notify.Log
	session    *SessionService
	curriculum *CurriculumService
	portfolio  *PortfolioService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	backend := storage.NewMemoryStorage()
	store := state.New(backend, "orca_", nil)
	clock := notify.NewManualClock(testEpoch)
	notes := notify.NewLog(nil, notify.WithScheduler(notify.NewScheduler(clock, nil)))
	session := NewSessionService(store, SessionWithClock(clock.Now))
	curriculum := NewCurriculumService(store, session, notes)
	portfolio := NewPortfolioService(store, session, notes, PortfolioWithCurriculum(curriculum))

	return &harness{
		ctx:        context.Background(),
		backend:    backend,
		store:      store,
		clock:      clock,
		notes:      notes,
		session:    session,
		curriculum: curriculum,
		portfolio:  portfolio,
	}
}

func (h *harness) login(t *testing.T, username string, isPro bool) *models.UserProfile {
	t.Helper()
	user, err := h.session.Login(h.ctx, LoginRequest{Username: username, IsPro: isPro})
	require.NoError(t, err)
	return user
}

func (h *harness) user(t *testing.T) *models.UserProfile {
	t.Helper()
	user, err := h.store.LoadUser(h.ctx)
	require.NoError(t, err)
	return user
}

func (h *harness) apps(t *testing.T) []models.AppProject {
	t.Helper()
	apps, err := h.store.LoadApps(h.ctx)
	require.NoError(t, err)
	return apps
}

func (h *harness) nodes(t *testing.T) []models.CourseNode {
	t.Helper()
	nodes, err := h.store.LoadCurriculum(h.ctx)
	require.NoError(t, err)
	return nodes
}

func (h *harness) texts() []string {
	var out []string
	for _, n := range h.notes.List() {
		out = append(out, n.Text)
	}
	return out
}

func (h *harness) seedApps(t *testing.T, apps ...models.AppProject) {
	t.Helper()
	require.NoError(t, h.store.SaveApps(h.ctx, apps))
}

func (h *harness) seedCurriculum(t *testing.T, nodes ...models.CourseNode) {
	t.Helper()
	require.NoError(t, h.store.SaveCurriculum(h.ctx, nodes))
}

func sampleConcept() *models.GeneratedAppConcept {
	return &models.GeneratedAppConcept{
		Name:         "ShipFast",
		Desc:         "Boilerplate that ships itself",
		Category:     models.CategoryTool,
		PotentialMRR: 5000,
		HypeComment:  "lfg this is based",
		Blueprint: models.AppBlueprint{
			TechStack:            "React + Gemini",
			CoreFeatures:         []string{"auth", "billing"},
			MonetizationStrategy: "subscription",
			UniModuleRef:         "101",
		},
	}
}

func generatedNodes(n int) []models.CourseNode {
	nodes := make([]models.CourseNode, n)
	for i := range nodes {
		nodes[i] = models.CourseNode{
			ID:               "gen-supplied",
			Title:            "Module",
			XPReward:         100,
			ReputationReward: 10,
			Status:           models.NodeCompleted,
			Category:         models.NodeGrowth,
			Quiz: []models.QuizQuestion{
				{Question: "q", Options: []string{"a", "b"}, CorrectIndex: 0},
			},
		}
	}
	return nodes
}

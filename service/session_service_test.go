package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orca-backend/models"
)

func TestLoginCreatesFreshProfile(t *testing.T) {
	h := newHarness(t)

	user := h.login(t, "  ada  ", true)
	assert.Equal(t, "ada", user.Username)
	assert.True(t, user.IsPro)
	assert.Equal(t, 0, user.Reputation)
	assert.Equal(t, models.StartingTitle, user.Title)
	assert.Equal(t, testEpoch.UnixMilli(), user.JoinedAt)

	settings, err := h.store.LoadPortfolio(h.ctx)
	require.NoError(t, err)
	assert.Equal(t, "ada", settings.FounderName)
	assert.Equal(t, "VibeCode Studios", settings.CompanyName)

	assert.Equal(t, user, h.user(t))
}

func TestLoginRejectsEmptyUsernameAndDoubleLogin(t *testing.T) {
	h := newHarness(t)

	_, err := h.session.Login(h.ctx, LoginRequest{Username: "   "})
	assert.ErrorIs(t, err, ErrUsernameRequired)
	assert.Nil(t, h.user(t))

	h.login(t, "ada", false)
	_, err = h.session.Login(h.ctx, LoginRequest{Username: "grace"})
	assert.ErrorIs(t, err, ErrAlreadyAuthenticated)
	assert.Equal(t, "ada", h.user(t).Username)
}

func TestLogoutErasesOnlyUser(t *testing.T) {
	h := newHarness(t)
	h.login(t, "ada", false)
	h.seedApps(t, models.AppProject{ID: "a1", Category: models.CategorySaaS, Status: models.AppStatusConcept})

	require.NoError(t, h.session.Logout(h.ctx))
	assert.Nil(t, h.user(t))
	assert.Len(t, h.apps(t), 1)

	_, err := h.session.Require(h.ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestReloginDoesNotResurrectReputation(t *testing.T) {
	h := newHarness(t)
	h.login(t, "ada", false)
	_, err := h.session.AddReputation(h.ctx, 450)
	require.NoError(t, err)
	assert.Equal(t, 450, h.user(t).Reputation)

	require.NoError(t, h.session.Logout(h.ctx))
	user := h.login(t, "grace", false)

	assert.Equal(t, "grace", user.Username)
	assert.Equal(t, 0, h.user(t).Reputation)
}

func TestAddReputation(t *testing.T) {
	h := newHarness(t)

	user, err := h.session.AddReputation(h.ctx, 100)
	require.NoError(t, err)
	assert.Nil(t, user, "anonymous sessions earn nothing")

	h.login(t, "ada", false)
	user, err = h.session.AddReputation(h.ctx, 250)
	require.NoError(t, err)
	assert.Equal(t, 250, user.Reputation)
	assert.Equal(t, "Builder", user.Title)

	user, err = h.session.AddReputation(h.ctx, -40)
	require.NoError(t, err)
	assert.Equal(t, 250, user.Reputation, "reputation never decreases")
}

func TestAnonymousCallsAreRejected(t *testing.T) {
	h := newHarness(t)
	h.seedApps(t, models.AppProject{ID: "a1", Category: models.CategorySaaS, Status: models.AppStatusConcept})

	_, err := h.portfolio.List(h.ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	_, err = h.portfolio.Ship(h.ctx, ShipRequest{AppID: "a1", URL: "https://x.run.app"})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	_, err = h.portfolio.ToggleVisibility(h.ctx, "a1")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	_, err = h.portfolio.Delete(h.ctx, DeleteRequest{AppID: "a1", Confirmed: true})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	_, err = h.portfolio.CreateFromConcept(h.ctx, sampleConcept())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	_, err = h.curriculum.List(h.ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	_, err = h.curriculum.Complete(h.ctx, "000")
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	apps := h.apps(t)
	require.Len(t, apps, 1)
	assert.Equal(t, models.AppStatusConcept, apps[0].Status)
	assert.Empty(t, h.notes.List())
}

package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"orca-backend/models"
)

func TestTotalProjectedMRR(t *testing.T) {
	tests := []struct {
		name string
		apps []models.AppProject
		want int
	}{
		{"empty", nil, 0},
		{"concept uses potential", []models.AppProject{{Status: models.AppStatusConcept, PotentialMRR: 5000, MRR: 7}}, 5000},
		{"dev uses potential", []models.AppProject{{Status: models.AppStatusDev, PotentialMRR: 800}}, 800},
		{"beta contributes nothing", []models.AppProject{{Status: models.AppStatusBeta, PotentialMRR: 800, MRR: 50}}, 0},
		{"live uses mrr only", []models.AppProject{{Status: models.AppStatusLive, PotentialMRR: 5000, MRR: 100}}, 100},
		{"mixed", []models.AppProject{
			{Status: models.AppStatusLive, MRR: 100},
			{Status: models.AppStatusConcept, PotentialMRR: 500},
			{Status: models.AppStatusBeta, PotentialMRR: 900},
			{Status: models.AppStatusDev, PotentialMRR: 1000},
		}, 1600},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalProjectedMRR(tt.apps))
		})
	}
}

func TestTotalProjectedMRRShipScenario(t *testing.T) {
	var apps []models.AppProject
	assert.Equal(t, 0, TotalProjectedMRR(apps))

	apps = append(apps, models.AppProject{Status: models.AppStatusConcept, PotentialMRR: 5000})
	assert.Equal(t, 5000, TotalProjectedMRR(apps))

	apps[0].Status = models.AppStatusLive
	apps[0].MRR = 100
	assert.Equal(t, 100, TotalProjectedMRR(apps))
	assert.Equal(t, 100, TotalProjectedMRR(apps), "recomputing is idempotent")
}

func TestTotalProjectedMRROrderIndependent(t *testing.T) {
	apps := []models.AppProject{
		{Status: models.AppStatusLive, MRR: 100},
		{Status: models.AppStatusConcept, PotentialMRR: 500},
		{Status: models.AppStatusDev, PotentialMRR: 1000},
	}
	reversed := []models.AppProject{apps[2], apps[1], apps[0]}
	assert.Equal(t, TotalProjectedMRR(apps), TotalProjectedMRR(reversed))
}

func TestLevel(t *testing.T) {
	assert.Equal(t, 1, Level(0, 0))
	assert.Equal(t, 1, Level(4, 9))
	assert.Equal(t, 2, Level(5, 0))
	assert.Equal(t, 2, Level(0, 50))
	assert.Equal(t, 6, Level(1, 240))
}

func TestRankThresholds(t *testing.T) {
	cases := map[int]string{
		0:    RankScriptKiddie,
		200:  RankScriptKiddie,
		201:  RankBuilder,
		500:  RankBuilder,
		501:  RankFounder,
		1000: RankFounder,
		1001: RankUnicorn,
	}
	for rep, want := range cases {
		assert.Equal(t, want, Rank(rep), "reputation %d", rep)
	}
}

func TestTotalXPCountsCompletedOnly(t *testing.T) {
	nodes := []models.CourseNode{
		{XPReward: 150, Status: models.NodeCompleted},
		{XPReward: 100, Status: models.NodeUnlocked},
		{XPReward: 1000, Status: models.NodeLocked},
		{XPReward: 600, Status: models.NodeCompleted},
	}
	assert.Equal(t, 750, TotalXP(nodes))
}

func TestPublicRevenueAndApps(t *testing.T) {
	apps := []models.AppProject{
		{ID: "a", IsPublic: true, Status: models.AppStatusLive, MRR: 100},
		{ID: "b", IsPublic: true, Status: models.AppStatusConcept, MRR: 999, PotentialMRR: 5000},
		{ID: "c", IsPublic: false, Status: models.AppStatusLive, MRR: 300},
	}
	assert.Equal(t, 100, PublicRevenue(apps))

	public := PublicApps(apps)
	if assert.Len(t, public, 2) {
		assert.Equal(t, "a", public[0].ID)
		assert.Equal(t, "b", public[1].ID)
	}
	assert.NotNil(t, PublicApps(nil))
}

func TestSnapshot(t *testing.T) {
	user := &models.UserProfile{Username: "ada", Reputation: 225}
	apps := []models.AppProject{
		{Status: models.AppStatusLive, MRR: 100},
		{Status: models.AppStatusConcept, PotentialMRR: 4000},
	}
	nodes := []models.CourseNode{
		{XPReward: 150, Status: models.NodeCompleted},
		{XPReward: 100, Status: models.NodeUnlocked},
	}

	d := Snapshot(user, apps, nodes)
	assert.Equal(t, Dashboard{
		TotalMRR:       4100,
		Level:          5,
		Rank:           RankBuilder,
		Reputation:     225,
		TotalXP:        150,
		AppCount:       2,
		LiveCount:      1,
		CompletedNodes: 1,
		TotalNodes:     2,
	}, d)

	anon := Snapshot(nil, nil, nil)
	assert.Equal(t, 1, anon.Level)
	assert.Equal(t, RankScriptKiddie, anon.Rank)
}

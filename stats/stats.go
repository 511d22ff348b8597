// Package stats derives the dashboard figures from the persisted documents.
// Nothing here is stored; every value is recomputed on read.
package stats

import "orca-backend/models"

// Rank labels, lowest first
const (
	RankScriptKiddie = "Script Kiddie"
	RankBuilder      = "Builder"
	RankFounder      = "Founder"
	RankUnicorn      = "Unicorn"
)

// TotalProjectedMRR sums actual revenue of Live apps and potential revenue of
// Concept and Dev apps. Beta apps contribute nothing.
func TotalProjectedMRR(apps []models.AppProject) int {
	total := 0
	for i := range apps {
		switch apps[i].Status {
		case models.AppStatusLive:
			total += apps[i].MRR
		case models.AppStatusConcept, models.AppStatusDev:
			total += apps[i].PotentialMRR
		}
	}
	return total
}

// Level = floor((appCount*10 + reputation) / 50) + 1
func Level(appCount, reputation int) int {
	return (appCount*10+reputation)/50 + 1
}

// Rank maps reputation to its label using strict thresholds
func Rank(reputation int) string {
	switch {
	case reputation > 1000:
		return RankUnicorn
	case reputation > 500:
		return RankFounder
	case reputation > 200:
		return RankBuilder
	default:
		return RankScriptKiddie
	}
}

// TotalXP sums xpReward over completed nodes
func TotalXP(nodes []models.CourseNode) int {
	total := 0
	for i := range nodes {
		if nodes[i].Status == models.NodeCompleted {
			total += nodes[i].XPReward
		}
	}
	return total
}

// PublicRevenue sums mrr over apps that are both public and Live
func PublicRevenue(apps []models.AppProject) int {
	total := 0
	for i := range apps {
		if apps[i].IsPublic && apps[i].IsLive() {
			total += apps[i].MRR
		}
	}
	return total
}

// PublicApps returns the apps flagged public, preserving order
func PublicApps(apps []models.AppProject) []models.AppProject {
	out := []models.AppProject{}
	for i := range apps {
		if apps[i].IsPublic {
			out = append(out, apps[i])
		}
	}
	return out
}

// Dashboard is the snapshot rendered on the main screen
type Dashboard struct {
	TotalMRR       int    `json:"totalMrr"`
	Level          int    `json:"level"`
	Rank           string `json:"rank"`
	Reputation     int    `json:"reputation"`
	TotalXP        int    `json:"totalXp"`
	AppCount       int    `json:"appCount"`
	LiveCount      int    `json:"liveCount"`
	CompletedNodes int    `json:"completedNodes"`
	TotalNodes     int    `json:"totalNodes"`
}

// Snapshot computes the dashboard. A nil user counts as zero reputation.
func Snapshot(user *models.UserProfile, apps []models.AppProject, nodes []models.CourseNode) Dashboard {
	rep := 0
	if user != nil {
		rep = user.Reputation
	}

	d := Dashboard{
		TotalMRR:   TotalProjectedMRR(apps),
		Level:      Level(len(apps), rep),
		Rank:       Rank(rep),
		Reputation: rep,
		TotalXP:    TotalXP(nodes),
		AppCount:   len(apps),
		TotalNodes: len(nodes),
	}
	for i := range apps {
		if apps[i].IsLive() {
			d.LiveCount++
		}
	}
	for i := range nodes {
		if nodes[i].Status == models.NodeCompleted {
			d.CompletedNodes++
		}
	}
	return d
}

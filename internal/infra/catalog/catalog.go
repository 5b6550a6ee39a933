// Package catalog holds the static game data: purchasable apps and tools,
// task definitions, hack targets, and the security upgrade ladder.
// Everything here is read-only; the game layer never mutates catalog entries.
package catalog

import (
	"math"

	"github.com/devbyte-game/devbyte/internal/domain"
)

// ─── Dev Apps ───────────────────────────────────────────────────────────────

// DevApps is the developer faction's buildable app list, cheapest first.
// The first app is free so a fresh dev can start earning immediately.
var DevApps = []domain.CatalogItem{
	{ID: "app-1", Name: "Simple Blog", Description: "A basic blogging application.", Cost: 0, Income: 5, RequiredLevel: 1},
	{ID: "app-2", Name: "Mobile Calculator", Description: "A calculator app for smartphones.", Cost: 100, Income: 10, RequiredLevel: 1},
	{ID: "app-3", Name: "Social Feed", Description: "A simple social media feed viewer.", Cost: 200, Income: 20, RequiredLevel: 1},
	{ID: "app-4", Name: "E-Commerce Template", Description: "A template for online stores.", Cost: 500, Income: 50, RequiredLevel: 2},
	{ID: "app-5", Name: "Mobile Game", Description: "A simple mobile game with in-app purchases.", Cost: 1000, Income: 100, RequiredLevel: 2},
	{ID: "app-6", Name: "CRM System", Description: "Customer relationship management software.", Cost: 2000, Income: 200, RequiredLevel: 3},
	{ID: "app-7", Name: "Enterprise ERP", Description: "Enterprise resource planning software.", Cost: 5000, Income: 500, RequiredLevel: 4},
	{ID: "app-8", Name: "AI Assistant", Description: "Artificial intelligence powered assistant.", Cost: 10000, Income: 1000, RequiredLevel: 5},
}

// ─── Byte Tools ─────────────────────────────────────────────────────────────

// ByteTools is the hacker faction's buildable tool list. Tools carry a
// hack-boost modifier alongside their passive income.
var ByteTools = []domain.CatalogItem{
	{ID: "tool-1", Name: "Basic Password Cracker", Description: "A simple tool for cracking weak passwords.", Cost: 0, Income: 5, HackBoost: 0.1, RequiredLevel: 1},
	{ID: "tool-2", Name: "Network Scanner", Description: "Scans networks for vulnerabilities.", Cost: 100, Income: 10, HackBoost: 0.1, RequiredLevel: 1},
	{ID: "tool-3", Name: "Malware Injector", Description: "Injects simple malware into vulnerable systems.", Cost: 200, Income: 20, HackBoost: 0.15, RequiredLevel: 1},
	{ID: "tool-4", Name: "Botnet Starter", Description: "A small network of compromised computers.", Cost: 500, Income: 50, HackBoost: 0.2, RequiredLevel: 2},
	{ID: "tool-5", Name: "Zero-Day Exploit", Description: "Exploits undiscovered vulnerabilities.", Cost: 1000, Income: 100, HackBoost: 0.25, RequiredLevel: 2},
	{ID: "tool-6", Name: "Advanced Backdoor", Description: "Creates persistent access to systems.", Cost: 2000, Income: 200, HackBoost: 0.3, RequiredLevel: 3},
	{ID: "tool-7", Name: "Enterprise Infiltrator", Description: "Specialized for enterprise system breaches.", Cost: 5000, Income: 500, HackBoost: 0.35, RequiredLevel: 4},
	{ID: "tool-8", Name: "Quantum Hacking Suite", Description: "Advanced quantum computing based hacking tools.", Cost: 10000, Income: 1000, HackBoost: 0.4, RequiredLevel: 5},
}

// ─── Lookup ─────────────────────────────────────────────────────────────────

// ItemsFor returns the buildable catalog for a faction.
func ItemsFor(faction domain.Faction) []domain.CatalogItem {
	switch faction {
	case domain.FactionDev:
		return DevApps
	case domain.FactionByte:
		return ByteTools
	default:
		return nil
	}
}

// LookupItem finds a catalog item by ID across both factions.
// Returns nil when the ID is unknown.
func LookupItem(id string) *domain.CatalogItem {
	for i := range DevApps {
		if DevApps[i].ID == id {
			return &DevApps[i]
		}
	}
	for i := range ByteTools {
		if ByteTools[i].ID == id {
			return &ByteTools[i]
		}
	}
	return nil
}

// Unlocked filters a faction's catalog down to items selectable at the tier
// derived from the owned count.
func Unlocked(faction domain.Faction, ownedCount int) []domain.CatalogItem {
	tier := domain.TierForOwned(ownedCount)
	var out []domain.CatalogItem
	for _, item := range ItemsFor(faction) {
		if item.RequiredLevel <= tier {
			out = append(out, item)
		}
	}
	return out
}

// ─── Security Ladder ────────────────────────────────────────────────────────

// SecurityUpgradeCost doubles with each level: 500, 1000, 2000, 4000.
func SecurityUpgradeCost(level int) float64 {
	return math.Round(500 * math.Pow(2, float64(level-1)))
}

// SecurityDescriptions indexes protection blurbs by level (0 = unprotected).
var SecurityDescriptions = []string{
	"No security. Easy target for hackers.",
	"Basic security. Basic protection against novice hackers.",
	"Standard security. Good protection against average hackers.",
	"Advanced security. Strong protection against skilled hackers.",
	"Enterprise security. Very strong protection against advanced hackers.",
	"Military-grade security. Nearly impenetrable to all but the most elite hackers.",
}

// ─── Hack Targets ───────────────────────────────────────────────────────────

// HackTargets returns the attackable systems for the byte faction.
func HackTargets() []domain.HackTarget {
	return []domain.HackTarget{
		{Name: "Personal Blog", Owner: "@blogger123", Balance: 150, Income: 5, Security: 1},
		{Name: "Small Business Site", Owner: "@localbiz", Balance: 500, Income: 25, Security: 2},
		{Name: "E-commerce Store", Owner: "@shopmaster", Balance: 2000, Income: 100, Security: 3},
		{Name: "Banking Portal", Owner: "@securemoney", Balance: 10000, Income: 500, Security: 5},
		{Name: "Social Media App", Owner: "@socialconnect", Balance: 5000, Income: 250, Security: 4},
		{Name: "Gaming Platform", Owner: "@gameover", Balance: 3000, Income: 150, Security: 3},
		{Name: "News Site", Owner: "@dailybytes", Balance: 1000, Income: 50, Security: 2},
		{Name: "Weather App", Owner: "@stormchaser", Balance: 300, Income: 15, Security: 1},
		{Name: "Fitness Tracker", Owner: "@fitcoder", Balance: 800, Income: 40, Security: 2},
		{Name: "Travel Booking", Owner: "@wanderlust", Balance: 4000, Income: 200, Security: 4},
	}
}

// LookupTarget finds a hack target by name. Returns nil when unknown.
func LookupTarget(name string) *domain.HackTarget {
	targets := HackTargets()
	for i := range targets {
		if targets[i].Name == name {
			return &targets[i]
		}
	}
	return nil
}

// ─── Tasks ──────────────────────────────────────────────────────────────────

// Tasks is the full static task table across both factions and all buckets.
var Tasks = []domain.Task{
	// Limited-time
	{ID: "dev_limited_1", Title: "Develop Launch App", Description: "Create your first app to start generating income", Reward: 50, Bucket: domain.TaskLimited, Faction: domain.FactionDev},
	{ID: "dev_limited_2", Title: "Upgrade Security", Description: "Enhance your security to level 2", Reward: 100, Bucket: domain.TaskLimited, Faction: domain.FactionDev},
	{ID: "byte_limited_1", Title: "Develop First Hack Tool", Description: "Create your first hacking tool", Reward: 50, Bucket: domain.TaskLimited, Faction: domain.FactionByte},
	{ID: "byte_limited_2", Title: "First Successful Hack", Description: "Successfully hack your first target", Reward: 100, Bucket: domain.TaskLimited, Faction: domain.FactionByte},

	// Daily
	{ID: "dev_daily_1", Title: "Create New App", Description: "Develop a new app today", Reward: 25, Bucket: domain.TaskDaily, Faction: domain.FactionDev},
	{ID: "dev_daily_2", Title: "Upgrade Security", Description: "Enhance your security level", Reward: 30, Bucket: domain.TaskDaily, Faction: domain.FactionDev},
	{ID: "byte_daily_1", Title: "Attempt Hack", Description: "Try to hack a system today", Reward: 25, Bucket: domain.TaskDaily, Faction: domain.FactionByte},
	{ID: "byte_daily_2", Title: "Develop Exploit", Description: "Create a new hacking tool", Reward: 30, Bucket: domain.TaskDaily, Faction: domain.FactionByte},
	{ID: "common_daily_1", Title: "Login Daily", Description: "Log in to the game", Reward: 10, Bucket: domain.TaskDaily, Faction: domain.FactionNone},

	// Milestones
	{ID: "dev_regular_1", Title: "Own 5 Apps", Description: "Have 5 different apps in your portfolio", Reward: 200, Bucket: domain.TaskMilestone, Faction: domain.FactionDev},
	{ID: "dev_regular_2", Title: "Security Level 5", Description: "Reach security level 5", Reward: 300, Bucket: domain.TaskMilestone, Faction: domain.FactionDev},
	{ID: "dev_regular_3", Title: "Win 10 Courts", Description: "Win 10 court cases against hackers", Reward: 500, Bucket: domain.TaskMilestone, Faction: domain.FactionDev},
	{ID: "byte_regular_1", Title: "Create 3 Tools", Description: "Have 3 different hacking tools", Reward: 200, Bucket: domain.TaskMilestone, Faction: domain.FactionByte},
	{ID: "byte_regular_2", Title: "Hack 20 Apps", Description: "Successfully hack 20 different apps", Reward: 300, Bucket: domain.TaskMilestone, Faction: domain.FactionByte},
	{ID: "byte_regular_3", Title: "Develop 5 Exploits", Description: "Create 5 different advanced exploits", Reward: 500, Bucket: domain.TaskMilestone, Faction: domain.FactionByte},
	{ID: "common_regular_1", Title: "Complete 3 Ops", Description: "Complete 3 operations", Reward: 50, Bucket: domain.TaskMilestone, Faction: domain.FactionNone},
	{ID: "common_regular_2", Title: "Reach Income", Description: "Reach $100/hr passive income", Reward: 100, Bucket: domain.TaskMilestone, Faction: domain.FactionNone},
	{ID: "common_regular_3", Title: "Complete 50 Ops", Description: "Complete 50 operations", Reward: 1000, Bucket: domain.TaskMilestone, Faction: domain.FactionNone},
}

// TasksFor returns the tasks visible to a faction: its own plus common ones.
func TasksFor(faction domain.Faction) []domain.Task {
	var out []domain.Task
	for _, task := range Tasks {
		if task.Faction == faction || task.Faction == domain.FactionNone {
			out = append(out, task)
		}
	}
	return out
}

// LookupTask finds a task by ID. Returns nil when unknown.
func LookupTask(id string) *domain.Task {
	for i := range Tasks {
		if Tasks[i].ID == id {
			return &Tasks[i]
		}
	}
	return nil
}

// ─── Leaderboard Seed ───────────────────────────────────────────────────────

// LeaderboardEntry is a static leaderboard row. The game ships fixed
// entries; there is no server-side ranking.
type LeaderboardEntry struct {
	Name   string  `json:"name"`
	Points int     `json:"points"`
	Income float64 `json:"income"`
}

// DevLeaders is the developer-side leaderboard seed.
var DevLeaders = []LeaderboardEntry{
	{Name: "TechWhiz", Points: 1254, Income: 3204},
	{Name: "CodeMaster", Points: 987, Income: 2560},
	{Name: "AppGuru", Points: 845, Income: 1980},
	{Name: "DevNinja", Points: 723, Income: 1450},
	{Name: "ByteBuilder", Points: 654, Income: 1104},
	{Name: "StackOverflower", Points: 532, Income: 890},
	{Name: "GitCommitter", Points: 432, Income: 754},
}

// ByteLeaders is the hacker-side leaderboard seed.
var ByteLeaders = []LeaderboardEntry{
	{Name: "H4X0R", Points: 1198, Income: 3102},
	{Name: "Ph4nt0m", Points: 1032, Income: 2780},
	{Name: "CyberShadow", Points: 876, Income: 2104},
	{Name: "DarkByte", Points: 764, Income: 1560},
	{Name: "Cr4ck3r", Points: 632, Income: 1230},
	{Name: "NullPointer", Points: 524, Income: 870},
	{Name: "RootAccess", Points: 412, Income: 654},
}

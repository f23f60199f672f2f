package config

import "time"

// Economy constants for the Pixel Plaza token game. Token amounts are in $PXPT.

// Daily claim
const (
	DailyReward         = 5.0
	DailyStreakBonus    = 0.5 // extra reward per streak day
	DailyStreakCap      = 7
	DailyEnergyRefill   = 50
	DailyClaimCooldown  = 24 * time.Hour
)

// Energy
const MaxEnergy = 100

// Mining
const (
	MiningRewardMin     = 1.0
	MiningRewardMax     = 3.0
	MiningEnergyCost    = 10
	MiningPixelGain     = 20
	MiningXP            = 5
	MaterialFindChance  = 0.15
	MiningGemFindChance = 0.05
)

// Pixel art
const (
	ArtTokenRewardMin = 3.0
	ArtTokenRewardMax = 10.0
	ArtEnergyCost     = 20
	ArtPixelCost      = 50
	ArtPixelCostFloor = 30
	ArtPixelDiscount  = 2 // pixels off per art skill level above 1
	ArtXP             = 10
	ArtGemFindChance  = 0.08
)

// Quality factor bounds for pixel art; the drawn value also picks the label.
const (
	ArtQualityMin = 0.8
	ArtQualityMax = 1.5
)

// Buildings
const (
	BuildingCostMultiplier = 1.5 // exponential growth per owned building of the type
	BuildingXP             = 20
	CollectionCooldown     = 4 * time.Hour
	BankInterestRate       = 0.01 // of current token balance, per collection period
)

// Progression
const (
	XPPerLevel       = 100
	SkillLevelBonus  = 0.05 // reward multiplier per skill level above 1
	SkillUpThreshold = 50   // progress points per current skill level
	SkillProgressMin = 5
	SkillProgressMax = 15
)

// Events
const (
	EventChance      = 0.05 // roll after each successful qualifying action
	MaxActiveEvents  = 2
	EventMinDuration = 24 * time.Hour
	EventMaxDuration = 72 * time.Hour
)

// Referral system
const (
	ReferrerBonus            = 5.0
	RefereeBonus             = 3.0
	ReferrerLevelRequirement = 3
	ReferralCodeLength       = 8
)

// Mini-games
const MiniGameCooldown = 4 * time.Hour

// BuildingSpec describes one entry in the building catalog.
type BuildingSpec struct {
	Type           string
	Name           string
	UnlockLevel    int
	BaseCost       float64
	ProductionRate float64 // units of Produces per full collection period
	Produces       string  // tokens, pixels, materials, gems, bank
}

// BuildingCatalog lists purchasable building types, progressively unlocked by level.
var BuildingCatalog = []BuildingSpec{
	{Type: "generator", Name: "Token Generator", UnlockLevel: 1, BaseCost: 10, ProductionRate: 1.0, Produces: "tokens"},
	{Type: "pixel_studio", Name: "Pixel Studio", UnlockLevel: 2, BaseCost: 25, ProductionRate: 15, Produces: "pixels"},
	{Type: "material_factory", Name: "Material Factory", UnlockLevel: 3, BaseCost: 50, ProductionRate: 5, Produces: "materials"},
	{Type: "gem_mine", Name: "Gem Mine", UnlockLevel: 5, BaseCost: 120, ProductionRate: 1, Produces: "gems"},
	{Type: "bank", Name: "Pixel Bank", UnlockLevel: 7, BaseCost: 250, ProductionRate: 0, Produces: "bank"},
}

// BuildingSpecByType returns the catalog entry for a type, or nil.
func BuildingSpecByType(buildingType string) *BuildingSpec {
	for i := range BuildingCatalog {
		if BuildingCatalog[i].Type == buildingType {
			return &BuildingCatalog[i]
		}
	}
	return nil
}

// TaskSpec is a catalog entry for the task system.
type TaskSpec struct {
	Name             string
	Description      string
	TaskType         string // one_time, daily, weekly
	ObjectiveType    string // login, mining, pixel_art, building, wallet, referral
	ObjectiveValue   int
	TokenReward      float64
	PixelReward      int
	ExperienceReward int
}

// DefaultTasks seeds the tasks table on first start.
var DefaultTasks = []TaskSpec{
	// One-time tasks
	{Name: "First Login", Description: "Log in to the game for the first time", TaskType: "one_time", ObjectiveType: "login", ObjectiveValue: 1, TokenReward: 2, PixelReward: 50, ExperienceReward: 10},
	{Name: "Set Up Wallet", Description: "Set up your wallet address to receive tokens", TaskType: "one_time", ObjectiveType: "wallet", ObjectiveValue: 1, TokenReward: 5, ExperienceReward: 20},
	{Name: "First Mine", Description: "Mine pixels for the first time", TaskType: "one_time", ObjectiveType: "mining", ObjectiveValue: 1, TokenReward: 3, PixelReward: 25, ExperienceReward: 10},
	{Name: "First Artwork", Description: "Create your first pixel artwork", TaskType: "one_time", ObjectiveType: "pixel_art", ObjectiveValue: 1, TokenReward: 5, ExperienceReward: 15},
	{Name: "First Building", Description: "Purchase your first building", TaskType: "one_time", ObjectiveType: "building", ObjectiveValue: 1, TokenReward: 10, ExperienceReward: 25},
	{Name: "First Referral", Description: "Refer your first friend to the game", TaskType: "one_time", ObjectiveType: "referral", ObjectiveValue: 1, TokenReward: 10, PixelReward: 100, ExperienceReward: 50},

	// Daily tasks
	{Name: "Daily Login", Description: "Log in to the game today", TaskType: "daily", ObjectiveType: "login", ObjectiveValue: 1, TokenReward: 1, PixelReward: 10, ExperienceReward: 5},
	{Name: "Daily Mining", Description: "Mine 3 times today", TaskType: "daily", ObjectiveType: "mining", ObjectiveValue: 3, TokenReward: 2, PixelReward: 30, ExperienceReward: 10},
	{Name: "Daily Creation", Description: "Create 2 pixel artworks today", TaskType: "daily", ObjectiveType: "pixel_art", ObjectiveValue: 2, TokenReward: 3, ExperienceReward: 15},

	// Weekly tasks
	{Name: "Building Collector", Description: "Purchase 5 buildings this week", TaskType: "weekly", ObjectiveType: "building", ObjectiveValue: 5, TokenReward: 15, PixelReward: 100, ExperienceReward: 50},
	{Name: "Mining Marathon", Description: "Mine 20 times this week", TaskType: "weekly", ObjectiveType: "mining", ObjectiveValue: 20, TokenReward: 10, PixelReward: 200, ExperienceReward: 40},
	{Name: "Art Gallery", Description: "Create 10 pixel artworks this week", TaskType: "weekly", ObjectiveType: "pixel_art", ObjectiveValue: 10, TokenReward: 12, ExperienceReward: 45},
	{Name: "Community Builder", Description: "Refer 3 friends this week", TaskType: "weekly", ObjectiveType: "referral", ObjectiveValue: 3, TokenReward: 20, PixelReward: 200, ExperienceReward: 100},
}

// MiniGameReward holds per-game base rewards, scaled by score and difficulty.
type MiniGameReward struct {
	Tokens    float64
	Pixels    int
	Materials int
	Gems      int
	XP        int
}

var MiniGameRewards = map[string]MiniGameReward{
	"pixel_match":       {Tokens: 5, Pixels: 20, XP: 10},
	"token_puzzle":      {Tokens: 6, Pixels: 10, Materials: 2, XP: 12},
	"resource_rush":     {Tokens: 5, Pixels: 15, Materials: 5, Gems: 1, XP: 10},
	"gem_hunter":        {Tokens: 4, Gems: 2, XP: 10},
	"pattern_predictor": {Tokens: 8, XP: 15},
}

// Token economy allocations, informational only (no on-chain settlement).
const (
	MaxSupply           = 1000000
	AirdropAllocation   = 100000
	TeamAllocation      = 200000
	ReserveAllocation   = 200000
	CommunityAllocation = 500000
)

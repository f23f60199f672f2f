package game

import (
	"reflect"
	"testing"
	"time"

	"pixel_plaza/internal/config"
	"pixel_plaza/internal/domain"
)

func TestMineRequiresEnergy(t *testing.T) {
	e := testEngine()
	st := testState()
	st.Energy = config.MiningEnergyCost - 1
	before := st.Clone()

	res := e.Mine(st, Env{Now: time.Now().UTC()})

	if res.Success {
		t.Fatal("expected failure on low energy")
	}
	if !reflect.DeepEqual(st, before) {
		t.Errorf("failed action mutated state: %+v -> %+v", before, st)
	}
}

func TestMineBookkeeping(t *testing.T) {
	e := testEngine()
	st := testState()
	before := *st

	res := e.Mine(st, Env{Now: time.Now().UTC()})

	if !res.Success {
		t.Fatalf("expected success, got %q", res.Message)
	}
	if st.Energy != before.Energy-config.MiningEnergyCost {
		t.Errorf("energy = %d, want %d", st.Energy, before.Energy-config.MiningEnergyCost)
	}
	if res.Reward <= 0 {
		t.Errorf("reward = %v, want > 0", res.Reward)
	}
	if st.TokenBalance != before.TokenBalance+res.Reward {
		t.Errorf("balance = %v, want %v", st.TokenBalance, before.TokenBalance+res.Reward)
	}
	if st.Pixels != before.Pixels+res.PixelsFound {
		t.Errorf("pixels = %d, want %d", st.Pixels, before.Pixels+res.PixelsFound)
	}
	if res.TxType != domain.TxMining || res.TxAmount != res.Reward {
		t.Errorf("tx draft = (%s, %v), want (%s, %v)", res.TxType, res.TxAmount, domain.TxMining, res.Reward)
	}
}

func TestMineEventMultiplier(t *testing.T) {
	now := time.Now().UTC()
	boosted := Env{
		Now: now,
		Events: []*domain.GameEvent{{
			MiningMultiplier:    2.0,
			ArtMultiplier:       1.0,
			BuildingMultiplier:  1.0,
			MarketFeeMultiplier: 1.0,
			StartTime:           now.Add(-time.Hour),
			EndTime:             now.Add(time.Hour),
			IsActive:            true,
		}},
	}

	// Same seed with and without the event: the boosted reward must double
	// the plain one.
	plainRes := testEngine().Mine(testState(), Env{Now: now})
	boostedRes := testEngine().Mine(testState(), boosted)

	if !plainRes.Success || !boostedRes.Success {
		t.Fatal("expected both mines to succeed")
	}
	// Both engines share a seed, so the draws match and only the event
	// multiplier differs. Allow rounding slack from the two Round2 calls.
	if diff := boostedRes.Reward - plainRes.Reward*2; diff > 0.02 || diff < -0.02 {
		t.Errorf("boosted reward = %v, want ~2x %v", boostedRes.Reward, plainRes.Reward)
	}
}

func TestCreateArtRequiresPixels(t *testing.T) {
	e := testEngine()
	st := testState()
	st.Pixels = ArtPixelCost(st.ArtSkill) - 1
	before := st.Clone()

	if res := e.CreateArt(st, Env{Now: time.Now().UTC()}); res.Success {
		t.Fatal("expected failure on low pixels")
	}
	if !reflect.DeepEqual(st, before) {
		t.Errorf("failed action mutated state: %+v -> %+v", before, st)
	}
}

func TestCreateArtBookkeeping(t *testing.T) {
	e := testEngine()
	st := testState()
	st.Pixels = 200
	before := *st

	res := e.CreateArt(st, Env{Now: time.Now().UTC()})

	if !res.Success {
		t.Fatalf("expected success, got %q", res.Message)
	}
	if st.Pixels != before.Pixels-res.PixelsUsed {
		t.Errorf("pixels = %d, want %d", st.Pixels, before.Pixels-res.PixelsUsed)
	}
	if st.PixelArtCreated != before.PixelArtCreated+1 {
		t.Errorf("pixel_art_created = %d, want %d", st.PixelArtCreated, before.PixelArtCreated+1)
	}
	if res.Quality == "" {
		t.Error("expected a quality label")
	}
}

func TestArtPixelCostFloor(t *testing.T) {
	if got := ArtPixelCost(1); got != config.ArtPixelCost {
		t.Errorf("cost at skill 1 = %d, want %d", got, config.ArtPixelCost)
	}
	if got := ArtPixelCost(100); got != config.ArtPixelCostFloor {
		t.Errorf("cost at skill 100 = %d, want floor %d", got, config.ArtPixelCostFloor)
	}
}

func TestBuildValidation(t *testing.T) {
	e := testEngine()
	env := Env{Now: time.Now().UTC()}

	tests := []struct {
		name         string
		setup        func(*domain.GameState)
		buildingType string
	}{
		{"unknown type", func(st *domain.GameState) {}, "casino"},
		{"level locked", func(st *domain.GameState) { st.Level = 1 }, "gem_mine"},
		{"insufficient funds", func(st *domain.GameState) { st.TokenBalance = 1 }, "generator"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := testState()
			tt.setup(st)
			res, b := e.Build(st, tt.buildingType, 0, env)
			if res.Success {
				t.Fatal("expected failure")
			}
			if b != nil {
				t.Error("failed build must not return a building")
			}
		})
	}
}

func TestBuildSuccess(t *testing.T) {
	e := testEngine()
	st := testState()
	st.TokenBalance = 1000
	env := Env{Now: time.Now().UTC()}

	res, b := e.Build(st, "generator", 0, env)

	if !res.Success {
		t.Fatalf("expected success, got %q", res.Message)
	}
	if b == nil {
		t.Fatal("expected a building")
	}
	if b.BuildingType != "generator" || b.Level != 1 {
		t.Errorf("building = %+v", b)
	}
	if st.TokenBalance != Round2(1000-res.Cost) {
		t.Errorf("balance = %v, want %v", st.TokenBalance, Round2(1000-res.Cost))
	}
	if st.BuildingsOwned != 1 {
		t.Errorf("buildings_owned = %d, want 1", st.BuildingsOwned)
	}
	if res.TxAmount != -res.Cost {
		t.Errorf("tx amount = %v, want %v", res.TxAmount, -res.Cost)
	}
}

func TestBuildingCostScaling(t *testing.T) {
	spec := config.BuildingSpecByType("generator")

	first := BuildingCost(spec, 0, 1, 1.0)
	second := BuildingCost(spec, 1, 1, 1.0)
	third := BuildingCost(spec, 2, 1, 1.0)

	if second <= first || third <= second {
		t.Errorf("cost must grow with owned count: %v, %v, %v", first, second, third)
	}

	// Skill discounts, crisis fee inflates.
	if skilled := BuildingCost(spec, 0, 10, 1.0); skilled >= first {
		t.Errorf("skill discount missing: %v >= %v", skilled, first)
	}
	if taxed := BuildingCost(spec, 0, 1, 1.4); taxed <= first {
		t.Errorf("fee markup missing: %v <= %v", taxed, first)
	}
	// Discounted fees below 1.0 never reduce the cost.
	if boom := BuildingCost(spec, 0, 1, 0.6); boom != first {
		t.Errorf("fee below 1.0 changed cost: %v != %v", boom, first)
	}
}

func TestCollectRequiresBuildings(t *testing.T) {
	e := testEngine()
	st := testState()

	if res := e.Collect(st, nil, Env{Now: time.Now().UTC()}); res.Success {
		t.Fatal("expected failure with no buildings")
	}
}

func TestCollectFullPeriod(t *testing.T) {
	e := testEngine()
	st := testState()
	st.BuildingSkill = 1
	now := time.Now().UTC()

	b := &domain.Building{
		BuildingType:   "generator",
		Level:          2,
		ProductionRate: 10,
		Produces:       "tokens",
		Efficiency:     1.0,
		LastCollection: now.Add(-2 * config.CollectionCooldown), // accrual caps at one period
	}
	before := st.TokenBalance

	res := e.Collect(st, []*domain.Building{b}, Env{Now: now})

	if !res.Success {
		t.Fatalf("expected success, got %q", res.Message)
	}
	want := Round2(10 * 2 * SkillBonus(1)) // rate * level * skill, full period
	if res.Income != want {
		t.Errorf("income = %v, want %v", res.Income, want)
	}
	if st.TokenBalance != before+res.Income {
		t.Errorf("balance = %v, want %v", st.TokenBalance, before+res.Income)
	}
	if !b.LastCollection.Equal(now) {
		t.Errorf("LastCollection not advanced: %v", b.LastCollection)
	}
}

func TestCollectPartialAccrual(t *testing.T) {
	e := testEngine()
	st := testState()
	now := time.Now().UTC()

	b := &domain.Building{
		BuildingType:   "generator",
		Level:          1,
		ProductionRate: 10,
		Produces:       "tokens",
		Efficiency:     1.0,
		LastCollection: now.Add(-config.CollectionCooldown / 2),
	}

	res := e.Collect(st, []*domain.Building{b}, Env{Now: now})

	want := Round2(10 * SkillBonus(1) * 0.5)
	if res.Income != want {
		t.Errorf("half-period income = %v, want %v", res.Income, want)
	}
}

func TestCollectBankInterest(t *testing.T) {
	e := testEngine()
	st := testState()
	st.TokenBalance = 1000
	now := time.Now().UTC()

	b := &domain.Building{
		BuildingType:   "bank",
		Level:          1,
		Produces:       "bank",
		Efficiency:     1.0,
		LastCollection: now.Add(-config.CollectionCooldown),
	}

	res := e.Collect(st, []*domain.Building{b}, Env{Now: now})

	want := Round2(1000 * config.BankInterestRate * SkillBonus(st.BuildingSkill))
	if res.Income != want {
		t.Errorf("bank interest = %v, want %v", res.Income, want)
	}
}

func TestCollectResourceBuildings(t *testing.T) {
	e := testEngine()
	st := testState()
	now := time.Now().UTC()

	buildings := []*domain.Building{
		{Produces: "pixels", ProductionRate: 15, Level: 1, Efficiency: 1.0, LastCollection: now.Add(-config.CollectionCooldown)},
		{Produces: "materials", ProductionRate: 5, Level: 1, Efficiency: 1.0, LastCollection: now.Add(-config.CollectionCooldown)},
		{Produces: "gems", ProductionRate: 1, Level: 1, Efficiency: 1.0, LastCollection: now.Add(-config.CollectionCooldown)},
	}

	res := e.Collect(st, buildings, Env{Now: now})

	if res.PixelsFound <= 0 || res.Materials <= 0 || res.Gems <= 0 {
		t.Errorf("resource yields = (%d, %d, %d), want all > 0",
			res.PixelsFound, res.Materials, res.Gems)
	}
	if st.Pixels != res.PixelsFound || st.Materials != res.Materials || st.Gems != res.Gems {
		t.Error("state gains do not match reported yields")
	}
}

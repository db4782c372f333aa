package catalog

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"winx/internal/models"
)

var (
	seedLeagues = []string{"Ligue 1", "Premier League", "La Liga", "Serie A", "Bundesliga"}
	seedTeams   = []string{
		"PSG", "OM", "OL", "Monaco", "Real Madrid", "Barcelona", "Bayern",
		"Dortmund", "Juventus", "Inter", "Man City", "Liverpool", "Chelsea", "Arsenal",
	}
	seedCategories = []models.Category{models.CategoryCombo, models.CategoryVIP, models.CategoryUnique}
	seedOutcomes   = []string{"1", "X", "2"}
)

const seedAnalysis = "Analyse basée sur les dernières performances et statistiques des équipes, " +
	"forme des joueurs, et conditions de match."

// Seeder generates the first-run sample catalog: randomly parameterized
// fixtures with the leading records already unlocked so the site is not
// fully gated before anyone owns gems.
type Seeder struct {
	Count        int
	UnlockedHead int
	Rand         *rand.Rand
	Now          func() time.Time
}

func NewSeeder(count, unlockedHead int) *Seeder {
	return &Seeder{Count: count, UnlockedHead: unlockedHead}
}

func (s *Seeder) Generate() []models.Prediction {
	rng := s.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	items := make([]models.Prediction, 0, s.Count)
	for i := 0; i < s.Count; i++ {
		teamA := seedTeams[rng.Intn(len(seedTeams))]
		teamB := seedTeams[rng.Intn(len(seedTeams))]
		for teamB == teamA {
			teamB = seedTeams[rng.Intn(len(seedTeams))]
		}

		category := seedCategories[rng.Intn(len(seedCategories))]
		gemCost := decimal.NewFromInt(1)
		if category == models.CategoryVIP {
			gemCost = decimal.NewFromInt(2)
		}

		kickoff := now().Add(time.Duration(rng.Intn(7*24)) * time.Hour)
		minute := "00"
		if rng.Intn(2) == 1 {
			minute = "30"
		}

		items = append(items, models.Prediction{
			ID:         int64(i + 1),
			TeamA:      teamA,
			TeamB:      teamB,
			League:     seedLeagues[rng.Intn(len(seedLeagues))],
			Date:       kickoff.Format("2006-01-02"),
			Time:       fmt.Sprintf("%02d:%s", 10+rng.Intn(12), minute),
			Confidence: 60 + rng.Intn(40),
			Odds:       fmt.Sprintf("%.2f", 1.5+rng.Float64()*2),
			Category:   category,
			BetType:    models.BetVictory,
			Outcome:    seedOutcomes[rng.Intn(len(seedOutcomes))],
			Analysis:   seedAnalysis,
			GemCost:    gemCost,
			Unlocked:   i < s.UnlockedHead,
		})
	}
	return items
}

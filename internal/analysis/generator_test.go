package analysis

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"winx/internal/models"
)

func TestGenerateSubstitutesTeams(t *testing.T) {
	gen := &Generator{Rand: rand.New(rand.NewSource(1))}

	for i := 0; i < 20; i++ {
		text, err := gen.Generate(context.Background(), "PSG", "OM", "Ligue 1", models.BetVictory)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if text == "" {
			t.Fatalf("empty analysis text")
		}
		if strings.Contains(text, "{teamA}") || strings.Contains(text, "{teamB}") {
			t.Fatalf("unsubstituted placeholder in %q", text)
		}
	}
}

func TestGenerateRequiresBothTeams(t *testing.T) {
	gen := &Generator{}
	ctx := context.Background()

	cases := []struct{ teamA, teamB string }{
		{"", "OM"},
		{"PSG", ""},
		{"  ", "OM"},
		{"", ""},
	}
	for _, tc := range cases {
		if _, err := gen.Generate(ctx, tc.teamA, tc.teamB, "", models.BetVictory); !errors.Is(err, ErrTeamsRequired) {
			t.Fatalf("Generate(%q, %q): err = %v, want ErrTeamsRequired", tc.teamA, tc.teamB, err)
		}
	}
}

func TestGenerateHonorsCancellation(t *testing.T) {
	gen := &Generator{Delay: time.Minute}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := gen.Generate(ctx, "PSG", "OM", "", models.BetVictory); !errors.Is(err, context.Canceled) {
		t.Fatalf("Generate with canceled ctx: err = %v, want context.Canceled", err)
	}
}

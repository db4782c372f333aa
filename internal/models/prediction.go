package models

import (
	"github.com/shopspring/decimal"
)

// Category is the pricing/visibility tier of a prediction.
type Category string

const (
	CategoryCombo  Category = "combo"
	CategoryVIP    Category = "vip"
	CategoryUnique Category = "unique"

	// CategoryAll is the filter sentinel that matches every record.
	CategoryAll Category = "all"
)

// BetType is the market a prediction is placed on.
type BetType string

const (
	BetVictory BetType = "victory"
	BetBTTS    BetType = "btts"
	BetOver    BetType = "over"
	BetUnder   BetType = "under"
	BetDraw    BetType = "draw"
)

// Prediction is one forecast for a sporting fixture. The JSON tags are the
// persisted blob format and must stay stable across releases.
type Prediction struct {
	ID         int64           `json:"id"`
	TeamA      string          `json:"teamA"`
	TeamB      string          `json:"teamB"`
	League     string          `json:"league"`
	Date       string          `json:"date"` // YYYY-MM-DD
	Time       string          `json:"time"` // HH:MM
	Confidence int             `json:"confidence"`
	Odds       string          `json:"odds"`
	Category   Category        `json:"type"`
	BetType    BetType         `json:"betType"`
	Outcome    string          `json:"prediction"`
	Analysis   string          `json:"analysis"`
	GemCost    decimal.Decimal `json:"gemCost"`
	Unlocked   bool            `json:"unlocked"`
	TeamALogo  string          `json:"teamALogo,omitempty"` // data URL
	TeamBLogo  string          `json:"teamBLogo,omitempty"` // data URL
	Result     string          `json:"result,omitempty"`    // "win" | "loss", empty until settled
}

// PredictionPatch is a partial update: nil fields are left untouched.
// Unlocked is deliberately absent — it only moves through Unlock.
type PredictionPatch struct {
	TeamA      *string          `json:"teamA,omitempty"`
	TeamB      *string          `json:"teamB,omitempty"`
	League     *string          `json:"league,omitempty"`
	Date       *string          `json:"date,omitempty"`
	Time       *string          `json:"time,omitempty"`
	Confidence *int             `json:"confidence,omitempty"`
	Odds       *string          `json:"odds,omitempty"`
	Category   *Category        `json:"type,omitempty"`
	BetType    *BetType         `json:"betType,omitempty"`
	Outcome    *string          `json:"prediction,omitempty"`
	Analysis   *string          `json:"analysis,omitempty"`
	GemCost    *decimal.Decimal `json:"gemCost,omitempty"`
	TeamALogo  *string          `json:"teamALogo,omitempty"`
	TeamBLogo  *string          `json:"teamBLogo,omitempty"`
	Result     *string          `json:"result,omitempty"`
}

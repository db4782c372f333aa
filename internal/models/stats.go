package models

import "time"

// StatsSnapshot is an aggregate view over the prediction catalog, persisted
// periodically so the stats page has something to show without rescanning.
type StatsSnapshot struct {
	Total         int              `json:"total"`
	ByCategory    map[Category]int `json:"byCategory"`
	Unlocked      int              `json:"unlocked"`
	AvgConfidence float64          `json:"avgConfidence"`
	WinRatePct    int              `json:"winRatePct"`
	Settled       int              `json:"settled"`
	TakenAt       time.Time        `json:"takenAt"`
}

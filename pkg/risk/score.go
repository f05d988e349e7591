// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package risk

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/companion-screening/pkg/screening"
	"github.com/AccelByte/companion-screening/pkg/sentiment"
)

// Level is the coarse overall risk classification shown on the dashboard.
type Level string

const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

// Component weights. They must sum to 1 so the blended score stays on
// the same 0-100 scale as its inputs.
const (
	gameWeight      = 0.4
	sentimentWeight = 0.3
	screeningWeight = 0.3
)

// Neutral defaults used when a component has no observations yet.
const (
	defaultGameComponent  = 75.0
	defaultSentimentRatio = 0.7
)

// Screening component penalties. Each domain subtracts from a perfect
// base; Low and Unknown carry no penalty.
const (
	screeningBase       = 100.0
	memoryMediumPenalty = 25.0
	memoryHighPenalty   = 50.0
	socialMediumPenalty = 15.0
	socialHighPenalty   = 30.0
)

// Score thresholds for the level classification. Higher scores mean
// lower risk.
const (
	lowRiskFloor    = 70
	mediumRiskFloor = 40
)

// Inputs carries everything the aggregation reads. LatestGameScore is
// nil when no game has been played yet.
type Inputs struct {
	LatestGameScore *int
	Sentiment       sentiment.Tally
	Screening       screening.Result
}

// Snapshot is one deterministic evaluation of the overall risk.
type Snapshot struct {
	Score int   `json:"score"`
	Level Level `json:"level"`

	GameComponent      float64 `json:"gameComponent"`
	SentimentComponent float64 `json:"sentimentComponent"`
	ScreeningComponent float64 `json:"screeningComponent"`
}

// Compute blends the game, sentiment and screening components into a
// single 0-100 score and classifies it. It is pure and total: every
// input combination produces a snapshot, with neutral defaults standing
// in for components that have no observations yet.
func Compute(in Inputs) Snapshot {
	game := defaultGameComponent
	if in.LatestGameScore != nil {
		game = float64(*in.LatestGameScore)
	}

	sentimentRatio := defaultSentimentRatio
	if total := in.Sentiment.Total(); total > 0 {
		sentimentRatio = float64(in.Sentiment.Positive) / float64(total)
	}
	sentimentComponent := sentimentRatio * 100

	screeningComponent := screeningBase - memoryPenalty(in.Screening.Memory) - socialPenalty(in.Screening.Social)

	blended := gameWeight*game + sentimentWeight*sentimentComponent + screeningWeight*screeningComponent
	score := int(math.Round(blended))

	// Legal inputs cannot leave the scale, so hitting this means a
	// component produced an out-of-range value upstream.
	if score < 0 || score > 100 {
		logrus.Warnf("risk score %d outside 0-100, clamping (game=%.1f sentiment=%.1f screening=%.1f)",
			score, game, sentimentComponent, screeningComponent)
		if score < 0 {
			score = 0
		} else {
			score = 100
		}
	}

	snapshot := Snapshot{
		Score:              score,
		Level:              LevelFor(score),
		GameComponent:      game,
		SentimentComponent: sentimentComponent,
		ScreeningComponent: screeningComponent,
	}

	logrus.Debugf("computed risk snapshot: score=%d level=%s game=%.1f sentiment=%.1f screening=%.1f",
		snapshot.Score, snapshot.Level, game, sentimentComponent, screeningComponent)

	return snapshot
}

// LevelFor classifies a 0-100 score:
// - 70 and above is Low risk
// - 40 to 69 is Medium risk
// - below 40 is High risk
func LevelFor(score int) Level {
	switch {
	case score >= lowRiskFloor:
		return LevelLow
	case score >= mediumRiskFloor:
		return LevelMedium
	default:
		return LevelHigh
	}
}

func memoryPenalty(factor screening.RiskFactor) float64 {
	switch factor {
	case screening.FactorMedium:
		return memoryMediumPenalty
	case screening.FactorHigh:
		return memoryHighPenalty
	default:
		// Low and Unknown carry no penalty.
		return 0
	}
}

func socialPenalty(factor screening.RiskFactor) float64 {
	switch factor {
	case screening.FactorMedium:
		return socialMediumPenalty
	case screening.FactorHigh:
		return socialHighPenalty
	default:
		// Low and Unknown carry no penalty.
		return 0
	}
}

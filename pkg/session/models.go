// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package session

import (
	"fmt"
	"time"

	"github.com/AccelByte/companion-screening/pkg/oracle"
	"github.com/AccelByte/companion-screening/pkg/risk"
	"github.com/AccelByte/companion-screening/pkg/screening"
	"github.com/AccelByte/companion-screening/pkg/sentiment"
)

// State is everything the companion knows about one screening session.
// This is the ONLY state the system owns; a session is fully described
// by this record and nothing is kept process-wide.
type State struct {
	ID         string            `json:"id"`
	Stage      screening.Stage   `json:"stage"`
	Screening  screening.Result  `json:"screening"`
	Sentiment  sentiment.Tally   `json:"sentiment"`
	Games      []GameScore       `json:"games"`
	Transcript []TranscriptEntry `json:"transcript"`
	Alerts     risk.AlertState   `json:"alerts"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// TranscriptEntry is one message of the conversation, kept so the
// open-ended companion replies can see what was said before.
type TranscriptEntry struct {
	Role oracle.Role `json:"role"`
	Text string      `json:"text"`
	At   time.Time   `json:"at"`
}

// GameScore records one completed memory card game. History entries are
// appended on completion and never mutated or removed.
type GameScore struct {
	Score       int       `json:"score"`
	Attempts    int       `json:"attempts"`
	TimeSeconds int       `json:"timeSeconds"`
	PlayedAt    time.Time `json:"playedAt"`
}

// Validate checks the submitted game record against its legal ranges.
func (g *GameScore) Validate() error {
	if g.Score < 0 || g.Score > 100 {
		return fmt.Errorf("game score %d out of range 0-100", g.Score)
	}
	if g.Attempts < 0 {
		return fmt.Errorf("game attempts %d must not be negative", g.Attempts)
	}
	if g.TimeSeconds < 0 {
		return fmt.Errorf("game time %d must not be negative", g.TimeSeconds)
	}
	return nil
}

// NewState creates a fresh session at the greeting stage with both
// screening domains unassessed.
func NewState(id string, now time.Time) *State {
	return &State{
		ID:         id,
		Stage:      screening.StageGreeting,
		Screening:  screening.NewResult(),
		Sentiment:  sentiment.Tally{},
		Games:      []GameScore{},
		Transcript: []TranscriptEntry{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// AppendMessage adds one message to the transcript.
func (s *State) AppendMessage(role oracle.Role, text string, at time.Time) {
	s.Transcript = append(s.Transcript, TranscriptEntry{
		Role: role,
		Text: text,
		At:   at,
	})
}

// AppendGame adds one completed game to the history.
func (s *State) AppendGame(game GameScore) {
	s.Games = append(s.Games, game)
}

// LatestGameScore returns the score of the most recent game, or nil if
// no game has been played this session.
func (s *State) LatestGameScore() *int {
	if len(s.Games) == 0 {
		return nil
	}
	return &s.Games[len(s.Games)-1].Score
}

// History projects the transcript into the turn form the oracle prompts
// consume.
func (s *State) History() []oracle.Turn {
	turns := make([]oracle.Turn, 0, len(s.Transcript))
	for _, entry := range s.Transcript {
		turns = append(turns, oracle.Turn{
			Role: entry.Role,
			Text: entry.Text,
		})
	}
	return turns
}

// RiskInputs assembles the aggregation inputs from the current state.
func (s *State) RiskInputs() risk.Inputs {
	return risk.Inputs{
		LatestGameScore: s.LatestGameScore(),
		Sentiment:       s.Sentiment,
		Screening:       s.Screening,
	}
}

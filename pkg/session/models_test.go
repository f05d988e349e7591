// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package session

import (
	"testing"
	"time"

	"github.com/AccelByte/companion-screening/pkg/oracle"
	"github.com/AccelByte/companion-screening/pkg/screening"
)

func TestNewState(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	state := NewState("session-123", now)

	if state.ID != "session-123" {
		t.Errorf("ID = %q, expected %q", state.ID, "session-123")
	}
	if state.Stage != screening.StageGreeting {
		t.Errorf("Stage = %q, expected %q", state.Stage, screening.StageGreeting)
	}
	if state.Screening.Memory != screening.FactorUnknown {
		t.Errorf("Screening.Memory = %q, expected %q", state.Screening.Memory, screening.FactorUnknown)
	}
	if state.Screening.Social != screening.FactorUnknown {
		t.Errorf("Screening.Social = %q, expected %q", state.Screening.Social, screening.FactorUnknown)
	}
	if state.Sentiment.Total() != 0 {
		t.Errorf("Sentiment.Total() = %d, expected 0", state.Sentiment.Total())
	}
	if len(state.Games) != 0 {
		t.Errorf("Games has %d entries, expected 0", len(state.Games))
	}
	if len(state.Transcript) != 0 {
		t.Errorf("Transcript has %d entries, expected 0", len(state.Transcript))
	}
	if !state.CreatedAt.Equal(now) || !state.UpdatedAt.Equal(now) {
		t.Errorf("timestamps = %v / %v, expected %v", state.CreatedAt, state.UpdatedAt, now)
	}
}

func TestGameScoreValidate(t *testing.T) {
	tests := []struct {
		name    string
		game    GameScore
		wantErr bool
	}{
		{
			name: "valid game",
			game: GameScore{Score: 80, Attempts: 12, TimeSeconds: 90},
		},
		{
			name: "zero score is valid",
			game: GameScore{Score: 0},
		},
		{
			name: "perfect score is valid",
			game: GameScore{Score: 100},
		},
		{
			name:    "score above range",
			game:    GameScore{Score: 101},
			wantErr: true,
		},
		{
			name:    "negative score",
			game:    GameScore{Score: -1},
			wantErr: true,
		},
		{
			name:    "negative attempts",
			game:    GameScore{Score: 50, Attempts: -1},
			wantErr: true,
		},
		{
			name:    "negative time",
			game:    GameScore{Score: 50, TimeSeconds: -1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.game.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestStateLatestGameScore(t *testing.T) {
	state := NewState("session-games", time.Now())

	if state.LatestGameScore() != nil {
		t.Errorf("LatestGameScore() with no games = %v, expected nil", state.LatestGameScore())
	}

	state.AppendGame(GameScore{Score: 40})
	state.AppendGame(GameScore{Score: 85})

	latest := state.LatestGameScore()
	if latest == nil {
		t.Fatal("LatestGameScore() = nil after games were recorded")
	}
	if *latest != 85 {
		t.Errorf("LatestGameScore() = %d, expected 85", *latest)
	}
	if len(state.Games) != 2 {
		t.Errorf("Games has %d entries, expected 2", len(state.Games))
	}
}

func TestStateHistory(t *testing.T) {
	now := time.Now()
	state := NewState("session-history", now)
	state.AppendMessage(oracle.RoleAssistant, "Hello!", now)
	state.AppendMessage(oracle.RoleUser, "Hi there", now.Add(time.Minute))

	history := state.History()

	if len(history) != 2 {
		t.Fatalf("History() has %d turns, expected 2", len(history))
	}
	if history[0].Role != oracle.RoleAssistant || history[0].Text != "Hello!" {
		t.Errorf("History()[0] = %+v, expected the assistant greeting", history[0])
	}
	if history[1].Role != oracle.RoleUser || history[1].Text != "Hi there" {
		t.Errorf("History()[1] = %+v, expected the user message", history[1])
	}
}

func TestStateRiskInputs(t *testing.T) {
	state := NewState("session-risk", time.Now())
	state.Sentiment.Record("Positive")
	state.AppendGame(GameScore{Score: 60})
	if err := state.Screening.RecordMemory(screening.FactorMedium); err != nil {
		t.Fatalf("RecordMemory() error = %v", err)
	}

	inputs := state.RiskInputs()

	if inputs.LatestGameScore == nil || *inputs.LatestGameScore != 60 {
		t.Errorf("LatestGameScore = %v, expected 60", inputs.LatestGameScore)
	}
	if inputs.Sentiment.Positive != 1 {
		t.Errorf("Sentiment.Positive = %d, expected 1", inputs.Sentiment.Positive)
	}
	if inputs.Screening.Memory != screening.FactorMedium {
		t.Errorf("Screening.Memory = %q, expected %q", inputs.Screening.Memory, screening.FactorMedium)
	}
}

package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/AccelByte/companion-screening/pkg/metrics"
	"github.com/AccelByte/companion-screening/pkg/oracle"
	"github.com/AccelByte/companion-screening/pkg/risk"
	"github.com/AccelByte/companion-screening/pkg/screening"
	"github.com/AccelByte/companion-screening/pkg/sentiment"
	"github.com/AccelByte/companion-screening/pkg/session"
)

var (
	// ErrTurnInFlight is returned when a session already has a turn being
	// processed. Input is rejected, not queued, while model calls from
	// the previous turn are outstanding.
	ErrTurnInFlight = errors.New("a turn is already in flight for this session")

	// ErrEmptyMessage is returned when a turn carries no text.
	ErrEmptyMessage = errors.New("message must not be empty")

	// ErrInvalidGameScore is returned when a game submission fails
	// validation.
	ErrInvalidGameScore = errors.New("invalid game score")
)

// Manager orchestrates the complete screening conversation:
// Turn → Sentiment → Stage advance → Risk aggregation → Alerts
//
// It enforces the one-turn-at-a-time discipline per session: all state
// belongs to a single session record, and concurrent input for the same
// session is rejected while a turn's model calls are outstanding.
type Manager struct {
	store   session.Store
	oracle  oracle.Oracle
	machine *screening.Machine
	logger  *slog.Logger
	clock   func() time.Time

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewManager creates a conversation manager with all required components.
func NewManager(store session.Store, o oracle.Oracle, machine *screening.Machine, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}

	return &Manager{
		store:    store,
		oracle:   o,
		machine:  machine,
		logger:   logger,
		clock:    time.Now,
		inFlight: make(map[string]bool),
	}
}

// TurnResult is what one processed conversation turn returns to the
// caller.
type TurnResult struct {
	Reply string          `json:"reply"`
	Stage screening.Stage `json:"stage"`
	Risk  risk.Snapshot   `json:"risk"`
	Alert *risk.Alert     `json:"alert,omitempty"`
}

// GameOutcome reports the state after a game score was recorded.
type GameOutcome struct {
	Risk        risk.Snapshot `json:"risk"`
	Alert       *risk.Alert   `json:"alert,omitempty"`
	GamesPlayed int           `json:"gamesPlayed"`
}

// DashboardView is the read-only projection served to the caregiver
// dashboard.
type DashboardView struct {
	SessionID string              `json:"sessionId"`
	Stage     screening.Stage     `json:"stage"`
	Risk      risk.Snapshot       `json:"risk"`
	Screening screening.Result    `json:"screening"`
	Sentiment sentiment.Tally     `json:"sentiment"`
	Games     []session.GameScore `json:"games"`
	Alert     *risk.Alert         `json:"alert,omitempty"`
}

// StartSession creates a new session and returns it along with the
// scripted greeting that opens the conversation.
func (m *Manager) StartSession(ctx context.Context) (*session.State, string, error) {
	now := m.clock()

	state, err := m.store.CreateSession(ctx, now)
	if err != nil {
		m.logger.Error("failed to create session",
			slog.String("error", err.Error()))
		return nil, "", fmt.Errorf("create session failed: %w", err)
	}

	greeting := m.machine.Greeting()
	state.AppendMessage(oracle.RoleAssistant, greeting, now)

	if err := m.store.UpdateSession(ctx, state); err != nil {
		return nil, "", fmt.Errorf("persist session failed: %w", err)
	}

	m.logger.Info("started session",
		slog.String("session_id", state.ID),
		slog.String("stage", string(state.Stage)))

	return state, greeting, nil
}

// ProcessTurn runs one user message through the complete turn pipeline.
// Exactly one assistant reply comes back. The sentiment classification
// is a separate call from the stage advance and never fails the turn;
// it only accumulates confirmed classifications.
func (m *Manager) ProcessTurn(ctx context.Context, sessionID string, message string) (*TurnResult, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	if !m.beginTurn(sessionID) {
		m.logger.Warn("turn rejected, previous turn still in flight",
			slog.String("session_id", sessionID))
		return nil, ErrTurnInFlight
	}
	defer m.endTurn(sessionID)

	state, err := m.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	now := m.clock()
	stageBefore := state.Stage

	// Step 1: Classify sentiment. Independent of the stage advance and
	// writes only to the tally, so a failure here never stalls the turn.
	m.recordSentiment(ctx, state, message)

	// Step 2: Advance the screening machine by one turn.
	state.AppendMessage(oracle.RoleUser, message, now)
	outcome := m.machine.Advance(ctx, state.Stage, &state.Screening, state.History(), message)
	state.Stage = outcome.Stage
	state.AppendMessage(oracle.RoleAssistant, outcome.Reply, now)

	// Step 3: Recompute risk from full current state and feed the alert
	// tracker.
	snapshot, alert := m.refreshRisk(state, now)

	state.UpdatedAt = now
	if err := m.store.UpdateSession(ctx, state); err != nil {
		return nil, fmt.Errorf("persist session failed: %w", err)
	}

	metrics.TurnsProcessedTotal.WithLabelValues(string(stageBefore)).Inc()

	m.logger.Info("processed turn",
		slog.String("session_id", state.ID),
		slog.String("stage_before", string(stageBefore)),
		slog.String("stage_after", string(state.Stage)),
		slog.Int("risk_score", snapshot.Score),
		slog.String("risk_level", string(snapshot.Level)))

	return &TurnResult{
		Reply: outcome.Reply,
		Stage: state.Stage,
		Risk:  snapshot,
		Alert: alert,
	}, nil
}

// RecordGameScore appends a completed game to the session history and
// recomputes risk. Game submissions share the per-session turn gate
// because they write the same state a turn does.
func (m *Manager) RecordGameScore(ctx context.Context, sessionID string, game session.GameScore) (*GameOutcome, error) {
	if err := game.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGameScore, err)
	}

	if !m.beginTurn(sessionID) {
		m.logger.Warn("game score rejected, turn in flight",
			slog.String("session_id", sessionID))
		return nil, ErrTurnInFlight
	}
	defer m.endTurn(sessionID)

	state, err := m.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	now := m.clock()
	if game.PlayedAt.IsZero() {
		game.PlayedAt = now
	}

	state.AppendGame(game)
	snapshot, alert := m.refreshRisk(state, now)

	state.UpdatedAt = now
	if err := m.store.UpdateSession(ctx, state); err != nil {
		return nil, fmt.Errorf("persist session failed: %w", err)
	}

	metrics.GamesRecordedTotal.Inc()

	m.logger.Info("recorded game score",
		slog.String("session_id", state.ID),
		slog.Int("score", game.Score),
		slog.Int("games_played", len(state.Games)),
		slog.Int("risk_score", snapshot.Score))

	return &GameOutcome{
		Risk:        snapshot,
		Alert:       alert,
		GamesPlayed: len(state.Games),
	}, nil
}

// Dashboard assembles the read-only caregiver projection. The risk
// snapshot is always recomputed from full current state, never stored.
func (m *Manager) Dashboard(ctx context.Context, sessionID string) (*DashboardView, error) {
	state, err := m.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	snapshot := risk.Compute(state.RiskInputs())
	alert := risk.PendingAlert(&state.Alerts, m.clock())

	return &DashboardView{
		SessionID: state.ID,
		Stage:     state.Stage,
		Risk:      snapshot,
		Screening: state.Screening,
		Sentiment: state.Sentiment,
		Games:     state.Games,
		Alert:     alert,
	}, nil
}

// EndSession removes a session and all its state.
func (m *Manager) EndSession(ctx context.Context, sessionID string) error {
	if err := m.store.DeleteSession(ctx, sessionID); err != nil {
		return err
	}

	m.logger.Info("ended session", slog.String("session_id", sessionID))
	return nil
}

// recordSentiment classifies one user message and folds a confirmed
// classification into the tally. Unknown classifications and transport
// failures leave the tally unchanged.
func (m *Manager) recordSentiment(ctx context.Context, state *session.State, message string) {
	raw, err := m.oracle.Invoke(ctx, oracle.SentimentPrompt(message))
	if err != nil {
		m.logger.Error("sentiment classification failed",
			slog.String("session_id", state.ID),
			slog.String("error", err.Error()))
		metrics.OracleFailuresTotal.WithLabelValues("sentiment").Inc()
		return
	}

	label := oracle.Interpret(raw, sentiment.Vocabulary())
	if label == oracle.Unknown {
		m.logger.Debug("sentiment reply outside vocabulary",
			slog.String("session_id", state.ID),
			slog.String("reply", raw))
		return
	}

	state.Sentiment.Record(sentiment.Sentiment(label))
}

// refreshRisk recomputes the snapshot from full session state, records
// any level change, and returns the snapshot plus the alert currently
// visible, if any.
func (m *Manager) refreshRisk(state *session.State, now time.Time) (risk.Snapshot, *risk.Alert) {
	snapshot := risk.Compute(state.RiskInputs())

	if raised := risk.Observe(&state.Alerts, snapshot.Level, now); raised != nil {
		metrics.RiskAlertsTotal.WithLabelValues(string(raised.Level)).Inc()
		m.logger.Warn("risk level changed",
			slog.String("session_id", state.ID),
			slog.String("level", string(raised.Level)),
			slog.String("message", raised.Message))
	}

	return snapshot, risk.PendingAlert(&state.Alerts, now)
}

// beginTurn marks a session busy. Returns false when a turn is already
// in flight.
func (m *Manager) beginTurn(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.inFlight[sessionID] {
		return false
	}
	m.inFlight[sessionID] = true
	return true
}

// endTurn releases the session's turn gate.
func (m *Manager) endTurn(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.inFlight, sessionID)
}

// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package screening

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/companion-screening/pkg/metrics"
	"github.com/AccelByte/companion-screening/pkg/oracle"
)

// Machine drives a session through the scripted screening flow. It owns
// the per-turn stage transition and the single model call a turn is
// allowed to make: an assessment during the probe stages, or an
// open-ended reply once the script is exhausted. Greeting turns make no
// model call at all.
type Machine struct {
	script *Script
	oracle oracle.Oracle
}

// NewMachine creates a screening machine bound to a script and an oracle.
func NewMachine(script *Script, o oracle.Oracle) *Machine {
	return &Machine{
		script: script,
		oracle: o,
	}
}

// TurnOutcome is the result of advancing the machine by one user turn.
type TurnOutcome struct {
	Reply string
	Stage Stage
}

// Greeting returns the scripted message that opens every session.
func (m *Machine) Greeting() string {
	return m.script.Greeting
}

// Advance processes one user turn. Exactly one reply comes back and the
// stage always moves forward, even when the model call behind the turn
// failed. A failed assessment leaves the domain at Unknown and swaps the
// scripted prompt for the fallback message so the user never sees a hard
// error.
func (m *Machine) Advance(ctx context.Context, stage Stage, result *Result, history []oracle.Turn, message string) TurnOutcome {
	logrus.Debugf("advancing screening stage %s", stage)

	switch stage {
	case StageGreeting:
		// Purely scripted turn, no model call.
		return TurnOutcome{Reply: m.script.MemoryPrompt, Stage: stage.Next()}

	case StageMemoryProbe:
		factor, ok := m.assess(ctx, oracle.MemoryAssessmentPrompt(m.script.MemoryPrompt, message), "memory_probe")
		if err := result.RecordMemory(factor); err != nil {
			logrus.Warnf("memory factor not recorded: %v", err)
		}
		if !ok {
			return TurnOutcome{Reply: m.script.FallbackMessage, Stage: stage.Next()}
		}
		return TurnOutcome{Reply: m.script.SocialPrompt, Stage: stage.Next()}

	case StageSocialProbe:
		factor, ok := m.assess(ctx, oracle.SocialAssessmentPrompt(m.script.SocialPrompt, message), "social_probe")
		if err := result.RecordSocial(factor); err != nil {
			logrus.Warnf("social factor not recorded: %v", err)
		}
		if !ok {
			return TurnOutcome{Reply: m.script.FallbackMessage, Stage: stage.Next()}
		}
		return TurnOutcome{Reply: m.script.RecommendationPrompt, Stage: stage.Next()}

	default:
		// Recommendation and free chat both answer with an open-ended
		// companion reply over the conversation so far.
		return TurnOutcome{Reply: m.generate(ctx, history), Stage: stage.Next()}
	}
}

// assess runs one probe assessment. The boolean reports whether the
// model call itself succeeded; an off-vocabulary reply still counts as a
// completed call and maps to Unknown.
func (m *Machine) assess(ctx context.Context, prompt string, kind string) (RiskFactor, bool) {
	raw, err := m.oracle.Invoke(ctx, prompt)
	if err != nil {
		logrus.Errorf("%s assessment failed: %v", kind, err)
		metrics.OracleFailuresTotal.WithLabelValues(kind).Inc()
		return FactorUnknown, false
	}

	label := oracle.Interpret(raw, FactorVocabulary())
	if label == oracle.Unknown {
		logrus.Warnf("%s assessment reply %q is outside the expected vocabulary", kind, raw)
		return FactorUnknown, true
	}

	return RiskFactor(label), true
}

// generate produces the open-ended companion reply for the turn.
func (m *Machine) generate(ctx context.Context, history []oracle.Turn) string {
	reply, err := m.oracle.Invoke(ctx, oracle.CompanionPrompt(history))
	if err != nil {
		logrus.Errorf("companion reply generation failed: %v", err)
		metrics.OracleFailuresTotal.WithLabelValues("generation").Inc()
		return m.script.FallbackMessage
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		logrus.Warn("companion reply generation returned empty text")
		metrics.OracleFailuresTotal.WithLabelValues("generation").Inc()
		return m.script.FallbackMessage
	}

	return reply
}

// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package risk

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// AlertTTL is how long a raised alert stays visible before it expires.
const AlertTTL = 4 * time.Second

// Alert is a transient notification that the overall risk level changed.
type Alert struct {
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	RaisedAt  time.Time `json:"raisedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AlertState tracks the last level a session was known to be at and the
// alert currently pending display, if any.
type AlertState struct {
	LastLevel Level  `json:"lastLevel,omitempty"`
	Pending   *Alert `json:"pending,omitempty"`
}

// Observe feeds one freshly computed level into the alert state.
// Returns the alert raised by this observation, or nil.
// The first observation only seeds the baseline and never alerts. A
// level change replaces any pending alert rather than stacking a second
// one; the latest change wins.
func Observe(state *AlertState, level Level, now time.Time) *Alert {
	// First observation seeds the baseline
	if state.LastLevel == "" {
		state.LastLevel = level
		logrus.Debugf("risk level baseline set to %s", level)
		return nil
	}

	// No change, nothing to raise
	if state.LastLevel == level {
		return nil
	}

	alert := &Alert{
		Level:     level,
		Message:   fmt.Sprintf("Overall risk level changed from %s to %s", state.LastLevel, level),
		RaisedAt:  now,
		ExpiresAt: now.Add(AlertTTL),
	}

	logrus.Infof("risk level changed: %s -> %s", state.LastLevel, level)

	state.LastLevel = level
	state.Pending = alert

	return alert
}

// PendingAlert returns the alert awaiting display, clearing it once its
// TTL has passed.
func PendingAlert(state *AlertState, now time.Time) *Alert {
	if state.Pending == nil {
		return nil
	}

	if now.After(state.Pending.ExpiresAt) {
		logrus.Debugf("pending risk alert expired at %v", state.Pending.ExpiresAt)
		state.Pending = nil
		return nil
	}

	return state.Pending
}

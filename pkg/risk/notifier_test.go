// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package risk

import (
	"strings"
	"testing"
	"time"
)

func TestObserve_FirstObservationSeedsBaseline(t *testing.T) {
	state := &AlertState{}
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	alert := Observe(state, LevelLow, now)

	if alert != nil {
		t.Errorf("first observation raised an alert: %+v", alert)
	}
	if state.LastLevel != LevelLow {
		t.Errorf("LastLevel = %q, expected %q", state.LastLevel, LevelLow)
	}
	if state.Pending != nil {
		t.Errorf("Pending = %+v, expected nil", state.Pending)
	}
}

func TestObserve_NoChangeRaisesNothing(t *testing.T) {
	state := &AlertState{LastLevel: LevelMedium}
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	if alert := Observe(state, LevelMedium, now); alert != nil {
		t.Errorf("unchanged level raised an alert: %+v", alert)
	}
}

func TestObserve_LevelChangeRaisesAlert(t *testing.T) {
	state := &AlertState{LastLevel: LevelLow}
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	alert := Observe(state, LevelMedium, now)

	if alert == nil {
		t.Fatal("level change did not raise an alert")
	}
	if alert.Level != LevelMedium {
		t.Errorf("alert Level = %q, expected %q", alert.Level, LevelMedium)
	}
	if !strings.Contains(alert.Message, "Low") || !strings.Contains(alert.Message, "Medium") {
		t.Errorf("alert Message does not name both levels: %q", alert.Message)
	}
	if alert.RaisedAt != now {
		t.Errorf("alert RaisedAt = %v, expected %v", alert.RaisedAt, now)
	}
	if alert.ExpiresAt != now.Add(AlertTTL) {
		t.Errorf("alert ExpiresAt = %v, expected %v", alert.ExpiresAt, now.Add(AlertTTL))
	}
	if state.LastLevel != LevelMedium {
		t.Errorf("LastLevel = %q, expected %q", state.LastLevel, LevelMedium)
	}
	if state.Pending != alert {
		t.Error("raised alert was not stored as pending")
	}
}

func TestObserve_RapidChangeReplacesPendingAlert(t *testing.T) {
	state := &AlertState{}
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	Observe(state, LevelLow, base)
	first := Observe(state, LevelMedium, base.Add(1*time.Second))
	second := Observe(state, LevelLow, base.Add(2*time.Second))

	if first == nil || second == nil {
		t.Fatal("expected both level changes to raise alerts")
	}

	// The second change lands inside the first alert's TTL. The pending
	// slot holds only the latest alert, never a stack.
	if state.Pending != second {
		t.Errorf("Pending = %+v, expected the latest alert", state.Pending)
	}
	if state.Pending.Level != LevelLow {
		t.Errorf("Pending.Level = %q, expected %q", state.Pending.Level, LevelLow)
	}
}

func TestPendingAlert(t *testing.T) {
	state := &AlertState{LastLevel: LevelLow}
	raisedAt := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	Observe(state, LevelHigh, raisedAt)

	// Within the TTL the alert is visible.
	if alert := PendingAlert(state, raisedAt.Add(2*time.Second)); alert == nil {
		t.Error("PendingAlert() inside the TTL = nil, expected the alert")
	}

	// Past the TTL the alert expires and is cleared.
	if alert := PendingAlert(state, raisedAt.Add(5*time.Second)); alert != nil {
		t.Errorf("PendingAlert() past the TTL = %+v, expected nil", alert)
	}
	if state.Pending != nil {
		t.Errorf("Pending after expiry = %+v, expected nil", state.Pending)
	}
}

func TestPendingAlert_NoAlert(t *testing.T) {
	state := &AlertState{LastLevel: LevelLow}

	if alert := PendingAlert(state, time.Now()); alert != nil {
		t.Errorf("PendingAlert() with nothing pending = %+v, expected nil", alert)
	}
}

// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/companion-screening/pkg/conversation"
	"github.com/AccelByte/companion-screening/pkg/oracle"
	"github.com/AccelByte/companion-screening/pkg/screening"
	"github.com/AccelByte/companion-screening/pkg/session"
)

// InitConversation creates the conversation manager that drives the
// turn pipeline.
//
// ============================================================
// DEVELOPER: Turn pipeline wiring
// ============================================================
// The manager orchestrates the flow:
// User message → Sentiment → Stage advance → Risk → Alerts
//
// Every turn makes at most two model calls: one sentiment
// classification plus either one probe assessment or one
// open-ended reply, depending on the stage.
//
// State is stored per session in Redis; the manager enforces
// one turn at a time per session, so no session state needs
// locking beyond the in-flight gate.
// ============================================================
func InitConversation(store session.Store, o oracle.Oracle, machine *screening.Machine) *conversation.Manager {
	manager := conversation.NewManager(store, o, machine, nil)
	logrus.Infof("initialized conversation manager")

	return manager
}

// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/companion-screening/pkg/oracle"
	"github.com/AccelByte/companion-screening/pkg/screening"
)

// InitScreening loads the screening script and builds the stage machine.
//
// ============================================================
// DEVELOPER: Customize the screening script
// ============================================================
// The scripted utterances (greeting, probe questions, game
// recommendation, fallback) live in config/screening.yaml and
// support ${VAR} environment expansion.
//
// To change what the companion asks:
// 1. Edit config/screening.yaml (or point SCRIPT_PATH elsewhere)
// 2. Keep the probe questions answerable in free text - the
//    answers are graded against the question that was asked
//
// Leave SCRIPT_PATH empty to run with the built-in script.
// ============================================================
func InitScreening(scriptPath string, o oracle.Oracle) (*screening.Script, *screening.Machine, error) {
	var script *screening.Script

	if scriptPath == "" {
		script = screening.DefaultScript()
		logrus.Infof("using built-in screening script")
	} else {
		loaded, err := screening.LoadScript(scriptPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load screening script from %s: %w", scriptPath, err)
		}
		script = loaded
		logrus.Infof("loaded screening script from %s", scriptPath)
	}

	machine := screening.NewMachine(script, o)
	logrus.Infof("initialized screening machine")

	return script, machine, nil
}

// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package screening

import (
	"errors"
)

// ErrFactorAlreadySet is returned when a probe result that already holds
// a known factor is written again. Each domain is assessed exactly once.
var ErrFactorAlreadySet = errors.New("screening factor already set")

// Result holds the per-domain screening outcome for a session. Both
// factors start as Unknown and each may be resolved to a known value at
// most once. A factor that resolved to Unknown (failed interpretation)
// stays writable so a later retry could still land, but a known value is
// never overwritten.
type Result struct {
	Memory RiskFactor `json:"memory"`
	Social RiskFactor `json:"social"`
}

// NewResult returns a Result with both domains unassessed.
func NewResult() Result {
	return Result{
		Memory: FactorUnknown,
		Social: FactorUnknown,
	}
}

// RecordMemory resolves the memory domain.
func (r *Result) RecordMemory(factor RiskFactor) error {
	if r.Memory != FactorUnknown {
		return ErrFactorAlreadySet
	}
	r.Memory = factor
	return nil
}

// RecordSocial resolves the social domain.
func (r *Result) RecordSocial(factor RiskFactor) error {
	if r.Social != FactorUnknown {
		return ErrFactorAlreadySet
	}
	r.Social = factor
	return nil
}

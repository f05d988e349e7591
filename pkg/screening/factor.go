// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package screening

// RiskFactor grades a single cognitive domain from one probe answer.
type RiskFactor string

const (
	// FactorUnknown marks a domain that has not been assessed yet, or
	// whose assessment could not be interpreted.
	FactorUnknown RiskFactor = "Unknown"
	FactorLow     RiskFactor = "Low"
	FactorMedium  RiskFactor = "Medium"
	FactorHigh    RiskFactor = "High"
)

// FactorVocabulary lists the labels an assessment reply may carry.
// Unknown is excluded: it is the absence of an assessment, never an
// answer the interpreter should accept.
func FactorVocabulary() []string {
	return []string{
		string(FactorLow),
		string(FactorMedium),
		string(FactorHigh),
	}
}

// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package screening

// Stage identifies where a session sits in the scripted screening flow.
type Stage string

const (
	StageGreeting       Stage = "greeting"
	StageMemoryProbe    Stage = "memory_probe"
	StageSocialProbe    Stage = "social_probe"
	StageRecommendation Stage = "recommendation"
	StageFreeChat       Stage = "free_chat"
)

// Next returns the stage that follows after one user turn. Free chat is
// terminal: sessions stay there for the rest of their lifetime. An
// unrecognized stage also lands in free chat so a corrupted session
// keeps conversing instead of wedging the flow.
func (s Stage) Next() Stage {
	switch s {
	case StageGreeting:
		return StageMemoryProbe
	case StageMemoryProbe:
		return StageSocialProbe
	case StageSocialProbe:
		return StageRecommendation
	case StageRecommendation:
		return StageFreeChat
	case StageFreeChat:
		return StageFreeChat
	default:
		return StageFreeChat
	}
}

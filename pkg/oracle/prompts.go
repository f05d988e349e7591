package oracle

import (
	"fmt"
	"strings"
)

// Role identifies the author of a conversation turn in a generation prompt.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one prior conversation message, as rendered into a generation
// prompt.
type Turn struct {
	Role Role
	Text string
}

// maxHistoryTurns bounds how much transcript the companion prompt carries.
const maxHistoryTurns = 20

// SentimentPrompt asks for a one-word sentiment classification of a single
// user message. The reply vocabulary must match the interpreter's sentiment
// vocabulary exactly.
func SentimentPrompt(message string) string {
	return fmt.Sprintf(`Classify the emotional sentiment of the following message written by an elderly user to their companion app.
Reply with exactly one word: Positive, Neutral, or Negative.

Message: %q`, message)
}

// MemoryAssessmentPrompt asks for a one-word memory risk assessment of the
// user's answer to the memory probe question.
func MemoryAssessmentPrompt(question, answer string) string {
	return fmt.Sprintf(`An elderly user was asked the following memory-recall question by their companion app:
%q

Assess the memory-related risk suggested by their answer. A clear and specific answer is Low. A vague or hesitant answer is Medium. A confused answer, or one that shows the question could not be recalled, is High.
Reply with exactly one word: Low, Medium, or High.

Answer: %q`, question, answer)
}

// SocialAssessmentPrompt asks for a one-word social-isolation risk assessment
// of the user's answer to the social probe question.
func SocialAssessmentPrompt(question, answer string) string {
	return fmt.Sprintf(`An elderly user was asked the following question about their social contact by their companion app:
%q

Assess the social-isolation risk suggested by their answer. Regular recent contact with family or friends is Low. Occasional or uncertain contact is Medium. No recent contact, or withdrawal from contact, is High.
Reply with exactly one word: Low, Medium, or High.

Answer: %q`, question, answer)
}

// CompanionPrompt builds the open-ended generation prompt from the
// conversation so far. Only the most recent turns are included so the prompt
// stays bounded in long free-chat sessions.
func CompanionPrompt(history []Turn) string {
	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}

	var b strings.Builder
	b.WriteString("You are a warm, patient companion for an elderly user. ")
	b.WriteString("Reply to the last user message in two or three short sentences. ")
	b.WriteString("Be encouraging and never clinical. When it fits the conversation, gently suggest playing the memory card game or catching up with family.\n\n")
	b.WriteString("Conversation so far:\n")
	for _, turn := range history {
		fmt.Fprintf(&b, "%s: %s\n", turn.Role, turn.Text)
	}
	b.WriteString("assistant:")

	return b.String()
}

// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package sentiment

// Sentiment is a one-word emotional classification of a user message.
type Sentiment string

const (
	Positive Sentiment = "Positive"
	Neutral  Sentiment = "Neutral"
	Negative Sentiment = "Negative"
)

// Vocabulary lists the labels a sentiment classification may carry.
func Vocabulary() []string {
	return []string{
		string(Positive),
		string(Neutral),
		string(Negative),
	}
}

// Tally accumulates confirmed sentiment classifications over a session.
// Counts only ever grow; an unclassifiable message leaves the tally
// untouched.
type Tally struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// Record adds one confirmed classification to the tally. It reports
// whether the value was a recognized sentiment; anything else is
// ignored.
func (t *Tally) Record(s Sentiment) bool {
	switch s {
	case Positive:
		t.Positive++
	case Neutral:
		t.Neutral++
	case Negative:
		t.Negative++
	default:
		return false
	}
	return true
}

// Total returns the number of classified messages.
func (t Tally) Total() int {
	return t.Positive + t.Neutral + t.Negative
}

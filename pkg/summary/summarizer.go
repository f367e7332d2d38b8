// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package summary implements the heuristic meeting-note summarizer:
// sentence classification against fixed keyword tables plus follow-up
// date extraction. Everything here is pure and deterministic; every
// input, including the empty string, yields a well-formed summary.
package summary

import (
	"fmt"
	"strings"
	"time"
)

// Sentence fragments at or below this length are discarded as noise.
const minSentenceLength = 10

// Output list limits.
const (
	maxDiscussionPoints = 5
	maxDecisions        = 5
	maxRisks            = 5
	maxNextSteps        = 3
	maxActionItems      = 8
)

// summarySentenceCount is how many leading sentences seed the summary text.
const summarySentenceCount = 4

// FallbackSummary is emitted when the notes contain no usable sentences.
const FallbackSummary = "No meeting notes were provided to summarize."

// Keyword tables for sentence classification. A sentence belongs to a
// bucket when it contains any of the bucket's keywords, case-insensitive.
// The tables are disjoint but a sentence may match several buckets.
var (
	discussionKeywords = []string{
		"discussed", "talked about", "reviewed", "went over", "covered",
		"presented", "explained", "walked through",
	}
	decisionKeywords = []string{
		"decided", "agreed", "finalized", "approved", "confirmed", "concluded",
	}
	riskKeywords = []string{
		"risk", "concern", "worried", "volatility", "downside", "uncertain",
		"exposure", "caution",
	}
	actionKeywords = []string{
		"will ", "need to", "needs to", "follow up", "schedule", "send ",
		"prepare", "share ", "arrange", "to-do",
	}
)

// MeetingSummary is the ephemeral result of summarizing raw meeting
// notes. It is returned to the caller and never persisted here.
type MeetingSummary struct {
	Summary             string   `json:"summary"`
	KeyDiscussionPoints []string `json:"key_discussion_points"`
	DecisionsMade       []string `json:"decisions_made"`
	RisksDiscussed      []string `json:"risks_discussed"`
	NextSteps           []string `json:"next_steps"`
	ActionItems         []string `json:"action_items"`
	// FollowUpDate is an ISO calendar date (no time component), or
	// empty when no follow-up pattern matched.
	FollowUpDate string `json:"follow_up_date,omitempty"`
}

// Summarize classifies the raw notes into discussion points, decisions,
// risks, and action items, and extracts a follow-up date relative to now.
func Summarize(rawNotes string, now time.Time) MeetingSummary {
	sentences := splitSentences(rawNotes)

	discussion := matching(sentences, discussionKeywords)
	decisions := matching(sentences, decisionKeywords)
	risks := matching(sentences, riskKeywords)
	actions := matching(sentences, actionKeywords)

	// Fallbacks for empty buckets. Decisions and risks deliberately stay
	// empty when nothing matched.
	if len(discussion) == 0 {
		discussion = head(sentences, 3)
	}
	if len(actions) == 0 {
		actions = actionFallback(sentences)
	}

	result := MeetingSummary{
		Summary:             synthesize(sentences, len(discussion), len(decisions), len(actions)),
		KeyDiscussionPoints: head(discussion, maxDiscussionPoints),
		DecisionsMade:       head(decisions, maxDecisions),
		RisksDiscussed:      head(risks, maxRisks),
		NextSteps:           head(actions, maxNextSteps),
		ActionItems:         head(actions, maxActionItems),
		FollowUpDate:        extractFollowUpDate(rawNotes, now),
	}
	return result
}

// splitSentences breaks the notes on sentence terminators and newlines,
// trims the pieces, and drops short fragments. The result is an ordered,
// materialized list.
func splitSentences(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == '\n'
	})

	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if len(trimmed) > minSentenceLength {
			sentences = append(sentences, trimmed)
		}
	}
	return sentences
}

// matching returns the sentences containing any keyword from the table,
// preserving order.
func matching(sentences, keywords []string) []string {
	var matched []string
	for _, sentence := range sentences {
		lower := strings.ToLower(sentence)
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				matched = append(matched, sentence)
				break
			}
		}
	}
	return matched
}

// actionFallback picks sentences phrased as first-person commitments.
func actionFallback(sentences []string) []string {
	var actions []string
	for _, sentence := range sentences {
		lower := strings.ToLower(sentence)
		if strings.HasPrefix(lower, "we ") || strings.HasPrefix(lower, "i ") || strings.Contains(lower, "plan to") {
			actions = append(actions, sentence)
		}
	}
	return actions
}

// synthesize builds the summary text from the leading sentences plus the
// bucket counts, or the fixed fallback when there are no sentences.
func synthesize(sentences []string, points, decisions, actions int) string {
	if len(sentences) == 0 {
		return FallbackSummary
	}

	text := strings.Join(head(sentences, summarySentenceCount), ". ") + "."
	return fmt.Sprintf("%s Identified %d key discussion points, %d decisions, and %d action items.",
		text, points, decisions, actions)
}

func head(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

package chat

import (
	"regexp"
	"strings"
)

// Event is the typed intent consumed by the state machine. A small
// per-state keyword classifier produces it ahead of the transition
// switch, keeping the transitions independent of wording.
type Event int

const (
	EventUnknown Event = iota
	EventFreeText
	EventStartSearch
	EventConfirm
	EventReject
	EventChooseReference
	EventChoosePartName
	EventOrderNow
	EventContinueShopping
	EventSearchMore
	EventStartNew
	EventSkip
)

var wordPattern = regexp.MustCompile(`[a-z]+`)

func hasWord(message string, words ...string) bool {
	tokens := wordPattern.FindAllString(strings.ToLower(message), -1)
	for _, t := range tokens {
		for _, w := range words {
			if t == w {
				return true
			}
		}
	}
	return false
}

func classifyIntent(state State, message string) Event {
	switch state {
	case StateWelcome:
		if hasWord(message, "search", "spare", "part", "parts", "find", "look") {
			return EventStartSearch
		}
		return EventUnknown

	case StateConfirmVehicle, StateConfirmReference, StateConfirmPart:
		if hasWord(message, "yes", "yeah", "yep", "correct") {
			return EventConfirm
		}
		if hasWord(message, "no", "nope", "wrong") {
			return EventReject
		}
		return EventUnknown

	case StateAskSearchType:
		if hasWord(message, "reference", "ref", "oem") {
			return EventChooseReference
		}
		if hasWord(message, "part", "parts", "name") {
			return EventChoosePartName
		}
		return EventUnknown

	case StateAskOrder:
		if hasWord(message, "order", "yes", "buy") {
			return EventOrderNow
		}
		if hasWord(message, "continue", "shop", "shopping") {
			return EventContinueShopping
		}
		return EventUnknown

	case StateAskEmail:
		if hasWord(message, "skip") {
			return EventSkip
		}
		return EventFreeText

	case StateCompleteOrder:
		// "new" first: "Start New Search" must not read as search-more
		if hasWord(message, "new") {
			return EventStartNew
		}
		if hasWord(message, "search", "more") {
			return EventSearchMore
		}
		return EventUnknown
	}

	return EventFreeText
}

var (
	phonePattern = regexp.MustCompile(`[\d\s\+\-\(\)]{8,}`)
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	digitPattern = regexp.MustCompile(`\d`)
)

// extractPhone pulls a phone number out of free text. The match must
// carry at least 8 digits, so a run of spaces or dashes never passes.
func extractPhone(message string) (string, bool) {
	m := strings.TrimSpace(phonePattern.FindString(message))
	if m == "" {
		return "", false
	}
	if len(digitPattern.FindAllString(m, -1)) < 8 {
		return "", false
	}
	return m, true
}

func extractEmail(message string) (string, bool) {
	m := emailPattern.FindString(message)
	return m, m != ""
}

package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		name    string
		state   State
		message string
		want    Event
	}{
		{"welcome search", StateWelcome, "I want to search for parts", EventStartSearch},
		{"welcome find", StateWelcome, "help me find something", EventStartSearch},
		{"welcome chitchat", StateWelcome, "hello there", EventUnknown},

		{"confirm yes", StateConfirmVehicle, "Yes", EventConfirm},
		{"confirm yes in sentence", StateConfirmVehicle, "yes that's it", EventConfirm},
		{"confirm no", StateConfirmVehicle, "No", EventReject},
		{"no is word-bounded", StateConfirmVehicle, "unknown", EventUnknown},
		{"confirm garbage", StateConfirmReference, "perhaps", EventUnknown},

		{"search type reference", StateAskSearchType, "Search by Reference", EventChooseReference},
		{"search type part", StateAskSearchType, "by part name please", EventChoosePartName},
		{"search type garbage", StateAskSearchType, "whatever", EventUnknown},

		{"order now", StateAskOrder, "Order Now", EventOrderNow},
		{"order yes", StateAskOrder, "yes", EventOrderNow},
		{"continue shopping", StateAskOrder, "Continue Shopping", EventContinueShopping},
		{"order garbage", StateAskOrder, "later", EventUnknown},

		{"email skip", StateAskEmail, "skip", EventSkip},
		{"email free text", StateAskEmail, "me@example.com", EventFreeText},

		{"complete search more", StateCompleteOrder, "Search More Parts", EventSearchMore},
		{"complete start new", StateCompleteOrder, "Start New Search", EventStartNew},
		{"complete garbage", StateCompleteOrder, "thanks", EventUnknown},

		{"free text states", StateAskVehicle, "Toyota Corolla", EventFreeText},
		{"reference free text", StateAskReference, "BP-2234", EventFreeText},
		{"contact free text", StateAskContact, "0555 123 456", EventFreeText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyIntent(tt.state, tt.message))
		})
	}
}

func TestExtractPhone(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
		ok      bool
	}{
		{"plain digits", "0555123456", "0555123456", true},
		{"formatted", "my number is +213 (555) 12-34-56", "+213 (555) 12-34-56", true},
		{"embedded", "call 0555123456 please", "0555123456", true},
		{"no digits", "no digits here", "", false},
		{"too few digits", "12-34", "", false},
		{"spaces only", "        ", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractPhone(tt.message)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestExtractEmail(t *testing.T) {
	got, ok := extractEmail("reach me at karim.b@example.dz thanks")
	assert.True(t, ok)
	assert.Equal(t, "karim.b@example.dz", got)

	_, ok = extractEmail("karim at example dot com")
	assert.False(t, ok)
}

package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Result
		wantErr error
	}{
		{"valid", "VALID|Toyota", Result{Status: StatusValid, Value: "Toyota"}, nil},
		{"suggestion", "SUGGESTION|Corolla", Result{Status: StatusSuggestion, Value: "Corolla"}, nil},
		{"invalid maps to unknown", "INVALID|unknown", Result{Status: StatusUnknown, Value: "unknown"}, nil},
		{"lowercase status", "valid|Peugeot", Result{Status: StatusValid, Value: "Peugeot"}, nil},
		{"whitespace trimmed", "  VALID | Toyota ", Result{Status: StatusValid, Value: "Toyota"}, nil},
		{"bare confidence", "VALID|Toyota|95", Result{Status: StatusValid, Value: "Toyota", Confidence: 95}, nil},
		{"labelled confidence", "VALID|Front Brake Pads|CONFIDENCE|87", Result{Status: StatusValid, Value: "Front Brake Pads", Confidence: 87}, nil},
		{"multiline picks first line", "SUGGESTION|Clio\nsome explanation", Result{Status: StatusSuggestion, Value: "Clio"}, nil},
		{"code fence skipped", "```\nVALID|Golf\n```", Result{Status: StatusValid, Value: "Golf"}, nil},

		{"empty", "", Result{}, ErrEmptyResponse},
		{"blank lines", "\n\n  \n", Result{}, ErrEmptyResponse},
		{"no delimiter", "VALID Toyota", Result{}, ErrNoDelimiter},
		{"free text", "I think you mean the Toyota Corolla.", Result{}, ErrNoDelimiter},
		{"bad status", "MAYBE|Toyota", Result{}, ErrBadStatus},
		{"empty value", "VALID|", Result{}, ErrEmptyValue},
		{"non-numeric confidence", "VALID|Toyota|high", Result{}, ErrBadConfidence},
		{"confidence out of range", "VALID|Toyota|CONFIDENCE|250", Result{}, ErrBadConfidence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVerdict(tt.raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

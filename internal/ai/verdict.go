package ai

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// The oracle is asked for a strict pipe-delimited line:
//
//	VALID|exact_name
//	SUGGESTION|corrected_name
//	INVALID|unknown
//
// optionally followed by a confidence, either bare ("VALID|Toyota|95")
// or labelled ("VALID|Toyota|CONFIDENCE|95"). Anything else is a parse
// error; the caller degrades instead of trusting free text.

type Status string

const (
	StatusValid      Status = "VALID"
	StatusSuggestion Status = "SUGGESTION"
	StatusUnknown    Status = "UNKNOWN"
)

type Result struct {
	Status     Status
	Value      string
	Confidence int // 0 = absent
}

var (
	ErrEmptyResponse = errors.New("ai: empty response")
	ErrNoDelimiter   = errors.New("ai: missing pipe delimiter")
	ErrBadStatus     = errors.New("ai: unrecognized status token")
	ErrEmptyValue    = errors.New("ai: empty value")
	ErrBadConfidence = errors.New("ai: non-numeric confidence")
)

// ParseVerdict parses an oracle reply against the pipe contract.
func ParseVerdict(raw string) (Result, error) {
	line := firstLine(raw)
	if line == "" {
		return Result{}, ErrEmptyResponse
	}
	if !strings.Contains(line, "|") {
		return Result{}, ErrNoDelimiter
	}

	fields := strings.Split(line, "|")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	var res Result
	switch strings.ToUpper(fields[0]) {
	case "VALID":
		res.Status = StatusValid
	case "SUGGESTION":
		res.Status = StatusSuggestion
	case "INVALID", "UNKNOWN":
		res.Status = StatusUnknown
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrBadStatus, fields[0])
	}

	res.Value = fields[1]
	if res.Status != StatusUnknown && res.Value == "" {
		return Result{}, ErrEmptyValue
	}

	switch {
	case len(fields) >= 4 && strings.EqualFold(fields[len(fields)-2], "CONFIDENCE"):
		conf, err := parseConfidence(fields[len(fields)-1])
		if err != nil {
			return Result{}, err
		}
		res.Confidence = conf
	case len(fields) == 3:
		conf, err := parseConfidence(fields[2])
		if err != nil {
			return Result{}, err
		}
		res.Confidence = conf
	}

	return res, nil
}

func parseConfidence(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSuffix(s, "%"))
	if err != nil || n < 0 || n > 100 {
		return 0, fmt.Errorf("%w: %q", ErrBadConfidence, s)
	}
	return n, nil
}

func firstLine(raw string) string {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "```") {
			return line
		}
	}
	return ""
}

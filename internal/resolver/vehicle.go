package resolver

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/selimbz/partsbot/internal/catalog"
)

const (
	minYear = 1950
	maxYear = 2025
)

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// Vehicle is the combined verdict for a free-text "brand model year"
// utterance. Year 0 means absent.
type Vehicle struct {
	Brand Verdict
	Model Verdict
	Year  int
}

// Status collapses the per-entity verdicts: both VALID means the whole
// vehicle is committed without confirmation; any UNKNOWN means reprompt;
// anything else is a suggestion to confirm.
func (v Vehicle) Status() Status {
	if v.Brand.Status == StatusUnknown || v.Model.Status == StatusUnknown {
		return StatusUnknown
	}
	if v.Brand.Status == StatusValid && v.Model.Status == StatusValid {
		return StatusValid
	}
	return StatusSuggestion
}

// ResolveVehicle parses a free-text vehicle description. The brand is
// split from the model by probing token prefixes against the catalog
// (brands may span words: "Land Rover", "Alfa Romeo"); the remainder is
// the model. ok is false when the utterance has too little to work with
// and the caller should reprompt.
func (r *Resolver) ResolveVehicle(ctx context.Context, rawInput string) (Vehicle, bool) {
	var vehicle Vehicle
	text := strings.TrimSpace(rawInput)

	if m := yearPattern.FindString(text); m != "" {
		if y, err := strconv.Atoi(m); err == nil && y >= minYear && y <= maxYear {
			vehicle.Year = y
		}
		// out-of-range years are dropped, not rejected
		text = strings.TrimSpace(strings.Replace(text, m, "", 1))
	}

	tokens := strings.Fields(text)
	if len(tokens) < 2 {
		return vehicle, false
	}

	rest := tokens[1:]
	brandResolved := false

	// longest exact catalog brand prefix wins
	maxPrefix := len(tokens) - 1
	if maxPrefix > 3 {
		maxPrefix = 3
	}
	for n := maxPrefix; n >= 1 && !brandResolved; n-- {
		prefix := strings.Join(tokens[:n], " ")
		cands, err := r.catalog.FindCandidates(ctx, catalog.FieldBrand, prefix)
		if err != nil {
			continue
		}
		for _, c := range cands {
			if strings.EqualFold(c, prefix) {
				vehicle.Brand = Verdict{Status: StatusValid, Value: c, Source: SourceCatalog}
				rest = tokens[n:]
				brandResolved = true
				break
			}
		}
	}
	if !brandResolved {
		vehicle.Brand = r.Resolve(ctx, KindBrand, tokens[0], Scope{})
	}

	vehicle.Model = r.Resolve(ctx, KindModel, strings.Join(rest, " "), Scope{Brand: vehicle.Brand.Value})
	return vehicle, true
}

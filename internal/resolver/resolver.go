package resolver

import (
	"context"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/selimbz/partsbot/internal/ai"
	"github.com/selimbz/partsbot/internal/catalog"
	"github.com/selimbz/partsbot/internal/match"
)

type Kind string

const (
	KindBrand Kind = "brand"
	KindModel Kind = "model"
	KindPart  Kind = "part"
)

type Status string

const (
	StatusValid      Status = "VALID"
	StatusSuggestion Status = "SUGGESTION"
	StatusUnknown    Status = "UNKNOWN"
)

type Source string

const (
	SourceCatalog  Source = "catalog"
	SourceFuzzy    Source = "fuzzy"
	SourceFallback Source = "fallback"
)

// Verdict is the resolver's classification of one user-supplied value.
// Confidence is only meaningful for fallback verdicts; 0 = absent.
type Verdict struct {
	Status     Status
	Value      string
	Source     Source
	Confidence int
}

// Scope carries already-resolved upstream entities into a resolution,
// e.g. the brand when resolving a model.
type Scope struct {
	Brand string
}

const (
	validThreshold   = 90
	suggestThreshold = 75
	oracleMaxTokens  = 50
)

// Resolver runs the catalog → fuzzy → fallback pipeline. The order is
// strict and short-circuits: an exact catalog hit is always trusted
// over fuzzy or oracle, whatever they would have scored.
type Resolver struct {
	catalog catalog.Index
	ranker  match.Ranker
	oracle  ai.Classifier
}

func New(idx catalog.Index, ranker match.Ranker, oracle ai.Classifier) *Resolver {
	return &Resolver{catalog: idx, ranker: ranker, oracle: oracle}
}

// Resolve classifies rawInput as one entity of the given kind.
func (r *Resolver) Resolve(ctx context.Context, kind Kind, rawInput string, scope Scope) Verdict {
	rawInput = strings.TrimSpace(rawInput)

	// stage 1: catalog-first. Presence in the catalog validates outright:
	// a covered brand or part is guaranteed orderable.
	candidates := r.candidates(ctx, kind, rawInput, scope)
	for _, c := range candidates {
		if strings.EqualFold(c, rawInput) {
			return r.record(kind, Verdict{Status: StatusValid, Value: c, Source: SourceCatalog})
		}
	}
	if len(candidates) > 0 {
		return r.record(kind, Verdict{Status: StatusValid, Value: candidates[0], Source: SourceCatalog})
	}

	// stage 2: fuzzy over the kind's known candidate list
	if kind == KindModel || kind == KindPart {
		if v, ok := r.fuzzy(ctx, kind, rawInput, scope); ok {
			return r.record(kind, v)
		}
	}

	// stage 3: knowledge fallback
	return r.record(kind, r.fallback(ctx, kind, rawInput, scope))
}

func (r *Resolver) candidates(ctx context.Context, kind Kind, rawInput string, scope Scope) []string {
	var (
		out []string
		err error
	)
	switch kind {
	case KindBrand:
		out, err = r.catalog.FindCandidates(ctx, catalog.FieldBrand, rawInput)
	case KindModel:
		out, err = r.catalog.FindModels(ctx, scope.Brand, rawInput)
	case KindPart:
		out, err = r.catalog.FindCandidates(ctx, catalog.FieldPart, rawInput)
	}
	if err != nil {
		// an unreachable catalog is an empty candidate set, not a failure
		slog.Warn("catalog lookup degraded", "kind", kind, "err", err)
		return nil
	}
	return out
}

func (r *Resolver) fuzzy(ctx context.Context, kind Kind, rawInput string, scope Scope) (Verdict, bool) {
	pool, canonical := r.fuzzyPool(ctx, kind, scope)
	best, ok := match.Best(r.ranker, rawInput, pool)
	if !ok || best.Score < suggestThreshold {
		return Verdict{}, false
	}

	value := best.Candidate
	if c, found := canonical[strings.ToLower(value)]; found {
		value = c
	}

	status := StatusSuggestion
	if best.Score >= validThreshold {
		status = StatusValid
	}
	return Verdict{Status: status, Value: value, Source: SourceFuzzy}, true
}

// fuzzyPool builds the candidate list for the fuzzy stage: all known
// models of the scoped brand, or all known part names plus the common
// part aliases. The canonical map folds alias variants back to their
// canonical spelling.
func (r *Resolver) fuzzyPool(ctx context.Context, kind Kind, scope Scope) ([]string, map[string]string) {
	canonical := make(map[string]string)

	if kind == KindModel {
		pool, err := r.catalog.FindModels(ctx, scope.Brand, "")
		if err != nil {
			slog.Warn("model pool lookup degraded", "brand", scope.Brand, "err", err)
			return nil, canonical
		}
		return pool, canonical
	}

	var pool []string
	for name, variants := range commonParts {
		title := titleCase(name)
		pool = append(pool, title)
		canonical[name] = title
		for _, v := range variants {
			pool = append(pool, v)
			canonical[strings.ToLower(v)] = title
		}
	}
	known, err := r.catalog.FindCandidates(ctx, catalog.FieldPart, "")
	if err != nil {
		slog.Warn("part pool lookup degraded", "err", err)
	}
	return append(pool, known...), canonical
}

func (r *Resolver) fallback(ctx context.Context, kind Kind, rawInput string, scope Scope) Verdict {
	var prompt string
	switch kind {
	case KindBrand:
		prompt = ai.BrandPrompt(rawInput)
	case KindModel:
		prompt = ai.ModelPrompt(rawInput, scope.Brand)
	case KindPart:
		prompt = ai.PartPrompt(rawInput)
	}

	degraded := Verdict{Status: StatusSuggestion, Value: titleCase(rawInput), Source: SourceFallback}

	raw, err := r.oracle.Classify(ctx, prompt, oracleMaxTokens)
	if err != nil {
		oracleCalls.WithLabelValues("error").Inc()
		return degraded
	}

	res, err := ai.ParseVerdict(raw)
	if err != nil {
		oracleCalls.WithLabelValues("parse_error").Inc()
		slog.Warn("oracle reply failed contract", "kind", kind, "err", err)
		return degraded
	}
	oracleCalls.WithLabelValues("ok").Inc()

	switch res.Status {
	case ai.StatusValid:
		return Verdict{Status: StatusValid, Value: res.Value, Source: SourceFallback, Confidence: res.Confidence}
	case ai.StatusSuggestion:
		return Verdict{Status: StatusSuggestion, Value: res.Value, Source: SourceFallback, Confidence: res.Confidence}
	default:
		return Verdict{Status: StatusUnknown, Value: rawInput, Source: SourceFallback}
	}
}

// ResolveReference is the strict path: normalized catalog search only.
// A guessed OEM reference is worse than none, so the oracle is never
// consulted; an empty result routes straight to contact capture.
func (r *Resolver) ResolveReference(ctx context.Context, reference string) []catalog.Entry {
	entries, err := r.catalog.FindProducts(ctx, catalog.Filter{Reference: strings.TrimSpace(reference)})
	if err != nil {
		slog.Warn("reference lookup degraded", "err", err)
		return nil
	}
	if len(entries) == 0 {
		verdicts.WithLabelValues("reference", string(SourceCatalog), string(StatusUnknown)).Inc()
	} else {
		verdicts.WithLabelValues("reference", string(SourceCatalog), string(StatusValid)).Inc()
	}
	return entries
}

func (r *Resolver) record(kind Kind, v Verdict) Verdict {
	verdicts.WithLabelValues(string(kind), string(v.Source), string(v.Status)).Inc()
	return v
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

package catalog

import (
	"context"
	"strings"
	"sync"
)

// Memory is an in-process Index over a fixed entry slice. It backs the
// test suites and local runs without a database.
type Memory struct {
	mu      sync.RWMutex
	entries []Entry
}

func NewMemory(entries ...Entry) *Memory {
	return &Memory{entries: entries}
}

func (m *Memory) Add(e Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = int64(len(m.entries) + 1)
	m.entries = append(m.entries, e)
}

func (m *Memory) FindCandidates(_ context.Context, field Field, substring string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sub := strings.ToLower(substring)
	var out []string
	seen := make(map[string]struct{})
	for _, e := range m.entries {
		if field == FieldPart {
			// part names also live in descriptions
			if sub != "" && !strings.Contains(strings.ToLower(e.Name), sub) &&
				!strings.Contains(strings.ToLower(e.Description), sub) {
				continue
			}
			key := strings.ToLower(e.Name)
			if _, ok := seen[key]; !ok && e.Name != "" {
				seen[key] = struct{}{}
				out = append(out, e.Name)
			}
			continue
		}

		cell := e.Brands
		if field == FieldModel {
			cell = e.Models
		}
		if sub != "" && !strings.Contains(strings.ToLower(cell), sub) {
			continue
		}
		for _, v := range SplitValues(cell) {
			key := strings.ToLower(v)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *Memory) FindModels(_ context.Context, brand, substring string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b := strings.ToLower(brand)
	sub := strings.ToLower(substring)
	var out []string
	seen := make(map[string]struct{})
	for _, e := range m.entries {
		if !strings.Contains(strings.ToLower(e.Brands), b) {
			continue
		}
		if sub != "" && !strings.Contains(strings.ToLower(e.Models), sub) {
			continue
		}
		for _, v := range SplitValues(e.Models) {
			key := strings.ToLower(v)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *Memory) FindProducts(_ context.Context, f Filter) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Entry
	for i := len(m.entries) - 1; i >= 0; i-- { // newest first
		e := m.entries[i]
		if !matches(e, f) {
			continue
		}
		out = append(out, e)
		if len(out) == pageSize {
			break
		}
	}
	return out, nil
}

func matches(e Entry, f Filter) bool {
	if f.Reference != "" {
		clean := NormalizeReference(f.Reference)
		return strings.Contains(NormalizeReference(e.Reference), clean) ||
			strings.Contains(strings.ToLower(e.Reference), strings.ToLower(f.Reference))
	}
	if f.Brand != "" && !strings.Contains(strings.ToLower(e.Brands), strings.ToLower(f.Brand)) {
		return false
	}
	if f.Model != "" && !strings.Contains(strings.ToLower(e.Models), strings.ToLower(f.Model)) {
		return false
	}
	if f.PartText != "" {
		p := strings.ToLower(f.PartText)
		if !strings.Contains(strings.ToLower(e.Name), p) &&
			!strings.Contains(strings.ToLower(e.Description), p) &&
			!strings.Contains(strings.ToLower(e.Reference), p) {
			return false
		}
	}
	return true
}

func (m *Memory) ListProducts(_ context.Context, page, limit int, search string) ([]Entry, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	var filtered []Entry
	s := strings.ToLower(search)
	for i := len(m.entries) - 1; i >= 0; i-- {
		e := m.entries[i]
		if s != "" &&
			!strings.Contains(strings.ToLower(e.Name), s) &&
			!strings.Contains(strings.ToLower(e.Reference), s) &&
			!strings.Contains(strings.ToLower(e.Brands), s) &&
			!strings.Contains(strings.ToLower(e.Models), s) {
			continue
		}
		filtered = append(filtered, e)
	}

	total := len(filtered)
	start := (page - 1) * limit
	if start >= total {
		return nil, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return filtered[start:end], total, nil
}

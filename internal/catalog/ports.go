package catalog

import (
	"context"
	"regexp"
	"strings"
)

// Field selects which product column a candidate lookup scans.
type Field string

const (
	FieldBrand Field = "car_brands"
	FieldModel Field = "car_models"
	FieldPart  Field = "product_name"
)

// Entry is one part record. Read-only from the bot's perspective;
// the inventory import owns the write side.
type Entry struct {
	ID          int64   `json:"id"`
	Reference   string  `json:"internal_reference"`
	Name        string  `json:"product_name"`
	Description string  `json:"product_description"`
	Brands      string  `json:"car_brands"`
	Models      string  `json:"car_models"`
	Quantity    int     `json:"quantity_on_hand"`
	Price       float64 `json:"sales_price"`
}

// Filter narrows a product search. Reference, when set, wins over the
// other fields and is matched both raw and normalized.
type Filter struct {
	Brand     string
	Model     string
	PartText  string
	Reference string
}

// Index is the read side of the inventory.
type Index interface {
	// FindCandidates returns distinct values of the given field for rows
	// where the field contains substring (case-insensitive). Multi-value
	// fields are split and deduplicated. An empty substring matches all.
	FindCandidates(ctx context.Context, field Field, substring string) ([]string, error)
	// FindModels is FindCandidates over car_models scoped to one brand.
	FindModels(ctx context.Context, brand, substring string) ([]string, error)
	// FindProducts returns at most pageSize entries, newest first.
	FindProducts(ctx context.Context, f Filter) ([]Entry, error)
}

// Browser is the admin read surface (paginated listing).
type Browser interface {
	ListProducts(ctx context.Context, page, limit int, search string) ([]Entry, int, error)
}

const pageSize = 10

var (
	multiValueSep = regexp.MustCompile(`[,/;|]`)
	nonAlnum      = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// SplitValues splits a comma/slash/semicolon/pipe delimited field into
// trimmed, deduplicated values, preserving first-seen order.
func SplitValues(raw string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, v := range multiValueSep.Split(raw, -1) {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}

// NormalizeReference strips everything but letters and digits so that
// "BP-22 34" and "bp2234" compare equal.
func NormalizeReference(ref string) string {
	return strings.ToLower(nonAlnum.ReplaceAllString(ref, ""))
}

package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitValues(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"comma", "Toyota, Honda ,BMW", []string{"Toyota", "Honda", "BMW"}},
		{"mixed delimiters", "Toyota/Honda;BMW|Kia", []string{"Toyota", "Honda", "BMW", "Kia"}},
		{"dedup case-insensitive", "Toyota,toyota, TOYOTA", []string{"Toyota"}},
		{"empty cells", "Toyota,, ,Honda", []string{"Toyota", "Honda"}},
		{"empty string", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitValues(tt.raw))
		})
	}
}

func TestNormalizeReference(t *testing.T) {
	assert.Equal(t, "bp2234", NormalizeReference("BP-22 34"))
	assert.Equal(t, "bp2234", NormalizeReference("bp2234"))
	assert.Equal(t, "oc90", NormalizeReference("OC/90"))
	assert.Equal(t, "", NormalizeReference("--- "))
}

func testIndex() *Memory {
	return NewMemory(
		Entry{ID: 1, Reference: "BP-2234", Name: "Front Brake Pads", Description: "Front axle brake pad set", Brands: "Toyota,Honda", Models: "Corolla,Civic", Quantity: 4, Price: 4500},
		Entry{ID: 2, Reference: "OC 90", Name: "Oil Filter", Description: "Spin-on oil filter", Brands: "Toyota/Peugeot", Models: "Corolla;208", Quantity: 12, Price: 900},
		Entry{ID: 3, Reference: "ALT-550", Name: "Alternator", Description: "12V 90A alternator", Brands: "Renault", Models: "Clio", Quantity: 1, Price: 21000},
	)
}

func TestMemoryFindCandidates(t *testing.T) {
	ctx := context.Background()
	idx := testIndex()

	t.Run("brands split and dedup", func(t *testing.T) {
		got, err := idx.FindCandidates(ctx, FieldBrand, "")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Toyota", "Honda", "Peugeot", "Renault"}, got)
	})

	t.Run("substring is case-insensitive", func(t *testing.T) {
		got, err := idx.FindCandidates(ctx, FieldBrand, "toyo")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Toyota", "Honda", "Peugeot"}, got)
	})

	t.Run("part names match description too", func(t *testing.T) {
		got, err := idx.FindCandidates(ctx, FieldPart, "spin-on")
		require.NoError(t, err)
		assert.Equal(t, []string{"Oil Filter"}, got)
	})

	t.Run("no match yields empty set", func(t *testing.T) {
		got, err := idx.FindCandidates(ctx, FieldPart, "gearbox")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestMemoryFindModels(t *testing.T) {
	ctx := context.Background()
	idx := testIndex()

	got, err := idx.FindModels(ctx, "Toyota", "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Corolla", "Civic", "208"}, got)

	got, err = idx.FindModels(ctx, "Renault", "cli")
	require.NoError(t, err)
	assert.Equal(t, []string{"Clio"}, got)
}

func TestMemoryFindProductsReference(t *testing.T) {
	ctx := context.Background()
	idx := testIndex()

	t.Run("normalized match tolerates formatting", func(t *testing.T) {
		for _, q := range []string{"BP-2234", "bp2234", "BP 2234", "bp-22-34"} {
			got, err := idx.FindProducts(ctx, Filter{Reference: q})
			require.NoError(t, err)
			require.Len(t, got, 1, "query %q", q)
			assert.Equal(t, "BP-2234", got[0].Reference)
		}
	})

	t.Run("miss", func(t *testing.T) {
		got, err := idx.FindProducts(ctx, Filter{Reference: "ZZ-9999"})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestMemoryFindProductsFiltered(t *testing.T) {
	ctx := context.Background()
	idx := testIndex()

	got, err := idx.FindProducts(ctx, Filter{Brand: "Toyota", Model: "Corolla", PartText: "brake"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Front Brake Pads", got[0].Name)

	got, err = idx.FindProducts(ctx, Filter{Brand: "Toyota", Model: "Corolla", PartText: "exhaust"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryListProducts(t *testing.T) {
	ctx := context.Background()
	idx := testIndex()

	entries, total, err := idx.ListProducts(ctx, 1, 2, "")
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, entries, 2)
	// newest first
	assert.Equal(t, "ALT-550", entries[0].Reference)

	entries, total, err = idx.ListProducts(ctx, 1, 20, "oil")
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, entries, 1)
	assert.Equal(t, "Oil Filter", entries[0].Name)
}

package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sync/errgroup"
)

func TestNormalize_Mayusculas(t *testing.T) {
	assert.Equal(t, "PO", normalizeSource("  po "))
	assert.Equal(t, "KG", normalizeUOM(" kg", "und"))
	assert.Equal(t, "UND", normalizeUOM("", "und"))
	assert.Nil(t, trimmedPtr(nil))
	blank := "   "
	assert.Nil(t, trimmedPtr(&blank))
}

func TestNormalize_Concurrente(t *testing.T) {
	var g errgroup.Group
	results := make([]string, 64)
	for i := range results {
		i := i
		g.Go(func() error {
			results[i] = normalizeUOM("caja", "")
			return nil
		})
	}
	assert.NoError(t, g.Wait())
	for _, r := range results {
		assert.Equal(t, "CAJA", r)
	}
}

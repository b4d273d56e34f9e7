package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/procura-api/internal/infrastructure/memory"
)

func TestSeedDemo_CargaCatalogo(t *testing.T) {
	s := memory.NewStore(0)
	require.NoError(t, memory.SeedDemo(s, "t-demo"))

	ctx := context.Background()
	item, err := s.FindItem(ctx, "t-demo", "item-tornillo")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "UND", item.DefaultUOM)

	bin, err := s.FindBin(ctx, "t-demo", "bin-principal-a1")
	require.NoError(t, err)
	require.NotNil(t, bin)
	assert.Equal(t, "site-principal", bin.SiteID)

	other, err := s.FindItem(ctx, "otro-tenant", "item-tornillo")
	require.NoError(t, err)
	assert.Nil(t, other)
}

package repos

import (
	"testing"

	"wardrobe/internal/domain"
	applog "wardrobe/internal/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInventoryCreateSkipsDuplicateSize(t *testing.T) {
	r := NewInventoryRepo(seeded(t))

	ok, err := r.Create(domain.ProductDetail{ID: "jeans-001-l", ProductID: "jeans-001", Size: domain.SizeL, Quantity: 2, Price: 100, Active: true})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.Create(domain.ProductDetail{ID: "jeans-001-l-2", ProductID: "jeans-001", Size: domain.SizeL, Quantity: 9, Price: 1, Active: true})
	require.NoError(t, err)
	assert.False(t, ok)

	d, err := r.BySize("jeans-001", domain.SizeL)
	require.NoError(t, err)
	assert.Equal(t, "jeans-001-l", d.ID)
	assert.Equal(t, 2, d.Quantity)
}

func TestSeedLogsThroughZap(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	applog.SetLogger(zap.New(core))
	t.Cleanup(func() { applog.SetLogger(zap.NewNop()) })

	seeded(t)
	entries := logs.FilterMessage("db.seed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "sqlite", entries[0].ContextMap()["driver"])
}

package accounts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

func TestIndex_Lookup(t *testing.T) {
	idx := NewIndex(DefaultChart())

	a, ok := idx.Get("1000")
	require.True(t, ok)
	assert.Equal(t, "Cash", a.Name)
	assert.Equal(t, model.CategoryAsset, a.Category)
	assert.True(t, a.Postable())

	assert.True(t, idx.Exists("4000"))
	assert.False(t, idx.Exists("9999"))
}

func TestIndex_RootsAreNotPostable(t *testing.T) {
	idx := NewIndex(DefaultChart())

	root, ok := idx.Get("1")
	require.True(t, ok)
	assert.False(t, root.Postable())

	for _, a := range idx.Postable() {
		assert.NotEmpty(t, a.ParentCode, "account %s", a.Code)
	}
}

func TestIndex_ByCategory(t *testing.T) {
	idx := NewIndex(DefaultChart())

	revenue := idx.ByCategory(model.CategoryRevenue)
	require.NotEmpty(t, revenue)
	for _, a := range revenue {
		assert.Equal(t, model.SideCredit, a.NormalSide())
	}

	assets := idx.ByCategory(model.CategoryAsset)
	require.NotEmpty(t, assets)
	for _, a := range assets {
		assert.Equal(t, model.SideDebit, a.NormalSide())
	}
}

func TestIndex_SaveLoad(t *testing.T) {
	dir := t.TempDir()

	idx := NewIndex(DefaultChart())
	require.NoError(t, idx.Save(dir))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, idx.All(), loaded.All())
}

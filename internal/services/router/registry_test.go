package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hxuan190/swap-router/internal/domain"
)

func TestRegistryPreservesOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeAdapter{venue: "alpha"})
	r.Register(&fakeAdapter{venue: "beta"})
	r.Register(&fakeAdapter{venue: "gamma"})

	assert.Equal(t, []string{"alpha", "beta", "gamma"}, r.Venues())
	assert.Equal(t, 3, r.Len())

	list := r.List()
	require.Len(t, list, 3)
	assert.Equal(t, "alpha", list[0].Venue())
}

func TestRegistryReplaceKeepsPosition(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeAdapter{venue: "alpha"})
	r.Register(&fakeAdapter{venue: "beta"})

	replacement := &fakeAdapter{venue: "alpha", quote: goodQuote("alpha", "42")}
	r.Register(replacement)

	assert.Equal(t, []string{"alpha", "beta"}, r.Venues())
	assert.Equal(t, 2, r.Len())

	got, err := r.Get("alpha")
	require.NoError(t, err)
	assert.Same(t, replacement, got)
}

func TestRegistryGetUnknown(t *testing.T) {
	r := NewRegistry()
	_, err := r.Get("nope")
	assert.ErrorIs(t, err, domain.ErrAdapterNotFound)
}

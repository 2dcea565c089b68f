package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWebsite(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		w, err := NewWebsite("Aroma-Bakery", "Aroma Bakery")
		require.NoError(t, err)
		assert.Equal(t, "aroma-bakery", w.Subdomain, "subdomain is lowercased")
		assert.Equal(t, WebsiteStatusDraft, w.Status)
		assert.Equal(t, DefaultCurrencyGlyph, w.Glyph())
	})

	t.Run("invalid subdomain", func(t *testing.T) {
		_, err := NewWebsite("not a label!", "Shop")
		assert.Error(t, err)
	})

	t.Run("empty title", func(t *testing.T) {
		_, err := NewWebsite("shop", "   ")
		assert.Error(t, err)
	})
}

func TestChannelConfig(t *testing.T) {
	assert.False(t, ChannelConfig{}.CanCheckout())
	assert.False(t, ChannelConfig{MessengerID: "  "}.CanCheckout())
	assert.True(t, ChannelConfig{MessengerID: "12345"}.CanCheckout())

	assert.False(t, ChannelConfig{}.HasOrderLog())
	assert.True(t, ChannelConfig{OrderWebhookURL: "https://hooks.example.com/orders"}.HasOrderLog())
}

func TestWebsite_Lifecycle(t *testing.T) {
	w, err := NewWebsite("shop", "Shop")
	require.NoError(t, err)

	w.Publish()
	assert.True(t, w.IsPublished())

	w.Suspend()
	assert.False(t, w.IsPublished())

	w.ConfigureChannels(ChannelConfig{MessengerID: "12345"})
	assert.True(t, w.Channels.CanCheckout())
}

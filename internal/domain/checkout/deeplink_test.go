package checkout

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeepLink(t *testing.T) {
	link := DeepLink("12345", "New Order - Aroma Bakery\nTotal: ₱300")

	assert.True(t, strings.HasPrefix(link, "https://m.me/12345?text="))

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "m.me", parsed.Host)
	assert.Equal(t, "/12345", parsed.Path)
	assert.Equal(t, "New Order - Aroma Bakery\nTotal: ₱300", parsed.Query().Get("text"),
		"message text must survive percent-encoding unchanged")
}

func TestDeepLink_EncodesQueryUnsafeCharacters(t *testing.T) {
	link := DeepLink("12345", "a&b=c?d")
	_, query, _ := strings.Cut(link, "?text=")
	assert.NotContains(t, query, "&")
	assert.NotContains(t, query, "?")
	assert.NotContains(t, query, "=")
}

func TestDeepLink_SpacesEncodeAsPercent20(t *testing.T) {
	link := DeepLink("12345", "New Order")
	_, query, _ := strings.Cut(link, "?text=")
	assert.Equal(t, "New%20Order", query)

	// A literal plus must stay distinguishable from an encoded space
	link = DeepLink("12345", "1+1 = 2")
	_, query, _ = strings.Cut(link, "?text=")
	assert.Equal(t, "1%2B1%20%3D%202", query)
}

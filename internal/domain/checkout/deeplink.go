package checkout

import (
	"net/url"
	"strings"
)

// messengerLinkBase is the interactive channel endpoint
const messengerLinkBase = "https://m.me/"

// DeepLink builds the interactive-channel URL that opens a Messenger
// conversation with the tenant's page, pre-filled with the order text.
// The format is a bit-exact external contract: any character not valid in
// a URL query is percent-encoded, with spaces as %20 rather than the
// form-encoding plus sign.
func DeepLink(channelID, messageText string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(messageText), "+", "%20")
	return messengerLinkBase + channelID + "?text=" + escaped
}

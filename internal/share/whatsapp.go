package share

import (
	"fmt"
	"net/url"
	"strings"
)

// WhatsAppLink builds a wa.me deep link with a prefilled message pointing at
// the published bill. Pure string construction, no protocol integration.
func WhatsAppLink(businessName, phone, billNumber, documentURL string) string {
	message := fmt.Sprintf("%s - BILL %s\n\nDownload your invoice here: %s",
		businessName, billNumber, documentURL)
	return fmt.Sprintf("https://wa.me/%s?text=%s", normalizePhone(phone), url.QueryEscape(message))
}

// normalizePhone strips everything wa.me rejects: spaces, dashes, and the
// leading plus.
func normalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Package contact builds the outbound chat link shown on product views.
package contact

import (
	"net/url"
	"strings"
)

const baseURL = "https://wa.me/"

// Message is the prefilled text for a product enquiry.
func Message(productName string) string {
	return "Hi, I'm interested in " + productName
}

// Link returns the deep link that opens a chat with phone, prefilled with an
// enquiry about productName. The text is percent-encoded with %20 for spaces.
func Link(phone, productName string) string {
	text := strings.ReplaceAll(url.QueryEscape(Message(productName)), "+", "%20")
	return baseURL + url.PathEscape(phone) + "?text=" + text
}

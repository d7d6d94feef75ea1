// Package chat implements the scripted FAQ assistant: keyword lookup
// over the incoming message with a default fallback.
package chat

import "strings"

type rule struct {
	keyword string
	reply   string
}

// DefaultReply is returned when no keyword matches.
const DefaultReply = "Thank you for your message. For complex inquiries, please contact our customer support team at +1 (555) 123-4567 or visit our contact page."

// Bot answers messages from a fixed keyword table. Rules are checked in
// order; the first keyword contained in the message wins.
type Bot struct {
	rules []rule
}

// NewBot returns a bot loaded with the SmartWings FAQ table.
func NewBot() *Bot {
	return &Bot{rules: []rule{
		{"hello", "Hello! Welcome to SmartWings. How can I assist you with your travel plans today?"},
		{"help", "I can help you with flight bookings, check flight status, answer questions about our services, or connect you with customer support."},
		{"book", "I'd be happy to help you book a flight! Please use our booking form above or visit our booking page for detailed search options."},
		{"status", "You can check real-time flight status in the Flight Status section above, or provide me with your flight number."},
		{"cancel", "For flight cancellations, please visit your booking management page or contact our customer service at +1 (555) 123-4567."},
		{"baggage", "Our baggage policy allows one carry-on bag for free. Checked baggage fees start at $30 for the first bag. Weight limit is 50lbs."},
		{"contact", "You can reach us at +1 (555) 123-4567 or email support@smartwings.com. We're available 24/7 for assistance."},
	}}
}

// Respond returns the scripted answer for a message. Matching is
// case-insensitive substring containment.
func (b *Bot) Respond(message string) string {
	lowered := strings.ToLower(message)
	for _, r := range b.rules {
		if strings.Contains(lowered, r.keyword) {
			return r.reply
		}
	}
	return DefaultReply
}

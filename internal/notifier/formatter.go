package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// FormatGreeting is the /start reply.
func FormatGreeting(firstName string) string {
	if firstName == "" {
		firstName = "there"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Hi %s! I'm the Telegram Gift Price Bot 🎁\n\n", html.EscapeString(firstName)))
	b.WriteString("I can show you price cards for Telegram gifts with modern cool chart photos 📊\n\n")
	b.WriteString("Just send me the name of any Telegram gift to see its price chart! ✨\n\n")
	b.WriteString("For example, try: 'Plush Pepe 🐸', 'Crystal Ball 🔮', 'Heart Locket 💝', etc.")
	return b.String()
}

// FormatNotText asks for a text message.
func FormatNotText() string {
	return "Please send me a text message with the gift name! 🎁"
}

// FormatUnknownUser is sent when the sender can't be identified.
func FormatUnknownUser() string {
	return "Error identifying user ❌"
}

// FormatWait tells the user how long until the next request is allowed.
func FormatWait(remaining time.Duration) string {
	secs := int(remaining.Seconds())
	if secs < 1 {
		secs = 1
	}
	return fmt.Sprintf("Please wait %d seconds before making another request ⏳", secs)
}

// FormatNotFound reports an unknown gift, with suggestions when there are any.
func FormatNotFound(name string, suggestions []string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Sorry, I couldn't find '%s'. Please check the gift name and try again! 🔍", html.EscapeString(name)))
	if len(suggestions) > 0 {
		b.WriteString("\n\nDid you mean one of these? 🤔")
		for _, s := range suggestions {
			b.WriteString(fmt.Sprintf("\n• %s ✨", html.EscapeString(s)))
		}
	}
	return b.String()
}

// FormatProcessing is the placeholder message shown while a card renders.
func FormatProcessing(name string) string {
	return fmt.Sprintf("Generating price chart for %s 🎨...", html.EscapeString(name))
}

// FormatCaption is the photo caption.
func FormatCaption(name string) string {
	return fmt.Sprintf("Price chart for 🎁 %s (12h) ✨", name)
}

// FormatNoData reports an empty price window.
func FormatNoData(name string) string {
	return fmt.Sprintf("Sorry, I couldn't find any price history for '%s' in the last 12 hours. Please try again later! 📈", html.EscapeString(name))
}

// FormatNoCurrentPrice reports a failed current price lookup.
func FormatNoCurrentPrice() string {
	return "Sorry, couldn't get current price. Please try again later! 📈"
}

// FormatRenderFailed reports a chart or card that couldn't be drawn.
func FormatRenderFailed() string {
	return "Sorry, I couldn't generate the card. Please try again later! 😔"
}

// FormatSourceDown reports an unreachable marketplace.
func FormatSourceDown() string {
	return "Sorry, the marketplace is not responding right now. Please try again later! 📡"
}

// FormatFailure is the catch-all error reply.
func FormatFailure() string {
	return "Sorry, something went wrong while processing your request. Please try again later! 😔"
}

package match

import (
	"fmt"
	"net/url"
	"strings"
)

// Share is what a player needs to invite others to a match.
type Share struct {
	URL         string `json:"url"`
	Text        string `json:"text"`
	WhatsAppURL string `json:"whatsapp_url"`
}

// ShareLinks builds the public link, invite text and WhatsApp share link for m.
func ShareLinks(baseURL string, m *Match) Share {
	link := strings.TrimRight(baseURL, "/") + "/matches/" + url.PathEscape(m.ID)
	text := fmt.Sprintf("¡Unite a jugar %s! %s", m.Sport, link)
	return Share{
		URL:         link,
		Text:        text,
		WhatsAppURL: "https://wa.me/?text=" + escapeComponent(text),
	}
}

// ContactURL returns a wa.me link that opens a chat with phone, or "" if phone has no digits.
func ContactURL(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if digits == "" {
		return ""
	}
	return "https://wa.me/" + digits
}

func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

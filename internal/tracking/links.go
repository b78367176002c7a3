// Package tracking builds the outbound links of the funnel with UTM tags.
package tracking

import (
	"net/url"
	"strings"
)

// Funnel steps, sent as utm_content.
const (
	StepWelcomePublic  = "welcome_public"
	StepWelcomeDM      = "welcome_dm"
	StepFollowUp       = "followup"
	StepMenuRencontres = "menu_rencontres"
	StepMenuAmitie     = "menu_amitie"
	StepMenuDecouverte = "menu_decouverte"
	StepKeyword        = "keyword_rencontres"
	StepHelp           = "help"
	StepAssistant      = "assistant"
)

// Links holds the campaign settings used to tag every site URL.
type Links struct {
	BaseURL     string
	Source      string
	Medium      string
	Campaign    string
	FacebookURL string
}

// SiteURL returns the site URL tagged for the given step.
// Tags are always written in the order source, medium, campaign, content.
func (l Links) SiteURL(step string) string {
	var sb strings.Builder
	sb.WriteString(l.BaseURL)
	if strings.Contains(l.BaseURL, "?") {
		sb.WriteString("&")
	} else {
		sb.WriteString("?")
	}
	sb.WriteString("utm_source=" + url.QueryEscape(l.Source))
	sb.WriteString("&utm_medium=" + url.QueryEscape(l.Medium))
	sb.WriteString("&utm_campaign=" + url.QueryEscape(l.Campaign))
	if step != "" {
		sb.WriteString("&utm_content=" + url.QueryEscape(step))
	}
	return sb.String()
}

// PrivateChatURL returns the t.me deep link that opens a private chat with the bot.
func PrivateChatURL(botUsername, payload string) string {
	u := "https://t.me/" + strings.TrimPrefix(botUsername, "@")
	if payload != "" {
		u += "?start=" + url.QueryEscape(payload)
	}
	return u
}

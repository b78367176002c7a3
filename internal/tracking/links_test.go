package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testLinks() Links {
	return Links{
		BaseURL:  "https://www.mad2moi.com/",
		Source:   "telegram",
		Medium:   "bot",
		Campaign: "non_vax_groupe",
	}
}

func TestSiteURLWithStep(t *testing.T) {
	got := testLinks().SiteURL(StepFollowUp)
	assert.Equal(t,
		"https://www.mad2moi.com/?utm_source=telegram&utm_medium=bot&utm_campaign=non_vax_groupe&utm_content=followup",
		got)
}

func TestSiteURLWithoutStep(t *testing.T) {
	got := testLinks().SiteURL("")
	assert.Equal(t, "https://www.mad2moi.com/?utm_source=telegram&utm_medium=bot&utm_campaign=non_vax_groupe", got)
}

func TestSiteURLKeepsExistingQuery(t *testing.T) {
	l := testLinks()
	l.BaseURL = "https://example.com/signup?ref=tg"
	assert.Equal(t,
		"https://example.com/signup?ref=tg&utm_source=telegram&utm_medium=bot&utm_campaign=non_vax_groupe&utm_content=help",
		l.SiteURL(StepHelp))
}

func TestPrivateChatURL(t *testing.T) {
	assert.Equal(t, "https://t.me/mad2moi_helper_bot?start=go", PrivateChatURL("@mad2moi_helper_bot", "go"))
	assert.Equal(t, "https://t.me/mad2moi_helper_bot", PrivateChatURL("mad2moi_helper_bot", ""))
}

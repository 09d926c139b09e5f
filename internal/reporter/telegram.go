package reporter

import (
	"fmt"
	"html"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"go-leadscout-automation/internal/scraper"
)

// Telegram messages cap out at 4096 chars; long posts get truncated well
// below that so the lead card stays readable.
const maxPostPreview = 300

type TelegramReporter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramReporter(token string, chatID int64) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &TelegramReporter{
		bot:    bot,
		chatID: chatID,
	}, nil
}

func (t *TelegramReporter) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML"
	_, err := t.bot.Send(msg)
	return err
}

// SendLead posts one accepted lead card with progress against the goal.
func (t *TelegramReporter) SendLead(lead scraper.Lead, found, goal int) error {
	preview := lead.Text
	if len(preview) > maxPostPreview {
		preview = preview[:maxPostPreview] + "…"
	}

	text := fmt.Sprintf(
		"🎯 <b>Lead %d/%d</b>\n"+
			"👤 %s\n"+
			"🤖 %s\n"+
			"📄 %s\n"+
			"🔗 <a href=\"%s\">View Post</a>",
		found, goal,
		html.EscapeString(lead.Author),
		html.EscapeString(lead.Reason),
		html.EscapeString(preview),
		lead.Link,
	)
	return t.SendMessage(text)
}

func (t *TelegramReporter) SendStatus(message string) error {
	return t.SendMessage("ℹ️ " + html.EscapeString(message))
}

func (t *TelegramReporter) SendError(errReq error) error {
	return t.SendMessage(fmt.Sprintf("⚠️ <b>Lead Scout Error</b>:\n%s", html.EscapeString(errReq.Error())))
}

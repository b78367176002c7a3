package logger

import (
	"strconv"

	"github.com/go-telegram/bot/models"
)

const colorBrightCyan = "\033[96m"

// TgLogger prefixes every line with the Telegram chat or user it concerns.
type TgLogger struct {
	chatID int64
}

// ForUpdate picks the chat of a message or the sender of a callback query.
func ForUpdate(u *models.Update) TgLogger {
	var chatID int64
	switch {
	case u == nil:
	case u.Message != nil:
		chatID = u.Message.Chat.ID
	case u.CallbackQuery != nil:
		chatID = u.CallbackQuery.From.ID
	}
	return TgLogger{chatID: chatID}
}

func ForUser(userID int64) TgLogger {
	return TgLogger{chatID: userID}
}

func (l TgLogger) prefix() string {
	if l.chatID == 0 {
		return ""
	}
	id := "[" + strconv.FormatInt(l.chatID, 10) + "]"
	if noColor.Load() {
		return id + " "
	}
	return colorBrightCyan + id + colorReset + " "
}

func (l TgLogger) Infof(format string, args ...any) {
	Infof(l.prefix()+format, args...)
}

func (l TgLogger) Debugf(format string, args ...any) {
	Debugf(l.prefix()+format, args...)
}

func (l TgLogger) Warnf(format string, args ...any) {
	Warnf(l.prefix()+format, args...)
}

func (l TgLogger) Errorf(format string, args ...any) {
	Errorf(l.prefix()+format, args...)
}

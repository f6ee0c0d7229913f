package notify

import (
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"lottokit/internal/pkg/models"
)

// TelegramNotifier announces newly committed draws to a Telegram chat.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier creates a notifier. Returns nil when the bot cannot
// be created; callers treat a nil notifier as "notifications disabled".
func NewTelegramNotifier(token string, chatID int64) *TelegramNotifier {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		slog.Error("Failed to create telegram bot", "error", err)
		return nil
	}
	bot.Debug = false

	return &TelegramNotifier{bot: bot, chatID: chatID}
}

// NotifyNewDraw sends one message per committed draw.
func (n *TelegramNotifier) NotifyNewDraw(game string, rec models.DrawRecord) error {
	if n == nil || n.bot == nil {
		return nil
	}

	text := fmt.Sprintf("🎱 %s 第%s期开奖\n%s (%s)\n红球: %s\n蓝球: %s",
		strings.ToUpper(game), rec.Issue, rec.Date, rec.Week,
		formatBalls(rec.Red), formatBalls(rec.Blue))

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}

func formatBalls(balls []int) string {
	parts := make([]string, len(balls))
	for i, b := range balls {
		parts[i] = fmt.Sprintf("%02d", b)
	}
	return strings.Join(parts, " ")
}

package notify

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"safety-watch/internal/domain/entity"
	"safety-watch/internal/domain/port"
)

// TelegramNotifier pushes safety events to an operations chat.
type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier authenticates the bot token.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &TelegramNotifier{api: api, chatID: chatID}, nil
}

// NotifyTriggered sends a fired alert rule to the chat.
func (n *TelegramNotifier) NotifyTriggered(ctx context.Context, alert entity.TriggeredAlert) error {
	text := fmt.Sprintf("⚠️ Alert %q fired: %s detected with confidence %.2f",
		alert.RuleName, alert.Label, alert.Confidence)
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("send telegram alert: %w", err)
	}
	return nil
}

// NotifyCritical sends an escalated criticality assessment to the chat.
func (n *TelegramNotifier) NotifyCritical(ctx context.Context, assessment entity.Assessment) error {
	var b strings.Builder
	b.WriteString("🚨 CRITICAL equipment assessment\n")
	if len(assessment.CriticalItems) > 0 {
		b.WriteString("Missing critical: " + strings.Join(assessment.CriticalItems, ", ") + "\n")
	}
	for _, rec := range assessment.Recommendations {
		b.WriteString("• " + rec + "\n")
	}
	msg := tgbotapi.NewMessage(n.chatID, b.String())
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("send telegram assessment: %w", err)
	}
	return nil
}

var _ port.AlertNotifier = (*TelegramNotifier)(nil)

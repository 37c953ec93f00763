package telegram

import (
	"context"
	"fmt"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/GymMembers/internal/models"
)

// Notifier posts membership changes to a single operator chat
type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
	logger *logrus.Logger
}

// NewNotifier creates a notifier talking to the public Telegram Bot API
func NewNotifier(token string, chatID int64, logger *logrus.Logger) (*Notifier, error) {
	return NewNotifierWithEndpoint(token, tgbotapi.APIEndpoint, &http.Client{}, chatID, logger)
}

// NewNotifierWithEndpoint creates a notifier against a custom Bot API endpoint.
// endpoint is a format string taking the token and the method name.
func NewNotifierWithEndpoint(token, endpoint string, client tgbotapi.HTTPClient, chatID int64, logger *logrus.Logger) (*Notifier, error) {
	api, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	logger.Infof("Authorized on account %s", api.Self.UserName)

	return &Notifier{api: api, chatID: chatID, logger: logger}, nil
}

// MemberAdded announces a newly created member
func (n *Notifier) MemberAdded(ctx context.Context, m *models.Member) error {
	return n.SendMessage(fmt.Sprintf("\U0001F3CB New member: %s <%s>\n%s membership since %s",
		m.Name, m.Email, m.MembershipType, m.JoinDate))
}

// MemberRemoved announces a deleted member
func (n *Notifier) MemberRemoved(ctx context.Context, m *models.Member) error {
	return n.SendMessage(fmt.Sprintf("❌ Member removed: %s <%s>", m.Name, m.Email))
}

// SendMessage sends a plain text message to the operator chat.
// Member names are user input, so no parse mode is applied.
func (n *Notifier) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(n.chatID, text)

	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

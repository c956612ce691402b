// Package telegram delivers generated PDF files to the configured
// group chats through the Bot API.
package telegram

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// DocumentSender sends one file to one chat. Handlers depend on this
// interface so tests can swap in a recorder.
type DocumentSender interface {
	SendDocument(chatID, filename string, data []byte, caption string) error
}

// Bot is the Bot API backed sender.
type Bot struct {
	api *tgbotapi.BotAPI
}

// New authorizes the bot with the given token.
func New(token string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("authorize telegram bot: %w", err)
	}
	return &Bot{api: api}, nil
}

// SendDocument uploads data as a document. Numeric chat IDs address
// groups and users, anything else is treated as a channel username.
func (b *Bot) SendDocument(chatID, filename string, data []byte, caption string) error {
	doc := tgbotapi.NewDocument(0, tgbotapi.FileBytes{
		Name:  filename,
		Bytes: data,
	})
	doc.Caption = caption

	id := strings.TrimSpace(chatID)
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		doc.ChatID = n
	} else {
		doc.ChannelUsername = id
	}

	if _, err := b.api.Send(doc); err != nil {
		return fmt.Errorf("send document to %s: %w", chatID, err)
	}
	return nil
}

package chat

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/fineduca/backend/core"
)

// FallbackReply is returned to the user when the assistant provider fails.
const FallbackReply = "Desculpe, não consegui formular uma resposta agora."

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Conversation is an explicit dialogue context. The full history is handed
// to the assistant on every call, so conversations are independent values
// rather than hidden provider state.
type Conversation struct {
	messages []Message
}

// Messages returns a copy of the history.
func (c *Conversation) Messages() []Message {
	return append([]Message(nil), c.messages...)
}

func (c *Conversation) append(role Role, text string) {
	c.messages = append(c.messages, Message{Role: role, Text: text})
}

// Assistant produces a reply to a message given the preceding history.
type Assistant interface {
	Chat(ctx context.Context, history []Message, message string) (string, error)
}

// Service owns one conversation per user and relays messages to the
// assistant.
type Service struct {
	mu            sync.Mutex
	conversations map[string]*Conversation
	assistant     Assistant
	logger        core.Logger
}

func NewService(assistant Assistant, logger core.Logger) *Service {
	return &Service{
		conversations: make(map[string]*Conversation),
		assistant:     assistant,
		logger:        logger,
	}
}

// Send relays a message within the user's conversation and returns the
// reply. On provider failure the conversation is left untouched and the
// fallback apology is returned alongside the error, for the caller to
// surface inline.
func (svc *Service) Send(ctx context.Context, userID, message string) (string, error) {
	message = core.CleanString(message)
	if message == "" {
		return "", core.NewValidationError(errors.New("empty message"),
			core.FieldError{Field: "message", Error: "this field is required"})
	}

	svc.mu.Lock()
	conv, ok := svc.conversations[userID]
	if !ok {
		conv = &Conversation{}
		svc.conversations[userID] = conv
	}
	history := conv.Messages()
	svc.mu.Unlock()

	reply, err := svc.assistant.Chat(ctx, history, message)
	if err != nil {
		svc.logger.Error("assistant call failed", err)
		return FallbackReply, errors.Wrap(err, "sending chat message")
	}
	if reply == "" {
		reply = FallbackReply
	}

	svc.mu.Lock()
	conv.append(RoleUser, message)
	conv.append(RoleModel, reply)
	svc.mu.Unlock()
	return reply, nil
}

// Reset discards the user's conversation, e.g. on sign-out.
func (svc *Service) Reset(userID string) {
	svc.mu.Lock()
	delete(svc.conversations, userID)
	svc.mu.Unlock()
}

// History returns the user's conversation so far.
func (svc *Service) History(userID string) []Message {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if conv, ok := svc.conversations[userID]; ok {
		return conv.Messages()
	}
	return nil
}

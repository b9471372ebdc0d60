package chat

import (
	"context"
	"testing"

	"github.com/pkg/errors"

	testutil "github.com/fineduca/backend/tests"
)

type fakeAssistant struct {
	reply     string
	err       error
	histories [][]Message
}

func (a *fakeAssistant) Chat(ctx context.Context, history []Message, message string) (string, error) {
	a.histories = append(a.histories, history)
	return a.reply, a.err
}

func TestSend(t *testing.T) {
	assistant := &fakeAssistant{reply: "Olá! 👋"}
	svc := NewService(assistant, testutil.Logger(t))

	reply, err := svc.Send(context.Background(), "usr-1", "O que é CDB?")
	if err != nil {
		t.Fatalf("Send() failed: %v", err)
	}
	if reply != "Olá! 👋" {
		t.Errorf("reply = %q", reply)
	}
	if len(assistant.histories[0]) != 0 {
		t.Errorf("first call history = %d messages, want 0", len(assistant.histories[0]))
	}

	// the second message carries the whole prior exchange
	if _, err = svc.Send(context.Background(), "usr-1", "E LCI?"); err != nil {
		t.Fatalf("Send() failed: %v", err)
	}
	hist := assistant.histories[1]
	if len(hist) != 2 || hist[0].Role != RoleUser || hist[1].Role != RoleModel {
		t.Errorf("second call history = %+v", hist)
	}

	// conversations are per user
	if _, err = svc.Send(context.Background(), "usr-2", "Oi"); err != nil {
		t.Fatalf("Send() failed: %v", err)
	}
	if len(assistant.histories[2]) != 0 {
		t.Error("conversations leak across users")
	}
}

func TestSendProviderFailure(t *testing.T) {
	assistant := &fakeAssistant{err: errors.New("provider down")}
	svc := NewService(assistant, testutil.Logger(t))

	reply, err := svc.Send(context.Background(), "usr-1", "Oi")
	if err == nil {
		t.Fatal("Send() error = nil, want provider failure")
	}
	if reply != FallbackReply {
		t.Errorf("reply = %q, want fallback apology", reply)
	}
	// failed exchanges are not recorded
	if got := svc.History("usr-1"); len(got) != 0 {
		t.Errorf("history = %+v, want empty", got)
	}
}

func TestSendValidation(t *testing.T) {
	svc := NewService(&fakeAssistant{reply: "oi"}, testutil.Logger(t))
	if _, err := svc.Send(context.Background(), "usr-1", "   "); err == nil {
		t.Error("Send(blank) error = nil, want validation error")
	}
}

func TestReset(t *testing.T) {
	svc := NewService(&fakeAssistant{reply: "oi"}, testutil.Logger(t))
	_, _ = svc.Send(context.Background(), "usr-1", "Olá")
	svc.Reset("usr-1")
	if got := svc.History("usr-1"); len(got) != 0 {
		t.Errorf("history after Reset() = %+v, want empty", got)
	}
}

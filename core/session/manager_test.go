package session

import (
	"testing"
	"time"
)

func TestManagerEstablish(t *testing.T) {
	m := NewManager("secret")

	var events []Event
	m.Subscribe(func(evt Event, sess Session) { events = append(events, evt) })

	token, err := m.NewToken("usr-1", "t@test.test", "Test User", time.Hour)
	if err != nil {
		t.Fatalf("NewToken() failed: %v", err)
	}

	sess, evt, err := m.Establish(token)
	if err != nil {
		t.Fatalf("Establish() failed: %v", err)
	}
	if evt != SignedIn {
		t.Errorf("Establish() event = %q, want %q", evt, SignedIn)
	}
	if sess.UserID != "usr-1" || sess.Email != "t@test.test" || sess.FullName != "Test User" {
		t.Errorf("Establish() session = %+v", sess)
	}

	// same token again: no transition
	_, evt, err = m.Establish(token)
	if err != nil {
		t.Fatalf("Establish() failed: %v", err)
	}
	if evt != "" {
		t.Errorf("repeat Establish() event = %q, want none", evt)
	}

	// fresh token for the same user: refresh
	refreshed, _ := m.NewToken("usr-1", "t@test.test", "Test User", 2*time.Hour)
	_, evt, err = m.Establish(refreshed)
	if err != nil {
		t.Fatalf("Establish() failed: %v", err)
	}
	if evt != TokenRefreshed {
		t.Errorf("refreshed Establish() event = %q, want %q", evt, TokenRefreshed)
	}

	m.SignOut("usr-1")
	if _, ok := m.Current("usr-1"); ok {
		t.Error("Current() after SignOut() reports an active session")
	}
	m.SignOut("usr-1") // unknown user: no event

	want := []Event{SignedIn, TokenRefreshed, SignedOut}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i, evt := range want {
		if events[i] != evt {
			t.Errorf("events[%d] = %q, want %q", i, events[i], evt)
		}
	}
}

func TestManagerVerify(t *testing.T) {
	m := NewManager("secret")

	expired, _ := m.NewToken("usr-1", "", "", -time.Hour)
	other := NewManager("other-secret")
	forged, _ := other.NewToken("usr-1", "", "", time.Hour)
	missingSub, _ := m.NewToken("", "", "", time.Hour)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "no token", wantErr: ErrInvalidToken},
		{name: "garbage", token: "lol.lmao.sig", wantErr: ErrInvalidToken},
		{name: "expired", token: expired, wantErr: ErrInvalidToken},
		{name: "wrong key", token: forged, wantErr: ErrInvalidToken},
		{name: "no subject", token: missingSub, wantErr: ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.Verify(tt.token); err != tt.wantErr {
				t.Errorf("Verify() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	valid, _ := m.NewToken("usr-1", "", "", time.Hour)
	if _, err := m.Verify(valid); err != nil {
		t.Errorf("Verify(valid) error = %v", err)
	}
}

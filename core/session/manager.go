package session

import (
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

var (
	ErrInvalidToken = errors.New("invalid or expired session token")
	ErrNoSession    = errors.New("no active session")

	nowFunc = time.Now // mockable
)

// Listener is notified of every session transition. sess is the session the
// event applies to; for SignedOut it is the session that was torn down.
type Listener func(evt Event, sess Session)

// Manager owns the authentication session lifecycle. The auth protocol itself
// (credentials, issuance) belongs to the external provider; the Manager only
// verifies the provider's tokens and tracks which users currently hold an
// established session, notifying subscribers on transitions.
type Manager struct {
	mu        sync.RWMutex
	secretKey []byte
	sessions  map[string]Session // keyed by user ID
	listeners []Listener
}

func NewManager(secretKey string) *Manager {
	return &Manager{
		secretKey: []byte(secretKey),
		sessions:  make(map[string]Session),
	}
}

// Subscribe registers a transition listener. Listeners run synchronously, in
// subscription order, on the goroutine that triggered the transition.
func (m *Manager) Subscribe(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

// Verify parses and validates a provider-issued token.
func (m *Manager) Verify(token string) (Session, error) {
	claims := new(Claims)
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return m.secretKey, nil
	})
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return Session{}, ErrInvalidToken
	}
	return fromClaims(token, claims), nil
}

// Establish verifies the token and records the session, reporting which
// transition (if any) it caused: SignedIn for a new session, TokenRefreshed
// when an established user re-appears with a fresh token, "" when the exact
// session is already current.
func (m *Manager) Establish(token string) (Session, Event, error) {
	sess, err := m.Verify(token)
	if err != nil {
		return Session{}, "", err
	}

	m.mu.Lock()
	prev, ok := m.sessions[sess.UserID]
	m.sessions[sess.UserID] = sess
	listeners := m.snapshotListeners()
	m.mu.Unlock()

	var evt Event
	switch {
	case !ok:
		evt = SignedIn
	case prev.Token != sess.Token:
		evt = TokenRefreshed
	default:
		return sess, "", nil
	}
	notify(listeners, evt, sess)
	return sess, evt, nil
}

// SignOut tears down the user's session. Unknown users are a no-op.
func (m *Manager) SignOut(userID string) {
	m.mu.Lock()
	sess, ok := m.sessions[userID]
	delete(m.sessions, userID)
	listeners := m.snapshotListeners()
	m.mu.Unlock()

	if ok {
		notify(listeners, SignedOut, sess)
	}
}

// Current returns the user's established session, if any.
func (m *Manager) Current(userID string) (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[userID]
	return sess, ok
}

func (m *Manager) snapshotListeners() []Listener {
	ls := make([]Listener, len(m.listeners))
	copy(ls, m.listeners)
	return ls
}

func notify(listeners []Listener, evt Event, sess Session) {
	for _, l := range listeners {
		l(evt, sess)
	}
}

// NewToken signs a token for the given identity; used by tooling and tests
// (production tokens come from the auth provider, which shares the secret).
func (m *Manager) NewToken(userID, email, fullName string, ttl time.Duration) (string, error) {
	now := nowFunc()
	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   userID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
		Email:    email,
		FullName: fullName,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Harshverma1208/smartech/internal/fault"
	"github.com/Harshverma1208/smartech/internal/models"
)

// invalidCredentialsMsg deliberately does not say whether the email or the
// password was wrong.
const invalidCredentialsMsg = "invalid email or password"

// StoreProvider implements Provider against the table store: bcrypt password
// verification and a signed, expiring session token. The token is held in
// memory; persisting it across restarts is the embedding client's concern and
// is re-adopted via AdoptToken.
type StoreProvider struct {
	db     *gorm.DB
	secret string
	ttl    time.Duration

	mu      sync.Mutex
	token   string
	timer   *time.Timer
	changes chan Change
}

func NewStoreProvider(db *gorm.DB, secret string, ttl time.Duration) *StoreProvider {
	return &StoreProvider{
		db:      db,
		secret:  secret,
		ttl:     ttl,
		changes: make(chan Change, 8),
	}
}

// AdoptToken installs a previously issued token, e.g. one restored from the
// client's persistence layer. Invalid or expired tokens are ignored.
func (p *StoreProvider) AdoptToken(token string) {
	if _, err := ParseToken(p.secret, token); err != nil {
		return
	}
	p.mu.Lock()
	p.token = token
	p.mu.Unlock()
}

// Token returns the current session token, empty when signed out.
func (p *StoreProvider) Token() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.token
}

func (p *StoreProvider) CurrentSession(_ context.Context) (*User, error) {
	p.mu.Lock()
	token := p.token
	p.mu.Unlock()
	if token == "" {
		return nil, nil
	}
	u, err := ParseToken(p.secret, token)
	if err != nil {
		// Expired or tampered token: treat as no session.
		return nil, nil
	}
	return u, nil
}

func (p *StoreProvider) SignIn(ctx context.Context, email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var account models.User
	if err := p.db.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.Unauthorized(invalidCredentialsMsg)
		}
		return nil, fault.Transport("sign-in request failed", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)) != nil {
		return nil, fault.Unauthorized(invalidCredentialsMsg)
	}
	u := &User{ID: account.ID, Email: account.Email, Name: account.Name}
	token, err := IssueToken(p.secret, u, p.ttl)
	if err != nil {
		return nil, fault.Transport("could not establish session", err)
	}

	p.mu.Lock()
	p.token = token
	if p.timer != nil {
		p.timer.Stop()
	}
	// Emit an end-of-session change when the token expires, the same signal a
	// concurrent sign-out produces.
	p.timer = time.AfterFunc(p.ttl, func() {
		p.mu.Lock()
		p.token = ""
		p.mu.Unlock()
		p.emit(Change{})
	})
	p.mu.Unlock()
	return u, nil
}

func (p *StoreProvider) SignOut(_ context.Context) error {
	p.mu.Lock()
	p.token = ""
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.mu.Unlock()
	p.emit(Change{})
	return nil
}

func (p *StoreProvider) Changes() <-chan Change { return p.changes }

func (p *StoreProvider) emit(ch Change) {
	select {
	case p.changes <- ch:
	default:
	}
}

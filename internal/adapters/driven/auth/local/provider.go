package local

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shelfwise/shelfwise-cli/internal/core/domain"
	"github.com/shelfwise/shelfwise-cli/internal/core/ports/driven"
	"github.com/shelfwise/shelfwise-cli/internal/logger"
)

// Ensure Provider implements the interface.
var _ driven.AuthProvider = (*Provider)(nil)

// accountsPath is the collection holding account records.
const accountsPath = "auth_users"

// emailIndexPath is the collection mapping e-mail addresses to account
// ids. Addresses are base64url-encoded so they form valid document ids.
const emailIndexPath = "auth_emails"

// Provider is a local implementation of driven.AuthProvider.
type Provider struct {
	docs   driven.DocumentStore
	config driven.ConfigStore

	mu        sync.Mutex
	userID    string
	email     string
	observers map[int]func(driven.AuthState)
	nextObs   int
}

// NewProvider creates a provider and restores any persisted session.
func NewProvider(docs driven.DocumentStore, config driven.ConfigStore) *Provider {
	p := &Provider{
		docs:      docs,
		config:    config,
		observers: make(map[int]func(driven.AuthState)),
	}
	if id := config.GetString(driven.ConfigKeySessionUserID); id != "" {
		p.userID = id
		p.email = config.GetString(driven.ConfigKeySessionEmail)
		logger.Debug("restored session for user %s", id)
	}
	return p
}

// CurrentUserID returns the signed-in user's identifier.
func (p *Provider) CurrentUserID() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.userID == "" {
		return "", domain.ErrNotSignedIn
	}
	return p.userID, nil
}

// OnAuthStateChange registers an observer invoked on every state
// transition.
func (p *Provider) OnAuthStateChange(fn func(driven.AuthState)) driven.CancelFunc {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := p.nextObs
	p.nextObs++
	p.observers[key] = fn

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.observers, key)
	}
}

// SignIn authenticates against the stored account record.
func (p *Provider) SignIn(ctx context.Context, creds domain.Credentials) (string, error) {
	email := normalizeEmail(creds.Email)

	userID, err := p.lookupEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("unknown account: %w", domain.ErrAuthInvalid)
		}
		return "", err
	}

	account, err := p.docs.GetDocument(ctx, accountsPath+"/"+userID)
	if err != nil {
		return "", fmt.Errorf("loading account: %w", err)
	}

	salt, _ := account["salt"].(string)
	digest, _ := account["digest"].(string)
	if !verifyPassword(creds.Password, salt, digest) {
		return "", fmt.Errorf("wrong password: %w", domain.ErrAuthInvalid)
	}

	p.setSession(userID, email)
	logger.Info("signed in as %s", email)
	return userID, nil
}

// Register creates an account record and signs the user in.
func (p *Provider) Register(ctx context.Context, creds domain.Credentials) (string, error) {
	email := normalizeEmail(creds.Email)

	if _, err := p.lookupEmail(ctx, email); err == nil {
		return "", fmt.Errorf("account %s: %w", email, domain.ErrAlreadyExists)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}

	salt, digest, err := hashPassword(creds.Password)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	userID := uuid.New().String()
	if err := p.docs.SetDocument(ctx, accountsPath+"/"+userID, map[string]any{
		"email":     email,
		"salt":      salt,
		"digest":    digest,
		"createdAt": time.Now().UTC(),
	}); err != nil {
		return "", fmt.Errorf("saving account: %w", err)
	}
	if err := p.docs.SetDocument(ctx, emailIndexPath+"/"+emailKey(email), map[string]any{
		"userId": userID,
	}); err != nil {
		return "", fmt.Errorf("saving email index: %w", err)
	}

	p.setSession(userID, email)
	logger.Info("registered account %s", email)
	return userID, nil
}

// SignOut ends the current session.
func (p *Provider) SignOut(_ context.Context) error {
	p.mu.Lock()
	p.userID = ""
	p.email = ""
	observers := p.snapshotObserversLocked()
	p.mu.Unlock()

	p.config.Delete(driven.ConfigKeySessionUserID)
	p.config.Delete(driven.ConfigKeySessionEmail)
	if err := p.config.Save(); err != nil {
		logger.Warn("persisting session: %v", err)
	}

	for _, fn := range observers {
		fn(driven.AuthState{})
	}
	return nil
}

func (p *Provider) setSession(userID, email string) {
	p.mu.Lock()
	p.userID = userID
	p.email = email
	observers := p.snapshotObserversLocked()
	p.mu.Unlock()

	p.config.Set(driven.ConfigKeySessionUserID, userID)
	p.config.Set(driven.ConfigKeySessionEmail, email)
	if err := p.config.Save(); err != nil {
		logger.Warn("persisting session: %v", err)
	}

	for _, fn := range observers {
		fn(driven.AuthState{UserID: userID, Email: email})
	}
}

// snapshotObserversLocked copies the observer list so callbacks run
// without holding the provider lock.
func (p *Provider) snapshotObserversLocked() []func(driven.AuthState) {
	out := make([]func(driven.AuthState), 0, len(p.observers))
	for _, fn := range p.observers {
		out = append(out, fn)
	}
	return out
}

func (p *Provider) lookupEmail(ctx context.Context, email string) (string, error) {
	data, err := p.docs.GetDocument(ctx, emailIndexPath+"/"+emailKey(email))
	if err != nil {
		return "", err
	}
	userID, _ := data["userId"].(string)
	if userID == "" {
		return "", fmt.Errorf("email index %s: %w", email, domain.ErrNotFound)
	}
	return userID, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// emailKey encodes an address into a valid document id.
func emailKey(email string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(email))
}

func hashPassword(password string) (salt, digest string, err error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", "", err
	}
	salt = hex.EncodeToString(raw)
	sum := sha256.Sum256([]byte(salt + password))
	return salt, hex.EncodeToString(sum[:]), nil
}

func verifyPassword(password, salt, digest string) bool {
	sum := sha256.Sum256([]byte(salt + password))
	return subtle.ConstantTimeCompare([]byte(hex.EncodeToString(sum[:])), []byte(digest)) == 1
}

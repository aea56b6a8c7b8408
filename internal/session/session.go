// Package session issues and checks the signed cookie that identifies the
// logged-in user.
package session

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"butce/internal/models"
)

// CookieName is the name of the session cookie.
const CookieName = "butce_session"

const issuer = "butce"

// Claims represents the claims carried by a session token.
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Manager establishes, reads and terminates sessions.
type Manager struct {
	key    []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time // jti -> token expiry
}

// NewManager creates a Manager signing with secret. Tokens and cookies live
// for ttl; secure marks the cookie HTTPS-only.
func NewManager(secret string, ttl time.Duration, secure bool) *Manager {
	return &Manager{
		key:     []byte(secret),
		ttl:     ttl,
		secure:  secure,
		now:     time.Now,
		revoked: make(map[string]time.Time),
	}
}

// Issue signs a new session token for user.
func (m *Manager) Issue(user *models.User) (string, error) {
	jti, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}

	now := m.now()
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.key)
}

// Parse validates a token string and returns its claims.
func (m *Manager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.key, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(m.now))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	if claims.UserID == 0 {
		return nil, fmt.Errorf("session token has no user")
	}
	if m.isRevoked(claims.ID) {
		return nil, fmt.Errorf("session has ended")
	}
	return claims, nil
}

// Establish issues a token for user and stores it in the session cookie.
func (m *Manager) Establish(c *gin.Context, user *models.User) error {
	token, err := m.Issue(user)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(m.ttl.Seconds()), "/", "", m.secure, true)
	return nil
}

// CurrentUserID returns the user of the request's session, if any.
func (m *Manager) CurrentUserID(c *gin.Context) (uint, bool) {
	claims, ok := m.current(c)
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}

// Terminate ends the request's session and clears the cookie. It is safe to
// call without a session.
func (m *Manager) Terminate(c *gin.Context) {
	if claims, ok := m.current(c); ok {
		m.revoke(claims)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", m.secure, true)
}

func (m *Manager) current(c *gin.Context) (*Claims, bool) {
	raw, err := c.Cookie(CookieName)
	if err != nil || raw == "" {
		return nil, false
	}
	claims, err := m.Parse(raw)
	if err != nil {
		return nil, false
	}
	return claims, true
}

func (m *Manager) revoke(claims *Claims) {
	if claims.ID == "" || claims.ExpiresAt == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, exp := range m.revoked {
		if now.After(exp) {
			delete(m.revoked, id)
		}
	}
	m.revoked[claims.ID] = claims.ExpiresAt.Time
}

func (m *Manager) isRevoked(jti string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[jti]
	return ok
}

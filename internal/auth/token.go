package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/secondplate/restaurant-service/internal/domain"
)

// SessionTTL is the fixed lifetime of an issued session token.
const SessionTTL = 24 * time.Hour

// Sentinel errors distinguishing why verification rejected a token. A forged
// signature fails before expiry is ever looked at, so an expired token with a
// bad signature reports ErrTokenInvalid.
var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

// TokenManager issues and verifies signed session tokens. The signing secret
// is injected at construction and never changes at runtime.
type TokenManager struct {
	secret []byte
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// Claims describes the session token payload. The role tag is bound into the
// signed payload so a restaurant token cannot be reinterpreted as a user one.
type Claims struct {
	Email string         `json:"email"`
	Role  domain.RoleTag `json:"role"`
	jwt.RegisteredClaims
}

// Issue builds and signs a session token for the subject.
func (tm *TokenManager) Issue(subjectID, email string, role domain.RoleTag) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(SessionTTL)
	claims := &Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify checks signature and expiry and returns the embedded claims.
// jwt/v5 verifies the signature before validating registered claims, which
// gives the required ordering: ErrTokenExpired is only reported for tokens
// whose signature is genuine.
func (tm *TokenManager) Verify(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	if !claims.Role.Valid() {
		// tokens without a role claim predate the partition split; treat
		// them as user tokens like the original deployment did
		claims.Role = domain.RoleUser
	}
	return claims, nil
}

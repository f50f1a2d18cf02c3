package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/marketbay/storefront-api/internal/core/domain"
	"github.com/marketbay/storefront-api/internal/core/ports"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 24 * time.Hour
)

// userInfoClaims is the nested payload access tokens carry.
type userInfoClaims struct {
	Username string `json:"username"`
	Roles    []int  `json:"roles"`
}

type accessTokenClaims struct {
	UserInfo userInfoClaims `json:"UserInfo"`
	jwt.RegisteredClaims
}

// refreshTokenClaims carry identity only; roles are re-read from the user
// record when the token is exchanged.
type refreshTokenClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies the HS256 dual-token pair. Access and
// refresh tokens use separate secrets so one class can never stand in for
// the other.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	log           zerolog.Logger
}

func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration, log zerolog.Logger) *TokenService {
	if accessTTL == 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL == 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		log:           log,
	}
}

func (s *TokenService) IssueAccessToken(username string, roles []int) (string, error) {
	now := time.Now()
	claims := accessTokenClaims{
		UserInfo: userInfoClaims{Username: username, Roles: roles},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.accessSecret)
}

func (s *TokenService) IssueRefreshToken(username string) (string, error) {
	now := time.Now()
	claims := refreshTokenClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.refreshSecret)
}

// VerifyAccessToken validates signature and expiry and extracts the embedded
// identity and role set. Every failure collapses to domain.ErrInvalidToken;
// the cause is logged, never returned, so callers cannot be used as an
// oracle for why a token was rejected.
func (s *TokenService) VerifyAccessToken(token string) (*ports.AccessClaims, error) {
	claims := &accessTokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, s.keyfunc(s.accessSecret))
	if err != nil || !parsed.Valid {
		s.log.Debug().Err(err).Msg("access token rejected")
		return nil, domain.ErrInvalidToken
	}
	if claims.UserInfo.Username == "" {
		s.log.Debug().Msg("access token missing user info")
		return nil, domain.ErrInvalidToken
	}
	return &ports.AccessClaims{
		Username: claims.UserInfo.Username,
		Roles:    claims.UserInfo.Roles,
	}, nil
}

// VerifyRefreshToken validates signature and expiry of a refresh token. The
// same fail-closed collapsing applies.
func (s *TokenService) VerifyRefreshToken(token string) (*ports.RefreshClaims, error) {
	claims := &refreshTokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, s.keyfunc(s.refreshSecret))
	if err != nil || !parsed.Valid {
		s.log.Debug().Err(err).Msg("refresh token rejected")
		return nil, domain.ErrInvalidToken
	}
	if claims.Username == "" {
		return nil, domain.ErrInvalidToken
	}
	return &ports.RefreshClaims{Username: claims.Username}, nil
}

func (s *TokenService) keyfunc(secret []byte) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	}
}

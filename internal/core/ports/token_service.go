package ports

// AccessClaims is the identity a verified access token proves.
type AccessClaims struct {
	Username string
	Roles    []int
}

// RefreshClaims is the identity a verified refresh token proves. Roles are
// deliberately absent: they are re-derived from the persisted record at
// refresh time, not frozen at issuance.
type RefreshClaims struct {
	Username string
}

// TokenService issues and verifies the signed dual-token pair. Verification
// fails closed: any decode, signature, or expiry error surfaces as the same
// domain.ErrInvalidToken.
type TokenService interface {
	IssueAccessToken(username string, roles []int) (string, error)
	IssueRefreshToken(username string) (string, error)
	VerifyAccessToken(token string) (*AccessClaims, error)
	VerifyRefreshToken(token string) (*RefreshClaims, error)
}

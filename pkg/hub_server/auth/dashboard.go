package auth

import (
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const companyIDClaim = "company_id"

// DashboardClaims identifies the signed-in dashboard user.
type DashboardClaims struct {
	CompanyID string `json:"company_id"`
	UserID    string `json:"user_id"`
}

// DashboardAuthenticator verifies HS256 session tokens issued to dashboard users.
type DashboardAuthenticator struct {
	secret []byte
	skew   time.Duration
	now    func() time.Time
}

func NewDashboardAuthenticator(secret string) *DashboardAuthenticator {
	return &DashboardAuthenticator{
		secret: []byte(secret),
		skew:   30 * time.Second,
		now:    time.Now,
	}
}

func (a *DashboardAuthenticator) Verify(token string) (DashboardClaims, error) {
	if len(a.secret) == 0 || token == "" {
		return DashboardClaims{}, ErrInvalidDashboardToken
	}

	parsed, err := jwt.Parse(
		[]byte(token),
		jwt.WithKey(jwa.HS256, a.secret),
		jwt.WithValidate(true),
		jwt.WithAcceptableSkew(a.skew),
		jwt.WithClock(jwt.ClockFunc(a.now)),
		jwt.WithRequiredClaim(companyIDClaim),
	)
	if err != nil {
		return DashboardClaims{}, fmt.Errorf("%s%w", err.Error(), ErrInvalidDashboardToken)
	}

	raw, _ := parsed.Get(companyIDClaim)
	companyID, ok := raw.(string)
	if !ok || companyID == "" || parsed.Subject() == "" {
		return DashboardClaims{}, ErrInvalidDashboardToken
	}

	return DashboardClaims{CompanyID: companyID, UserID: parsed.Subject()}, nil
}

// Issue signs a session token for the user, valid for ttl.
func (a *DashboardAuthenticator) Issue(claims DashboardClaims, ttl time.Duration) (string, error) {
	now := a.now()
	token, err := jwt.NewBuilder().
		Subject(claims.UserID).
		IssuedAt(now).
		Expiration(now.Add(ttl)).
		Claim(companyIDClaim, claims.CompanyID).
		Build()
	if err != nil {
		return "", err
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, a.secret))
	if err != nil {
		return "", err
	}
	return string(signed), nil
}

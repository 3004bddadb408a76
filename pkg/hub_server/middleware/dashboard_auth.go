package middleware

import (
	"context"
	"net/http"

	"github.com/codatende/webhookhub/pkg/hub_server/auth"
)

type DashboardVerifier interface {
	Verify(token string) (auth.DashboardClaims, error)
}

type DashboardAuth struct {
	verifier DashboardVerifier
}

func NewDashboardAuth(v DashboardVerifier) *DashboardAuth {
	return &DashboardAuth{verifier: v}
}

// Authenticate accepts the session token from the Authorization header, or from the
// access_token query parameter for clients that cannot set headers (websockets).
func (a *DashboardAuth) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			token = r.URL.Query().Get("access_token")
		}
		if token == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		claims, err := a.verifier.Verify(token)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), DASHBOARD_USER, claims)
		ctx = context.WithValue(ctx, COMPANY_ID, claims.CompanyID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

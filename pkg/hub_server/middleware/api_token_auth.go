package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/codatende/webhookhub/pkg/hub_server/auth"
	"github.com/sirupsen/logrus"
)

type APITokenAuth struct {
	auth auth.APITokenManager
}

func NewAPITokenAuth(a auth.APITokenManager) *APITokenAuth {
	return &APITokenAuth{auth: a}
}

// Authenticate resolves the API key of the request and stores the token and its company in the context.
func (a *APITokenAuth) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := apiTokenFromRequest(r)
		if tokenString == "" {
			WriteError(w, http.StatusUnauthorized, CodeAuthRequired, "API key required")
			return
		}

		token, err := a.auth.Authenticate(r.Context(), time.Now().Unix(), auth.APITokenString(tokenString))
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredAPIToken):
				WriteError(w, http.StatusUnauthorized, CodeKeyExpired, err.Error())
			case auth.IsAuthenticationError(err), errors.Is(err, auth.ErrAPITokenNotFound):
				WriteError(w, http.StatusUnauthorized, CodeInvalidKey, err.Error())
			default:
				logrus.Errorf("failed to authenticate API key: %v", err)
				WriteError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
			}
			return
		}

		markLogIdentity(r.Context(), token.CompanyID, token.ID)
		ctx := context.WithValue(r.Context(), API_TOKEN, token)
		ctx = context.WithValue(ctx, COMPANY_ID, token.CompanyID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequirePermission rejects requests whose token lacks the permission.
func RequirePermission(p auth.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := r.Context().Value(API_TOKEN).(auth.APIToken)
			if !ok {
				WriteError(w, http.StatusUnauthorized, CodeAuthRequired, "API key required")
				return
			}
			if !auth.HasPermission(token.Permissions, p) {
				WriteError(w, http.StatusForbidden, CodeForbidden, "missing permission "+string(p))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func apiTokenFromRequest(r *http.Request) string {
	if key := strings.TrimSpace(r.Header.Get("x-api-key")); key != "" {
		return key
	}
	if token := bearerToken(r); token != "" {
		return token
	}
	return strings.TrimSpace(r.URL.Query().Get("api_key"))
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

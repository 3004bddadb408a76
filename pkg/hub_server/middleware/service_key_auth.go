package middleware

import (
	"crypto/subtle"
	"net/http"
)

// ServiceKeyAuth guards internal endpoints called by trusted backends with a shared key.
type ServiceKeyAuth struct {
	key string
}

func NewServiceKeyAuth(key string) *ServiceKeyAuth {
	return &ServiceKeyAuth{key: key}
}

func (a *ServiceKeyAuth) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		presented := bearerToken(r)
		if presented == "" {
			presented = r.Header.Get("apikey")
		}
		if a.key == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(a.key)) != 1 {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

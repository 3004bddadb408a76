package middleware

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

func TimeTrace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logrus.Debugf("Request %s %s returned in %s.", r.Method, r.URL.Path, time.Since(start))
	})
}

package middleware

import (
	"net/http"

	"streamhouse/api/internal/i18n"
)

// LanguageMiddleware picks the response language from the lang query
// parameter, then Accept-Language, then the configured default.
func LanguageMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tag := i18n.Resolve(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))

		w.Header().Set("Content-Language", tag.String())
		ctx := i18n.WithLanguage(r.Context(), tag)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

package ui

import (
	"context"
	"net/http"

	"golang.org/x/text/language"
)

type contextKey string

const localeContextKey contextKey = "locale"

// LocaleFromContext returns the request locale, or the fallback locale if none was set.
func LocaleFromContext(ctx context.Context) language.Tag {
	if tag, ok := ctx.Value(localeContextKey).(language.Tag); ok {
		return tag
	}
	return supportedLocales[0]
}

// LocaleMiddleware resolves the Accept-Language header and adds the locale to the
// request context.
func LocaleMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tag := matchLocale(r.Header.Get("Accept-Language"))
		ctx := context.WithValue(r.Context(), localeContextKey, tag)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

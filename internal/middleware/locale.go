package middleware

import (
	"context"
	"net/http"

	"golang.org/x/text/language"
)

type localeContextKey struct{}

// LocaleKey carries the negotiated UI locale through the request context.
var LocaleKey = localeContextKey{}

var supportedLocales = []language.Tag{
	language.English, // default
	language.Hindi,
	language.Indonesian,
}

var localeMatcher = language.NewMatcher(supportedLocales)

// Locale negotiates the request locale from the Accept-Language header
// against the supported set and stores the result in the context.
func Locale(defaultLocale string) func(http.Handler) http.Handler {
	fallback, err := language.Parse(defaultLocale)
	if err != nil {
		fallback = language.English
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tag := fallback
			if header := r.Header.Get("Accept-Language"); header != "" {
				if prefs, _, err := language.ParseAcceptLanguage(header); err == nil && len(prefs) > 0 {
					matched, _, conf := localeMatcher.Match(prefs...)
					if conf > language.No {
						tag = matched
					}
				}
			}
			base, _ := tag.Base()
			ctx := context.WithValue(r.Context(), LocaleKey, base.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(LocaleKey).(string); ok {
		return v
	}
	return ""
}

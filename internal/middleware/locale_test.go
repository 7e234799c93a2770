package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func localeProbe(got *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = LocaleFromContext(r.Context())
	})
}

func TestLocaleMatchesAcceptLanguage(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"hi-IN,hi;q=0.9,en;q=0.6", "hi"},
		{"id-ID", "id"},
		{"en-US,en;q=0.9", "en"},
		{"fr-FR", "en"}, // unsupported falls back to the default
		{"", "en"},
		{"garbage;;;", "en"},
	}
	for _, tc := range cases {
		var got string
		handler := Locale("en")(localeProbe(&got))
		req := httptest.NewRequest("GET", "/", nil)
		if tc.header != "" {
			req.Header.Set("Accept-Language", tc.header)
		}
		handler.ServeHTTP(httptest.NewRecorder(), req)
		if got != tc.want {
			t.Errorf("Accept-Language %q: locale = %q, want %q", tc.header, got, tc.want)
		}
	}
}

func TestCountryPrefersCDNHeader(t *testing.T) {
	var got string
	handler := Country(func(string) (string, error) { return "US", nil })(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = CountryFromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("CF-IPCountry", "in")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if got != "IN" {
		t.Fatalf("country = %q, want IN", got)
	}
}

func TestCountryFallsBackToLookup(t *testing.T) {
	var got string
	handler := Country(func(ip string) (string, error) { return "NP", nil })(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = CountryFromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "203.0.113.9:4567"
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if got != "NP" {
		t.Fatalf("country = %q, want NP", got)
	}
}

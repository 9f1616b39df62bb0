package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

type localeContextKey struct{}
type countryContextKey struct{}

var (
	LocaleKey  = localeContextKey{}
	CountryKey = countryContextKey{}
)

const (
	LocaleFrench  = "fr"
	LocaleEnglish = "en"
)

// DefaultLocale is used when neither headers nor country give a hint.
const DefaultLocale = LocaleFrench

var localeMatcher = language.NewMatcher([]language.Tag{language.French, language.English})

// francophoneCountries route visitors without a language preference to French.
var francophoneCountries = map[string]struct{}{
	"FR": {}, "BE": {}, "CH": {}, "LU": {}, "MC": {}, "CA": {},
	"SN": {}, "CI": {}, "ML": {}, "BF": {}, "NE": {}, "TG": {},
	"BJ": {}, "GN": {}, "CM": {}, "GA": {}, "CG": {}, "CD": {},
	"MG": {}, "TN": {}, "MA": {}, "DZ": {}, "HT": {}, "RE": {},
	"GP": {}, "MQ": {}, "GF": {}, "NC": {}, "PF": {},
}

// CountryLookup resolves ISO country codes for an IP address.
type CountryLookup func(ip string) (string, error)

func I18N(defaultLocale string, lookup CountryLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			country := ResolveCountry(r, lookup)
			locale := detectLocale(r, defaultLocale, country)
			ctx := context.WithValue(r.Context(), LocaleKey, locale)
			if country != "" {
				ctx = context.WithValue(ctx, CountryKey, strings.ToUpper(country))
			}
			w.Header().Set("Content-Language", locale)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func detectLocale(r *http.Request, fallback string, country string) string {
	if v := NormalizeLocale(r.Header.Get("X-Locale")); v != "" {
		return v
	}
	if v := matchAcceptLanguage(r.Header.Get("Accept-Language")); v != "" {
		return v
	}
	if country != "" {
		if _, ok := francophoneCountries[strings.ToUpper(country)]; ok {
			return LocaleFrench
		}
		return LocaleEnglish
	}
	if v := NormalizeLocale(fallback); v != "" {
		return v
	}
	return DefaultLocale
}

// matchAcceptLanguage returns the supported locale that best fits the header,
// or "" when none of the listed languages is close to French or English.
func matchAcceptLanguage(header string) string {
	if strings.TrimSpace(header) == "" {
		return ""
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return ""
	}
	tag, _, conf := localeMatcher.Match(tags...)
	if conf == language.No {
		return ""
	}
	return baseLocale(tag)
}

// NormalizeLocale maps a BCP 47 tag such as "fr-CA" to a supported locale.
// Unsupported or malformed tags yield "".
func NormalizeLocale(locale string) string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return ""
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return ""
	}
	switch base := baseLocale(tag); base {
	case LocaleFrench, LocaleEnglish:
		return base
	}
	return ""
}

func baseLocale(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}

// ClientIP returns the best-effort client IP address for the request.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		parts := strings.Split(xf, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(LocaleKey).(string); ok && v != "" {
		return v
	}
	return DefaultLocale
}

// ContextWithLocale overrides the request language.
func ContextWithLocale(ctx context.Context, locale string) context.Context {
	if v := NormalizeLocale(locale); v != "" {
		return context.WithValue(ctx, LocaleKey, v)
	}
	return ctx
}

// CountryFromContext returns the ISO country code stored in the request context.
func CountryFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CountryKey).(string); ok {
		return v
	}
	return ""
}

// ResolveCountry resolves a best-effort ISO country code for the given request.
func ResolveCountry(r *http.Request, lookup CountryLookup) string {
	if r == nil {
		return ""
	}
	headerHints := []string{"X-Country-Code", "X-IP-Country", "CF-IPCountry", "X-Appengine-Country"}
	for _, key := range headerHints {
		if val := strings.TrimSpace(r.Header.Get(key)); val != "" {
			return strings.ToUpper(val)
		}
	}
	if region := localeRegion(r.Header.Get("X-Locale")); region != "" {
		return region
	}
	if region := localeRegion(r.Header.Get("Accept-Language")); region != "" {
		return region
	}
	if lookup != nil {
		if ip := ClientIP(r); ip != "" {
			if country, err := lookup(ip); err == nil && country != "" {
				return strings.ToUpper(country)
			}
		}
	}
	return ""
}

func localeRegion(accept string) string {
	for _, part := range strings.Split(accept, ",") {
		token := strings.TrimSpace(strings.Split(part, ";")[0])
		if token == "" {
			continue
		}
		if idx := strings.IndexAny(token, "-_"); idx > 0 && idx < len(token)-1 {
			return strings.ToUpper(token[idx+1:])
		}
	}
	return ""
}

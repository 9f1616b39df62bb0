package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"igpt/internal/domain"
)

type TokenClaims struct {
	Sub      string `json:"sub"`
	Role     string `json:"role,omitempty"`
	Locale   string `json:"locale,omitempty"`
	Exp      int64  `json:"exp"`
	Issuer   string `json:"iss,omitempty"`
	Audience string `json:"aud,omitempty"`
}

type identityKey struct{}

func SignJWT(secret string, claims TokenClaims) (string, error) {
	if secret == "" {
		return "", errors.New("empty signing secret")
	}
	header := map[string]string{"alg": "HS256", "typ": "JWT"}
	headerJSON, _ := json.Marshal(header)
	payloadJSON, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	headerEnc := base64.RawURLEncoding.EncodeToString(headerJSON)
	payloadEnc := base64.RawURLEncoding.EncodeToString(payloadJSON)
	data := headerEnc + "." + payloadEnc
	sig := hmacSign(secret, data)
	return data + "." + sig, nil
}

func hmacSign(secret, data string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(data))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func VerifyJWT(secret, token string) (*TokenClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, errors.New("invalid token")
	}
	expected := hmacSign(secret, parts[0]+"."+parts[1])
	if !hmac.Equal([]byte(expected), []byte(parts[2])) {
		return nil, errors.New("invalid signature")
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, err
	}
	var claims TokenClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, err
	}
	if claims.Exp != 0 && time.Now().Unix() > claims.Exp {
		return nil, errors.New("token expired")
	}
	if strings.TrimSpace(claims.Sub) == "" {
		return nil, errors.New("token without subject")
	}
	return &claims, nil
}

// Identity converts verified claims into the caller identity. Unknown roles
// are treated as plain users.
func (c TokenClaims) Identity() domain.Identity {
	role := domain.UserRoleUser
	if strings.EqualFold(c.Role, string(domain.UserRoleAdmin)) {
		role = domain.UserRoleAdmin
	}
	return domain.Identity{UserID: c.Sub, Role: role, Locale: NormalizeLocale(c.Locale)}
}

// AuthJWT rejects requests without a valid bearer token and stores the caller
// identity in the context. A locale claim overrides the detected language.
func AuthJWT(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized", "missing authorization")
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeError(w, http.StatusUnauthorized, "unauthorized", "invalid authorization")
				return
			}
			claims, err := VerifyJWT(secret, strings.TrimSpace(parts[1]))
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized", "invalid token")
				return
			}
			id := claims.Identity()
			ctx := ContextWithIdentity(r.Context(), id)
			if id.Locale != "" {
				ctx = ContextWithLocale(ctx, id.Locale)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin must run after AuthJWT.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized", "missing identity")
			return
		}
		if !id.IsAdmin() {
			writeError(w, http.StatusForbidden, "forbidden", "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(domain.Identity)
	return id, ok && id.UserID != ""
}

func UserIDFromContext(ctx context.Context) string {
	id, _ := IdentityFromContext(ctx)
	return id.UserID
}

func ContextWithIdentity(ctx context.Context, id domain.Identity) context.Context {
	if strings.TrimSpace(id.UserID) == "" {
		return ctx
	}
	return context.WithValue(ctx, identityKey{}, id)
}

func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return ContextWithIdentity(ctx, domain.Identity{UserID: userID, Role: domain.UserRoleUser})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// ctxSubjectKey is the context key type for the authenticated subject.
type ctxSubjectKey struct{}

// subject returns the token subject, or "" when auth is off.
func subject(r *http.Request) string {
	sub, _ := r.Context().Value(ctxSubjectKey{}).(string)
	return sub
}

type tokenReq struct {
	APIKey string `json:"apiKey"`
	Client string `json:"client"` // becomes the token subject; default "api"
}

type tokenRes struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// handleToken exchanges the configured API key for a signed JWT.
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if s.opts.JWTSecret == "" || s.opts.APIKeyHash == "" {
		writeError(w, http.StatusNotFound, "auth_disabled")
		return
	}
	var req tokenReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(s.opts.APIKeyHash), []byte(req.APIKey)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid_api_key")
		return
	}
	sub := strings.TrimSpace(req.Client)
	if sub == "" {
		sub = "api"
	}
	tok, exp, err := s.signJWT(sub)
	if err != nil {
		log.Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	_ = json.NewEncoder(w).Encode(tokenRes{Token: tok, ExpiresAt: exp})
}

// signJWT creates an HS256 JWT for sub.
func (s *Server) signJWT(sub string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.opts.JWTExpiry)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sub,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := t.SignedString([]byte(s.opts.JWTSecret))
	return ss, exp.UTC(), err
}

// requireAuth enforces a valid bearer JWT and puts its subject into the
// request context. Without a configured secret it lets every request through.
func (s *Server) requireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if s.opts.JWTSecret == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearer(r)
			if tokenStr == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			claims := &jwt.RegisteredClaims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
				return []byte(s.opts.JWTSecret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid || claims.Subject == "" {
				writeError(w, http.StatusUnauthorized, "invalid_token")
				return
			}
			ctx := context.WithValue(r.Context(), ctxSubjectKey{}, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearer extracts a bearer token from the Authorization header.
func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

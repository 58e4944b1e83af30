// auth.go - JWT bearer authentication gate.
//
// Every protected endpoint is fronted by requireAuth, which checks the
// Authorization header against a shared HS256 secret. An empty secret
// disables authentication entirely; this is an explicit operator opt-out.
// The server only verifies tokens, it never issues them.
package server

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims is the payload a submission token carries: which lab or
// tool originated it and when it was generated, plus the registered
// claims (exp is required and validated).
type tokenClaims struct {
	Origin  string `json:"origin"`
	Gendate string `json:"gendate"`
	jwt.RegisteredClaims
}

type authConfig struct {
	secret string
}

var (
	errMissingCredential   = errors.New("authorization bearer token is required")
	errMalformedCredential = errors.New("authorization header is not a bearer credential")
)

// verifyRequest checks the request's bearer credential against the shared
// secret. It is a pure predicate: no state is touched on either outcome.
func (a authConfig) verifyRequest(r *http.Request) error {
	if a.secret == "" {
		return nil
	}

	header := r.Header.Get("Authorization")
	if header == "" {
		return errMissingCredential
	}

	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return errMalformedCredential
	}

	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(parts[1], claims,
		func(t *jwt.Token) (any, error) { return []byte(a.secret), nil },
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		// Surface the verifier's own message (bad signature, expired,
		// malformed claims) to the client.
		return err
	}
	return nil
}

// requireAuth guards an endpoint behind the authentication gate. A failed
// check answers 401 with the error envelope and increments the error
// counter exactly once.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.auth.verifyRequest(r); err != nil {
			rid := RequestIDFromContext(r.Context())
			log.Printf("rid=%s msg=auth_failed path=%s err=%v", rid, r.URL.Path, err)
			s.metrics.RecordError()
			writeAnswer(w, http.StatusUnauthorized, "0", "error", err.Error())
			return
		}
		next(w, r)
	}
}

// handleAuthTest lets a client verify its credential without side effects.
func (s *Server) handleAuthTest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeAnswer(w, http.StatusOK, "0", "ok", "Authentication successful")
}

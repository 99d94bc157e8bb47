package utils

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoIdentity is returned when a token carries no usable subject. Callers
// must treat it as unauthenticated, never as an anonymous user.
var ErrNoIdentity = errors.New("token carries no subject claim")

// ExtractSubject reads the sub claim out of a JWT's payload segment without
// verifying the signature. Signature, issuer and lifetime checks belong to
// the auth middleware; this is the fallback for handlers that need the raw
// claim outside the middleware's context values.
func ExtractSubject(token string) (string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", ErrNoIdentity
	}

	payload := parts[1]
	if rem := len(payload) % 4; rem != 0 {
		payload += strings.Repeat("=", 4-rem)
	}
	raw, err := base64.URLEncoding.DecodeString(payload)
	if err != nil {
		return "", ErrNoIdentity
	}

	var claims struct {
		Sub string `json:"sub"`
	}
	if err := json.Unmarshal(raw, &claims); err != nil || claims.Sub == "" {
		return "", ErrNoIdentity
	}
	return claims.Sub, nil
}

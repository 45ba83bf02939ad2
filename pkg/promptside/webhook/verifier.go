package webhook

import (
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrVerification reports a payload whose signature did not validate or
	// whose structure was not a well-formed signed token.
	ErrVerification = errors.New("webhook: payload verification failed")

	// ErrBadClaims reports a verified token whose claim set was not usable.
	ErrBadClaims = errors.New("webhook: invalid claims")
)

// Verifier validates inbound webhook payloads against one environment's
// public key.
type Verifier struct {
	key    *rsa.PublicKey
	parser *jwt.Parser
}

// NewVerifier builds a Verifier from a PEM-encoded RSA public key, normally
// the WebhookPublicKey carried on a promptside.Client.
func NewVerifier(publicKeyPEM []byte) (*Verifier, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("webhook: parse public key: %w", err)
	}

	return &Verifier{
		key: key,
		parser: jwt.NewParser(jwt.WithValidMethods([]string{
			jwt.SigningMethodRS256.Alg(),
			jwt.SigningMethodRS384.Alg(),
			jwt.SigningMethodRS512.Alg(),
		})),
	}, nil
}

// Verify validates the signed payload and decodes it into an Event. The
// error is non-nil, and the event nil, for any signature or structural
// failure; there is no partial result.
func (v *Verifier) Verify(payload string) (*Event, error) {
	claims := jwt.MapClaims{}
	token, err := v.parser.ParseWithClaims(payload, claims, func(*jwt.Token) (any, error) {
		return v.key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVerification, err)
	}
	if !token.Valid {
		return nil, ErrVerification
	}

	raw, err := json.Marshal(claims)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadClaims, err)
	}

	event := &Event{claims: raw}

	audience, err := claims.GetAudience()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadClaims, err)
	}
	if len(audience) > 0 {
		event.Audience = audience[0]
	}

	event.Subject, err = claims.GetSubject()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadClaims, err)
	}

	if jti, ok := claims["jti"]; ok {
		s, ok := jti.(string)
		if !ok {
			return nil, fmt.Errorf("%w: jti is not a string", ErrBadClaims)
		}
		event.UUID = s
	}

	if action, ok := claims["action"]; ok {
		s, ok := action.(string)
		if !ok {
			return nil, fmt.Errorf("%w: action is not a string", ErrBadClaims)
		}
		event.Action = Action(s)
	}

	return event, nil
}

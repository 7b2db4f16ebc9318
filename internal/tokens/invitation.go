// Package tokens generates and validates the signed, time-limited tokens
// embedded in group-invitation emails. Secret material is explicit
// constructor input; nothing here is process-wide state.
package tokens

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

const invitationIssuer = "goodreads-invitations"

var ErrInvalidToken = errors.New("invalid or expired invitation token")

type invitationClaims struct {
	GroupID uint `json:"group_id"`
	UserID  uint `json:"user_id"`
	jwt.RegisteredClaims
}

// InvitationTokenizer signs invitation tokens binding a group to the
// invited user.
type InvitationTokenizer struct {
	secret []byte
	ttl    time.Duration
}

func NewInvitationTokenizer(secret []byte, ttl time.Duration) *InvitationTokenizer {
	return &InvitationTokenizer{secret: secret, ttl: ttl}
}

// Generate creates a token accepting an invitation to groupID on behalf of
// userID.
func (t *InvitationTokenizer) Generate(groupID, userID uint) (string, error) {
	now := time.Now()
	claims := invitationClaims{
		GroupID: groupID,
		UserID:  userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    invitationIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign invitation token: %w", err)
	}
	return signed, nil
}

// Validate checks the token's signature and expiry and that it was issued
// for exactly this (group, user) pair.
func (t *InvitationTokenizer) Validate(tokenString string, groupID, userID uint) error {
	claims := invitationClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(tok *jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(invitationIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	if claims.GroupID != groupID || claims.UserID != userID {
		return ErrInvalidToken
	}
	return nil
}

// EncodeUID encodes a profile id for use in invitation links.
func EncodeUID(id uint) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatUint(uint64(id), 10)))
}

// DecodeUID reverses EncodeUID.
func DecodeUID(encoded string) (uint, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return 0, fmt.Errorf("invalid uid encoding: %w", err)
	}
	id, err := strconv.ParseUint(string(raw), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid uid: %w", err)
	}
	return uint(id), nil
}

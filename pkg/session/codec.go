package session

import (
	"encoding/json"
	"errors"
	"fmt"

	jwt "github.com/dgrijalva/jwt-go"

	"echoclime/pkg/claims"
)

var ErrBadRecord = errors.New("malformed session record")

// Codec turns a User into the durable slot value and back. Decode must be
// defensive: whatever is wrong with the stored value, the store falls back to
// anonymous rather than surfacing the failure.
type Codec interface {
	Encode(user User) (string, error)
	Decode(raw string) (User, error)
}

// JSONCodec stores the record as plain JSON, the original slot layout.
type JSONCodec struct{}

func (JSONCodec) Encode(user User) (string, error) {
	data, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("session: encode record: %w", err)
	}
	return string(data), nil
}

func (JSONCodec) Decode(raw string) (User, error) {
	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return User{}, fmt.Errorf("%w: %s", ErrBadRecord, err)
	}
	if user.ID == "" || user.Email == "" {
		return User{}, fmt.Errorf("%w: incomplete record", ErrBadRecord)
	}
	return user, nil
}

// SignedCodec stores the record as an HS256-signed token, so a slot that was
// edited by hand rehydrates as anonymous instead of as a forged session.
type SignedCodec struct {
	Secret []byte
}

func (c SignedCodec) Encode(user User) (string, error) {
	cl := &claims.Claims{}
	cl.User.ID = user.ID
	cl.User.Name = user.Name
	cl.User.Email = user.Email
	cl.User.Avatar = user.Avatar
	cl.IssuedAt = jwt.TimeFunc().Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, cl)
	signed, err := token.SignedString(c.Secret)
	if err != nil {
		return "", fmt.Errorf("session: sign record: %w", err)
	}
	return signed, nil
}

func (c SignedCodec) Decode(raw string) (User, error) {
	cl := &claims.Claims{}
	token, err := jwt.ParseWithClaims(raw, cl, func(token *jwt.Token) (interface{}, error) {
		method, ok := token.Method.(*jwt.SigningMethodHMAC)
		if !ok || method.Alg() != "HS256" {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return c.Secret, nil
	})
	if err != nil || !token.Valid {
		return User{}, fmt.Errorf("%w: invalid signature", ErrBadRecord)
	}
	if cl.User.ID == "" || cl.User.Email == "" {
		return User{}, fmt.Errorf("%w: incomplete record", ErrBadRecord)
	}

	return User{
		ID:     cl.User.ID,
		Name:   cl.User.Name,
		Email:  cl.User.Email,
		Avatar: cl.User.Avatar,
	}, nil
}

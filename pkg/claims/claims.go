package claims

import jwt "github.com/dgrijalva/jwt-go"

type contextKey string

const (
	SessionContextKey contextKey = "session"
)

// Claims is the payload of a signed session record. The user sub-object
// mirrors the durable slot fields exactly.
type Claims struct {
	User struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Email  string `json:"email"`
		Avatar string `json:"avatar"`
	} `json:"user"`
	jwt.StandardClaims
}

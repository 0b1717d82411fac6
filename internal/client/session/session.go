// Package session keeps the client's authentication state: the in-memory
// state machine plus its durable copy in the key-value store.
package session

import (
	"github.com/wallfeed/wallfeed/internal/dto"
)

// Keys of the durable session records.
const (
	KeyToken = "jwt_token"
	KeyUser  = "user"
)

// Session is the durable part of the client state: the access token and
// the snapshot of the signed-in user.
type Session struct {
	Token string
	User  *dto.UserSnapshot
}

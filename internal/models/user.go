// Package models defines the entities persisted by userstore repositories.
package models

import "fmt"

// User is one registered principal.
//
// ID is assigned by the repository: callers create users with a zero ID and
// receive the real one back from Add. Login is a human-chosen handle that
// should be unique (best effort, not enforced). Password is an opaque
// credential — either a bcrypt hash or a legacy plaintext value — and is
// never included in the string representation.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Login    string `json:"login"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
	Address  string `json:"address,omitempty"`
}

func (u *User) GetID() int64   { return u.ID }
func (u *User) SetID(id int64) { u.ID = id }

// String renders the user without the password.
func (u *User) String() string {
	s := fmt.Sprintf("User(id=%d, name=%q, login=%q", u.ID, u.Name, u.Login)
	if u.Email != "" {
		s += fmt.Sprintf(", email=%q", u.Email)
	}
	if u.Address != "" {
		s += fmt.Sprintf(", address=%q", u.Address)
	}
	return s + ")"
}

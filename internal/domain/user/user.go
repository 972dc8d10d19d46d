package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("credentials taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Hash      string    `json:"-"` // never expose hash in JSON
	FirstName *string   `json:"firstName"`
	LastName  *string   `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Patch carries a partial profile update. Nil fields are left unchanged.
type Patch struct {
	FirstName *string `json:"firstName" binding:"omitnil,max=100"`
	LastName  *string `json:"lastName" binding:"omitnil,max=100"`
}

type Credentials struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,max=72"`
}

type AccessToken struct {
	AccessToken string `json:"access_token"`
}

package models

import "time"

// Account roles.
const (
	RoleClient  = "client"
	RoleStylist = "stylist"
)

// Account is a login identity. Raw passwords are never persisted; only the
// bcrypt hash is stored.
type Account struct {
	ID           string    `bson:"id" json:"id"`
	Username     string    `bson:"username" json:"username"`
	Role         string    `bson:"role" json:"role"`
	Password     string    `bson:"-" json:"password,omitempty"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	TokenHash    string    `bson:"tokenHash,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

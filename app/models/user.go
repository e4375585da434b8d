package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Role is the closed set of account roles. Using a dedicated type keeps
// authorization checks from comparing against arbitrary strings.
type Role string

const (
	// RoleMaster may manage the catalog.
	RoleMaster Role = "master"
	// RoleUser is the default shopper role, assigned at registration.
	RoleUser Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleMaster || r == RoleUser
}

// User is an account document in the "users" collection.
// The username carries a unique index; the password is a bcrypt hash and is
// never serialized to clients.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username string             `bson:"username" json:"username"`
	Password string             `bson:"password" json:"-"`
	Role     Role               `bson:"role" json:"role"`
}

package user

import "github.com/uptrace/bun"

// Roles recognized by the role gate. Route guards compare exactly, there is
// no hierarchy between the two.
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID       int    `bun:"id,pk,autoincrement" json:"id"`
	Name     string `bun:"name,notnull" json:"name"`
	Email    string `bun:"email,unique,notnull" json:"email"`
	Password string `bun:"password,notnull" json:"-"` // bcrypt hash, never exposed
	Role     string `bun:"role,notnull,default:'student'" json:"role"`
}

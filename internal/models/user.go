package models

// Roles recognized by the authorization checks.
const (
	RoleAdmin  = "admin"
	RoleAuthor = "author"
)

// User identifies an authenticated API caller.
type User struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// CanEdit reports whether the user may modify a post owned by owner.
// Admins may edit anything; authors only their own posts.
func (u User) CanEdit(owner string) bool {
	return u.Role == RoleAdmin || u.Username == owner
}

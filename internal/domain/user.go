package domain

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleExpert Role = "expert"
	RoleClient Role = "client"
)

// Actor identifies the caller of an operation. It is resolved by the API
// layer from the access token and passed to services, which enforce roles.
type Actor struct {
	ID   int64 `json:"id"`
	Role Role  `json:"role"`
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

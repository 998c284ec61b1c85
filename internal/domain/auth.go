package domain

// RoleTag differentiates user vs restaurant tokens. The tag decides which
// credential partition a token resolves against; the partitions never
// cross-resolve.
type RoleTag string

const (
	RoleUser       RoleTag = "user"
	RoleRestaurant RoleTag = "restaurant"
)

// Valid reports whether the tag is one of the closed set.
func (r RoleTag) Valid() bool {
	switch r {
	case RoleUser, RoleRestaurant:
		return true
	}
	return false
}

package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent  RoleType = "student"
	RoleLecturer RoleType = "lecturer"
)

// ParseRole maps a stored role value onto the closed role set. Unknown or
// empty values resolve to student, so a stale role record never turns into
// an authorization error.
func ParseRole(value string) RoleType {
	if value == string(RoleLecturer) {
		return RoleLecturer
	}
	return RoleStudent
}

// Valid reports whether the role is one of the two known roles.
func (r RoleType) Valid() bool {
	return r == RoleStudent || r == RoleLecturer
}

// OpportunitySort selects the ordering of an opportunity listing.
type OpportunitySort string

const (
	// SortDeadline orders by application deadline, soonest first. Default.
	SortDeadline OpportunitySort = "deadline"
	// SortNewest orders by creation time, newest first.
	SortNewest OpportunitySort = "newest"
)

// ParseSort maps the `filter` query parameter onto a sort mode, defaulting
// to deadline ordering.
func ParseSort(value string) OpportunitySort {
	if value == string(SortNewest) {
		return SortNewest
	}
	return SortDeadline
}

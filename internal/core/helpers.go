package core

import "strings"

// Role is the meaning of a sheet column. Roles are matched loosely against
// header text because every sheet names its columns a little differently.
type Role string

const (
	RolePhone Role = "phone"
	RoleEmail Role = "email"
	RoleName  Role = "name"
)

// NotFound is the index reported for a role with no matching header.
const NotFound = -1

// ColumnIndex holds the resolved position of each role in a header row.
type ColumnIndex struct {
	Phone int `json:"phone"`
	Email int `json:"email"`
	Name  int `json:"name"`
}

// ResolveColumn returns the index of the first header whose lower-cased text
// contains the role, or NotFound.
func ResolveColumn(headers []string, role Role) int {
	needle := strings.ToLower(string(role))
	for i, h := range headers {
		if strings.Contains(strings.ToLower(h), needle) {
			return i
		}
	}
	return NotFound
}

// ResolveColumns resolves every role independently against headers.
func ResolveColumns(headers []string) ColumnIndex {
	return ColumnIndex{
		Phone: ResolveColumn(headers, RolePhone),
		Email: ResolveColumn(headers, RoleEmail),
		Name:  ResolveColumn(headers, RoleName),
	}
}

// For returns the index resolved for role.
func (c ColumnIndex) For(role Role) int {
	switch role {
	case RolePhone:
		return c.Phone
	case RoleEmail:
		return c.Email
	case RoleName:
		return c.Name
	default:
		return NotFound
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Role is the access level of an account. It drives visibility scoping on
// read paths and authorization on administrative writes.
type Role string

const (
	RoleResident Role = "resident"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleResident, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// SeesEverything reports whether the role reads data of all users.
// Residents see only records they own.
func (r Role) SeesEverything() bool {
	return r == RoleStaff || r == RoleAdmin
}

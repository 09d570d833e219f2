package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/greencampus/greencampus/core"
)

// Roles
const (
	RoleStudent = "Student"
	RoleFaculty = "Faculty"
	RoleAdmin   = "Admin"
)

var (
	AllRoles = []string{RoleStudent, RoleFaculty, RoleAdmin}

	// RegistrationRoles can be picked when signing up; admins are created with the admin CLI.
	RegistrationRoles = []string{RoleStudent, RoleFaculty}
)

// Capability names an operation a role is allowed to perform.
type Capability string

const (
	CapManageOwnRecords Capability = "records:manage-own"
	CapManageAllRecords Capability = "records:manage-all"
	CapStudentDashboard Capability = "dashboard:student"
	CapFacultyDashboard Capability = "dashboard:faculty"
	CapAdminDashboard   Capability = "dashboard:admin"
	CapManageGoals      Capability = "goals:manage"
	CapManageUsers      Capability = "users:manage"
)

var roleCapabilities = map[string][]Capability{
	RoleStudent: {CapManageOwnRecords, CapStudentDashboard},
	RoleFaculty: {CapManageOwnRecords, CapFacultyDashboard},
	RoleAdmin: {
		CapManageOwnRecords,
		CapManageAllRecords,
		CapAdminDashboard,
		CapManageGoals,
		CapManageUsers,
	},
}

// RoleCan reports whether `role` holds the capability.
func RoleCan(role string, cap Capability) bool {
	for _, c := range roleCapabilities[role] {
		if c == cap {
			return true
		}
	}
	return false
}

func IsValidRole(role string) bool {
	_, ok := roleCapabilities[role]
	return ok
}

type User struct {
	ID           string     `json:"id" firestore:"-" db:"id"`
	Name         string     `json:"name" firestore:"name" db:"name"`
	Email        string     `json:"email" firestore:"email" db:"email"`
	Role         string     `json:"role" firestore:"role" db:"role"`
	PasswordHash []byte     `json:"-" firestore:"passwordHash" db:"password_hash"`
	CreatedAt    time.Time  `json:"createdAt" firestore:"createdAt" db:"created_at"` // UTC
	UpdatedAt    time.Time  `json:"updatedAt" firestore:"updatedAt" db:"updated_at"` // UTC
	LastLogin    *time.Time `json:"lastLogin,omitempty" firestore:"lastLogin" db:"last_login"`
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u User) Can(cap Capability) bool { return RoleCan(u.Role, cap) }

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// Summary is the public part of a User attached to other objects.
type Summary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u User) Summary() Summary {
	return Summary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// RoleCount is the number of users holding a role.
type RoleCount struct {
	Role  string `json:"role"`
	Count int    `json:"count"`
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Name     string `json:"name" validate:"required,notblank"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,role"`
}

// Validate cleans the input and applies the field rules and the password policy.
func (nu *NewUser) Validate(v *core.Validator) error {
	nu.Name = core.CleanString(nu.Name)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.Role = core.CleanString(nu.Role)
	if nu.Role == "" {
		nu.Role = RoleStudent
	}
	return v.Struct(nu)
}

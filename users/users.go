package users

import (
	"golang.org/x/crypto/bcrypt"
)

// RoleType is a staff member's role within their assembly
type RoleType string

const (
	RoleSuperAdmin RoleType = "super_admin" // Manages every assembly
	RoleAdmin      RoleType = "admin"       // Manages staff and voids transactions within an assembly
	RoleSupervisor RoleType = "supervisor"  // Oversees collectors in one or more zones
	RoleFinance    RoleType = "finance"     // Reconciles deposits
	RoleCollector  RoleType = "collector"   // Field collector visiting customers
)

// User is a staff member of a municipal assembly. The console receives it at login and caches
// it verbatim; the backend owns it.
type User struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Phone        string   `json:"phone"`
	Email        string   `json:"email,omitempty"`
	Role         RoleType `json:"role"`
	AssemblyID   string   `json:"assembly_id"`       // Tenant the user belongs to
	ZoneID       string   `json:"zone_id,omitempty"` // Collection zone, collectors only
	Active       bool     `json:"active"`
	PasswordHash string   `json:"-"` // never serialized
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CheckPassword checks a password against the user's hash
func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.PasswordHash)
}

// IsAdmin reports whether the user may manage staff and void transactions.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

// InAssembly reports whether the user may act within assemblyID.
func (u *User) InAssembly(assemblyID string) bool {
	return u.Role == RoleSuperAdmin || u.AssemblyID == assemblyID
}

func (u *User) IsSuperAdmin() bool {
	return u != nil && u.Role == RoleSuperAdmin
}

// internal/domain/models/admin.go
package models

import "encoding/json"

// Placeholder values used when an admin profile is created lazily.
const (
	PlaceholderAdminName  = "Admin"
	PlaceholderAdminEmail = "admin@example.com"
)

// Admin is a privileged operator.
type Admin struct {
	ID           string `bson:"_id" json:"uid"`
	Name         string `bson:"name" json:"name"`
	Email        string `bson:"email" json:"email"`
	PasswordHash string `bson:"passwordHash,omitempty" json:"-"`
	DOB          string `bson:"dob" json:"dob"`
	Mobile       string `bson:"mobile" json:"mobile"`
	WhatsApp     string `bson:"whatsapp" json:"whatsapp"`
	Address      string `bson:"address" json:"address"`
	UpdatedAt    string `bson:"updatedAt" json:"updatedAt"`
}

// Role is always RoleAdmin.
func (a Admin) Role() Role { return RoleAdmin }

// MarshalJSON adds the derived role tag. The password hash stays out.
func (a Admin) MarshalJSON() ([]byte, error) {
	type plain Admin
	return json.Marshal(struct {
		plain
		Role Role `json:"role"`
	}{plain(a), RoleAdmin})
}

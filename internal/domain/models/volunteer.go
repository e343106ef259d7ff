// internal/domain/models/volunteer.go
package models

import "encoding/json"

// Volunteer is a login-capable member. The email is unique across
// volunteers and admins and is matched case-sensitively.
type Volunteer struct {
	ID              string `bson:"_id" json:"uid"`
	Name            string `bson:"name" json:"name"`
	Email           string `bson:"email" json:"email"`
	PasswordHash    string `bson:"passwordHash,omitempty" json:"-"`
	DOB             string `bson:"dob" json:"dob"`
	Mobile          string `bson:"mobile" json:"mobile"`
	WhatsApp        string `bson:"whatsapp" json:"whatsapp"`
	Address         string `bson:"address" json:"address"`
	MaritalStatus   string `bson:"maritalStatus" json:"maritalStatus"`
	AnniversaryDate string `bson:"anniversaryDate" json:"anniversaryDate"`

	CreatedAt string `bson:"createdAt" json:"createdAt"`
	UpdatedAt string `bson:"updatedAt" json:"updatedAt"`
	CreatedBy string `bson:"createdBy" json:"createdBy"`
}

// Role is always RoleVolunteer.
func (v Volunteer) Role() Role { return RoleVolunteer }

// MarshalJSON adds the derived role tag. The password hash stays out.
func (v Volunteer) MarshalJSON() ([]byte, error) {
	type plain Volunteer
	return json.Marshal(struct {
		plain
		Role Role `json:"role"`
	}{plain(v), RoleVolunteer})
}

// internal/domain/models/user.go
package models

// DefaultMaritalStatus is applied when a directory record is created without one.
const DefaultMaritalStatus = "single"

// User is a directory record. Users have no credential and never log in;
// they are created and maintained by admins and volunteers.
//
// Timestamps are opaque ISO-8601 strings. Server-generated values use the
// layout in system/timestamp; client-supplied values are stored as given.
type User struct {
	ID              string `bson:"_id" json:"uid"`
	Name            string `bson:"name" json:"name"`
	NameCI          string `bson:"nameCI" json:"-"` // folded name, search key only
	DOB             string `bson:"dob" json:"dob"`
	Mobile          string `bson:"mobile" json:"mobile"`
	WhatsApp        string `bson:"whatsapp" json:"whatsapp"`
	Address         string `bson:"address" json:"address"`
	MaritalStatus   string `bson:"maritalStatus" json:"maritalStatus"`
	AnniversaryDate string `bson:"anniversaryDate" json:"anniversaryDate"`

	CreatedAt string `bson:"createdAt" json:"createdAt"`
	UpdatedAt string `bson:"updatedAt" json:"updatedAt"`
	CreatedBy string `bson:"createdBy" json:"createdBy"`
	UpdatedBy string `bson:"updatedBy" json:"updatedBy"`
}

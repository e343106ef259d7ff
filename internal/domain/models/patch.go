// internal/domain/models/patch.go
package models

// Patch types carry partial updates. A nil field is absent from the request
// body and leaves the stored value untouched.

// UserPatch holds the mutable fields of a User.
type UserPatch struct {
	Name            *string `json:"name"`
	DOB             *string `json:"dob"`
	Mobile          *string `json:"mobile"`
	WhatsApp        *string `json:"whatsapp"`
	Address         *string `json:"address"`
	MaritalStatus   *string `json:"maritalStatus"`
	AnniversaryDate *string `json:"anniversaryDate"`
	UpdatedAt       *string `json:"updatedAt"`
	UpdatedBy       *string `json:"updatedBy"`
}

// VolunteerPatch holds the mutable fields of a Volunteer. Email is only
// honoured for admins; the handler clears it otherwise. Password may be
// changed by the owner or an admin.
type VolunteerPatch struct {
	Name            *string `json:"name"`
	Email           *string `json:"email"`
	Password        *string `json:"password"`
	DOB             *string `json:"dob"`
	Mobile          *string `json:"mobile"`
	WhatsApp        *string `json:"whatsapp"`
	Address         *string `json:"address"`
	MaritalStatus   *string `json:"maritalStatus"`
	AnniversaryDate *string `json:"anniversaryDate"`
	UpdatedAt       *string `json:"updatedAt"`
}

// AdminPatch holds the mutable fields of an Admin profile.
type AdminPatch struct {
	Name      *string `json:"name"`
	DOB       *string `json:"dob"`
	Mobile    *string `json:"mobile"`
	WhatsApp  *string `json:"whatsapp"`
	Address   *string `json:"address"`
	UpdatedAt *string `json:"updatedAt"`
}

// Apply copies the present fields onto u.
func (p UserPatch) Apply(u *User) {
	setIf(&u.Name, p.Name)
	setIf(&u.DOB, p.DOB)
	setIf(&u.Mobile, p.Mobile)
	setIf(&u.WhatsApp, p.WhatsApp)
	setIf(&u.Address, p.Address)
	setIf(&u.MaritalStatus, p.MaritalStatus)
	setIf(&u.AnniversaryDate, p.AnniversaryDate)
	setIf(&u.UpdatedAt, p.UpdatedAt)
	setIf(&u.UpdatedBy, p.UpdatedBy)
}

// Apply copies the present profile fields onto v. Email and Password are
// handled by the volunteer store because they need uniqueness checks and hashing.
func (p VolunteerPatch) Apply(v *Volunteer) {
	setIf(&v.Name, p.Name)
	setIf(&v.DOB, p.DOB)
	setIf(&v.Mobile, p.Mobile)
	setIf(&v.WhatsApp, p.WhatsApp)
	setIf(&v.Address, p.Address)
	setIf(&v.MaritalStatus, p.MaritalStatus)
	setIf(&v.AnniversaryDate, p.AnniversaryDate)
	setIf(&v.UpdatedAt, p.UpdatedAt)
}

// Apply copies the present fields onto a.
func (p AdminPatch) Apply(a *Admin) {
	setIf(&a.Name, p.Name)
	setIf(&a.DOB, p.DOB)
	setIf(&a.Mobile, p.Mobile)
	setIf(&a.WhatsApp, p.WhatsApp)
	setIf(&a.Address, p.Address)
	setIf(&a.UpdatedAt, p.UpdatedAt)
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

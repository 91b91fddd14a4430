package model

import "time"

// UserPatch lists the profile fields a user may change about themselves.
// Credentials, username, activation state and derived fields are not
// patchable; unknown JSON keys are dropped on decode.
type UserPatch struct {
	FirstName      *string `json:"firstname,omitempty"`
	LastName       *string `json:"lastname,omitempty"`
	Email          *string `json:"email,omitempty"`
	Birthdate      *Date   `json:"birthdate,omitempty"`
	Location       *string `json:"location,omitempty"`
	Bio            *string `json:"bio,omitempty"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
}

func (p UserPatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil &&
		p.Birthdate == nil && p.Location == nil && p.Bio == nil && p.ProfilePicture == nil
}

// Apply copies the set fields onto u and stamps ModifiedAt.
func (p UserPatch) Apply(u *User, now time.Time) {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Birthdate != nil {
		u.Birthdate = p.Birthdate.Time
	}
	if p.Location != nil {
		u.Location = *p.Location
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.ProfilePicture != nil {
		u.ProfilePicture = *p.ProfilePicture
	}
	u.ModifiedAt = &now
}

package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/Parth2500/Jwt-Auth/internal/common"
)

type User struct {
	ID             string     `json:"id"`
	Username       string     `json:"username"`
	FirstName      string     `json:"firstname"`
	LastName       string     `json:"lastname"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"` // Not exposed
	Birthdate      time.Time  `json:"birthdate"`
	Age            int        `json:"age"`
	Location       string     `json:"location,omitempty"`
	Bio            string     `json:"bio,omitempty"`
	ProfilePicture string     `json:"profilePicture,omitempty"`
	IsActive       bool       `json:"isActive"`
	CreatedAt      time.Time  `json:"createdAt"`
	ModifiedAt     *time.Time `json:"modifiedAt,omitempty"`
}

// NormalizeEmail is the canonical form emails are stored and compared in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ComputeAge returns the number of full calendar years between birthdate
// and asOf. The year only counts once the birthday has been reached.
func ComputeAge(birthdate, asOf time.Time) int {
	age := asOf.Year() - birthdate.Year()
	if asOf.Month() < birthdate.Month() ||
		(asOf.Month() == birthdate.Month() && asOf.Day() < birthdate.Day()) {
		age--
	}
	return age
}

// Prepare runs the write-path derivations. Every persist goes through it.
func (u *User) Prepare(now time.Time) {
	u.Email = NormalizeEmail(u.Email)
	u.Age = ComputeAge(u.Birthdate, now)
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
}

// Validate checks the fields the store requires to be present.
func (u *User) Validate() error {
	var missing []string
	if u.Username == "" {
		missing = append(missing, "username")
	}
	if u.FirstName == "" {
		missing = append(missing, "firstname")
	}
	if u.LastName == "" {
		missing = append(missing, "lastname")
	}
	if u.Email == "" {
		missing = append(missing, "email")
	}
	if u.PasswordHash == "" {
		missing = append(missing, "password")
	}
	if u.Birthdate.IsZero() {
		missing = append(missing, "birthdate")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields %s: %w", strings.Join(missing, ", "), common.ErrValidation)
	}
	return nil
}

// Summary is the public subset returned on login.
type Summary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u *User) Summary() Summary {
	return Summary{ID: u.ID, Username: u.Username, Email: u.Email}
}

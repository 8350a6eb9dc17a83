package models

import "github.com/Wind28111988/QLCV-DLRR/internal/constants"

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// User is a directory record. The JSON tags define the persisted layout
// of the tm_users collection, so they must stay stable.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Unit     string `json:"unit"`
	Gender   Gender `json:"gender"`
	DOB      string `json:"dob"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
	// DelegateLevel is a rank token of the form X<N>; a smaller N means
	// higher authority.
	DelegateLevel      string `json:"delegateLevel"`
	Notes              string `json:"notes"`
	MustChangePassword bool   `json:"mustChangePassword"`
}

// IsAdmin reports whether the user carries the administrator sentinel in
// the notes field.
func (u User) IsAdmin() bool {
	return u.Notes == constants.AdminNotes
}

package dto

import "github.com/Wind28111988/QLCV-DLRR/internal/models"

// UserDTO represents a user in API responses. The password field is
// deliberately absent; everything else mirrors the directory record.
// Tasks need no DTO: the persisted task layout is also the API shape.
type UserDTO struct {
	ID                 string        `json:"id"`
	Name               string        `json:"name"`
	Position           string        `json:"position"`
	Unit               string        `json:"unit"`
	Gender             models.Gender `json:"gender"`
	DOB                string        `json:"dob"`
	Phone              string        `json:"phone"`
	Email              string        `json:"email"`
	DelegateLevel      string        `json:"delegateLevel"`
	IsAdmin            bool          `json:"isAdmin"`
	MustChangePassword bool          `json:"mustChangePassword"`
}

// ToUserDTO converts a directory record to its API representation.
func ToUserDTO(u models.User) UserDTO {
	return UserDTO{
		ID:                 u.ID,
		Name:               u.Name,
		Position:           u.Position,
		Unit:               u.Unit,
		Gender:             u.Gender,
		DOB:                u.DOB,
		Phone:              u.Phone,
		Email:              u.Email,
		DelegateLevel:      u.DelegateLevel,
		IsAdmin:            u.IsAdmin(),
		MustChangePassword: u.MustChangePassword,
	}
}

// ToUserDTOs converts a slice of directory records.
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = ToUserDTO(u)
	}
	return dtos
}

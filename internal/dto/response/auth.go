package response

import (
	"time"

	"github.com/SW-Wanted/riding/internal/data/entity"
)

type UserResponse struct {
	ID            string  `json:"id"`
	Email         string  `json:"email"`
	FullName      string  `json:"full_name"`
	Phone         *string `json:"phone,omitempty"`
	Role          string  `json:"role"`
	StudentNumber *string `json:"student_number,omitempty"`
	UniversityID  *string `json:"university_id,omitempty"`
}

type UniversityResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	EmailDomain string `json:"email_domain"`
	Address     string `json:"address,omitempty"`
}

type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token,omitempty"`
	ExpiresAt *time.Time   `json:"expires_at,omitempty"`
}

func UniversityToResponse(university *entity.University) UniversityResponse {
	return UniversityResponse{
		ID:          university.ID.String(),
		Name:        university.Name,
		EmailDomain: university.EmailDomain,
		Address:     university.Address,
	}
}

func UserToResponse(user *entity.User) UserResponse {
	resp := UserResponse{
		ID:            user.ID.String(),
		Email:         user.Email,
		FullName:      user.FullName,
		Phone:         user.Phone,
		Role:          string(user.Role),
		StudentNumber: user.StudentNumber,
	}
	if user.UniversityID != nil {
		id := user.UniversityID.String()
		resp.UniversityID = &id
	}
	return resp
}

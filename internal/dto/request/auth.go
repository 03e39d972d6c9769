package request

type RegisterRequest struct {
	Email         string  `json:"email" validate:"required,email"`
	Password      string  `json:"password" validate:"required,min=8,max=72"`
	FullName      string  `json:"full_name" validate:"required,min=3,max=120"`
	Phone         *string `json:"phone,omitempty" validate:"omitempty,min=6,max=20"`
	Role          string  `json:"role" validate:"required,oneof=student driver"`
	StudentNumber *string `json:"student_number,omitempty" validate:"omitempty,min=2,max=30"`
	UniversityID  *string `json:"university_id,omitempty" validate:"omitempty,uuid4"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

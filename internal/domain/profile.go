package domain

import "time"

type Profile struct {
	ProfileID string    `json:"id" dynamodbav:"profile_id"`
	Email     string    `json:"email" dynamodbav:"email"`
	Name      string    `json:"name" dynamodbav:"name"`
	Age       int       `json:"age,omitempty" dynamodbav:"age"`
	Gender    string    `json:"gender,omitempty" dynamodbav:"gender"`
	Bio       string    `json:"bio,omitempty" dynamodbav:"bio"`
	Interests []string  `json:"interests" dynamodbav:"interests"`
	Phone     *string   `json:"phone,omitempty" dynamodbav:"phone"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`
}

type UpdateProfileRequest struct {
	Name      *string   `json:"name"`
	Age       *int      `json:"age" validate:"omitempty,gte=18,lte=120"`
	Gender    *string   `json:"gender" validate:"omitempty,oneof=male female non-binary other"`
	Bio       *string   `json:"bio" validate:"omitempty,max=500"`
	Interests *[]string `json:"interests" validate:"omitempty,max=20,dive,min=1,max=40"`
	Phone     *string   `json:"phone" validate:"omitempty,e164"`
}

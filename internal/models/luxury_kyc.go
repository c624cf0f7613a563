package models

// LuxuryKyc is a know-your-customer submission for high-value experiences.
//
// FullName and Consent are pointers so that an empty name or an explicit
// false is accepted while a missing value fails validation.
type LuxuryKyc struct {
	FullName           *string `json:"full_name" bson:"full_name" validate:"required"`
	Email              string  `json:"email" bson:"email" validate:"required,email"`
	Phone              *string `json:"phone" bson:"phone"`
	GovernmentIDType   *string `json:"government_id_type" bson:"government_id_type"` // passport, national ID, driver's license
	GovernmentIDNumber *string `json:"government_id_number" bson:"government_id_number"`
	SocialHandles      *string `json:"social_handles" bson:"social_handles"`
	Purpose            *string `json:"purpose" bson:"purpose"`
	Consent            *bool   `json:"consent" bson:"consent" validate:"required"`
}

func (LuxuryKyc) CollectionName() string { return "luxurykyc" }

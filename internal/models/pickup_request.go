package models

// PickupRequest asks for a laundry or item delivery pickup.
//
// Name, Address and Service must be present but may be empty.
type PickupRequest struct {
	Name      *string  `json:"name" bson:"name" validate:"required"`
	Email     string   `json:"email" bson:"email" validate:"required,email"`
	Phone     *string  `json:"phone" bson:"phone"`
	Address   *string  `json:"address" bson:"address" validate:"required"`
	Latitude  *float64 `json:"latitude" bson:"latitude"`
	Longitude *float64 `json:"longitude" bson:"longitude"`
	Note      *string  `json:"note" bson:"note"`
	Service   *string  `json:"service" bson:"service" validate:"required"` // laundry | wardrobe | pets | friend
}

func (PickupRequest) CollectionName() string { return "pickuprequest" }

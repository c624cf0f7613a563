package models

// Review is a user rating of one of the services.
type Review struct {
	Name    string  `json:"name" bson:"name" validate:"required"`
	Rating  *int    `json:"rating" bson:"rating" validate:"required,gte=1,lte=5"`
	Comment string  `json:"comment" bson:"comment" validate:"required"`
	Service *string `json:"service" bson:"service"` // wardrobe, laundry, pets, friend
}

func (Review) CollectionName() string { return "review" }

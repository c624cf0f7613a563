package models

// WardrobeItem is an item uploaded by users or partners for rental.
type WardrobeItem struct {
	Title       string   `json:"title" bson:"title" validate:"required"`
	Description *string  `json:"description" bson:"description"`
	Size        *string  `json:"size" bson:"size"`
	Color       *string  `json:"color" bson:"color"`
	ImageURL    *string  `json:"image_url" bson:"image_url"`
	PricePerDay *float64 `json:"price_per_day" bson:"price_per_day" validate:"omitempty,gte=0"` // USD
	Tags        []string `json:"tags" bson:"tags"`
}

func (WardrobeItem) CollectionName() string { return "wardrobeitem" }

// ApplyDefaults replaces a missing tag list with an empty one.
func (w *WardrobeItem) ApplyDefaults() {
	if w.Tags == nil {
		w.Tags = []string{}
	}
}

package menu

// Item is a single menu entry mirrored from the remote catalog. Field names
// follow the document schema used by the venue dashboard; omitted fields
// decode to zero values.
type Item struct {
	ID            string `firestore:"-" json:"id"`
	Category      string `firestore:"category" json:"category"`
	Name          string `firestore:"name" json:"name"`
	Description   string `firestore:"description" json:"description"`
	Price         int64  `firestore:"price" json:"price"`
	Available     bool   `firestore:"available" json:"available"`
	ImageURL      string `firestore:"imageUrl" json:"image_url,omitempty"`
	IsRecommended bool   `firestore:"isRecommended" json:"is_recommended,omitempty"`
	IsBestseller  bool   `firestore:"isBestseller" json:"is_bestseller,omitempty"`
	IsNew         bool   `firestore:"isNew" json:"is_new,omitempty"`
}

// prepTimeByCategory is a display hint only; it never affects ordering.
var prepTimeByCategory = map[string]string{
	"starters":  "8-12 min",
	"mains":     "15-25 min",
	"desserts":  "5-10 min",
	"beverages": "3-5 min",
}

const defaultPrepTime = "10-15 min"

// EstimatedPrepTime returns the preparation window shown for a category.
func EstimatedPrepTime(category string) string {
	if t, ok := prepTimeByCategory[category]; ok {
		return t
	}
	return defaultPrepTime
}

package models

// Cuisines are the TheMealDB areas offered for browsing.
var Cuisines = []string{
	"American", "British", "Canadian", "Chinese", "Croatian", "Dutch",
	"Egyptian", "French", "Greek", "Indian", "Irish", "Italian",
	"Jamaican", "Japanese", "Kenyan", "Malaysian", "Mexican", "Moroccan",
	"Polish", "Portuguese", "Russian", "Spanish", "Thai", "Tunisian",
	"Turkish", "Vietnamese",
}

const imageBase = "https://images.unsplash.com/"

// Restaurants maps a cuisine to its restaurant. Cuisines without an entry are
// not shown as restaurants.
var Restaurants = map[string]Restaurant{
	"Italian": {
		ID: "rest_italian", Cuisine: "Italian", Name: "Bella Italia",
		Description: "Authentic Italian cuisine", Rating: 4.5,
		Image: imageBase + "photo-1555396273-367ea4eb4db5",
	},
	"Chinese": {
		ID: "rest_chinese", Cuisine: "Chinese", Name: "Golden Dragon",
		Description: "Traditional Chinese dishes", Rating: 4.3,
		Image: imageBase + "photo-1525755662778-989d0524087e",
	},
	"Indian": {
		ID: "rest_indian", Cuisine: "Indian", Name: "Spice Palace",
		Description: "Rich Indian flavors", Rating: 4.6,
		Image: imageBase + "photo-1585937421612-70a008356fbe",
	},
	"Mexican": {
		ID: "rest_mexican", Cuisine: "Mexican", Name: "El Mariachi",
		Description: "Fresh Mexican food", Rating: 4.4,
		Image: imageBase + "photo-1565299585323-38d6b0865b47",
	},
	"Japanese": {
		ID: "rest_japanese", Cuisine: "Japanese", Name: "Sakura Sushi",
		Description: "Fresh sushi and Japanese cuisine", Rating: 4.7,
		Image: imageBase + "photo-1579584425555-c3ce17fd4351",
	},
	"Thai": {
		ID: "rest_thai", Cuisine: "Thai", Name: "Bangkok Spice",
		Description: "Authentic Thai dishes", Rating: 4.5,
		Image: imageBase + "photo-1559314809-0d155014e29e",
	},
	"French": {
		ID: "rest_french", Cuisine: "French", Name: "Le Petit Bistro",
		Description: "Classic French cuisine", Rating: 4.8,
		Image: imageBase + "photo-1414235077428-338989a2e8c0",
	},
	"American": {
		ID: "rest_american", Cuisine: "American", Name: "The Burger Joint",
		Description: "Classic American comfort food", Rating: 4.2,
		Image: imageBase + "photo-1550547660-d9450f859349",
	},
}

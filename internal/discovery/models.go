// Package discovery holds the travel-discovery payloads, the decoders that
// validate them, and the per-screen loader constructors.
package discovery

// Place is one entry of a category listing.
type Place struct {
	Name      string `json:"name"`
	Thumbnail string `json:"thumbnail"`
}

type DestinationDetails struct {
	Description string   `json:"description"`
	Photos      []string `json:"photos"`
}

type RestaurantDetails struct {
	Description   string   `json:"description"`
	PopularDishes []Dish   `json:"popularDishes"`
	Photos        []string `json:"photos"`
	Reviews       []Review `json:"reviews"`
}

type Dish struct {
	Name      string `json:"name"`
	Price     string `json:"price"`
	NumPhotos int    `json:"numPhotos"`
	Photo     string `json:"photo"`
}

type Review struct {
	User   ReviewUser `json:"user"`
	Rating int        `json:"rating"`
	Text   string     `json:"text"`
}

type ReviewUser struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	ProfileImage string `json:"profileImage"`
}

// UserDetails is a creator profile with their posts.
type UserDetails struct {
	Username     string `json:"username"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	ProfileImage string `json:"profileImage"`
	Followers    int    `json:"followers"`
	Following    int    `json:"following"`
	Posts        []Post `json:"posts"`
}

type Post struct {
	Title    string   `json:"title"`
	ImageURL string   `json:"imageUrl"`
	Views    string   `json:"views"`
	Hashtags []string `json:"hashtags"`
}

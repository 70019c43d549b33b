package discovery

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Category is a discover tile; Icon is a system symbol name.
type Category struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type Destination struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	ImageName string  `json:"imageName"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Attraction struct {
	Name      string  `json:"name"`
	ImageName string  `json:"imageName"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Restaurant struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ImageName string `json:"imageName"`
}

// Creator is a trending user; ID is what the user endpoint expects.
type Creator struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ImageName string `json:"imageName"`
}

// Catalog is the fixed sample content shown on the discover screen before
// any detail loader runs.
type Catalog struct {
	Categories   []Category              `json:"categories"`
	Destinations []Destination           `json:"destinations"`
	Attractions  map[string][]Attraction `json:"attractions"`
	Restaurants  []Restaurant            `json:"restaurants"`
	Creators     []Creator               `json:"creators"`
}

// DefaultCatalog returns a fresh copy of the built-in sample content.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Categories: []Category{
			{Name: "Art", Icon: "paintpalette.fill"},
			{Name: "Sports", Icon: "sportscourt.fill"},
			{Name: "Live Events", Icon: "music.mic"},
			{Name: "Food", Icon: "music.mic"},
			{Name: "History", Icon: "music.mic"},
		},
		Destinations: []Destination{
			{Name: "Paris", Country: "France", ImageName: "eiffel_tower", Latitude: 48.859565, Longitude: 2.353235},
			{Name: "Tokyo", Country: "Japan", ImageName: "japan", Latitude: 35.679793, Longitude: 139.771913},
			{Name: "New York", Country: "US", ImageName: "new_york", Latitude: 40.71592, Longitude: -74.0055},
		},
		Attractions: map[string][]Attraction{
			"paris": {
				{Name: "Eiffel Tower", ImageName: "eiffel_tower", Latitude: 48.858605, Longitude: 2.2946},
				{Name: "Champs-Elysees", ImageName: "new_york", Latitude: 48.866867, Longitude: 2.311780},
				{Name: "Louvre Museum", ImageName: "art2", Latitude: 48.860288, Longitude: 2.337789},
			},
		},
		Restaurants: []Restaurant{
			{ID: 0, Name: "Japan's Finest Tapas", ImageName: "tapas"},
			{ID: 1, Name: "Bar & Grill", ImageName: "bar_grill"},
		},
		Creators: []Creator{
			{ID: 0, Name: "Amy Adams", ImageName: "amy"},
			{ID: 1, Name: "Billy", ImageName: "billy"},
			{ID: 2, Name: "Sam Smith", ImageName: "sam"},
		},
	}
}

// LoadCatalog reads a catalog from a JSON file. Attraction keys are
// lowercased so lookups stay case-insensitive.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	attractions := make(map[string][]Attraction, len(c.Attractions))
	for name, list := range c.Attractions {
		attractions[strings.ToLower(name)] = list
	}
	c.Attractions = attractions
	return &c, nil
}

// Destination looks a destination up by name, ignoring case.
func (c *Catalog) Destination(name string) (Destination, bool) {
	for _, d := range c.Destinations {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return Destination{}, false
}

// AttractionsFor returns the map pins for a destination, if any.
func (c *Catalog) AttractionsFor(name string) []Attraction {
	return c.Attractions[strings.ToLower(name)]
}

func (c *Catalog) Creator(id int) (Creator, bool) {
	for _, u := range c.Creators {
		if u.ID == id {
			return u, true
		}
	}
	return Creator{}, false
}

func (c *Catalog) Restaurant(id int) (Restaurant, bool) {
	for _, r := range c.Restaurants {
		if r.ID == id {
			return r, true
		}
	}
	return Restaurant{}, false
}

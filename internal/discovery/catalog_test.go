package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog_Lookups(t *testing.T) {
	c := DefaultCatalog()

	assert.Len(t, c.Categories, 5)
	assert.Equal(t, "Live Events", c.Categories[2].Name)

	d, ok := c.Destination("new york")
	require.True(t, ok)
	assert.Equal(t, "US", d.Country)

	_, ok = c.Destination("Atlantis")
	assert.False(t, ok)

	assert.Len(t, c.AttractionsFor("Paris"), 3)
	assert.Empty(t, c.AttractionsFor("Tokyo"))

	r, ok := c.Restaurant(1)
	require.True(t, ok)
	assert.Equal(t, "Bar & Grill", r.Name)

	u, ok := c.Creator(2)
	require.True(t, ok)
	assert.Equal(t, "Sam Smith", u.Name)

	_, ok = c.Creator(42)
	assert.False(t, ok)
}

func TestDefaultCatalog_IsACopy(t *testing.T) {
	a := DefaultCatalog()
	a.Categories[0].Name = "changed"

	assert.Equal(t, "Art", DefaultCatalog().Categories[0].Name)
}

func TestCatalog_RequestsForEveryEntry(t *testing.T) {
	c := DefaultCatalog()
	client := NewClient("")

	for _, cat := range c.Categories {
		_, err := client.CategoryRequest(cat.Name).Target()
		assert.NoError(t, err, cat.Name)
	}
	for _, d := range c.Destinations {
		_, err := client.DestinationRequest(d.Name).Target()
		assert.NoError(t, err, d.Name)
	}
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	body := `{
  "categories": [{"name": "Hiking", "icon": "figure.hiking"}],
  "destinations": [{"name": "Lisbon", "country": "Portugal", "imageName": "lisbon", "latitude": 38.72, "longitude": -9.14}],
  "attractions": {"Lisbon": [{"name": "Belem Tower", "imageName": "belem", "latitude": 38.69, "longitude": -9.21}]},
  "restaurants": [{"id": 7, "name": "Tasca", "imageName": "tasca"}],
  "creators": [{"id": 3, "name": "Rui", "imageName": "rui"}]
}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	c, err := LoadCatalog(path)
	require.NoError(t, err)

	assert.Equal(t, []Category{{Name: "Hiking", Icon: "figure.hiking"}}, c.Categories)
	d, ok := c.Destination("LISBON")
	require.True(t, ok)
	assert.Equal(t, "Portugal", d.Country)
	assert.Len(t, c.AttractionsFor("lisbon"), 1)

	r, ok := c.Restaurant(7)
	require.True(t, ok)
	assert.Equal(t, "Tasca", r.Name)
}

func TestLoadCatalog_Errors(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"categories": 3}`), 0o600))
	_, err = LoadCatalog(path)
	assert.Error(t, err)
}

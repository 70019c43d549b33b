package discovery

import (
	"context"
	"strconv"
	"strings"

	"travel-discovery/internal/loader"
)

// DefaultBaseURL is the public tutorial API the app reads from.
const DefaultBaseURL = "https://travel.letsbuildthatapp.com/travel_discovery"

// Resource names, used as the loader name in logs and metrics.
const (
	ResourceCategory    = "category"
	ResourceDestination = "destination"
	ResourceRestaurant  = "restaurant"
	ResourceUser        = "user"
)

// Client creates one loader per screen. It holds no per-loader state; every
// call starts a new, independent fetch.
type Client struct {
	baseURL string
	opts    []loader.Option
}

// NewClient returns a client rooted at baseURL (DefaultBaseURL when empty).
// opts are applied to every loader it creates.
func NewClient(baseURL string, opts ...loader.Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		opts:    append([]loader.Option(nil), opts...),
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// CategoryRequest describes the place listing of a category. Names are sent
// lowercased.
func (c *Client) CategoryRequest(name string) loader.Request {
	return loader.NewRequest(c.endpoint(ResourceCategory),
		loader.Param{Name: "name", Value: strings.ToLower(name)})
}

// DestinationRequest describes a destination's details. Names are sent
// lowercased.
func (c *Client) DestinationRequest(name string) loader.Request {
	return loader.NewRequest(c.endpoint(ResourceDestination),
		loader.Param{Name: "name", Value: strings.ToLower(name)})
}

func (c *Client) RestaurantRequest(id int) loader.Request {
	return loader.NewRequest(c.endpoint(ResourceRestaurant),
		loader.Param{Name: "id", Value: strconv.Itoa(id)})
}

func (c *Client) UserRequest(id int) loader.Request {
	return loader.NewRequest(c.endpoint(ResourceUser),
		loader.Param{Name: "id", Value: strconv.Itoa(id)})
}

// Category loads the places listed under a category.
func (c *Client) Category(ctx context.Context, name string) *loader.Loader[[]Place] {
	return loader.New(ctx, c.CategoryRequest(name), DecodePlaces, c.with(ResourceCategory)...)
}

func (c *Client) Destination(ctx context.Context, name string) *loader.Loader[DestinationDetails] {
	return loader.New(ctx, c.DestinationRequest(name), DecodeDestinationDetails, c.with(ResourceDestination)...)
}

func (c *Client) Restaurant(ctx context.Context, id int) *loader.Loader[RestaurantDetails] {
	return loader.New(ctx, c.RestaurantRequest(id), DecodeRestaurantDetails, c.with(ResourceRestaurant)...)
}

func (c *Client) User(ctx context.Context, id int) *loader.Loader[UserDetails] {
	return loader.New(ctx, c.UserRequest(id), DecodeUserDetails, c.with(ResourceUser)...)
}

func (c *Client) endpoint(resource string) string {
	return c.baseURL + "/" + resource
}

func (c *Client) with(resource string) []loader.Option {
	opts := make([]loader.Option, 0, len(c.opts)+1)
	opts = append(opts, loader.WithName(resource))
	return append(opts, c.opts...)
}

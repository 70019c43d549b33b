package discovery

import (
	"encoding/json"
	"errors"
	"fmt"

	"travel-discovery/internal/common/validation"
	"travel-discovery/internal/loader"
)

const rootField = validation.RootField

// DecodeError names the first field (in lexical order) that failed structural
// validation, so the same bytes always yield the same diagnostic.
type DecodeError struct {
	Payload string
	Field   string
	Reason  string
	// Others counts further violations beyond Field.
	Others int
}

func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("decode %s: field %q: %s", e.Payload, e.Field, e.Reason)
	if e.Others > 0 {
		msg += fmt.Sprintf(" (and %d more)", e.Others)
	}
	return msg
}

// JSONDecoder compiles schemaJSON and returns a decoder that validates the
// body against it before unmarshalling into T.
func JSONDecoder[T any](payload, schemaJSON string) (loader.Decoder[T], error) {
	schema, err := validation.Compile(payload, schemaJSON)
	if err != nil {
		return nil, err
	}

	return func(data []byte) (T, error) {
		var zero T

		if result := schema.Validate(data); !result.Valid {
			first := result.Errors[0]
			return zero, &DecodeError{
				Payload: payload,
				Field:   first.Field,
				Reason:  first.Message,
				Others:  len(result.Errors) - 1,
			}
		}

		var out T
		if err := json.Unmarshal(data, &out); err != nil {
			de := &DecodeError{Payload: payload, Field: rootField, Reason: err.Error()}
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) && typeErr.Field != "" {
				de.Field = typeErr.Field
			}
			return zero, de
		}
		return out, nil
	}, nil
}

// MustJSONDecoder is JSONDecoder for schemas embedded in the binary.
func MustJSONDecoder[T any](payload, schemaJSON string) loader.Decoder[T] {
	d, err := JSONDecoder[T](payload, schemaJSON)
	if err != nil {
		panic(err)
	}
	return d
}

var (
	decodePlaces      = MustJSONDecoder[[]Place]("places", placeListSchema)
	decodeDestination = MustJSONDecoder[DestinationDetails]("destination", destinationDetailsSchema)
	decodeRestaurant  = MustJSONDecoder[RestaurantDetails]("restaurant", restaurantDetailsSchema)
	decodeUser        = MustJSONDecoder[UserDetails]("user", userDetailsSchema)
)

// DecodePlaces decodes a category listing.
func DecodePlaces(data []byte) ([]Place, error) { return decodePlaces(data) }

func DecodeDestinationDetails(data []byte) (DestinationDetails, error) {
	return decodeDestination(data)
}

func DecodeRestaurantDetails(data []byte) (RestaurantDetails, error) {
	return decodeRestaurant(data)
}

func DecodeUserDetails(data []byte) (UserDetails, error) { return decodeUser(data) }

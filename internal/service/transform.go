package service

import (
	"shop-admin/internal/apperror"
	"shop-admin/internal/slug"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
)

// coerceFunc converts a raw DTO field value into its stored representation.
type coerceFunc func(raw string) (interface{}, error)

// fieldCoercion pairs an update field with its coercion. A nil value means
// the field was absent from the DTO and must not touch the stored document.
type fieldCoercion struct {
	field  string
	value  *string
	coerce coerceFunc
}

// buildSetPayload walks a closed, enumerated transformation table and
// produces the $set payload for a partial merge. Absent fields are omitted so
// the repository leaves them untouched.
func buildSetPayload(fields []fieldCoercion) (bson.M, error) {
	payload := bson.M{}
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		v, err := f.coerce(*f.value)
		if err != nil {
			return nil, err
		}
		payload[f.field] = v
	}
	return payload, nil
}

// coerceVerbatim copies the supplied value unchanged.
func coerceVerbatim(raw string) (interface{}, error) {
	return raw, nil
}

// coerceStatus maps the wire values "1"/"0" onto the stored boolean.
func coerceStatus(raw string) (interface{}, error) {
	switch raw {
	case "1":
		return true, nil
	case "0":
		return false, nil
	default:
		return nil, apperror.Validation(`status must be "1" or "0"`)
	}
}

// coercePrice round-trips the value through an exact decimal so repeated
// read-modify-write cycles never accumulate float rounding error.
func coercePrice(raw string) (interface{}, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, apperror.Validation("price must be a decimal number")
	}
	return d.String(), nil
}

// coerceSlug normalizes the value into a URL-safe slug, falling back to a
// timestamp-derived slug when normalization yields nothing.
func coerceSlug(raw string) (interface{}, error) {
	return slug.WithFallback(raw), nil
}

package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DiscountType selects how a discount value is applied to the base price.
type DiscountType string

const (
	DiscountFlat       DiscountType = "flat"
	DiscountPercentage DiscountType = "percentage"
)

// Discount is layered on top of a product, orthogonal to its status
// lifecycle. Value is kept as a decimal string so discount arithmetic never
// touches binary floats.
type Discount struct {
	Type      DiscountType `bson:"type" json:"type"`
	Value     string       `bson:"value" json:"value"`
	IsActive  bool         `bson:"isActive" json:"isActive"`
	AppliedAt time.Time    `bson:"appliedAt" json:"appliedAt"`
}

// Product is a catalog entry. Price is stored as an exact decimal string,
// never a binary float. Category is an embedded snapshot taken at
// creation/reference time, not a live foreign key.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Price       string             `bson:"price" json:"price"`
	Img         string             `bson:"img,omitempty" json:"img,omitempty"`
	Models      []string           `bson:"models" json:"models"`
	Description string             `bson:"description" json:"description"`
	Status      bool               `bson:"status" json:"status"`
	Category    Category           `bson:"category" json:"category"`
	Discount    *Discount          `bson:"discount,omitempty" json:"discount,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// EffectivePrice computes the price after applying any active discount.
// flat: price - value; percentage: price - price*value/100. Computed at read
// time and never persisted.
func (p *Product) EffectivePrice() (decimal.Decimal, error) {
	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid stored price %q: %w", p.Price, err)
	}

	if p.Discount == nil || !p.Discount.IsActive {
		return price, nil
	}

	value, err := decimal.NewFromString(p.Discount.Value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid discount value %q: %w", p.Discount.Value, err)
	}

	switch p.Discount.Type {
	case DiscountFlat:
		return price.Sub(value), nil
	case DiscountPercentage:
		return price.Sub(price.Mul(value).Div(decimal.NewFromInt(100))), nil
	default:
		return price, nil
	}
}

package catalog

import (
	"hash/fnv"

	"github.com/shopspring/decimal"
)

// Product is the normalized catalog entity served to the storefront.
// Instances are immutable once fetched; the cart copies them into lines.
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	ImageURL string          `json:"image_url"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
}

const (
	priceFloor = 10
	priceBand  = 50
)

// syntheticPrice derives a stable price for products the upstream source
// returns without one. Same band as the storefront's historical filler
// (10–59 whole units), but keyed off the product id so repeated fetches
// and tests see identical prices.
func syntheticPrice(productID string) decimal.Decimal {
	h := fnv.New32a()
	_, _ = h.Write([]byte(productID))
	return decimal.NewFromInt(int64(priceFloor + h.Sum32()%priceBand))
}

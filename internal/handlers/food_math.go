package handlers

import (
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// applyRating folds one new rating into the stored counters and recomputes
// the average. averageRating stays totalRating/totalRatingCount as long as
// every write goes through here.
func applyRating(totalRating, totalRatingCount, rating int32) (newTotal, newCount int32, newAverage float64) {
	newTotal = totalRating + rating
	newCount = totalRatingCount + 1
	newAverage = float64(newTotal) / float64(newCount)
	return newTotal, newCount, newAverage
}

// applyPurchase moves delta units out of stock and into the purchase
// counter. Quantity is allowed to go negative; no floor is enforced.
func applyPurchase(quantity, purchaseCount, delta int32) (newQuantity, newPurchaseCount int32) {
	return quantity - delta, purchaseCount + delta
}

var coercedIntFields = []string{"quantity", "purchaseCount", "totalRating", "totalRatingCount"}

// coerceFoodDocument forces the counter fields of an incoming food document
// to numeric types before storage. A value that cannot be coerced becomes 0;
// the insert itself is never rejected. Every other field is stored verbatim.
func coerceFoodDocument(doc bson.M) bson.M {
	for _, key := range coercedIntFields {
		doc[key] = coerceInt32(doc[key])
	}
	doc["price"] = coerceFloat64(doc["price"])
	return doc
}

func coerceInt32(value interface{}) int32 {
	switch v := value.(type) {
	case float64:
		return int32(v)
	case int32:
		return v
	case int64:
		return int32(v)
	case int:
		return int32(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return int32(parsed)
	default:
		return 0
	}
}

func coerceFloat64(value interface{}) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case int:
		return float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

package transaction

import (
	"math"
	"strconv"
)

// PriceRange is a histogram bucket. Max is inclusive; the top bucket is open-ended.
type PriceRange struct {
	Min float64
	Max float64
}

// PriceRanges are the fixed bar chart buckets in ascending order.
var PriceRanges = []PriceRange{
	{Min: 0, Max: 100},
	{Min: 101, Max: 200},
	{Min: 201, Max: 300},
	{Min: 301, Max: 400},
	{Min: 401, Max: 500},
	{Min: 501, Max: 600},
	{Min: 601, Max: 700},
	{Min: 701, Max: 800},
	{Min: 801, Max: 900},
	{Min: 901, Max: math.Inf(1)},
}

// Label renders the bucket as "<min> - <max>", or "<min> - Above <min>" for the open-ended one.
func (r PriceRange) Label() string {
	lo := strconv.FormatFloat(r.Min, 'f', -1, 64)
	if math.IsInf(r.Max, 1) {
		return lo + " - Above " + lo
	}

	return lo + " - " + strconv.FormatFloat(r.Max, 'f', -1, 64)
}

// PriceBucket is one bar of the price histogram.
type PriceBucket struct {
	Range string
	Count int
}

// Histogram counts prices into PriceRanges. A price belongs to the first bucket
// whose Max is not below it, so fractional prices between two labels (100.5)
// land in the upper one and the buckets cover [0, +Inf) without gaps.
// Negative prices are not counted.
func Histogram(prices []float64) []PriceBucket {
	buckets := make([]PriceBucket, len(PriceRanges))
	for i, r := range PriceRanges {
		buckets[i].Range = r.Label()
	}

	for _, p := range prices {
		if i := bucketIndex(p); i >= 0 {
			buckets[i].Count++
		}
	}

	return buckets
}

func bucketIndex(p float64) int {
	if p < PriceRanges[0].Min || math.IsNaN(p) {
		return -1
	}

	for i, r := range PriceRanges {
		if p <= r.Max {
			return i
		}
	}

	return -1
}

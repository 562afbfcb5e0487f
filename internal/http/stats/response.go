package stats

import "github.com/MrJamesThe3rd/salesboard/internal/transaction"

type statisticsResponse struct {
	Month             int     `json:"month"`
	TotalSaleAmount   float64 `json:"totalSaleAmount"`
	TotalSoldItems    int     `json:"totalSoldItems"`
	TotalNotSoldItems int     `json:"totalNotSoldItems"`
}

type bucketResponse struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

type categoryResponse struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// combinedResponse keeps the published field name: barChartData holds the
// category tally, not the price histogram. Clients depend on it.
type combinedResponse struct {
	Statistics   statisticsResponse `json:"statistics"`
	BarChartData []categoryResponse `json:"barChartData"`
}

func toStatisticsResponse(s *transaction.Statistics) statisticsResponse {
	return statisticsResponse{
		Month:             s.Month,
		TotalSaleAmount:   s.SaleAmount,
		TotalSoldItems:    s.SoldItems,
		TotalNotSoldItems: s.NotSoldItems,
	}
}

func toBarChartResponse(buckets []transaction.PriceBucket) []bucketResponse {
	resp := make([]bucketResponse, len(buckets))
	for i, b := range buckets {
		resp[i] = bucketResponse{Range: b.Range, Count: b.Count}
	}

	return resp
}

func toPieChartResponse(counts []transaction.CategoryCount) []categoryResponse {
	resp := make([]categoryResponse, len(counts))
	for i, c := range counts {
		resp[i] = categoryResponse{Category: c.Category, Count: c.Count}
	}

	return resp
}

func toCombinedResponse(c *transaction.Combined) combinedResponse {
	return combinedResponse{
		Statistics:   toStatisticsResponse(c.Statistics),
		BarChartData: toPieChartResponse(c.Categories),
	}
}

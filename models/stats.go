package models

import "time"

// StatsRequest selects the reporting window.
type StatsRequest struct {
	Days  int
	Since time.Time
}

// CollectionTotals sums collections in the window.
type CollectionTotals struct {
	TotalWeight      float64 `json:"totalWeight"`
	TotalCollections int     `json:"totalCollections"`
}

// TypeTotal is the weight and count of one bin type.
type TypeTotal struct {
	Type        BinType `json:"type"`
	TotalWeight float64 `json:"totalWeight"`
	Count       int     `json:"count"`
}

// DayTotal is one point of the daily series.
type DayTotal struct {
	Day            string      `json:"day"`
	ByType         []TypeTotal `json:"byType"`
	DayTotalWeight float64     `json:"dayTotalWeight"`
	DayCount       int         `json:"dayCount"`
}

// CollectorTotal is the work done by one collector.
type CollectorTotal struct {
	UserID         int64     `json:"userId"`
	Username       string    `json:"username"`
	Role           Role      `json:"role"`
	TotalWeight    float64   `json:"totalWeight"`
	Count          int       `json:"count"`
	LastCollection time.Time `json:"lastCollection"`
}

// BinHotspot aggregates the collections of one bin.
type BinHotspot struct {
	BinID          string       `json:"binId"`
	Location       string       `json:"location"`
	GeoLocation    *GeoLocation `json:"geoLocation,omitempty"`
	TotalWeight    float64      `json:"totalWeight"`
	Count          int          `json:"count"`
	LastCollection time.Time    `json:"lastCollection"`
	AvgDistance    *float64     `json:"avgDistance"`
}

// StatusCount counts records per status, with an optional amount sum.
type StatusCount struct {
	Status      string   `json:"status"`
	Count       int      `json:"count"`
	TotalAmount *float64 `json:"totalAmount,omitempty"`
}

// CriticalBin is a bin at or above the critical fill level.
type CriticalBin struct {
	BinID        string       `json:"binId"`
	Location     string       `json:"location"`
	CurrentLevel int          `json:"currentLevel"`
	GeoLocation  *GeoLocation `json:"geoLocation,omitempty"`
}

// FillLevelInsights summarizes bin fill levels.
type FillLevelInsights struct {
	AverageFill  float64       `json:"averageFill"`
	CriticalBins []CriticalBin `json:"criticalBins"`
}

// StatsBreakdown groups totals by dimension.
type StatsBreakdown struct {
	ByType      []TypeTotal      `json:"byType"`
	ByCollector []CollectorTotal `json:"byCollector"`
	ByBin       []BinHotspot     `json:"byBin"`
}

// CollectionStats is returned by GET /api/collections/stats.
type CollectionStats struct {
	Since             string            `json:"since"`
	Days              int               `json:"days"`
	Totals            CollectionTotals  `json:"totals"`
	Series            []DayTotal        `json:"series"`
	Breakdown         StatsBreakdown    `json:"breakdown"`
	Pickups           []StatusCount     `json:"pickups"`
	Transactions      []StatusCount     `json:"transactions"`
	FillLevelInsights FillLevelInsights `json:"fillLevelInsights"`
}

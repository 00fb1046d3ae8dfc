// Package models defines the published data contract for resort conditions.
// Every fact is an explicit pointer: a nil field means "unknown", which is
// distinct from a reported zero (0" of new snow is real data).
package models

import "time"

// Sources records the URLs a record was assembled from.
type Sources struct {
	OpsURL             string  `json:"ops_url"`
	WeatherPointsURL   *string `json:"weather_points_url,omitempty"`
	WeatherForecastURL *string `json:"weather_forecast_url,omitempty"`
}

// Operations holds lift and trail operating status. Scheduled counts are
// lifts/trails planned to open later today; they are tracked separately
// from open counts and only added to "open" for display-oriented
// availability, never merged into the published open fields.
type Operations struct {
	OpenFlag        *bool `json:"open_flag"`
	LiftsOpen       *int  `json:"lifts_open"`
	LiftsScheduled  *int  `json:"lifts_scheduled"`
	LiftsTotal      *int  `json:"lifts_total"`
	TrailsOpen      *int  `json:"trails_open"`
	TrailsScheduled *int  `json:"trails_scheduled"`
	TrailsTotal     *int  `json:"trails_total"`
}

// Snow holds snow report facts. NewSnow48hIn may be populated from a
// 7-day or storm-total figure when a source does not publish a true 48h
// number; adapters that do this say so in their doc comments.
type Snow struct {
	NewSnow24hIn    *float64   `json:"new_snow_24h_in"`
	NewSnow48hIn    *float64   `json:"new_snow_48h_in"`
	BaseDepthIn     *float64   `json:"base_depth_in"`
	SeasonTotalIn   *float64   `json:"season_total_in"`
	Surface         *string    `json:"surface"`
	ReportUpdatedAt *time.Time `json:"report_updated_at"`
}

// Weather holds the current NWS forecast period, normalized to F/mph.
type Weather struct {
	TempF              *float64 `json:"temp_f"`
	WindMph            *float64 `json:"wind_mph"`
	WindGustMph        *float64 `json:"wind_gust_mph"`
	ShortForecast      *string  `json:"short_forecast"`
	ForecastPeriodName *string  `json:"forecast_period_name"`
}

// ResortConditions is the complete per-resort record handed to
// aggregation. Stale means ops/snow come from a prior successful run,
// not the current fetch.
type ResortConditions struct {
	Slug         string     `json:"slug"`
	Name         string     `json:"name"`
	FetchedAtUTC time.Time  `json:"fetched_at_utc"`
	Stale        bool       `json:"stale"`
	Sources      Sources    `json:"sources"`
	Ops          Operations `json:"ops"`
	Snow         Snow       `json:"snow"`
	Weather      Weather    `json:"weather"`
}

// SummaryCounts buckets resorts by overall status.
type SummaryCounts struct {
	OpenResorts   int `json:"open_resorts"`
	ClosedResorts int `json:"closed_resorts"`
	StaleResorts  int `json:"stale_resorts"`
}

// Summary is the homepage rollup: counts, highlight lines, and a short
// blurb per resort keyed by slug.
type Summary struct {
	LastUpdatedUTC time.Time         `json:"last_updated_utc"`
	Counts         SummaryCounts     `json:"counts"`
	Highlights     []string          `json:"highlights"`
	Blurbs         map[string]string `json:"blurbs"`
}

// ResortConfig is one entry from the resorts.yaml registry.
type ResortConfig struct {
	Slug      string  `yaml:"slug" validate:"required"`
	Name      string  `yaml:"name" validate:"required"`
	Kind      string  `yaml:"kind" validate:"required"`
	SourceURL string  `yaml:"source_url" validate:"required,url"`
	Lat       float64 `yaml:"lat" validate:"required,latitude"`
	Lon       float64 `yaml:"lon" validate:"required,longitude"`
	Enabled   bool    `yaml:"enabled"`
	Note      string  `yaml:"note"`
}

// Ptr returns a pointer to v. Convenient for building records whose
// optional facts are pointer-typed.
func Ptr[T any](v T) *T {
	return &v
}

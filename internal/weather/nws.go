// Package weather enriches resort records with the current National
// Weather Service forecast. The protocol is two GETs: a points lookup
// keyed by coordinates that yields a forecast URL, then the forecast
// document itself.
package weather

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/mweston/tahoe-conditions/internal/fetch"
	"github.com/mweston/tahoe-conditions/internal/logging"
	"github.com/mweston/tahoe-conditions/internal/models"
)

// DefaultBaseURL is the NWS API root.
const DefaultBaseURL = "https://api.weather.gov"

// DefaultTTL caches NWS responses for an hour; forecasts update far
// less often than resort pages.
const DefaultTTL = time.Hour

// Service fetches and normalizes NWS forecasts.
type Service struct {
	client  *fetch.Client
	baseURL string
	ttl     time.Duration
	log     *zap.SugaredLogger
}

// New creates a weather service on top of the shared fetch client.
func New(client *fetch.Client) *Service {
	return &Service{
		client:  client,
		baseURL: DefaultBaseURL,
		ttl:     DefaultTTL,
		log:     logging.S(),
	}
}

// WithBaseURL overrides the API root, for tests.
func (s *Service) WithBaseURL(url string) *Service {
	s.baseURL = url
	return s
}

type pointsResponse struct {
	Properties struct {
		Forecast string `json:"forecast"`
	} `json:"properties"`
}

type forecastPeriod struct {
	Name            string   `json:"name"`
	Temperature     *float64 `json:"temperature"`
	TemperatureUnit string   `json:"temperatureUnit"`
	WindSpeed       string   `json:"windSpeed"`
	ShortForecast   string   `json:"shortForecast"`
}

type forecastResponse struct {
	Properties struct {
		Periods []forecastPeriod `json:"periods"`
	} `json:"properties"`
}

// Fetch returns the current-period weather for a coordinate pair along
// with the points and forecast URLs it resolved. It never fails: any
// upstream problem degrades to an empty Weather with whichever URLs
// were obtained.
func (s *Service) Fetch(ctx context.Context, lat, lon float64) (models.Weather, *string, *string) {
	var weather models.Weather

	pointsURL := fmt.Sprintf("%s/points/%.4f,%.4f", s.baseURL, lat, lon)

	var points pointsResponse
	if err := s.client.FetchJSON(ctx, pointsURL, s.ttl, &points); err != nil {
		s.log.Warnw("NWS points lookup failed", "url", pointsURL, "error", err)
		return weather, &pointsURL, nil
	}

	forecastURL := points.Properties.Forecast
	if forecastURL == "" {
		s.log.Warnw("no forecast URL in NWS points response", "lat", lat, "lon", lon)
		return weather, &pointsURL, nil
	}

	var forecast forecastResponse
	if err := s.client.FetchJSON(ctx, forecastURL, s.ttl, &forecast); err != nil {
		s.log.Warnw("NWS forecast fetch failed", "url", forecastURL, "error", err)
		return weather, &pointsURL, &forecastURL
	}

	periods := forecast.Properties.Periods
	if len(periods) == 0 {
		s.log.Warnw("no forecast periods", "lat", lat, "lon", lon)
		return weather, &pointsURL, &forecastURL
	}

	// The first period is the current/nearest one.
	current := periods[0]

	if current.Temperature != nil {
		temp := *current.Temperature
		if current.TemperatureUnit == "C" {
			temp = temp*9/5 + 32
		}
		weather.TempF = &temp
	}

	weather.WindMph, weather.WindGustMph = parseWind(current.WindSpeed)

	if current.ShortForecast != "" {
		weather.ShortForecast = &current.ShortForecast
	}
	if current.Name != "" {
		weather.ForecastPeriodName = &current.Name
	}

	return weather, &pointsURL, &forecastURL
}

var (
	windSpeedPattern = regexp.MustCompile(`(?i)(\d+)\s*(?:to\s*(\d+))?\s*mph`)
	windGustPattern  = regexp.MustCompile(`(?i)gust(?:ing|s)?\s*(?:to\s*)?(\d+)\s*mph`)
)

// parseWind parses phrases like "10 mph", "10 to 20 mph", or
// "10 mph gusting to 25 mph". A range reports its upper bound.
func parseWind(text string) (windMph, gustMph *float64) {
	if text == "" {
		return nil, nil
	}

	if m := windSpeedPattern.FindStringSubmatch(text); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if m[2] != "" {
			v, err = strconv.ParseFloat(m[2], 64)
		}
		if err == nil {
			windMph = &v
		}
	}

	if m := windGustPattern.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			gustMph = &v
		}
	}

	return windMph, gustMph
}

package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"twentyfour/config"
)

var errPlaceNotFound = errors.New("place not found")

type GeocodingAPIResponse struct {
	Results          []GeocodingResult `json:"results"`
	GenerationtimeMS float64           `json:"generationtime_ms"`
}

type GeocodingResult struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Elevation   float64 `json:"elevation"`
	Timezone    string  `json:"timezone"`
	Country     string  `json:"country"`
	CountryCode string  `json:"country_code"`
	Admin1      string  `json:"admin1"`
}

// Place is where the clock stands. Without coordinates the clock shows
// daylight around the clock.
type Place struct {
	Name      string
	Longitude float64
	Latitude  float64
	Location  *time.Location
	Known     bool
}

func newGeocodingClient() *resty.Client {
	client := resty.New()
	client.SetTimeout(10 * time.Second)
	client.SetHeader("accept", "application/json")
	return client
}

// Init() asks the Open-Meteo geocoding API for place and stores the answer in response
func (response *GeocodingAPIResponse) Init(ctx context.Context, client *resty.Client, apiEndpoint, place string) error {
	logger.Info("Making request to Open-Meteo geocoding API", zap.String("place", place))

	res, err := client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"name":     place,
			"count":    "1",
			"language": "en",
			"format":   "json",
		}).
		SetResult(response).
		Get(apiEndpoint)
	if err != nil {
		return fmt.Errorf("geocoding request: %w", err)
	}
	if res.IsError() {
		return fmt.Errorf("geocoding API response code: %s", res.Status())
	}
	logger.Info("Got geocoding API response", zap.String("status", res.Status()))
	return nil
}

// First() returns the best match of the response
func (response GeocodingAPIResponse) First() (GeocodingResult, error) {
	if len(response.Results) == 0 {
		return GeocodingResult{}, errPlaceNotFound
	}
	return response.Results[0], nil
}

// resolvePlace() turns the configuration into a Place, geocoding PLACE when
// the coordinates are "auto"
func resolvePlace(ctx context.Context, client *resty.Client, cfg config.Config) (Place, error) {
	loc, err := cfg.Location()
	if err != nil {
		return Place{}, err
	}
	place := Place{Name: cfg.Place, Location: loc}

	lon, lat, auto, err := cfg.Coordinates()
	switch {
	case errors.Is(err, config.ErrNoLocation):
		logger.Warn("No LAT/LON configured, clock shows no night")
		return place, nil
	case err != nil:
		return Place{}, err
	case !auto:
		place.Longitude, place.Latitude, place.Known = lon, lat, true
		return place, nil
	}

	if strings.TrimSpace(cfg.Place) == "" {
		return Place{}, fmt.Errorf("LAT/LON set to auto but PLACE is empty")
	}
	response := GeocodingAPIResponse{}
	if err := response.Init(ctx, client, cfg.GeocodingApiEndpoint, cfg.Place); err != nil {
		return Place{}, err
	}
	result, err := response.First()
	if err != nil {
		return Place{}, fmt.Errorf("%w: %q", err, cfg.Place)
	}

	place.Name = result.Name
	place.Longitude, place.Latitude, place.Known = result.Longitude, result.Latitude, true
	if (cfg.Timezone == "" || cfg.Timezone == "Local") && result.Timezone != "" {
		if tz, err := time.LoadLocation(result.Timezone); err == nil {
			place.Location = tz
		} else {
			logger.Warn("Ignoring geocoded time zone", zap.String("timezone", result.Timezone), zap.Error(err))
		}
	}
	logger.Info("Resolved place",
		zap.String("name", place.Name),
		zap.Float64("lat", place.Latitude),
		zap.Float64("lon", place.Longitude),
		zap.String("timezone", place.Location.String()))
	return place, nil
}

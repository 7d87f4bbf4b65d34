// Package config provides configuration utilities for the application.
package config

import (
	"net/url"
	"os"

	"github.com/spf13/viper"

	"github.com/haemic/bloodflow/internal/common"
	"github.com/haemic/bloodflow/internal/geo"
)

// Default endpoints used when nothing is configured.
const (
	DefaultAPIBaseURL   = "https://bloodconnect.info"
	DefaultChatBasePath = "https://bloodconnect.info"
	DefaultChatWSURL    = "wss://bloodconnect.info/ws"
)

// Settings is the resolved runtime configuration.
type Settings struct {
	// APIBaseURL is the blood bank directory endpoint.
	APIBaseURL string
	// ChatBasePath is the assistant HTTP endpoint base.
	ChatBasePath string
	// ChatWSURL is the websocket URL of the persistent chat.
	ChatWSURL string
	// ChatUsername identifies the user in the chat room.
	ChatUsername string
	// GeocoderURL overrides the reverse geocoding endpoint.
	GeocoderURL string
	// Position holds configured coordinates for location-aware chat.
	// nil means geolocation is unavailable.
	Position *geo.Position
}

// Load resolves settings from Viper (config file or BLOODFLOW_ env
// vars), falling back to defaults. The chat username falls back to the
// OS user name so the chat command works with zero configuration.
func Load() (*Settings, error) {
	s := &Settings{
		APIBaseURL:   DefaultAPIBaseURL,
		ChatBasePath: DefaultChatBasePath,
		ChatWSURL:    DefaultChatWSURL,
	}

	if v := viper.GetString("api.base_url"); v != "" {
		s.APIBaseURL = v
	}
	if v := viper.GetString("chat.base_path"); v != "" {
		s.ChatBasePath = v
	}
	if v := viper.GetString("chat.ws_url"); v != "" {
		s.ChatWSURL = v
	}
	if v := viper.GetString("chat.username"); v != "" {
		s.ChatUsername = v
	}
	if v := viper.GetString("geocoder.base_url"); v != "" {
		s.GeocoderURL = v
	}

	if s.ChatUsername == "" {
		s.ChatUsername = os.Getenv("USER")
	}
	if s.ChatUsername == "" {
		s.ChatUsername = "guest"
	}

	latSet := viper.IsSet("location.latitude")
	lonSet := viper.IsSet("location.longitude")
	if latSet != lonSet {
		return nil, common.NewUserError(
			"location.latitude and location.longitude must be set together",
			common.ErrMissingConfig)
	}
	if latSet && lonSet {
		s.Position = &geo.Position{
			Latitude:  viper.GetFloat64("location.latitude"),
			Longitude: viper.GetFloat64("location.longitude"),
		}
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) validate() error {
	u, err := url.Parse(s.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return common.NewUserError("api.base_url must be an http(s) URL", common.ErrInvalidConfig)
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/haemic/bloodflow/internal/chat"
	"github.com/haemic/bloodflow/internal/config"
	"github.com/haemic/bloodflow/internal/directory"
	"github.com/haemic/bloodflow/internal/geo"
)

// loadDeps resolves settings and builds the directory client every
// command starts from.
func loadDeps() (*config.Settings, *directory.Client, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return settings, directory.NewClient(settings.APIBaseURL), nil
}

// newChatSession wires the persistent chat session from settings:
// websocket transport, cached locator, and reverse geocoder.
func newChatSession(settings *config.Settings) *chat.Session {
	return chat.NewSession(
		chat.StompDialer{URL: settings.ChatWSURL},
		chat.Options{
			Username: settings.ChatUsername,
			Locator:  geo.NewCachedLocator(geo.StaticLocator{Position: settings.Position}),
			Geocoder: geo.NewGeocoder(settings.GeocoderURL),
		},
	)
}

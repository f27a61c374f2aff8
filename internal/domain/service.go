package domain

import "strings"

// Service is an entry of the wash catalogue
type Service struct {
	Name            string  `toml:"name" json:"name"`
	Price           float64 `toml:"price" json:"price"`
	DurationMinutes int     `toml:"duration_minutes" json:"durationMinutes"`
	IsPremium       bool    `toml:"is_premium" json:"isPremium"`
}

// DefaultServices catalogue used when none is configured
var DefaultServices = []Service{
	{Name: "Basic Wash", Price: 200, DurationMinutes: 30},
	{Name: "Premium Wash", Price: 350, DurationMinutes: 60},
	{Name: "Deluxe Wash", Price: 500, DurationMinutes: 90},
	{Name: "Premium Detail", Price: 800, DurationMinutes: 120, IsPremium: true},
	{Name: "Executive Detail", Price: 1200, DurationMinutes: 180, IsPremium: true},
}

// Catalogue lookup of services by name
type Catalogue struct {
	services []Service
}

// NewCatalogue builds a catalogue, falling back to DefaultServices
func NewCatalogue(services []Service) *Catalogue {
	if len(services) == 0 {
		services = DefaultServices
	}
	return &Catalogue{services: append([]Service(nil), services...)}
}

// Find returns a service by case-insensitive name
func (c *Catalogue) Find(name string) (Service, bool) {
	for _, s := range c.services {
		if strings.EqualFold(s.Name, strings.TrimSpace(name)) {
			return s, true
		}
	}
	return Service{}, false
}

// All returns a copy of the catalogue
func (c *Catalogue) All() []Service {
	return append([]Service(nil), c.services...)
}

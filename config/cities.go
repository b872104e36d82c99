package config

import "strings"

// City represents a city supported by the evaluation marketplace
type City struct {
	Name      string    `json:"name"`
	BasePrice float64   `json:"base_price"`
	Center    []float64 `json:"center"`
}

// DefaultCityName is used when a property names a city we do not serve
const DefaultCityName = "toronto"

// SupportedCities is the list of cities evaluators operate in
var SupportedCities = []City{
	{
		Name:      "toronto",
		BasePrice: 30,
		Center:    []float64{43.6532, -79.3832},
	},
	{
		Name:      "mississauga",
		BasePrice: 28,
		Center:    []float64{43.5890, -79.6441},
	},
	{
		Name:      "brampton",
		BasePrice: 26,
		Center:    []float64{43.7315, -79.7624},
	},
	{
		Name:      "vaughan",
		BasePrice: 27,
		Center:    []float64{43.8361, -79.4983},
	},
	{
		Name:      "markham",
		BasePrice: 27,
		Center:    []float64{43.8561, -79.3370},
	},
	{
		Name:      "oakville",
		BasePrice: 32,
		Center:    []float64{43.4675, -79.6877},
	},
	{
		Name:      "hamilton",
		BasePrice: 24,
		Center:    []float64{43.2557, -79.8711},
	},
	{
		Name:      "ottawa",
		BasePrice: 25,
		Center:    []float64{45.4215, -75.6972},
	},
}

// NormalizeCity converts a display city name to its canonical form
func NormalizeCity(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.ReplaceAll(normalized, "'", "")
	normalized = strings.Join(strings.Fields(normalized), "-")
	return normalized
}

// GetCityNames returns a list of supported city names
func GetCityNames() []string {
	names := make([]string, len(SupportedCities))
	for i, city := range SupportedCities {
		names[i] = city.Name
	}
	return names
}

// GetCityByName returns a city configuration by name, or nil if unsupported
func GetCityByName(name string) *City {
	normalized := NormalizeCity(name)
	for _, city := range SupportedCities {
		if city.Name == normalized {
			return &city
		}
	}
	return nil
}

// GetCityOrDefault returns the named city, falling back to the default city
// for names we do not serve
func GetCityOrDefault(name string) City {
	if city := GetCityByName(name); city != nil {
		return *city
	}
	return *GetCityByName(DefaultCityName)
}

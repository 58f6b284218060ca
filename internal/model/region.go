// Package model defines the core domain models used throughout the application.
package model

import (
	"errors"
	"fmt"
	"strings"
)

// GlobalRegion is the placeholder selection shown before any region is picked.
const GlobalRegion = "Global"

// ErrUnknownRegion is returned when a region identifier is not in the configured set.
var ErrUnknownRegion = errors.New("unknown region")

// Coordinates is a display position on the map.
type Coordinates struct {
	Lat float64 `json:"lat" mapstructure:"lat"`
	Lng float64 `json:"lng" mapstructure:"lng"`
}

// Region is a named geographic unit with map coordinates, the unit of granularity for predictions.
type Region struct {
	Name        string      `json:"name" mapstructure:"name"`
	Coordinates Coordinates `json:"coordinates" mapstructure:"coordinates"`
	ID          int         `json:"id" mapstructure:"id"`
}

// DefaultRegions returns the built-in West Bengal district list.
func DefaultRegions() []Region {
	return []Region{
		{ID: 1, Name: "Kolkata", Coordinates: Coordinates{Lat: 22.5726, Lng: 88.3639}},
		{ID: 2, Name: "Howrah", Coordinates: Coordinates{Lat: 22.5958, Lng: 88.2636}},
		{ID: 3, Name: "North 24 Parganas", Coordinates: Coordinates{Lat: 22.7587, Lng: 88.4189}},
		{ID: 4, Name: "Birbhum", Coordinates: Coordinates{Lat: 23.8000, Lng: 87.6000}},
		{ID: 5, Name: "Bardhaman", Coordinates: Coordinates{Lat: 23.2545, Lng: 87.8619}},
	}
}

// RegionSet is the static set of selectable regions, kept in display order.
type RegionSet struct {
	byName  map[string]int
	regions []Region
}

// NewRegionSet builds a set from a list of regions. Names must be unique and non-empty.
func NewRegionSet(regions []Region) (*RegionSet, error) {
	set := &RegionSet{
		byName:  make(map[string]int, len(regions)),
		regions: make([]Region, 0, len(regions)),
	}

	for i, r := range regions {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			return nil, fmt.Errorf("region at index %d has no name", i)
		}
		if _, dup := set.byName[name]; dup {
			return nil, fmt.Errorf("duplicate region %q", name)
		}
		r.Name = name
		set.byName[name] = len(set.regions)
		set.regions = append(set.regions, r)
	}

	return set, nil
}

// All returns a copy of the regions in display order.
func (s *RegionSet) All() []Region {
	out := make([]Region, len(s.regions))
	copy(out, s.regions)
	return out
}

// Len returns the number of regions.
func (s *RegionSet) Len() int {
	return len(s.regions)
}

// Lookup finds a region by name.
func (s *RegionSet) Lookup(name string) (Region, error) {
	idx, ok := s.byName[name]
	if !ok {
		return Region{}, fmt.Errorf("%w: %q", ErrUnknownRegion, name)
	}
	return s.regions[idx], nil
}

// Contains reports whether name is a known region.
func (s *RegionSet) Contains(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// Index returns the display position of a region, or -1.
func (s *RegionSet) Index(name string) int {
	idx, ok := s.byName[name]
	if !ok {
		return -1
	}
	return idx
}

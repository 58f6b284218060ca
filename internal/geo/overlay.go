// Package geo loads the optional district boundary overlay and projects coordinates onto the
// terminal map grid.
package geo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// ErrNoBoundaries is returned when a document holds no polygon features.
var ErrNoBoundaries = errors.New("no boundary polygons")

// nameKeys are the feature properties tried, in order, for a boundary name.
var nameKeys = []string{"name", "NAME", "district", "DISTRICT", "dtname", "region"}

// maxDocumentSize caps remote boundary documents.
const maxDocumentSize = 32 << 20

// Boundary is one named polygon or multipolygon.
type Boundary struct {
	Geometry orb.Geometry
	Name     string
}

// Contains reports whether the point lies inside the boundary.
func (b Boundary) Contains(pt orb.Point) bool {
	switch g := b.Geometry.(type) {
	case orb.Polygon:
		return planar.PolygonContains(g, pt)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(g, pt)
	default:
		return false
	}
}

// Overlay is a set of boundaries with their combined bound.
type Overlay struct {
	Boundaries []Boundary
	Bound      orb.Bound
}

// Parse decodes a GeoJSON FeatureCollection. Non-polygon features are skipped.
func Parse(data []byte) (*Overlay, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode boundaries: %w", err)
	}

	o := &Overlay{}
	for i, f := range fc.Features {
		switch f.Geometry.(type) {
		case orb.Polygon, orb.MultiPolygon:
		default:
			continue
		}

		b := Boundary{Geometry: f.Geometry, Name: featureName(f, i)}
		if len(o.Boundaries) == 0 {
			o.Bound = f.Geometry.Bound()
		} else {
			o.Bound = o.Bound.Union(f.Geometry.Bound())
		}
		o.Boundaries = append(o.Boundaries, b)
	}

	if len(o.Boundaries) == 0 {
		return nil, ErrNoBoundaries
	}
	return o, nil
}

func featureName(f *geojson.Feature, index int) string {
	for _, key := range nameKeys {
		if v := strings.TrimSpace(f.Properties.MustString(key, "")); v != "" {
			return v
		}
	}
	return fmt.Sprintf("feature-%d", index)
}

// Locate returns the name of the first boundary containing the coordinates.
func (o *Overlay) Locate(lat, lng float64) (string, bool) {
	if o == nil {
		return "", false
	}
	pt := orb.Point{lng, lat}
	if !o.Bound.Contains(pt) {
		return "", false
	}
	for _, b := range o.Boundaries {
		if b.Contains(pt) {
			return b.Name, true
		}
	}
	return "", false
}

// Boundary looks up a boundary by name, case-insensitively.
func (o *Overlay) Boundary(name string) (Boundary, bool) {
	if o == nil {
		return Boundary{}, false
	}
	for _, b := range o.Boundaries {
		if strings.EqualFold(b.Name, name) {
			return b, true
		}
	}
	return Boundary{}, false
}

// Len returns the number of boundaries; zero for a nil overlay.
func (o *Overlay) Len() int {
	if o == nil {
		return 0
	}
	return len(o.Boundaries)
}

// Loader fetches boundary documents from a file path or an http(s) URL.
type Loader struct {
	HTTPClient *http.Client
}

// NewLoader creates a loader whose HTTP requests time out after timeout.
func NewLoader(timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Loader{HTTPClient: &http.Client{Timeout: timeout}}
}

// Load reads and parses the boundary document at source.
func (l *Loader) Load(ctx context.Context, source string) (*Overlay, error) {
	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		data, err = l.fetch(ctx, source)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// LoadOptional is Load for an optional overlay: an empty source, a missing document or an
// invalid one yields nil with a warning.
func (l *Loader) LoadOptional(ctx context.Context, source string) *Overlay {
	if strings.TrimSpace(source) == "" {
		return nil
	}
	o, err := l.Load(ctx, source)
	if err != nil {
		slog.Warn("Boundary overlay unavailable, continuing without it",
			"source", source,
			"error", err)
		return nil
	}
	slog.Debug("Loaded boundary overlay", "source", source, "boundaries", o.Len())
	return o
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := l.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch boundaries: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("boundary request failed with status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read boundaries: %w", err)
	}
	return data, nil
}

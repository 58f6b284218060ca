package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Sayan30092004/load-main/internal/cli"
	"github.com/Sayan30092004/load-main/internal/common"
	"github.com/Sayan30092004/load-main/internal/config"
	"github.com/Sayan30092004/load-main/internal/geo"
	"github.com/Sayan30092004/load-main/internal/model"
	"github.com/spf13/cobra"
)

func regionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "regions",
		Short: "List the selectable regions",
		Long: `List the configured regions and, with --locate, find which region a
coordinate falls in.

Boundary polygons come from map.boundaries; without them only the nearest
region marker is reported.`,
		RunE: runRegions,
	}

	// Flags
	cmd.Flags().String("locate", "", "Coordinate to locate, as lat,lng")
	cmd.Flags().String("boundaries", "", "GeoJSON boundary file or URL")

	return cmd
}

func runRegions(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// map.boundaries is bound by the dashboard, so the flag is applied here
	if source, _ := cmd.Flags().GetString("boundaries"); source != "" {
		cfg.Boundaries = config.ExpandPath(source)
	}
	overlay := geo.NewLoader(cfg.Timeout).LoadOptional(cmd.Context(), cfg.Boundaries)
	out := cmd.OutOrStdout()

	locate, _ := cmd.Flags().GetString("locate")
	if locate == "" {
		_, err := fmt.Fprintln(out, renderRegions(cfg.Regions, overlay))
		return err
	}

	lat, lng, err := parseCoordinate(locate)
	if err != nil {
		return err
	}
	return writeLocation(out, cfg.Regions, overlay, lat, lng)
}

// renderRegions lays out the regions as a table, marking those with a boundary polygon.
func renderRegions(regions []model.Region, overlay *geo.Overlay) string {
	rows := make([][]string, 0, len(regions))
	for _, r := range regions {
		boundary := "-"
		if _, ok := overlay.Boundary(r.Name); ok {
			boundary = cli.SuccessIcon
		}
		rows = append(rows, []string{
			r.Name,
			strconv.FormatFloat(r.Coordinates.Lat, 'f', 4, 64),
			strconv.FormatFloat(r.Coordinates.Lng, 'f', 4, 64),
			boundary,
		})
	}

	title := cli.FormatTitle(fmt.Sprintf("%s %d regions", cli.MapIcon, len(regions)))
	return title + "\n" + cli.RenderTable([]string{"Region", "Lat", "Lng", "Boundary"}, rows)
}

func writeLocation(w io.Writer, regions []model.Region, overlay *geo.Overlay, lat, lng float64) error {
	var lines []string
	if name, ok := overlay.Locate(lat, lng); ok {
		lines = append(lines, cli.FormatSuccess(fmt.Sprintf("(%.4f, %.4f) is inside %s", lat, lng, name)))
	} else if overlay.Len() > 0 {
		lines = append(lines, cli.FormatWarning(fmt.Sprintf("(%.4f, %.4f) is outside every boundary", lat, lng)))
	}

	if nearest, km, ok := geo.Nearest(regions, lat, lng); ok {
		lines = append(lines, cli.KeyValue("Nearest region", fmt.Sprintf("%s (%.1f km)", nearest.Name, km)))
	}

	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

// parseCoordinate parses "lat,lng".
func parseCoordinate(s string) (float64, float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, common.NewUserError("Coordinates must be written as lat,lng", fmt.Errorf("%w: %q", common.ErrInvalidConfig, s))
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil || lat < -90 || lat > 90 {
		return 0, 0, common.NewUserError("Latitude must be a number between -90 and 90", fmt.Errorf("%w: %q", common.ErrInvalidConfig, parts[0]))
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || lng < -180 || lng > 180 {
		return 0, 0, common.NewUserError("Longitude must be a number between -180 and 180", fmt.Errorf("%w: %q", common.ErrInvalidConfig, parts[1]))
	}
	return lat, lng, nil
}

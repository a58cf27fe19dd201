package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/collection-point-service/internal/config"
	"github.com/collection-point-service/internal/domain"
	"github.com/collection-point-service/internal/domain/repository"
	"github.com/collection-point-service/internal/infrastructure/catalogapi"
	"github.com/collection-point-service/internal/infrastructure/geolocation"
	"github.com/collection-point-service/internal/pkg/logger"
	"github.com/collection-point-service/internal/usecase"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Options - общие флаги CLI
type Options struct {
	EnvFile  string
	LogLevel string
	Timeout  time.Duration
}

// printBridge prints navigation intents instead of routing.
type printBridge struct{}

func (printBridge) SelectPoint(pointID int64) {
	fmt.Printf("navigate: Detail point_id=%d\n", pointID)
}

func (printBridge) GoBack() {
	fmt.Println("navigate: back")
}

func main() {
	opts := &Options{}

	root := &cobra.Command{
		Use:           "discover",
		Short:         "Query the collection point catalog the way the discovery screen does",
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "Config file (env format)")
	root.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "warn", "Log level")
	root.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 30*time.Second, "Overall timeout")

	root.AddCommand(newPointsCmd(opts), newCategoriesCmd(opts), newDetailCmd(opts))

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setup(opts *Options) (*config.Config, *zap.Logger, repository.CatalogRepository, error) {
	cfg, err := config.LoadFrom(opts.EnvFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	log, err := logger.New(opts.LogLevel)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, log, catalogapi.NewCatalogClient(&cfg.Catalog, log), nil
}

func newPointsCmd(opts *Options) *cobra.Command {
	var (
		lat, lon   float64
		deny       bool
		categories []int64
		selectID   int64
		asGeoJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "points",
		Short: "Mount a discovery screen, apply category toggles and print the markers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, catalog, err := setup(opts)
			if err != nil {
				return err
			}
			defer log.Sync()

			report := geolocation.Report{Permission: domain.PermissionGranted}
			switch {
			case deny:
				report.Permission = domain.PermissionDenied
			case cmd.Flags().Changed("lat") && cmd.Flags().Changed("lon"):
				report.Position = &domain.Coordinate{Latitude: lat, Longitude: lon}
			default:
				report.Error = "no position given"
			}

			screen := usecase.NewDiscoveryScreen(usecase.ScreenConfig{
				Catalog:  catalog,
				Location: usecase.NewLocationProvider(geolocation.NewReported(report), log),
				Bridge:   printBridge{},
				City:     cfg.CityContext(),
				Fallback: cfg.FallbackRegion(),
				Logger:   log,
			})

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.Timeout)
			defer cancel()

			if err := screen.Mount(ctx); err != nil {
				return err
			}
			defer screen.Unmount()

			for _, id := range categories {
				if _, _, err := screen.Toggle(id); err != nil {
					return fmt.Errorf("toggle %d: %w", id, err)
				}
			}
			if err := screen.WaitIdle(ctx); err != nil {
				return err
			}

			snap := screen.Snapshot()
			for _, n := range snap.Notices {
				fmt.Fprintf(os.Stderr, "notice: %s: %s\n", n.Kind, n.Message)
			}

			if asGeoJSON {
				body, err := usecase.FeatureCollection(screen.Markers()).MarshalJSON()
				if err != nil {
					return err
				}
				fmt.Println(string(body))
			} else {
				if snap.Region != nil {
					fmt.Printf("region: %.4f,%.4f (%s) city=%s filter=%s\n",
						snap.Region.Center.Latitude, snap.Region.Center.Longitude,
						snap.Region.Source, cfg.CityContext(), snap.Filter)
				}
				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tLAT\tLON")
				for _, m := range screen.Markers() {
					fmt.Fprintf(w, "%d\t%s\t%.6f\t%.6f\n", m.PointID, m.Label, m.Coordinate.Latitude, m.Coordinate.Longitude)
				}
				if err := w.Flush(); err != nil {
					return err
				}
			}

			if selectID > 0 {
				return screen.SelectMarker(selectID)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "Device latitude")
	cmd.Flags().Float64Var(&lon, "lon", 0, "Device longitude")
	cmd.Flags().BoolVar(&deny, "deny", false, "Simulate denied location permission")
	cmd.Flags().Int64SliceVarP(&categories, "category", "c", nil, "Category to toggle (repeatable)")
	cmd.Flags().Int64Var(&selectID, "select", 0, "Tap the marker of this point after loading")
	cmd.Flags().BoolVar(&asGeoJSON, "geojson", false, "Print markers as GeoJSON")
	return cmd
}

func newCategoriesCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List material categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, catalog, err := setup(opts)
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.Timeout)
			defer cancel()

			batch, err := catalog.GetCategories(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tLABEL\tICON")
			for _, c := range batch.Categories {
				fmt.Fprintf(w, "%d\t%s\t%s\n", c.ID, c.Label, c.IconRef)
			}
			if batch.Dropped > 0 {
				fmt.Fprintf(os.Stderr, "dropped %d malformed records\n", batch.Dropped)
			}
			return w.Flush()
		},
	}
}

func newDetailCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "detail <point-id>",
		Short: "Show the detail card of a collection point",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var pointID int64
			if _, err := fmt.Sscan(args[0], &pointID); err != nil {
				return fmt.Errorf("invalid point id %q", args[0])
			}

			_, log, catalog, err := setup(opts)
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.Timeout)
			defer cancel()

			detail, err := usecase.NewDetailUseCase(catalog, log).GetPointDetail(ctx, pointID)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(detail)
		},
	}
}

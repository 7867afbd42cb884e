package main

import (
	"context"
	"fmt"
	"io"
	"savings-route-service/internal/adapters/distance"
	"savings-route-service/internal/adapters/repositories"
	"savings-route-service/internal/config"
	"savings-route-service/internal/domain"
	"savings-route-service/internal/services"
	"time"

	"github.com/spf13/cobra"
)

// Arrival offsets are printed relative to this departure.
var departEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

type planOptions struct {
	pointsPath      string
	depotX          int
	depotY          int
	capacity        int
	speed           float64
	maxPoints       int
	serveUnassigned bool
	arrivals        bool
}

func newPlanCmd() *cobra.Command {
	opts := planOptions{}

	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan routes for the points in a CSV file and print the summary",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return applyEnvDefaults(cmd, &opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	f := planCmd.Flags()
	f.StringVarP(&opts.pointsPath, "points", "p", "data/locations.csv", "CSV file of x,y,demand rows (POINTS_CSV)")
	f.IntVar(&opts.depotX, "depot-x", 0, "depot x coordinate (DEPOT_X)")
	f.IntVar(&opts.depotY, "depot-y", 0, "depot y coordinate (DEPOT_Y)")
	f.IntVarP(&opts.capacity, "capacity", "c", 40, "vehicle capacity (MAX_CAPACITY)")
	f.Float64Var(&opts.speed, "speed", services.DefaultVehicleSpeed, "vehicle speed in distance units per minute (VEHICLE_SPEED)")
	f.IntVar(&opts.maxPoints, "max-points", services.MaxPlanPoints, "largest point set to plan")
	f.BoolVar(&opts.serveUnassigned, "serve-unassigned", false, "give every feasible leftover point its own route")
	f.BoolVar(&opts.arrivals, "arrivals", false, "print estimated arrival offsets per stop")

	return planCmd
}

// applyEnvDefaults fills flags the user did not set from the environment.
func applyEnvDefaults(cmd *cobra.Command, opts *planOptions) error {
	var err error
	f := cmd.Flags()

	if !f.Changed("points") {
		opts.pointsPath = config.Get("POINTS_CSV", opts.pointsPath)
	}
	if !f.Changed("depot-x") {
		if opts.depotX, err = config.GetInt("DEPOT_X", opts.depotX); err != nil {
			return err
		}
	}
	if !f.Changed("depot-y") {
		if opts.depotY, err = config.GetInt("DEPOT_Y", opts.depotY); err != nil {
			return err
		}
	}
	if !f.Changed("capacity") {
		if opts.capacity, err = config.GetInt("MAX_CAPACITY", opts.capacity); err != nil {
			return err
		}
	}
	if !f.Changed("speed") {
		if opts.speed, err = config.GetFloat("VEHICLE_SPEED", opts.speed); err != nil {
			return err
		}
	}
	return nil
}

func runPlan(ctx context.Context, out io.Writer, opts planOptions) error {
	points, err := repositories.NewCSVPointRepository(opts.pointsPath).ListPoints(ctx)
	if err != nil {
		return err
	}

	depot := domain.Depot(opts.depotX, opts.depotY)
	summary, err := services.PlanRoutes(ctx, services.PlanRoutesRequest{
		Depot:           depot,
		MaxCapacity:     opts.capacity,
		ServeUnassigned: opts.serveUnassigned,
		VehicleSpeed:    opts.speed,
		DepartAt:        departEpoch,
		MaxPoints:       opts.maxPoints,
	}, points, distance.NewEuclideanDistanceProvider(), nil, nil)
	if err != nil {
		return err
	}

	printSummary(out, summary, opts.arrivals)
	return nil
}

func printSummary(out io.Writer, s *domain.PlanSummary, arrivals bool) {
	fmt.Fprintf(out, "Number of routes: %d\n", s.NumRoutes)
	fmt.Fprintf(out, "Total capacity used: %d\n", s.TotalCapacityUsed)
	fmt.Fprintf(out, "Total distance covered by all vehicles: %.2f\n", s.TotalDistance)

	for _, r := range s.Routes {
		fmt.Fprintf(out, "Route %d: %s (Capacity: %d, Distance: %.2f)\n", r.RouteID, formatCoords(r.Points), r.CapacityUsed, r.Distance)
		if !arrivals {
			continue
		}
		for _, a := range r.Arrivals {
			offset := a.ArriveAt.Sub(departEpoch)
			fmt.Fprintf(out, "  %s +%.1fmin\n", a.Point, offset.Minutes())
		}
	}

	if len(s.Unassigned) > 0 {
		fmt.Fprintf(out, "Unassigned points: %d\n", len(s.Unassigned))
		for _, p := range s.Unassigned {
			fmt.Fprintf(out, "  %s\n", p)
		}
	}
}

func formatCoords(cs []domain.Coord) string {
	b := []byte{'['}
	for i, c := range cs {
		if i > 0 {
			b = append(b, ", "...)
		}
		b = append(b, c.String()...)
	}
	b = append(b, ']')
	return string(b)
}

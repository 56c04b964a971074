package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"itinerary/cmd/fx/config_fx"
	"itinerary/cmd/fx/db_fx"
	"itinerary/cmd/fx/distance_matrix_fx"
	"itinerary/cmd/fx/itinerary_fx"
	"itinerary/cmd/fx/journey_fx"
	"itinerary/cmd/fx/memcache_fx"
	poisfx "itinerary/cmd/fx/pois_fx"
	"itinerary/cmd/fx/prompt_fx"
	"itinerary/internal/models/request_models"
	"itinerary/internal/models/response_models"
	"itinerary/internal/models/trip_models"
	"itinerary/internal/services"
)

func newScheduleCmd() *cobra.Command {
	var (
		file      string
		startTime string
		endTime   string
		noReturn  bool
		asJSON    bool
		offline   bool
		save      bool
		timeout   time.Duration
	)

	c := &cobra.Command{
		Use:   "schedule",
		Short: "Schedule the trip described by a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read --file: %w", err)
			}
			var req request_models.ScheduleItineraryRequest
			if err := json.Unmarshal(raw, &req); err != nil {
				return fmt.Errorf("parse %s: %w", file, err)
			}
			if startTime != "" {
				req.StartTime = startTime
			}
			if endTime != "" {
				req.EndTime = endTime
			}
			if noReturn {
				f := false
				req.ReturnToAccommodation = &f
			}
			if offline {
				os.Setenv("TRAVEL_PROVIDER", "none")
				os.Setenv("TEXT_PROVIDER", "none")
			}

			var (
				svc services.ItineraryServiceInterface
				loc *time.Location
			)
			app := fx.New(
				fx.NopLogger,
				config_fx.Module,
				db_fx.Module,
				memcache_fx.Module,
				distance_matrix_fx.Module,
				prompt_fx.Module,
				itinerary_fx.Module,
				poisfx.Module,
				journey_fx.Module,
				fx.Populate(&svc, &loc),
			)
			if err := app.Err(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			if err := app.Start(ctx); err != nil {
				return err
			}
			defer app.Stop(context.Background())

			tripReq, err := req.TripRequest(loc)
			if err != nil {
				return err
			}

			var sched *trip_models.TripSchedule
			if len(tripReq.POIs) == 0 && len(req.POIIDs) > 0 {
				sched, err = svc.ScheduleStoredTrip(ctx, req.POIIDs, tripReq)
			} else {
				sched, err = svc.ScheduleTrip(ctx, tripReq)
			}
			if err != nil {
				return err
			}

			var id string
			if save || req.Save {
				if id, err = svc.SaveSchedule(ctx, req.Title, tripReq, sched); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(response_models.NewItineraryResponse(id, sched, ""))
			}
			fmt.Fprint(out, svc.Summarize(sched))
			if id != "" {
				fmt.Fprintf(out, "Saved itinerary id=%s\n", id)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&file, "file", "f", "", "trip JSON file (same shape as POST /itineraries)")
	c.Flags().StringVar(&startTime, "start-time", "", "daily start time HH:MM (default 9:00)")
	c.Flags().StringVar(&endTime, "end-time", "", "daily end time HH:MM (default 21:00)")
	c.Flags().BoolVar(&noReturn, "no-return", false, "do not plan the trip back to the accommodation")
	c.Flags().BoolVar(&asJSON, "json", false, "print the schedule as JSON")
	c.Flags().BoolVar(&offline, "offline", false, "disable travel and text providers")
	c.Flags().BoolVar(&save, "save", false, "store the itinerary (requires POSTGRES_URL)")
	c.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "overall timeout")
	_ = c.MarkFlagRequired("file")
	return c
}

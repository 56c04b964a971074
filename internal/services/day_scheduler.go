package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"itinerary/internal/models/trip_models"
)

const timeAffinityScore = 3

type DaySchedulerInterface interface {
	// ScheduleDay plans one calendar day from candidates and returns the plan
	// plus the IDs of the POIs it consumed.
	ScheduleDay(
		ctx context.Context,
		candidates []trip_models.POI,
		date time.Time,
		startLoc trip_models.LatLng,
		window trip_models.TimeWindow,
		returnToStart bool,
	) (trip_models.DayPlan, []string)
}

type DayScheduler struct {
	sc     *SchedulerContext
	enrich EnrichmentServiceInterface
	travel TravelTimeServiceInterface
	log    *zap.Logger
}

func NewDayScheduler(sc *SchedulerContext, enrich EnrichmentServiceInterface, travel TravelTimeServiceInterface) DaySchedulerInterface {
	return &DayScheduler{
		sc:     sc,
		enrich: enrich,
		travel: travel,
		log:    sc.Log.Named("day"),
	}
}

func (d *DayScheduler) ScheduleDay(
	ctx context.Context,
	candidates []trip_models.POI,
	date time.Time,
	startLoc trip_models.LatLng,
	window trip_models.TimeWindow,
	returnToStart bool,
) (trip_models.DayPlan, []string) {
	plan := trip_models.DayPlan{Date: date, Activities: []trip_models.Activity{}}

	viable := make([]trip_models.POI, 0, len(candidates))
	for _, p := range candidates {
		if d.sc.OpeningHours.IsOpen(p, date) {
			viable = append(viable, p)
		}
	}
	if len(viable) == 0 {
		plan.Note = trip_models.NoActivitiesNote
		return plan, nil
	}

	dayStart, dayEnd := window.Bounds(date)
	ordered := d.order(ctx, startLoc, viable, dayStart.Hour())

	var consumed []string
	cur := dayStart
	pos := startLoc
	for _, poi := range ordered {
		profile := d.enrich.Resolve(ctx, poi)
		dwell := profile.Dwell()
		if cur.Add(dwell).After(dayEnd) {
			d.log.Debug("window full, deferring remaining candidates",
				zap.String("date", date.Format(time.DateOnly)), zap.String("place_id", poi.ID))
			break
		}

		travel := d.travel.TravelMinutes(ctx, pos, poi.Location)
		start := cur.Add(trip_models.MinutesToDuration(travel))
		plan.Activities = append(plan.Activities, trip_models.Activity{
			POI:           poi,
			Start:         start,
			DurationHours: profile.DurationHours,
			OptimalTime:   profile.OptimalTime,
			TravelMinutes: travel,
		})
		consumed = append(consumed, poi.ID)

		cur = start.Add(dwell)
		pos = poi.Location
	}

	if len(plan.Activities) == 0 {
		plan.Note = trip_models.NoActivitiesNote
		return plan, nil
	}

	if returnToStart && !pos.Equal(startLoc) {
		back := d.travel.TravelMinutes(ctx, pos, startLoc)
		plan.Return = &trip_models.ReturnLeg{
			Departure:     cur,
			TravelMinutes: back,
			Arrival:       cur.Add(trip_models.MinutesToDuration(back)),
		}
	}
	return plan, consumed
}

// order groups candidates by time-affinity score (highest first) and orders
// each group nearest-first from the running position. Ties keep pool order.
func (d *DayScheduler) order(ctx context.Context, from trip_models.LatLng, pois []trip_models.POI, hour int) []trip_models.POI {
	groups := make(map[int][]trip_models.POI)
	for _, p := range pois {
		profile := d.enrich.Resolve(ctx, p)
		score := affinityScore(profile.OptimalTime, hour)
		groups[score] = append(groups[score], p)
	}

	scores := make([]int, 0, len(groups))
	for s := range groups {
		scores = append(scores, s)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(scores)))

	out := make([]trip_models.POI, 0, len(pois))
	cur := from
	for _, s := range scores {
		group := groups[s]
		for len(group) > 0 {
			next := 0
			if len(group) > 1 {
				dests := make([]trip_models.LatLng, len(group))
				for i, p := range group {
					dests[i] = p.Location
				}
				minutes := d.travel.TravelMinutesMany(ctx, cur, dests)
				for i := 1; i < len(minutes); i++ {
					if minutes[i] < minutes[next] {
						next = i
					}
				}
			}
			picked := group[next]
			group = append(group[:next:next], group[next+1:]...)
			out = append(out, picked)
			cur = picked.Location
		}
	}
	return out
}

// affinityScore rewards a POI whose optimal-time note names the period of
// the given clock hour.
func affinityScore(note string, hour int) int {
	note = strings.ToLower(note)
	switch {
	case hour < 12:
		if strings.Contains(note, "morning") {
			return timeAffinityScore
		}
	case hour < 17:
		if strings.Contains(note, "afternoon") {
			return timeAffinityScore
		}
	default:
		if strings.Contains(note, "evening") {
			return timeAffinityScore
		}
	}
	return 0
}

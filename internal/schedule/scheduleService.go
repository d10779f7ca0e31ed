package schedule

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/nathan-osman/go-sunrise"

	"lightify/internal/config"
)

type ScheduleService struct {
	cfg    config.Config
	logger *log.Logger
}

func NewScheduleService(cfg config.Config, logger *log.Logger) *ScheduleService {
	return &ScheduleService{cfg: cfg, logger: logger}
}

// CalculateSunriseSunset computes local sunrise and sunset for the
// configured geo location, clamped into the configured min/max windows.
func (s *ScheduleService) CalculateSunriseSunset(baseDate time.Time) (time.Time, time.Time) {
	latLng := strings.Split(s.cfg.GeoLocation, ",")
	lat, _ := strconv.ParseFloat(latLng[0], 64)
	lng, _ := strconv.ParseFloat(latLng[1], 64)
	rise, set := sunrise.SunriseSunset(
		lat, lng,
		baseDate.Year(), baseDate.Month(), baseDate.Day(),
	)
	rise = rise.Local()
	set = set.Local()

	sch := s.cfg.Schedule
	if sch.SunriseMin != "" {
		if min := timeFromConfigTimeString(sch.SunriseMin, baseDate); rise.Before(min) {
			rise = min
		}
	}
	if sch.SunriseMax != "" {
		if max := timeFromConfigTimeString(sch.SunriseMax, baseDate); rise.After(max) {
			rise = max
		}
	}
	if sch.SunsetMin != "" {
		if min := timeFromConfigTimeString(sch.SunsetMin, baseDate); set.Before(min) {
			set = min
		}
	}
	if sch.SunsetMax != "" {
		if max := timeFromConfigTimeString(sch.SunsetMax, baseDate); set.After(max) {
			set = max
		}
	}

	s.logger.Debug("calculated local sunrise and sunset",
		"sunrise", rise.Format("15:04"),
		"sunset", set.Format("15:04"),
	)
	return rise, set
}

// GetIntervalForTime returns the day-pattern interval containing t. The
// pattern ramps from the night step at midnight up to the day step at
// sunrise, holds it until sunset, and ramps back down to the night step by
// end of day.
func (s *ScheduleService) GetIntervalForTime(t time.Time) Interval {

	rise, set := s.CalculateSunriseSunset(t)

	night := IntervalStep{
		Luminance:   s.cfg.Schedule.Night.Luminance,
		Temperature: s.cfg.Schedule.Night.Temperature,
	}
	day := IntervalStep{
		Luminance:   s.cfg.Schedule.Day.Luminance,
		Temperature: s.cfg.Schedule.Day.Temperature,
	}

	steps := []IntervalStep{
		stepAt(night, startOfDay(t)),
		stepAt(day, rise),
		stepAt(day, set),
		stepAt(night, endOfDay(t)),
	}

	for i := 0; i < len(steps)-1; i++ {
		if t.Compare(steps[i].Time) > -1 && t.Before(steps[i+1].Time) {
			return Interval{Start: steps[i], End: steps[i+1]}
		}
	}

	// t can only fall past the last step in the final second of the day
	return Interval{Start: steps[len(steps)-2], End: steps[len(steps)-1]}
}

func stepAt(step IntervalStep, at time.Time) IntervalStep {
	step.Time = at
	return step
}

func startOfDay(baseDate time.Time) time.Time {
	return time.Date(baseDate.Year(), baseDate.Month(), baseDate.Day(), 0, 0, 0, 0, time.Local)
}

func endOfDay(baseDate time.Time) time.Time {
	return time.Date(baseDate.Year(), baseDate.Month(), baseDate.Day(), 23, 59, 59, 999999, time.Local)
}

// returns a Time object built from the supplied time string (e.g. "06:30") and a base date
func timeFromConfigTimeString(timeString string, baseDate time.Time) time.Time {
	timeHM := strings.Split(timeString, ":")
	hour, _ := strconv.Atoi(timeHM[0])
	mins, _ := strconv.Atoi(timeHM[1])
	return time.Date(baseDate.Year(), baseDate.Month(), baseDate.Day(), hour, mins, 0, 0, time.Local)
}

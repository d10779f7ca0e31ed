package schedule

import (
	"time"
)

type IntervalStep struct {
	Time        time.Time
	Luminance   int
	Temperature int
}

// Interval is one segment of the day pattern; target state moves linearly
// from the Start step to the End step across it.
type Interval struct {
	Start IntervalStep
	End   IntervalStep
}

type LightState struct {
	Luminance   int
	Temperature int
}

func (i Interval) CalculateTargetLightState(timestamp time.Time) LightState {

	intervalDuration := i.End.Time.Sub(i.Start.Time)
	intervalProgress := timestamp.Sub(i.Start.Time)
	percentProgress := intervalProgress.Seconds() / intervalDuration.Seconds()

	temperatureDiff := i.End.Temperature - i.Start.Temperature
	targetTemperature := i.Start.Temperature + int(float64(temperatureDiff)*percentProgress)

	luminanceDiff := i.End.Luminance - i.Start.Luminance
	targetLuminance := i.Start.Luminance + int(float64(luminanceDiff)*percentProgress)

	return LightState{
		Luminance:   targetLuminance,
		Temperature: targetTemperature,
	}
}

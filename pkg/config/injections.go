package config

import (
	"math"
	"time"

	"github.com/robfig/cron/v3"
)

// Epoch anchors cron schedules to simulated time: one simulated time unit
// is one minute after Epoch.
var Epoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// MaxInjectionWindow is the largest cron window, in simulated minutes, that
// fits in a time.Duration
const MaxInjectionWindow = float64(math.MaxInt64 / int64(time.Minute))

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Times returns the simulated times at which the injection fires, in
// ascending order. Each time carries Count customers.
func (inj Injection) Times() ([]float64, error) {
	if inj.Cron == "" {
		return []float64{inj.At}, nil
	}

	schedule, err := cronParser.Parse(inj.Cron)
	if err != nil {
		return nil, err
	}

	var times []float64
	end := Epoch.Add(minutes(inj.Until))
	currentTime := Epoch.Add(-time.Second)
	for {
		nextRun := schedule.Next(currentTime)
		if nextRun.IsZero() || nextRun.After(end) {
			break
		}
		times = append(times, nextRun.Sub(Epoch).Minutes())
		currentTime = nextRun
	}
	return times, nil
}

func minutes(t float64) time.Duration {
	return time.Duration(t * float64(time.Minute))
}

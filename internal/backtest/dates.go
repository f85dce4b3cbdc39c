package backtest

import (
	"fmt"
	"time"
)

// Supported rebalance frequencies.
const (
	FreqDaily   = "daily"
	FreqWeekly  = "weekly"
	FreqMonthly = "monthly"
)

// rebalanceDates generates the schedule for a run. The first date is
// start itself; monthly steps to the 1st of each subsequent month,
// weekly steps by 7 calendar days, daily by 1. Weekends are included;
// filtering them is the data provider's concern.
func rebalanceDates(start, end time.Time, frequency string) ([]time.Time, error) {
	switch frequency {
	case FreqDaily, FreqWeekly, FreqMonthly:
	default:
		return nil, fmt.Errorf("unknown rebalance frequency: %q", frequency)
	}

	if !start.Before(end) {
		return nil, nil
	}

	var dates []time.Time
	d := start
	for !d.After(end) {
		dates = append(dates, d)
		switch frequency {
		case FreqMonthly:
			d = time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location()).AddDate(0, 1, 0)
		case FreqWeekly:
			d = d.AddDate(0, 0, 7)
		case FreqDaily:
			d = d.AddDate(0, 0, 1)
		}
	}

	return dates, nil
}

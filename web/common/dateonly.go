package common

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateOnly binds yyyy-MM-dd request fields such as a timesheet period
// start. The time of day is always midnight UTC, matching how period dates
// are stored.
type DateOnly struct {
	time.Time
}

const dateOnlyLayout = "2006-01-02"

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	if s == "" {
		d.Time = time.Time{}
		return nil
	}

	t, err := time.Parse(dateOnlyLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date format: %v", err)
	}

	d.Time = t
	return nil
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(d.Format(dateOnlyLayout))
}

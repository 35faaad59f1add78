package options

import (
	"strings"
	"time"

	"github.com/spf13/cobra"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// OnOptions picks the day a command works on.
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on="2020-2-28", --on="2/28" or --on=tomorrow.`)
}

// GetOn returns the parsed --on date, or nil when it was not given.
func (o *OnOptions) GetOn() (*time.Time, error) {
	return o.parse(time.Now())
}

func (o *OnOptions) parse(now time.Time) (*time.Time, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch strings.ToLower(strings.TrimSpace(o.OnString)) {
	case "":
		return nil, nil
	case "today":
		return &today, nil
	case "tomorrow":
		t := today.AddDate(0, 0, 1)
		return &t, nil
	case "yesterday":
		t := today.AddDate(0, 0, -1)
		return &t, nil
	}
	t, err := time.Parse(layoutISO, o.OnString)
	if err != nil {
		// Let the year be the same.
		t, err = time.Parse(layoutISOShort, o.OnString)
		if err != nil {
			return nil, err
		}
		t = t.AddDate(now.Year(), 0, 0)
		// 1/3 said on 12/5 means next January, not eleven months ago.
		if t.Before(today.AddDate(0, -6, 0)) {
			t = t.AddDate(1, 0, 0)
		}
	}
	return &t, nil
}

// Date is the --on date, or today when it was not given.
func (o *OnOptions) Date() (time.Time, error) {
	return o.dateAt(time.Now())
}

func (o *OnOptions) dateAt(now time.Time) (time.Time, error) {
	on, err := o.parse(now)
	if err != nil {
		return time.Time{}, err
	}
	if on == nil {
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return *on, nil
}

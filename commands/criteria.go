package commands

import (
	"fmt"

	"logview/models"
)

// filterFlags are the criteria flags shared by export and summary.
type filterFlags struct {
	search    string
	level     string
	timeRange string
}

// criteria builds FilterCriteria from the flags, falling back to defaults for
// an empty time range.
func (f filterFlags) criteria(defaults models.FilterCriteria) (models.FilterCriteria, error) {
	c := models.FilterCriteria{
		SearchTerm: f.search,
		Level:      f.level,
		TimeRange:  models.TimeRange(f.timeRange),
	}
	if c.Level == "" {
		c.Level = models.LevelAll
	}
	if c.TimeRange == "" {
		c.TimeRange = defaults.TimeRange
	}
	if !c.TimeRange.Valid() {
		return models.FilterCriteria{}, fmt.Errorf("time range %q is not one of 1h, 6h, 24h, 7d, all", f.timeRange)
	}
	return c, nil
}

package database

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidTime is returned for time bounds that are not RFC3339.
var ErrInvalidTime = errors.New("invalid time")

const (
	columnID        = "id"
	columnLevel     = "level"
	columnMessage   = "message"
	columnTimestamp = "timestamp"
	columnService   = "service"
	columnComponent = "component"
)

// QueryBuilder helps build WHERE clauses safely
type QueryBuilder struct {
	conditions []string
	args       []interface{}
	argCount   int
}

func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{
		conditions: []string{},
		args:       []interface{}{},
		argCount:   1,
	}
}

func (qb *QueryBuilder) AddCondition(column string, value interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf("%s = $%d", column, qb.argCount))
	qb.args = append(qb.args, value)
	qb.argCount++
}

func (qb *QueryBuilder) AddTimeRange(column, start, end string) error {
	if start != "" {
		startTime, err := parseRFC3339(start)
		if err != nil {
			return fmt.Errorf("%w: start_time: %v", ErrInvalidTime, err)
		}
		qb.conditions = append(qb.conditions, fmt.Sprintf("%s >= $%d", column, qb.argCount))
		qb.args = append(qb.args, startTime)
		qb.argCount++
	}

	if end != "" {
		endTime, err := parseRFC3339(end)
		if err != nil {
			return fmt.Errorf("%w: end_time: %v", ErrInvalidTime, err)
		}
		qb.conditions = append(qb.conditions, fmt.Sprintf("%s <= $%d", column, qb.argCount))
		qb.args = append(qb.args, endTime)
		qb.argCount++
	}

	return nil
}

// AddContains matches rows whose column contains substring, ignoring case.
// LIKE wildcards in substring are matched literally.
func (qb *QueryBuilder) AddContains(column, substring string) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(`%s ILIKE $%d ESCAPE '\'`, column, qb.argCount))
	qb.args = append(qb.args, "%"+escapeLike(substring)+"%")
	qb.argCount++
}

func (qb *QueryBuilder) WhereClause() string {
	if len(qb.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(qb.conditions, " AND ")
}

func (qb *QueryBuilder) Args() []interface{} {
	return qb.args
}

func (qb *QueryBuilder) NextArgNum() int {
	return qb.argCount
}

// Helper functions

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func parseRFC3339(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

func validateLimit(limit, defaultLimit, maxLimit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

func validateOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

// pageOffset converts a 1-based page number to a row offset.
func pageOffset(page, limit int) int {
	return validateOffset((page - 1) * limit)
}

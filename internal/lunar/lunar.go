// Package lunar adapts the 6tail lunar tables to the engine's LunarConverter.
package lunar

import (
	"errors"
	"fmt"
	"time"

	"github.com/6tail/lunar-go/calendar"
	"github.com/tartampluch/go-thienco/internal/config"
	"github.com/tartampluch/go-thienco/internal/engine"
)

// Supported Gregorian years. The tables go further, but forecasts outside this
// window have never been checked against published almanacs.
const (
	MinYear = 1900
	MaxYear = 2100
)

var (
	ErrOutOfRange  = errors.New("date outside supported lunar range")
	ErrInvalidDate = errors.New("not a valid Gregorian date")
)

// Calendar implements engine.LunarConverter.
type Calendar struct{}

var _ engine.LunarConverter = Calendar{}

// New returns the lunar calendar adapter.
func New() Calendar { return Calendar{} }

// ToLunar converts a Gregorian date. The library encodes leap months as
// negative month numbers; they are returned as a positive month with Leap set.
func (Calendar) ToLunar(year, month, day int) (out engine.LunarDate, err error) {
	if year < MinYear || year > MaxYear {
		return engine.LunarDate{}, fmt.Errorf("%s: %w: %d", config.ErrLunarConvert, ErrOutOfRange, year)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return engine.LunarDate{}, fmt.Errorf("%s: %w: %04d-%02d-%02d", config.ErrLunarConvert, ErrInvalidDate, year, month, day)
	}

	// The library panics on dates its tables cannot place.
	defer func() {
		if r := recover(); r != nil {
			out = engine.LunarDate{}
			err = fmt.Errorf("%s: %v", config.ErrLunarConvert, r)
		}
	}()

	l := calendar.NewSolarFromYmd(year, month, day).GetLunar()
	m := l.GetMonth()
	leap := m < 0
	if leap {
		m = -m
	}
	return engine.LunarDate{Day: l.GetDay(), Month: m, Year: l.GetYear(), Leap: leap}, nil
}

package engine

import (
	"errors"
	"fmt"
	"time"
)

// LunarDate is the result of a solar to lunar conversion.
type LunarDate struct {
	Day   int
	Month int
	Year  int
	Leap  bool
}

// LunarConverter converts a Gregorian date to the lunar calendar.
// The engine relies on nothing beyond the shape of LunarDate.
type LunarConverter interface {
	ToLunar(year, month, day int) (LunarDate, error)
}

// Profile describes the person the forecasts are computed for.
type Profile struct {
	BirthDay   int
	BirthMonth int
	BirthYear  int
	Element    Element
	Branch     Branch
	LifePath   int
}

// ErrInvalidProfile wraps every profile validation failure.
var ErrInvalidProfile = errors.New("invalid profile")

// Validate checks the birth date, the enums and the life-path range.
func (p Profile) Validate() error {
	birth := time.Date(p.BirthYear, time.Month(p.BirthMonth), p.BirthDay, 0, 0, 0, 0, time.UTC)
	if birth.Day() != p.BirthDay || int(birth.Month()) != p.BirthMonth || birth.Year() != p.BirthYear {
		return fmt.Errorf("%w: birth date %d/%d/%d", ErrInvalidProfile, p.BirthDay, p.BirthMonth, p.BirthYear)
	}
	if !p.Element.Valid() {
		return fmt.Errorf("%w: element %d", ErrInvalidProfile, p.Element)
	}
	if !p.Branch.Valid() {
		return fmt.Errorf("%w: branch %d", ErrInvalidProfile, p.Branch)
	}
	if p.LifePath < 1 || p.LifePath > 9 {
		return fmt.Errorf("%w: life path %d", ErrInvalidProfile, p.LifePath)
	}
	return nil
}

// CalendarDay is a solar day together with its lunar coordinates.
type CalendarDay struct {
	Solar      time.Time // midnight UTC of the civil day
	LunarDay   int
	LunarMonth int
	LunarYear  int
	LeapMonth  bool
	Season     Season
}

// Verdict is the complete forecast for one day and one profile.
type Verdict struct {
	Day            CalendarDay
	Pillar         DayPillar
	Year           Pillar // pillar of the lunar year
	DutyGod        DutyGod
	Clash          bool
	Harmony        bool
	TripleHarmony  bool
	StemRelation   Relationship
	BranchRelation Relationship
	Vitality       VitalityState
	PersonalDay    int
	Match          Compatibility
	LuckScore      int
}

// Auspicious reports a Hoàng Đạo day.
func (v Verdict) Auspicious() bool { return v.DutyGod.Auspicious() }

// DominantElement is the stem element, which outweighs the branch element.
func (v Verdict) DominantElement() Element { return v.Pillar.StemElement }

// Engine computes verdicts for a fixed profile. It holds no mutable state.
type Engine struct {
	lunar   LunarConverter
	profile Profile
}

// New validates the profile and returns an engine bound to it.
func New(lunar LunarConverter, profile Profile) (*Engine, error) {
	if lunar == nil {
		return nil, errors.New("lunar converter is required")
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return &Engine{lunar: lunar, profile: profile}, nil
}

// Profile returns the profile the engine was built with.
func (e *Engine) Profile() Profile { return e.profile }

// Compute builds the verdict for the calendar day of date.
func (e *Engine) Compute(date time.Time) (Verdict, error) {
	solar := civilDate(date)
	y, m, d := solar.Date()

	lunar, err := e.lunar.ToLunar(y, int(m), d)
	if err != nil {
		return Verdict{}, fmt.Errorf("lunar conversion of %s: %w", solar.Format(time.DateOnly), err)
	}
	season, err := SeasonOf(lunar.Month)
	if err != nil {
		return Verdict{}, err
	}

	pillar := Day(solar)
	duty, err := ResolveDutyGod(lunar.Month, pillar.BranchIndex)
	if err != nil {
		return Verdict{}, err
	}
	vitality, err := StateOf(season, e.profile.Element)
	if err != nil {
		return Verdict{}, err
	}

	v := Verdict{
		Day: CalendarDay{
			Solar:      solar,
			LunarDay:   lunar.Day,
			LunarMonth: lunar.Month,
			LunarYear:  lunar.Year,
			LeapMonth:  lunar.Leap,
			Season:     season,
		},
		Pillar:         pillar,
		Year:           YearPillar(lunar.Year),
		DutyGod:        duty,
		Clash:          Clashes(pillar.Branch, e.profile.Branch),
		Harmony:        Harmonizes(pillar.Branch, e.profile.Branch),
		TripleHarmony:  TripleHarmony(pillar.Branch, e.profile.Branch),
		StemRelation:   Relate(pillar.StemElement, e.profile.Element),
		BranchRelation: Relate(pillar.BranchElement, e.profile.Element),
		Vitality:       vitality,
		PersonalDay:    PersonalDay(solar, e.profile.BirthDay, e.profile.BirthMonth),
	}
	v.Match = Compatible(e.profile.LifePath, v.PersonalDay)
	v.LuckScore = LuckScore(ScoreInputs{
		Clash:          v.Clash,
		Harmony:        v.Harmony,
		Auspicious:     duty.Auspicious(),
		StemRelation:   v.StemRelation,
		BranchRelation: v.BranchRelation,
		Vitality:       vitality,
	})
	return v, nil
}

// Range computes verdicts for days consecutive days starting at from.
func (e *Engine) Range(from time.Time, days int) ([]Verdict, error) {
	out := make([]Verdict, 0, max(days, 0))
	start := civilDate(from)
	for i := range days {
		v, err := e.Compute(start.AddDate(0, 0, i))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

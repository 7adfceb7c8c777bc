package engine

import (
	"errors"
	"fmt"
)

// Season follows the lunar month: three months per season, starting with spring.
type Season int

const (
	Spring Season = iota
	Summer
	Autumn
	Winter
)

const seasonCount = 4

var seasonNames = [seasonCount]string{"Xuân", "Hạ", "Thu", "Đông"}

// VitalityState is the seasonal strength of an element (Vượng, Tướng, Hưu, Tù, Tử).
// The zero value marks a missing table entry.
type VitalityState int

const (
	vitalityUnset VitalityState = iota
	Prosperous
	Growing
	Resting
	Imprisoned
	Dead
)

var vitalityNames = [...]string{
	vitalityUnset: "?",
	Prosperous:    "Vượng",
	Growing:       "Tướng",
	Resting:       "Hưu",
	Imprisoned:    "Tù",
	Dead:          "Tử",
}

var vitalityModifiers = [...]int{
	Prosperous: 2,
	Growing:    1,
	Resting:    0,
	Imprisoned: -1,
	Dead:       -2,
}

var vitalityTable = [seasonCount][elementCount]VitalityState{
	Spring: {Wood: Prosperous, Fire: Growing, Water: Resting, Metal: Imprisoned, Earth: Dead},
	Summer: {Fire: Prosperous, Earth: Growing, Wood: Resting, Water: Imprisoned, Metal: Dead},
	Autumn: {Metal: Prosperous, Water: Growing, Earth: Resting, Fire: Imprisoned, Wood: Dead},
	Winter: {Water: Prosperous, Wood: Growing, Metal: Resting, Earth: Imprisoned, Fire: Dead},
}

// ErrVitalityTable signals a (season, element) pair with no state, which is a table defect.
var ErrVitalityTable = errors.New("no vitality state for season and element")

// Seasons lists the four seasons in order.
func Seasons() []Season { return []Season{Spring, Summer, Autumn, Winter} }

func (s Season) Valid() bool { return s >= Spring && s <= Winter }

func (s Season) String() string {
	if !s.Valid() {
		return "?"
	}
	return seasonNames[s]
}

// SeasonOf maps a lunar month in [1,12] to its season.
func SeasonOf(lunarMonth int) (Season, error) {
	if lunarMonth < 1 || lunarMonth > 12 {
		return 0, fmt.Errorf("%w: %d", ErrLunarMonthRange, lunarMonth)
	}
	return Season((lunarMonth - 1) / 3), nil
}

func (v VitalityState) Valid() bool { return v >= Prosperous && v <= Dead }

func (v VitalityState) String() string {
	if !v.Valid() {
		return vitalityNames[vitalityUnset]
	}
	return vitalityNames[v]
}

// Modifier is the luck adjustment carried by the state.
func (v VitalityState) Modifier() int {
	if !v.Valid() {
		return 0
	}
	return vitalityModifiers[v]
}

// StateOf looks up the vitality of element during season.
func StateOf(season Season, element Element) (VitalityState, error) {
	if !season.Valid() || !element.Valid() {
		return vitalityUnset, fmt.Errorf("%w: %d/%d", ErrVitalityTable, season, element)
	}
	state := vitalityTable[season][element]
	if !state.Valid() {
		return vitalityUnset, fmt.Errorf("%w: %s/%s", ErrVitalityTable, season, element)
	}
	return state, nil
}

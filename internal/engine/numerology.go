package engine

import "time"

// DigitalRoot sums decimal digits until one digit remains.
// Master numbers (11, 22, 33) are reduced like any other value.
// DigitalRoot(0) is 0; negative input is reduced by its absolute value.
func DigitalRoot(n int) int {
	if n < 0 {
		n = -n
	}
	for n > 9 {
		n = digitSum(n)
	}
	return n
}

func digitSum(n int) int {
	sum := 0
	for n > 0 {
		sum += n % 10
		n /= 10
	}
	return sum
}

// yearRoot reduces the digit sum of a year.
func yearRoot(year int) int {
	if year < 0 {
		year = -year
	}
	return DigitalRoot(digitSum(year))
}

// LifePath reduces day, month and the year's digit sum separately, then reduces their total.
func LifePath(day, month, year int) int {
	return DigitalRoot(DigitalRoot(day) + DigitalRoot(month) + yearRoot(year))
}

// PersonalDay combines the target date with the birth day and month.
func PersonalDay(date time.Time, birthDay, birthMonth int) int {
	y, m, d := date.Date()
	total := DigitalRoot(d) + DigitalRoot(int(m)) + yearRoot(y) +
		DigitalRoot(birthDay) + DigitalRoot(birthMonth)
	return DigitalRoot(total)
}

// MatchTier names a compatibility band between the life path and the day number.
type MatchTier int

const (
	MatchHarmonious MatchTier = iota
	MatchSupportive
	MatchNeutral
	MatchChallenging
)

var matchTierNames = [...]string{"harmonious", "supportive", "neutral", "challenging"}

func (t MatchTier) String() string {
	if t < MatchHarmonious || t > MatchChallenging {
		return "?"
	}
	return matchTierNames[t]
}

// Compatibility is the numerology match of a day for the user.
type Compatibility struct {
	Score int
	Tier  MatchTier
}

// Compatible bands |lifePath − dayNumber|: 0 → 9, 1-2 → 7, 3-4 → 5, otherwise 3.
func Compatible(lifePath, dayNumber int) Compatibility {
	diff := lifePath - dayNumber
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff == 0:
		return Compatibility{Score: 9, Tier: MatchHarmonious}
	case diff <= 2:
		return Compatibility{Score: 7, Tier: MatchSupportive}
	case diff <= 4:
		return Compatibility{Score: 5, Tier: MatchNeutral}
	default:
		return Compatibility{Score: 3, Tier: MatchChallenging}
	}
}

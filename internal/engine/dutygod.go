package engine

import (
	"errors"
	"fmt"
)

// DutyGod is one of the twelve day officers (Thập Nhị Trực).
type DutyGod int

const (
	Kien DutyGod = iota
	Tru
	Man
	BinhTruc
	DinhTruc
	Chap
	Pha
	Nguy
	Thanh
	Thu
	Khai
	Be
)

const dutyGodCount = 12

var dutyGodNames = [dutyGodCount]string{
	"Kiến", "Trừ", "Mãn", "Bình", "Định", "Chấp",
	"Phá", "Nguy", "Thành", "Thu", "Khai", "Bế",
}

// Hoàng Đạo officers; the other six are Hắc Đạo.
var auspiciousDutyGods = [dutyGodCount]bool{
	Kien:     true,
	Tru:      true,
	Man:      true,
	BinhTruc: true,
	DinhTruc: true,
	Thanh:    true,
}

var (
	// ErrLunarMonthRange is returned for a lunar month outside [1,12].
	ErrLunarMonthRange = errors.New("lunar month out of range [1,12]")

	// ErrBranchIndexRange is returned for a branch index outside [0,11].
	ErrBranchIndexRange = errors.New("branch index out of range [0,11]")
)

// DutyGods lists the twelve officers in rotation order.
func DutyGods() []DutyGod {
	out := make([]DutyGod, dutyGodCount)
	for i := range out {
		out[i] = DutyGod(i)
	}
	return out
}

// Valid reports whether d is one of the twelve officers.
func (d DutyGod) Valid() bool { return d >= Kien && d <= Be }

func (d DutyGod) String() string {
	if !d.Valid() {
		return "?"
	}
	return dutyGodNames[d]
}

// Auspicious reports a Hoàng Đạo officer.
func (d DutyGod) Auspicious() bool { return d.Valid() && auspiciousDutyGods[d] }

// Inauspicious reports a Hắc Đạo officer.
func (d DutyGod) Inauspicious() bool { return d.Valid() && !auspiciousDutyGods[d] }

// ResolveDutyGod returns the officer ruling a day from its lunar month and day-branch index.
// Out-of-range arguments are rejected instead of wrapped.
func ResolveDutyGod(lunarMonth, branchIndex int) (DutyGod, error) {
	if lunarMonth < 1 || lunarMonth > 12 {
		return 0, fmt.Errorf("%w: %d", ErrLunarMonthRange, lunarMonth)
	}
	if branchIndex < 0 || branchIndex >= branchCount {
		return 0, fmt.Errorf("%w: %d", ErrBranchIndexRange, branchIndex)
	}
	return DutyGod((lunarMonth + branchIndex + 1) % dutyGodCount), nil
}

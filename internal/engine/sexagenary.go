package engine

import "time"

// Stem is one of the ten Heavenly Stems (Thiên Can).
type Stem int

const (
	Giap Stem = iota
	At
	Binh
	Dinh
	Mau
	Ky
	Canh
	Tan
	Nham
	Quy
)

// Branch is one of the twelve Earthly Branches (Địa Chi).
type Branch int

const (
	Ty Branch = iota // Rat
	Suu
	Dan
	Mao
	Thin
	Ti // Snake
	Ngo
	Mui
	Than
	Dau
	Tuat
	Hoi
)

const (
	stemCount   = 10
	branchCount = 12
	cycleLength = 60
)

var stemNames = [stemCount]string{"Giáp", "Ất", "Bính", "Đinh", "Mậu", "Kỷ", "Canh", "Tân", "Nhâm", "Quý"}

var branchNames = [branchCount]string{"Tý", "Sửu", "Dần", "Mão", "Thìn", "Tỵ", "Ngọ", "Mùi", "Thân", "Dậu", "Tuất", "Hợi"}

var branchElements = [branchCount]Element{
	Ty: Water, Suu: Earth, Dan: Wood, Mao: Wood,
	Thin: Earth, Ti: Fire, Ngo: Fire, Mui: Earth,
	Than: Metal, Dau: Metal, Tuat: Earth, Hoi: Water,
}

// Vietnamese zodiac: Mão is the Cat, not the Rabbit.
var animalNames = [branchCount]string{"Chuột", "Trâu", "Hổ", "Mèo", "Rồng", "Rắn", "Ngựa", "Dê", "Khỉ", "Gà", "Chó", "Heo"}

var animalEnglish = [branchCount]string{"Rat", "Ox", "Tiger", "Cat", "Dragon", "Snake", "Horse", "Goat", "Monkey", "Rooster", "Dog", "Pig"}

// Day-cycle anchor: 1900-01-01 is a Canh Tý day.
var referenceDay = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

const (
	referenceStem   = Canh
	referenceBranch = Ty

	// yearAnchor makes 1984 (and 4 CE) a Giáp Tý year.
	yearAnchor = 4
)

// Valid reports whether s is one of the ten stems.
func (s Stem) Valid() bool { return s >= Giap && s <= Quy }

func (s Stem) String() string {
	if !s.Valid() {
		return "?"
	}
	return stemNames[s]
}

// Element maps stems pairwise onto the five elements.
func (s Stem) Element() Element { return Element(int(s) / 2) }

// Valid reports whether b is one of the twelve branches.
func (b Branch) Valid() bool { return b >= Ty && b <= Hoi }

func (b Branch) String() string {
	if !b.Valid() {
		return "?"
	}
	return branchNames[b]
}

// Element returns the element carried by the branch.
func (b Branch) Element() Element { return branchElements[b] }

// Animal returns the Vietnamese zodiac animal.
func (b Branch) Animal() string { return animalNames[b] }

// AnimalEnglish returns the English zodiac animal.
func (b Branch) AnimalEnglish() string { return animalEnglish[b] }

// Branches lists every branch in cycle order.
func Branches() []Branch {
	out := make([]Branch, branchCount)
	for i := range out {
		out[i] = Branch(i)
	}
	return out
}

// Pillar is a stem/branch pair (Can Chi).
type Pillar struct {
	Stem   Stem
	Branch Branch
}

func (p Pillar) String() string { return p.Stem.String() + " " + p.Branch.String() }

// CycleIndex returns the position of the pair in the 60-term cycle, Giáp Tý being 0.
// Only pairs whose stem and branch share parity exist in the cycle.
func (p Pillar) CycleIndex() int {
	return floorMod(6*int(p.Stem)-5*int(p.Branch), cycleLength)
}

// naYin holds the "sound" element of each consecutive pair of the 60-term cycle.
var naYin = [cycleLength / 2]Element{
	Metal, Fire, Wood, Earth, Metal, Fire, Water, Earth, Metal, Wood,
	Water, Earth, Fire, Wood, Water, Metal, Fire, Wood, Earth, Metal,
	Fire, Water, Earth, Metal, Wood, Water, Earth, Fire, Wood, Water,
}

// NaYin returns the Nạp Âm element of the pair (e.g. Tân Tỵ → Kim).
func (p Pillar) NaYin() Element { return naYin[p.CycleIndex()/2] }

// DayPillar is the sexagenary description of one calendar day.
type DayPillar struct {
	Pillar
	StemElement   Element
	BranchElement Element
	Animal        string
	BranchIndex   int
}

// Day computes the sexagenary day for date. Time of day and zone are ignored:
// the calendar day shown by date in its own location is used.
func Day(date time.Time) DayPillar {
	n := daysSinceReference(date)
	p := Pillar{
		Stem:   Stem(floorMod(int(referenceStem)+n, stemCount)),
		Branch: Branch(floorMod(int(referenceBranch)+n, branchCount)),
	}
	return DayPillar{
		Pillar:        p,
		StemElement:   p.Stem.Element(),
		BranchElement: p.Branch.Element(),
		Animal:        p.Branch.Animal(),
		BranchIndex:   int(p.Branch),
	}
}

// DayStem returns the Heavenly Stem of date.
func DayStem(date time.Time) Stem { return Day(date).Stem }

// DayBranch returns the Earthly Branch of date.
func DayBranch(date time.Time) Branch { return Day(date).Branch }

// YearPillar returns the stem and branch of a year. Every integer year maps to a pair.
func YearPillar(year int) Pillar {
	return Pillar{
		Stem:   Stem(floorMod(year-yearAnchor, stemCount)),
		Branch: Branch(floorMod(year-yearAnchor, branchCount)),
	}
}

// NaYinElement returns the Nạp Âm element of a year, the element traditionally
// attributed to people born in it.
func NaYinElement(year int) Element { return YearPillar(year).NaYin() }

// civilDate drops the time of day and the zone, keeping the displayed calendar day.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysSinceReference counts whole days between the reference day and date.
// Unix seconds are used instead of time.Duration to stay exact far from 1900.
func daysSinceReference(date time.Time) int {
	const secondsPerDay = 24 * 60 * 60
	return int((civilDate(date).Unix() - referenceDay.Unix()) / secondsPerDay)
}

// floorMod returns the non-negative remainder of x / n.
func floorMod(x, n int) int {
	return ((x % n) + n) % n
}

package engine

// Element is one of the five phases (Ngũ Hành).
type Element int

const (
	Wood Element = iota
	Fire
	Earth
	Metal
	Water
)

// elementCount is the size of the element set; tables below are indexed by Element.
const elementCount = 5

var elementNames = [elementCount]string{"Mộc", "Hỏa", "Thổ", "Kim", "Thủy"}

var elementEnglish = [elementCount]string{"Wood", "Fire", "Earth", "Metal", "Water"}

// generates and controls are the two directed five-node cycles.
// Wood feeds Fire, Fire makes Earth, Earth bears Metal, Metal collects Water, Water nourishes Wood.
var generates = [elementCount]Element{
	Wood:  Fire,
	Fire:  Earth,
	Earth: Metal,
	Metal: Water,
	Water: Wood,
}

// Wood parts Earth, Earth dams Water, Water quenches Fire, Fire melts Metal, Metal chops Wood.
var controls = [elementCount]Element{
	Wood:  Earth,
	Earth: Water,
	Water: Fire,
	Fire:  Metal,
	Metal: Wood,
}

// Elements lists every element in table order.
func Elements() []Element {
	return []Element{Wood, Fire, Earth, Metal, Water}
}

// Valid reports whether e is one of the five elements.
func (e Element) Valid() bool { return e >= Wood && e <= Water }

// String returns the Vietnamese name (e.g. "Kim").
func (e Element) String() string {
	if !e.Valid() {
		return "?"
	}
	return elementNames[e]
}

// English returns the English name (e.g. "Metal").
func (e Element) English() string {
	if !e.Valid() {
		return "?"
	}
	return elementEnglish[e]
}

// Generates returns the element e feeds in the generation cycle.
func (e Element) Generates() Element { return generates[e] }

// Controls returns the element e dominates in the control cycle.
func (e Element) Controls() Element { return controls[e] }

// GeneratedBy returns the element that feeds e.
func (e Element) GeneratedBy() Element {
	for _, src := range Elements() {
		if generates[src] == e {
			return src
		}
	}
	return e
}

// Relationship classifies how element A relates to element B.
type Relationship int

const (
	RelNeutral Relationship = iota
	RelSame
	RelGenerates
	RelGeneratedBy
	RelControls
	RelControlledBy
)

var relationshipNames = [...]string{
	RelNeutral:      "neutral",
	RelSame:         "same",
	RelGenerates:    "generates",
	RelGeneratedBy:  "generated_by",
	RelControls:     "controls",
	RelControlledBy: "controlled_by",
}

func (r Relationship) String() string {
	if r < RelNeutral || int(r) >= len(relationshipNames) {
		return "?"
	}
	return relationshipNames[r]
}

// Inverse returns the relationship seen from the other side of the pair.
func (r Relationship) Inverse() Relationship {
	switch r {
	case RelGenerates:
		return RelGeneratedBy
	case RelGeneratedBy:
		return RelGenerates
	case RelControls:
		return RelControlledBy
	case RelControlledBy:
		return RelControls
	default:
		return r
	}
}

// Favorable reports a generation link in either direction.
func (r Relationship) Favorable() bool { return r == RelGenerates || r == RelGeneratedBy }

// Hostile reports a control link in either direction.
func (r Relationship) Hostile() bool { return r == RelControls || r == RelControlledBy }

// Relate resolves the relationship of a towards b.
// Order: equality, generation a→b, b→a, control a→b, b→a.
func Relate(a, b Element) Relationship {
	if !a.Valid() || !b.Valid() {
		return RelNeutral
	}
	switch {
	case a == b:
		return RelSame
	case generates[a] == b:
		return RelGenerates
	case generates[b] == a:
		return RelGeneratedBy
	case controls[a] == b:
		return RelControls
	case controls[b] == a:
		return RelControlledBy
	}
	return RelNeutral
}

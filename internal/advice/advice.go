// Package advice turns a forecast verdict into developer-flavoured
// recommendations. It only selects translation keys; wording lives in the
// locale catalogues.
package advice

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/tartampluch/go-thienco/internal/config"
	"github.com/tartampluch/go-thienco/internal/engine"
)

// Item is a translation key with the values its template expects.
// Data values may be engine enums; the report layer localises them.
type Item struct {
	Key  string
	Data map[string]any
}

// Advice is the presentational layer built on top of a verdict.
type Advice struct {
	ShouldDo    []Item
	ShouldAvoid []Item
	Message     Item
	LuckyColor  string
}

// elementColors are three hex colours per element.
var elementColors = map[engine.Element][3]string{
	engine.Metal: {"#FFD700", "#C0C0C0", "#F5F5DC"},
	engine.Wood:  {"#228B22", "#32CD32", "#90EE90"},
	engine.Water: {"#000080", "#4169E1", "#87CEEB"},
	engine.Fire:  {"#FF0000", "#FF4500", "#FF6347"},
	engine.Earth: {"#8B4513", "#D2691E", "#F4A460"},
}

const fallbackColor = "#808080"

// Advisor picks advice for verdicts. The random source only affects the
// cosmic message and the lucky colour; the lists are deterministic.
type Advisor struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns an Advisor drawing from rng. A nil rng uses a random seed.
func New(rng *rand.Rand) *Advisor {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Advisor{rng: rng}
}

// Advise builds the advice for v and the profile it was computed for.
func (a *Advisor) Advise(v engine.Verdict, p engine.Profile) Advice {
	a.mu.Lock()
	defer a.mu.Unlock()

	return Advice{
		ShouldDo:    ShouldDo(v, p),
		ShouldAvoid: ShouldAvoid(v),
		Message:     a.cosmicMessage(v, p),
		LuckyColor:  a.luckyColor(v.DominantElement()),
	}
}

// ShouldDo lists at most config.MaxAdviceItems recommendations.
func ShouldDo(v engine.Verdict, p engine.Profile) []Item {
	var items []Item
	switch {
	case v.LuckScore >= config.LuckHighThreshold:
		items = append(items, key(config.TKeyDoDeploy), key(config.TKeyDoRefactor), key(config.TKeyDoPitch))
	case v.LuckScore >= config.LuckMidThreshold:
		items = append(items, key(config.TKeyDoFeature), key(config.TKeyDoReview))
	}

	items = append(items, key(config.TKeyPrefixElementDo+Slug(v.DominantElement())))

	if v.PersonalDay >= 1 && v.PersonalDay <= 9 {
		items = append(items, key(fmt.Sprintf("%s%d", config.TKeyPrefixNumberDo, v.PersonalDay)))
	}

	if v.Vitality == engine.Prosperous || v.Vitality == engine.Growing {
		items = append(items, Item{Key: config.TKeyDoColors, Data: map[string]any{
			"Primary": colorName(p.Element),
			"Support": colorName(p.Element.GeneratedBy()),
			"Element": p.Element,
		}})
	}

	if v.Auspicious() {
		items = append(items, key(config.TKeyDoMeeting))
	}
	return truncate(items)
}

// ShouldAvoid lists at most config.MaxAdviceItems warnings.
func ShouldAvoid(v engine.Verdict) []Item {
	var items []Item
	if v.LuckScore <= config.LuckLowThreshold {
		items = append(items, key(config.TKeyAvoidDeploy), key(config.TKeyAvoidArgue), key(config.TKeyAvoidDecision))
	}
	if v.Clash {
		items = append(items, key(config.TKeyAvoidMeeting), key(config.TKeyAvoidLatePush))
	}

	items = append(items, key(config.TKeyPrefixElementAvoid+Slug(v.DominantElement())))

	switch v.PersonalDay {
	case 5:
		items = append(items, key(config.TKeyAvoidChanges))
	case 7:
		items = append(items, key(config.TKeyAvoidBigTeam))
	}

	if !v.Auspicious() {
		items = append(items, key(config.TKeyAvoidNoBackup))
	}
	return truncate(items)
}

// Bucket returns the cosmic message key prefix for a verdict.
// Thresholds are checked before the clash flag.
func Bucket(v engine.Verdict) string {
	switch {
	case v.LuckScore >= config.LuckGreatThreshold:
		return config.TKeyPrefixMsgGreat
	case v.LuckScore <= config.LuckLowThreshold:
		return config.TKeyPrefixMsgPoor
	case v.Clash:
		return config.TKeyPrefixMsgClash
	default:
		return config.TKeyPrefixMsgCalm
	}
}

func (a *Advisor) cosmicMessage(v engine.Verdict, p engine.Profile) Item {
	n := a.rng.IntN(config.CosmicTemplatesPerBucket) + 1
	return Item{
		Key: fmt.Sprintf("%s%d", Bucket(v), n),
		Data: map[string]any{
			"Number":       v.PersonalDay,
			"Element":      v.DominantElement(),
			"State":        v.Vitality,
			"UserElement":  p.Element,
			"Outlet":       p.Element.Generates(),
			"LifePath":     p.LifePath,
			"LifePathName": numberName(p.LifePath),
		},
	}
}

func (a *Advisor) luckyColor(e engine.Element) string {
	colors, ok := elementColors[e]
	if !ok {
		return fallbackColor
	}
	return colors[a.rng.IntN(len(colors))]
}

// Colors returns the palette of an element.
func Colors(e engine.Element) []string {
	colors, ok := elementColors[e]
	if !ok {
		return []string{fallbackColor}
	}
	return colors[:]
}

// Slug is the lowercase English element name used in translation keys.
func Slug(e engine.Element) string {
	return strings.ToLower(e.English())
}

// ColorName is a translation key; the report layer resolves it.
type ColorName string

func colorName(e engine.Element) ColorName {
	return ColorName(config.TKeyPrefixColorName + Slug(e))
}

// NumberName is a translation key for the meaning of a numerology number.
type NumberName string

// numberName returns the key describing n, or "" outside [1,9].
func numberName(n int) NumberName {
	if n < 1 || n > 9 {
		return ""
	}
	return NumberName(fmt.Sprintf("%s%d", config.TKeyPrefixNumberName, n))
}

func key(k string) Item { return Item{Key: k} }

func truncate(items []Item) []Item {
	if len(items) > config.MaxAdviceItems {
		return items[:config.MaxAdviceItems]
	}
	return items
}

// Package report renders forecasts as Telegram messages, short summaries and
// iCalendar feeds.
package report

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tartampluch/go-thienco/internal/advice"
	"github.com/tartampluch/go-thienco/internal/config"
	"github.com/tartampluch/go-thienco/internal/engine"
)

// Translator resolves message keys. *i18n.Translator implements it.
type Translator interface {
	T(key string) string
	Tf(key string, data map[string]any) string
}

// Forecast bundles a verdict with the advice derived from it.
type Forecast struct {
	Verdict engine.Verdict
	Advice  advice.Advice
	Profile engine.Profile
}

// Builder computes forecasts and renders them.
type Builder struct {
	Engine  *engine.Engine
	Advisor *advice.Advisor
	Tr      Translator

	// OnForecast is called after every bulletin computed by Forecast.
	OnForecast func(engine.Verdict)
}

// NewBuilder wires the engine, the advisor and the translator together.
func NewBuilder(e *engine.Engine, adv *advice.Advisor, tr Translator) *Builder {
	return &Builder{Engine: e, Advisor: adv, Tr: tr}
}

// Forecast computes the verdict and the advice for date.
func (b *Builder) Forecast(date time.Time) (Forecast, error) {
	v, err := b.Engine.Compute(date)
	if err != nil {
		return Forecast{}, fmt.Errorf("%s: %w", config.ErrForecast, err)
	}
	if b.OnForecast != nil {
		b.OnForecast(v)
	}
	slog.Info(config.MsgForecastDone,
		config.LogKeyComponent, config.CompReport,
		config.LogKeyDate, v.Day.Solar.Format(config.DateFormatFeed),
		config.LogKeyCanChi, v.Pillar.String(),
		config.LogKeyDutyGod, v.DutyGod.String(),
		config.LogKeyScore, v.LuckScore,
	)
	p := b.Engine.Profile()
	return Forecast{Verdict: v, Advice: b.Advisor.Advise(v, p), Profile: p}, nil
}

// MessageFor computes the forecast for date and renders the Telegram message.
func (b *Builder) MessageFor(date time.Time) (string, error) {
	f, err := b.Forecast(date)
	if err != nil {
		return "", err
	}
	return b.Message(f), nil
}

// Message renders the full Markdown bulletin.
func (b *Builder) Message(f Forecast) string {
	v := f.Verdict
	var sb strings.Builder
	line := func(s string) {
		sb.WriteString(s)
		sb.WriteByte('\n')
	}
	bullet := func(s string) { line(config.ListBullet + s) }

	line(b.Tr.T(config.TKeyReportTitle))
	line(b.Tr.Tf(config.TKeyReportDate, map[string]any{
		"Solar":  v.Day.Solar.Format(config.DateFormatDisplay),
		"Lunar":  fmt.Sprintf(config.FormatLunarDate, v.Day.LunarDay, v.Day.LunarMonth),
		"Leap":   b.leap(v),
		"CanChi": v.Pillar.String(),
	}))
	line(b.dutyGodLine(v))
	for _, rel := range b.branchLines(f) {
		line(rel)
	}
	line(b.Tr.Tf(config.TKeyReportElements, map[string]any{
		"Stem":   b.element(v.Pillar.StemElement),
		"Branch": b.element(v.Pillar.BranchElement),
	}))

	line("")
	line(b.Tr.T(config.TKeyReportEnergy))
	bullet(b.Tr.Tf(config.TKeyReportDayNumber, map[string]any{"Number": v.PersonalDay}))
	bullet(b.Tr.Tf(config.TKeyReportMatch, map[string]any{
		"LifePath": f.Profile.LifePath,
		"Score":    v.Match.Score,
		"Tier":     b.Tr.T(matchKey(v.Match.Tier)),
	}))
	bullet(b.luckLine(v))
	bullet(b.Tr.Tf(config.TKeyReportVitality, map[string]any{
		"Element":    b.element(f.Profile.Element),
		"YearPillar": engine.YearPillar(f.Profile.BirthYear).String(),
		"State":      b.Tr.T(vitalityKey(v.Vitality)),
	}))

	line("")
	line(b.Tr.T(config.TKeyReportShouldDo))
	for _, it := range f.Advice.ShouldDo {
		bullet(b.item(it))
	}
	line("")
	line(b.Tr.T(config.TKeyReportShouldNot))
	for _, it := range f.Advice.ShouldAvoid {
		bullet(b.item(it))
	}

	line("")
	line(b.Tr.T(config.TKeyReportMessage))
	line(`"` + b.item(f.Advice.Message) + `"`)
	line("")
	line(b.Tr.Tf(config.TKeyReportColor, map[string]any{
		"Color": fmt.Sprintf(config.LuckyColorTag, f.Advice.LuckyColor),
	}))

	return strings.TrimSpace(sb.String())
}

// Summary is the one-line headline used by the CLI and the feed.
func (b *Builder) Summary(v engine.Verdict) string {
	return b.Tr.Tf(config.TKeyFeedSummary, map[string]any{
		"Score":   v.LuckScore,
		"CanChi":  v.Pillar.String(),
		"DutyGod": v.DutyGod.String(),
	})
}

func (b *Builder) leap(v engine.Verdict) string {
	if !v.Day.LeapMonth {
		return ""
	}
	return b.Tr.T(config.TKeyReportLunarLeap)
}

func (b *Builder) dutyGodLine(v engine.Verdict) string {
	kind := config.TKeyReportOminous
	if v.Auspicious() {
		kind = config.TKeyReportAuspicious
	}
	return b.Tr.Tf(config.TKeyReportDutyGod, map[string]any{
		"DutyGod": v.DutyGod.String(),
		"Kind":    b.Tr.T(kind),
	})
}

func (b *Builder) branchLines(f Forecast) []string {
	data := map[string]any{
		"Day":  f.Verdict.Pillar.Branch.String(),
		"User": f.Profile.Branch.String(),
	}
	var lines []string
	if f.Verdict.Clash {
		lines = append(lines, b.Tr.Tf(config.TKeyReportClash, data))
	}
	if f.Verdict.Harmony {
		lines = append(lines, b.Tr.Tf(config.TKeyReportHarmony, data))
	}
	if f.Verdict.TripleHarmony {
		lines = append(lines, b.Tr.Tf(config.TKeyReportTriple, data))
	}
	return lines
}

func (b *Builder) luckLine(v engine.Verdict) string {
	return b.Tr.Tf(config.TKeyReportLuck, map[string]any{
		"Score": v.LuckScore,
		"Stars": strings.Repeat(config.LuckStar, min(v.LuckScore, engine.MaxLuck)),
	})
}

// item localises an advice item, resolving enum values in its data first.
func (b *Builder) item(it advice.Item) string {
	if len(it.Data) == 0 {
		return b.Tr.T(it.Key)
	}
	data := make(map[string]any, len(it.Data))
	for k, val := range it.Data {
		switch x := val.(type) {
		case engine.Element:
			data[k] = b.element(x)
		case engine.VitalityState:
			data[k] = b.Tr.T(vitalityKey(x))
		case advice.ColorName:
			data[k] = b.Tr.T(string(x))
		case advice.NumberName:
			data[k] = b.Tr.T(string(x))
		default:
			data[k] = val
		}
	}
	return b.Tr.Tf(it.Key, data)
}

func (b *Builder) element(e engine.Element) string {
	return b.Tr.T(config.TKeyPrefixElementName + advice.Slug(e))
}

func vitalityKey(s engine.VitalityState) string {
	switch s {
	case engine.Prosperous:
		return config.TKeyVitalityProsperous
	case engine.Growing:
		return config.TKeyVitalityGrowing
	case engine.Imprisoned:
		return config.TKeyVitalityImprisoned
	case engine.Dead:
		return config.TKeyVitalityDead
	default:
		return config.TKeyVitalityResting
	}
}

func matchKey(t engine.MatchTier) string {
	switch t {
	case engine.MatchHarmonious:
		return config.TKeyMatchHarmonious
	case engine.MatchSupportive:
		return config.TKeyMatchSupportive
	case engine.MatchNeutral:
		return config.TKeyMatchNeutral
	default:
		return config.TKeyMatchChallenge
	}
}

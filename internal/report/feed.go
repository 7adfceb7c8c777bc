package report

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/tartampluch/go-thienco/internal/advice"
	"github.com/tartampluch/go-thienco/internal/config"
	"github.com/tartampluch/go-thienco/internal/engine"
)

var uidNamespace = uuid.MustParse(config.UIDNamespace)

// markdown characters removed from feed descriptions.
var plainText = strings.NewReplacer("*", "", "`", "")

// EventUID is stable for a given day, so calendar clients update events in
// place across refreshes.
func EventUID(day time.Time) string {
	id := uuid.NewSHA1(uidNamespace, []byte(day.Format(config.DateFormatFeed)))
	return fmt.Sprintf(config.FormatUID, id.String(), config.UIDDomain)
}

// Feed renders an iCalendar with one all-day event per day, starting at from.
// Events are stamped with the midnight starting now's day, so renders within
// the same day are byte-identical. Feed verdicts do not reach OnForecast.
func (b *Builder) Feed(from time.Time, days int, now time.Time) ([]byte, error) {
	if days < 1 || days > config.MaxFeedDays {
		return nil, errors.New(config.ErrFeedDays)
	}

	verdicts, err := b.Engine.Range(from, days)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrForecast, err)
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, b.Tr.T(config.TKeyFeedCalName))
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	y, m, d := now.Date()
	dtStampProp.SetDateTime(time.Date(y, m, d, 0, 0, 0, 0, now.Location()).UTC())

	p := b.Engine.Profile()
	for _, v := range verdicts {
		cal.Children = append(cal.Children, b.event(v, p, dtStampProp).Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Info(config.MsgFeedRefreshed,
		config.LogKeyComponent, config.CompReport,
		config.LogKeyDays, days,
		config.LogKeySizeBytes, buf.Len(),
	)
	return buf.Bytes(), nil
}

func (b *Builder) event(v engine.Verdict, p engine.Profile, dtStamp *ical.Prop) *ical.Event {
	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, EventUID(v.Day.Solar))
	event.Props.SetText(config.PropSummary, b.Summary(v))
	event.Props.SetText(config.PropDescription, b.description(v, p))

	kind := config.TKeyReportOminous
	if v.Auspicious() {
		kind = config.TKeyReportAuspicious
	}
	event.Props.SetText(config.PropCategories, b.Tr.T(kind))

	dtStartProp := ical.NewProp(config.PropDTStart)
	dtStartProp.SetDate(v.Day.Solar)
	event.Props.Set(dtStartProp)
	event.Props.Set(dtStamp)
	return event
}

// description holds only the deterministic parts of the bulletin, so a feed
// regenerated for the same days differs by DTSTAMP alone.
func (b *Builder) description(v engine.Verdict, p engine.Profile) string {
	f := Forecast{Verdict: v, Profile: p}
	lines := []string{b.dutyGodLine(v)}
	lines = append(lines, b.branchLines(f)...)
	lines = append(lines, b.luckLine(v), "", b.Tr.T(config.TKeyReportShouldDo))
	for _, it := range advice.ShouldDo(v, p) {
		lines = append(lines, config.ListBullet+b.item(it))
	}
	lines = append(lines, "", b.Tr.T(config.TKeyReportShouldNot))
	for _, it := range advice.ShouldAvoid(v) {
		lines = append(lines, config.ListBullet+b.item(it))
	}
	return plainText.Replace(strings.Join(lines, "\n"))
}

// Package profile builds the engine profile from the environment or from a vCard.
package profile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-thienco/internal/config"
	"github.com/tartampluch/go-thienco/internal/engine"
)

// Load reads the profile from s.VCardPath when set, otherwise from the
// individual settings. An http(s) VCardPath is downloaded with f; a nil f
// uses NewHTTPFetcher.
func Load(ctx context.Context, s config.Settings, f Fetcher) (engine.Profile, error) {
	if s.VCardPath == "" {
		return FromSettings(s)
	}

	var rc io.ReadCloser
	if isRemote(s.VCardPath) {
		if f == nil {
			f = NewHTTPFetcher()
		}
		var err error
		if rc, err = f.Fetch(ctx, s.VCardPath, s.VCardUser, s.VCardPass); err != nil {
			return engine.Profile{}, err
		}
	} else {
		file, err := os.Open(s.VCardPath)
		if err != nil {
			return engine.Profile{}, fmt.Errorf("%s: %w", config.ErrProfileVCard, err)
		}
		rc = file
	}
	defer func() { _ = rc.Close() }()
	return FromVCard(rc)
}

// FromSettings parses the element and branch names of s.
// Empty names fall back to the birth-year defaults.
func FromSettings(s config.Settings) (engine.Profile, error) {
	return build(s.BirthDay, s.BirthMonth, s.BirthYear, s.Element, s.Branch)
}

// FromVCard reads the first card carrying a BDAY. X-ELEMENT and X-BRANCH are
// optional; the birth year supplies the defaults.
func FromVCard(r io.Reader) (engine.Profile, error) {
	decoder := vcard.NewDecoder(r)
	for {
		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			return engine.Profile{}, errors.New(config.ErrProfileNoBDAY)
		}
		if err != nil {
			return engine.Profile{}, fmt.Errorf("%s: %w", config.ErrProfileVCard, err)
		}

		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}
		birth, err := parseDate(bday.Value)
		if err != nil {
			return engine.Profile{}, err
		}

		slog.Debug(config.MsgProfileLoaded,
			config.LogKeyComponent, config.CompProfile,
			config.LogKeyName, card.Value(config.VCardFN),
		)
		return build(birth.Day(), int(birth.Month()), birth.Year(),
			card.Value(config.VCardElement), card.Value(config.VCardBranch))
	}
}

func build(day, month, year int, elementName, branchName string) (engine.Profile, error) {
	p := engine.Profile{
		BirthDay:   day,
		BirthMonth: month,
		BirthYear:  year,
		Element:    engine.NaYinElement(year),
		Branch:     engine.YearPillar(year).Branch,
		LifePath:   engine.LifePath(day, month, year),
	}

	if strings.TrimSpace(elementName) != "" {
		e, err := engine.ParseElement(elementName)
		if err != nil {
			return engine.Profile{}, fmt.Errorf("%s: %w", config.ErrProfile, err)
		}
		p.Element = e
	}
	if strings.TrimSpace(branchName) != "" {
		b, err := engine.ParseBranch(branchName)
		if err != nil {
			return engine.Profile{}, fmt.Errorf("%s: %w", config.ErrProfile, err)
		}
		p.Branch = b
	}

	if err := p.Validate(); err != nil {
		return engine.Profile{}, fmt.Errorf("%s: %w", config.ErrProfile, err)
	}
	return p, nil
}

// parseDate accepts the vCard date forms that carry a year.
// Year-less birthdays (--MMDD) are rejected: numerology needs the year.
func parseDate(value string) (time.Time, error) {
	formats := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%s: %s %q", config.ErrProfileBirthDate, config.ErrDateParse, value)
}

package advice_test

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-thienco/internal/advice"
	"github.com/tartampluch/go-thienco/internal/config"
	"github.com/tartampluch/go-thienco/internal/engine"
)

func profile() engine.Profile {
	return engine.Profile{
		BirthDay: 14, BirthMonth: 4, BirthYear: 2001,
		Element: engine.Metal, Branch: engine.Ti, LifePath: 3,
	}
}

func verdict(score, personalDay int, stem engine.Element, duty engine.DutyGod, clash bool, vitality engine.VitalityState) engine.Verdict {
	return engine.Verdict{
		Pillar:      engine.DayPillar{StemElement: stem},
		DutyGod:     duty,
		Clash:       clash,
		Vitality:    vitality,
		PersonalDay: personalDay,
		LuckScore:   score,
	}
}

func keys(items []advice.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Key
	}
	return out
}

func TestShouldDo(t *testing.T) {
	tests := []struct {
		name string
		v    engine.Verdict
		want []string
	}{
		{
			name: "great day is truncated",
			v:    verdict(10, 1, engine.Earth, engine.Thanh, false, engine.Resting),
			want: []string{config.TKeyDoDeploy, config.TKeyDoRefactor, config.TKeyDoPitch, "do_element_earth"},
		},
		{
			name: "poor clash day",
			v:    verdict(2, 4, engine.Metal, engine.Be, true, engine.Resting),
			want: []string{"do_element_metal", "do_number_4"},
		},
		{
			name: "middle band",
			v:    verdict(6, 5, engine.Water, engine.Kien, true, engine.Prosperous),
			want: []string{config.TKeyDoFeature, config.TKeyDoReview, "do_element_water", "do_number_5"},
		},
		{
			name: "low score with strong vitality",
			v:    verdict(4, 7, engine.Wood, engine.Man, false, engine.Growing),
			want: []string{"do_element_wood", "do_number_7", config.TKeyDoColors, config.TKeyDoMeeting},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keys(advice.ShouldDo(tt.v, profile())))
		})
	}
}

func TestShouldDo_ColorsFollowGeneration(t *testing.T) {
	items := advice.ShouldDo(verdict(4, 7, engine.Wood, engine.Man, false, engine.Growing), profile())
	require.Len(t, items, 4)

	colors := items[2]
	require.Equal(t, config.TKeyDoColors, colors.Key)
	assert.Equal(t, advice.ColorName("color_name_metal"), colors.Data["Primary"])
	assert.Equal(t, advice.ColorName("color_name_earth"), colors.Data["Support"])
	assert.Equal(t, engine.Metal, colors.Data["Element"])
}

func TestShouldAvoid(t *testing.T) {
	tests := []struct {
		name string
		v    engine.Verdict
		want []string
	}{
		{
			name: "poor clash day is truncated",
			v:    verdict(2, 4, engine.Metal, engine.Be, true, engine.Resting),
			want: []string{config.TKeyAvoidDeploy, config.TKeyAvoidArgue, config.TKeyAvoidDecision, config.TKeyAvoidMeeting},
		},
		{
			name: "good day keeps only the element",
			v:    verdict(10, 1, engine.Earth, engine.Thanh, false, engine.Resting),
			want: []string{"avoid_element_earth"},
		},
		{
			name: "day five on an ominous day",
			v:    verdict(5, 5, engine.Fire, engine.Pha, false, engine.Resting),
			want: []string{"avoid_element_fire", config.TKeyAvoidChanges, config.TKeyAvoidNoBackup},
		},
		{
			name: "day seven with a clash",
			v:    verdict(6, 7, engine.Water, engine.DinhTruc, true, engine.Resting),
			want: []string{config.TKeyAvoidMeeting, config.TKeyAvoidLatePush, "avoid_element_water", config.TKeyAvoidBigTeam},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keys(advice.ShouldAvoid(tt.v)))
		})
	}
}

func TestBucket(t *testing.T) {
	assert.Equal(t, config.TKeyPrefixMsgGreat, advice.Bucket(verdict(8, 1, engine.Wood, engine.Kien, true, engine.Resting)))
	assert.Equal(t, config.TKeyPrefixMsgPoor, advice.Bucket(verdict(3, 1, engine.Wood, engine.Be, true, engine.Resting)))
	assert.Equal(t, config.TKeyPrefixMsgClash, advice.Bucket(verdict(5, 1, engine.Wood, engine.Kien, true, engine.Resting)))
	assert.Equal(t, config.TKeyPrefixMsgCalm, advice.Bucket(verdict(5, 1, engine.Wood, engine.Kien, false, engine.Resting)))
}

func TestAdvise_SeededIsReproducible(t *testing.T) {
	v := verdict(6, 2, engine.Fire, engine.Kien, false, engine.Resting)

	a := advice.New(rand.New(rand.NewPCG(1, 2)))
	b := advice.New(rand.New(rand.NewPCG(1, 2)))
	for range 10 {
		assert.Equal(t, a.Advise(v, profile()), b.Advise(v, profile()))
	}
}

func TestAdvise_MessageAndColor(t *testing.T) {
	adv := advice.New(rand.New(rand.NewPCG(7, 7)))
	v := verdict(9, 2, engine.Fire, engine.Kien, false, engine.Prosperous)

	seen := map[string]bool{}
	for range 200 {
		got := adv.Advise(v, profile())
		assert.True(t, strings.HasPrefix(got.Message.Key, config.TKeyPrefixMsgGreat), got.Message.Key)
		assert.Contains(t, advice.Colors(engine.Fire), got.LuckyColor)
		assert.Equal(t, 2, got.Message.Data["Number"])
		assert.Equal(t, engine.Fire, got.Message.Data["Element"])
		assert.Equal(t, engine.Water, got.Message.Data["Outlet"])
		seen[got.Message.Key] = true
	}
	assert.Len(t, seen, config.CosmicTemplatesPerBucket, "every template of the bucket is reachable")
}

func TestColors_Palette(t *testing.T) {
	for _, e := range engine.Elements() {
		assert.Len(t, advice.Colors(e), 3, e.English())
	}
	assert.Equal(t, []string{"#808080"}, advice.Colors(engine.Element(42)))
}

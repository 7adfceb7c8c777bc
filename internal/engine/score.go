package engine

const (
	BaseLuck = 5
	MinLuck  = 1
	MaxLuck  = 10

	clashPenalty      = -3
	harmonyBonus      = 2
	auspiciousBonus   = 2
	inauspiciousMalus = -1
)

// ScoreInputs are the signals the luck score is built from.
type ScoreInputs struct {
	Clash          bool
	Harmony        bool
	Auspicious     bool
	StemRelation   Relationship
	BranchRelation Relationship
	Vitality       VitalityState
}

// RawLuck applies the fixed adjustments to the base score without clamping.
func RawLuck(in ScoreInputs) int {
	score := BaseLuck
	if in.Clash {
		score += clashPenalty
	}
	if in.Harmony {
		score += harmonyBonus
	}
	if in.Auspicious {
		score += auspiciousBonus
	} else {
		score += inauspiciousMalus
	}
	score += relationModifier(in.StemRelation)
	score += relationModifier(in.BranchRelation)
	score += in.Vitality.Modifier()
	return score
}

// LuckScore returns RawLuck clamped to [MinLuck, MaxLuck].
func LuckScore(in ScoreInputs) int {
	return min(MaxLuck, max(MinLuck, RawLuck(in)))
}

func relationModifier(r Relationship) int {
	switch {
	case r.Favorable():
		return 1
	case r.Hostile():
		return -1
	default:
		return 0
	}
}

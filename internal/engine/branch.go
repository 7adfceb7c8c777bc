package engine

type branchPair [2]Branch

// Six oppositions (Lục Xung).
var clashPairs = []branchPair{
	{Ty, Ngo},
	{Suu, Mui},
	{Dan, Than},
	{Mao, Dau},
	{Thin, Tuat},
	{Ti, Hoi},
}

// Six harmonies (Lục Hợp).
var harmonyPairs = []branchPair{
	{Ty, Suu},
	{Dan, Hoi},
	{Mao, Tuat},
	{Thin, Dau},
	{Ti, Than},
	{Ngo, Mui},
}

// Triple harmonies (Tam Hợp), grouped by the element they form.
var tripleHarmonies = [][3]Branch{
	{Than, Ty, Thin}, // Water
	{Hoi, Mao, Mui},  // Wood
	{Dan, Ngo, Tuat}, // Fire
	{Ti, Dau, Suu},   // Metal
}

var (
	clashTable   = symmetricTable(clashPairs)
	harmonyTable = symmetricTable(harmonyPairs)
	tripleTable  = groupTable(tripleHarmonies)
)

func symmetricTable(pairs []branchPair) [branchCount][branchCount]bool {
	var t [branchCount][branchCount]bool
	for _, p := range pairs {
		t[p[0]][p[1]] = true
		t[p[1]][p[0]] = true
	}
	return t
}

func groupTable(groups [][3]Branch) [branchCount][branchCount]bool {
	var t [branchCount][branchCount]bool
	for _, g := range groups {
		for _, a := range g {
			for _, b := range g {
				if a != b {
					t[a][b] = true
				}
			}
		}
	}
	return t
}

// Clashes reports whether a and b are opposing branches (Xung).
func Clashes(a, b Branch) bool {
	if !a.Valid() || !b.Valid() {
		return false
	}
	return clashTable[a][b]
}

// Harmonizes reports whether a and b form one of the six harmonies (Hợp).
func Harmonizes(a, b Branch) bool {
	if !a.Valid() || !b.Valid() {
		return false
	}
	return harmonyTable[a][b]
}

// TripleHarmony reports whether two distinct branches belong to the same Tam Hợp group.
func TripleHarmony(a, b Branch) bool {
	if !a.Valid() || !b.Valid() {
		return false
	}
	return tripleTable[a][b]
}

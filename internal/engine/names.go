package engine

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var (
	ErrUnknownElement = errors.New("unknown element")
	ErrUnknownBranch  = errors.New("unknown branch")
)

// Diacritics are significant: "Tý" (Rat) and "Tỵ" (Snake) differ only by their tone mark.
// Input is NFC-normalised and case-folded, never stripped.
var folder = cases.Fold()

func foldName(s string) string {
	return folder.String(norm.NFC.String(strings.TrimSpace(s)))
}

var (
	elementLookup = buildLookup(elementCount, func(i int) []string {
		return []string{elementNames[i], elementEnglish[i]}
	})
	branchLookup = buildLookup(branchCount, func(i int) []string {
		return []string{branchNames[i], animalNames[i], animalEnglish[i]}
	})
)

func buildLookup(n int, names func(int) []string) map[string]int {
	m := make(map[string]int, n*3)
	for i := range n {
		for _, name := range names(i) {
			m[foldName(name)] = i
		}
	}
	return m
}

// ParseElement accepts the Vietnamese or English name of an element, in any case.
func ParseElement(s string) (Element, error) {
	if i, ok := elementLookup[foldName(s)]; ok {
		return Element(i), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownElement, s)
}

// ParseBranch accepts a branch name ("Tỵ") or its animal ("Rắn", "Snake").
func ParseBranch(s string) (Branch, error) {
	if i, ok := branchLookup[foldName(s)]; ok {
		return Branch(i), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBranch, s)
}

// Package fuzzy scores candidate directory names against a search query and
// renders the name with matched characters highlighted. Scoring is a pure
// function of the name, the query, and the two instants the caller supplies.
package fuzzy

import (
	"bytes"
	"math"
	"time"

	"trysel/internal/tui"
)

// datePrefixLen is the byte length of the structured "YYYY-MM-DD-" prefix.
const datePrefixLen = 11

// Result is one scored candidate. Display carries the name with the date
// prefix dimmed and matched characters highlighted; a Score of 0 means the
// query is not a subsequence of the name and the candidate should be
// excluded.
type Result struct {
	Score   float64
	Display string
}

// Scorer renders match output. Colors mirrors the renderer configuration so
// scripted runs produce byte-identical plain output.
type Scorer struct {
	Colors bool
}

// HasDatePrefix reports whether name starts with the structured
// "YYYY-MM-DD-" pattern, trailing hyphen included.
func HasDatePrefix(name string) bool {
	if len(name) < datePrefixLen {
		return false
	}
	for i, b := range []byte(name[:datePrefixLen]) {
		if i == 4 || i == 7 || i == 10 {
			if b != '-' {
				return false
			}
			continue
		}
		if b < '0' || b > '9' {
			return false
		}
	}
	return true
}

// Match scores name against query.
//
// The match score accumulates 1.0 per matched character, +1.0 at word
// boundaries, and +2.0/sqrt(gap+1) for proximity to the previous match. Two
// multipliers then reward matches near the start and penalize long names.
// The date-prefix bonus (+2.0) and the recency bonus (+3.0/sqrt(hours+1))
// are added after the multipliers so they are never crushed by them.
func (s *Scorer) Match(name, query string, lastAccess, now time.Time) Result {
	var buf bytes.Buffer
	out := tui.NewStyleString(&buf, s.Colors)
	hasDate := HasDatePrefix(name)

	if query == "" {
		if hasDate {
			out.Push(tui.Dark)
			out.Append(name[:datePrefixLen])
			out.Pop()
			out.Append(name[datePrefixLen:])
		} else {
			out.Append(name)
		}
		return Result{
			Score:   prefixBonus(hasDate) + recencyBonus(lastAccess, now),
			Display: buf.String(),
		}
	}

	queryIdx := 0
	lastPos := -1
	inDate := false
	matchScore := 0.0

	for i := 0; i < len(name); i++ {
		if hasDate && i == 0 {
			out.Push(tui.Dark)
			inDate = true
		}

		if queryIdx < len(query) && lowerByte(name[i]) == lowerByte(query[queryIdx]) {
			matchScore += 1.0
			if i == 0 || !isAlnum(name[i-1]) {
				matchScore += 1.0
			}
			if lastPos >= 0 {
				gap := i - lastPos - 1
				matchScore += 2.0 / math.Sqrt(float64(gap)+1)
			}
			lastPos = i
			queryIdx++

			out.Push(tui.Match)
			out.AppendByte(name[i])
			out.Pop()
		} else {
			out.AppendByte(name[i])
		}

		if inDate && i == datePrefixLen-1 {
			out.Pop()
			inDate = false
		}
	}

	// Not a subsequence: the candidate is out, whatever was rendered.
	if queryIdx < len(query) {
		return Result{Score: 0, Display: buf.String()}
	}

	if lastPos >= 0 {
		matchScore *= float64(len(query)) / float64(lastPos+1)
	}
	matchScore *= 10.0 / (float64(len(name)) + 10.0)

	return Result{
		Score:   matchScore + prefixBonus(hasDate) + recencyBonus(lastAccess, now),
		Display: buf.String(),
	}
}

func prefixBonus(hasDate bool) float64 {
	if hasDate {
		return 2.0
	}
	return 0.0
}

func recencyBonus(lastAccess, now time.Time) float64 {
	hours := now.Sub(lastAccess).Hours()
	if hours < 0 {
		hours = 0
	}
	return 3.0 / math.Sqrt(hours+1)
}

func lowerByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

func isAlnum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

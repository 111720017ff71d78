// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package feefrac

import "sort"

// Ordering is the three-valued (plus incomparable) result of comparing two
// feerate diagrams.
type Ordering int

const (
	// Incomparable means neither diagram is at least as good as the other
	// everywhere: each is strictly better than the other somewhere.
	Incomparable Ordering = iota

	// Worse means the first diagram is never better than the second, and
	// strictly worse somewhere.
	Worse

	// Tied means neither diagram is ever strictly better than the other.
	Tied

	// Better means the first diagram is never worse than the second, and
	// strictly better somewhere.
	Better
)

// String implements fmt.Stringer.
func (o Ordering) String() string {
	switch o {
	case Worse:
		return "worse"
	case Tied:
		return "equal"
	case Better:
		return "better"
	default:
		return "incomparable"
	}
}

// BuildDiagram sorts chunks by FeeFrac descending (in place) and returns the
// cumulative diagram: diagram[0] is (0,0), and diagram[k] is the prefix sum
// of the k best chunks. The returned slice always has length
// len(chunks)+1.
func BuildDiagram(chunks []FeeFrac) []FeeFrac {
	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].Greater(chunks[j])
	})

	diagram := make([]FeeFrac, len(chunks)+1)
	for i, chunk := range chunks {
		diagram[i+1] = diagram[i].Add(chunk)
	}
	return diagram
}

// CompareDiagrams compares two feerate diagrams, both of which must start
// at (0,0) (as produced by BuildDiagram). The shorter diagram is implicitly
// extended by a horizontal line at its last point.
//
// The sweep walks both diagrams left to right in the size dimension. At
// each step, the diagram whose next point has the smaller size (the first
// side on a tie) is the "unprocessed" side; call that next point P, and call
// the previous and
// next points on the other diagram A and B. The direction coefficient of
// segment A-P is compared against that of A-B (both are themselves
// FeeFracs, fee and size both being differences) to decide whether P lies
// above, on, or below the line A-B, which in turn decides whether the
// unprocessed side is strictly better at that size. Once one diagram is
// exhausted, the remaining tail of the other is compared against a
// horizontal extension of the shorter diagram's last point.
func CompareDiagrams(a, b []FeeFrac) Ordering {
	if len(a) == 0 || len(b) == 0 {
		panic("feefrac: CompareDiagrams requires non-empty diagrams")
	}
	if !a[0].IsEmpty() || !b[0].IsEmpty() {
		panic("feefrac: CompareDiagrams requires diagrams starting at (0,0)")
	}

	dias := [2][]FeeFrac{a, b}
	nextIndex := [2]int{1, 1}
	betterSomewhere := [2]bool{false, false}

	nextPoint := func(side int) FeeFrac { return dias[side][nextIndex[side]] }
	prevPoint := func(side int) FeeFrac { return dias[side][nextIndex[side]-1] }

	for nextIndex[0] < len(dias[0]) && nextIndex[1] < len(dias[1]) {
		unproc := 0
		if nextPoint(0).Size > nextPoint(1).Size {
			unproc = 1
		}
		other := 1 - unproc

		pointP := nextPoint(unproc)
		pointA := prevPoint(other)
		pointB := nextPoint(other)

		coefAB := pointB.Sub(pointA)
		coefAP := pointP.Sub(pointA)

		cmp := FeeRateCompare(coefAP, coefAB)
		if cmp > 0 {
			betterSomewhere[unproc] = true
		} else if cmp < 0 {
			betterSomewhere[other] = true
		}

		nextIndex[unproc]++
		if pointB.Size == pointP.Size {
			nextIndex[other]++
		}
	}

	// Tail: whichever diagram still has unprocessed points is compared
	// against a horizontal extension of the shorter diagram's last point.
	longSide := 0
	if nextIndex[0] == len(dias[0]) {
		longSide = 1
	}
	shortSide := 1 - longSide
	pointA := prevPoint(shortSide)
	for nextIndex[longSide] < len(dias[longSide]) {
		pointP := nextPoint(longSide)
		coefAP := pointP.Sub(pointA)
		switch {
		case coefAP.Fee > 0:
			betterSomewhere[longSide] = true
		case coefAP.Fee < 0:
			betterSomewhere[shortSide] = true
		}
		nextIndex[longSide]++
	}

	switch {
	case betterSomewhere[0] && betterSomewhere[1]:
		return Incomparable
	case betterSomewhere[0]:
		return Better
	case betterSomewhere[1]:
		return Worse
	default:
		return Tied
	}
}

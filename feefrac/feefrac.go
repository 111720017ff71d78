// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package feefrac

import "fmt"

// FeeFrac represents a (fee, size) pair, ordered primarily by the ratio of
// fee over size (the "feerate"). Size must be zero only when fee is also
// zero; every other FeeFrac value is considered non-empty.
//
// FeeFracs have a total order: first by increasing feerate, then by
// decreasing size. The empty FeeFrac (fee and size both zero) sorts after
// every non-empty value. For example, the following are in ascending
// order:
//
//	fee=0 size=1 (feerate 0)
//	fee=1 size=2 (feerate 0.5)
//	fee=2 size=3 (feerate 0.667)
//	fee=2 size=2 (feerate 1)
//	fee=1 size=1 (feerate 1)
//	fee=3 size=2 (feerate 1.5)
//	fee=2 size=1 (feerate 2)
//	fee=0 size=0 (empty)
type FeeFrac struct {
	Fee  int64
	Size int32
}

// New returns a FeeFrac with the given fee and size. Size must be nonzero
// unless fee is also zero; callers that build up intermediate (possibly
// negative) differences should construct FeeFrac literals directly instead.
func New(fee int64, size int32) FeeFrac {
	return FeeFrac{Fee: fee, Size: size}
}

// IsEmpty reports whether f is the empty FeeFrac (size, and therefore fee,
// are zero).
func (f FeeFrac) IsEmpty() bool {
	return f.Size == 0
}

// Add returns the componentwise sum of f and g.
func (f FeeFrac) Add(g FeeFrac) FeeFrac {
	return FeeFrac{Fee: f.Fee + g.Fee, Size: f.Size + g.Size}
}

// Sub returns the componentwise difference f - g. The result need not meet
// the size/fee rule documented on New: it may have a negative size or fee;
// this is used by diagram comparison math.
func (f FeeFrac) Sub(g FeeFrac) FeeFrac {
	return FeeFrac{Fee: f.Fee - g.Fee, Size: f.Size - g.Size}
}

// ForSize returns a FeeFrac with f's feerate ratio but resized to size: the
// (fee, size) pair a transaction of that size would contribute if it shared
// f's feerate. It is used to turn a chunk's aggregate mining score into a
// per-transaction sample sized by that transaction's own vsize. An empty f
// returns a zero-fee FeeFrac at the given size.
func (f FeeFrac) ForSize(size int32) FeeFrac {
	if f.Size == 0 {
		return FeeFrac{Size: size}
	}
	return FeeFrac{Fee: f.Fee * int64(size) / int64(f.Size), Size: size}
}

// String implements fmt.Stringer for debug logging.
func (f FeeFrac) String() string {
	return fmt.Sprintf("FeeFrac(fee=%d, size=%d)", f.Fee, f.Size)
}

// wideProduct is the result of multiplying an int64 by an int32, represented
// as an ordered (high, low) pair with low taken as unsigned. Because
// |fee| <= 2^63 and |size| <= 2^31, the product can exceed 64 bits; Go has
// no native 128-bit integer type, so the product is split across two
// 64-bit limbs the same way Bitcoin Core's FeeFrac::MulFallback does.
type wideProduct struct {
	hi int64
	lo uint32
}

// mulCross computes fee*size as a wideProduct, exact for the full signed
// ranges described above.
func mulCross(fee int64, size int32) wideProduct {
	low := int64(uint32(fee)) * int64(size)
	high := (fee >> 32) * int64(size)
	return wideProduct{hi: high + (low >> 32), lo: uint32(low)}
}

// compare orders two wideProducts lexicographically by (hi, lo), which is
// equivalent to ordering the 96-bit signed values they represent.
func (w wideProduct) compare(o wideProduct) int {
	switch {
	case w.hi < o.hi:
		return -1
	case w.hi > o.hi:
		return 1
	case w.lo < o.lo:
		return -1
	case w.lo > o.lo:
		return 1
	default:
		return 0
	}
}

// FeeRateCompare compares a and b by feerate only (fee/size), ignoring
// size. It returns -1, 0, or 1. A zero result means the two feerates are
// equal, including the case where either (or both) operands are empty: an
// empty FeeFrac's cross product is always zero, so it compares equal in
// feerate to everything, even though it is never considered strictly less
// or greater than anything (see StrictFeeRateLess/StrictFeeRateGreater).
func FeeRateCompare(a, b FeeFrac) int {
	crossA := mulCross(a.Fee, b.Size)
	crossB := mulCross(b.Fee, a.Size)
	return crossA.compare(crossB)
}

// Compare imposes the total order described in the package doc: first by
// feerate, then by decreasing size, with the empty FeeFrac sorting last. It
// returns a negative number if a sorts before b, zero if they are equal,
// and a positive number if a sorts after b.
func Compare(a, b FeeFrac) int {
	if cmp := FeeRateCompare(a, b); cmp != 0 {
		return cmp
	}
	// Equal feerate (including the empty-vs-anything case): break ties by
	// decreasing size. A larger size sorts first; the empty FeeFrac (size
	// zero) therefore sorts last of all.
	switch {
	case b.Size < a.Size:
		return -1
	case b.Size > a.Size:
		return 1
	default:
		return 0
	}
}

// Equal reports whether a and b have the same fee and size.
func Equal(a, b FeeFrac) bool {
	return a.Fee == b.Fee && a.Size == b.Size
}

// Less reports whether a sorts strictly before b under the total order.
func (a FeeFrac) Less(b FeeFrac) bool { return Compare(a, b) < 0 }

// Greater reports whether a sorts strictly after b under the total order.
func (a FeeFrac) Greater(b FeeFrac) bool { return Compare(a, b) > 0 }

// LessOrEqual reports whether a sorts at or before b under the total order.
func (a FeeFrac) LessOrEqual(b FeeFrac) bool { return Compare(a, b) <= 0 }

// GreaterOrEqual reports whether a sorts at or after b under the total
// order.
func (a FeeFrac) GreaterOrEqual(b FeeFrac) bool { return Compare(a, b) >= 0 }

// StrictFeeRateLess reports whether a has a strictly lower feerate than b.
// Equal feerates (including when either side is empty) return false.
func (a FeeFrac) StrictFeeRateLess(b FeeFrac) bool {
	return FeeRateCompare(a, b) < 0
}

// StrictFeeRateGreater reports whether a has a strictly higher feerate than
// b. Equal feerates (including when either side is empty) return false.
func (a FeeFrac) StrictFeeRateGreater(b FeeFrac) bool {
	return FeeRateCompare(a, b) > 0
}

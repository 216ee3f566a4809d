package fourstate

// MinimumWidth canonicalises v to the fewest bits needed to represent it.
func MinimumWidth(v Value) Value {
	if IsZero(v) {
		return FromUint64(0, 1, v.signed)
	}

	if !v.signed {
		msb := highestSetBit(v.data01, v.size)
		newSize := msb + 1
		return shrinkTo(v, newSize)
	}

	if IsNegative(v) {
		// Strip leading 1-runs while the next bit down is also 1; the
		// retained MSB must stay 1 so the value is unambiguously negative.
		pos := v.size - 1
		for pos > 0 && bitAt(v.data01, pos) == 1 && bitAt(v.data01, pos-1) == 1 &&
			bitAt(v.dataXZ, pos) == bitAt(v.dataXZ, pos-1) {
			pos--
		}
		return shrinkTo(v, pos+1)
	}

	msb := highestSetBit(v.data01, v.size)
	newSize := msb + 2 // ensure the retained MSB is 0
	return shrinkTo(v, newSize)
}

func highestSetBit(words []uint64, size int) int {
	for pos := size - 1; pos >= 0; pos-- {
		if bitAt(words, pos) == 1 {
			return pos
		}
	}
	return 0
}

func shrinkTo(v Value, newSize int) Value {
	if newSize < 1 {
		newSize = 1
	}
	n := numWords(newSize)
	out := v
	out.data01 = cloneWords(v.data01[:n])
	if v.dataXZ != nil {
		out.dataXZ = cloneWords(v.dataXZ[:n])
	}
	out.size = newSize
	out.maskHighBits()
	return out
}

// Truncate keeps the lowest n bits, masking out everything at or above n.
// Panics if n is zero or exceeds the current size.
func Truncate(v Value, n int) Value {
	if n == 0 || n > v.size {
		panic("fourstate: truncate requires 0 < n <= size")
	}
	words := numWords(n)
	out := v
	out.data01 = cloneWords(v.data01[:words])
	if v.dataXZ != nil {
		out.dataXZ = cloneWords(v.dataXZ[:words])
	}
	out.size = n
	out.maskHighBits()
	return out
}

// Lsl performs a logical shift left by n; size grows by n and dataXZ shifts
// in lockstep with data01.
func Lsl(v Value, n int) Value {
	if n == 0 {
		return v
	}
	newSize := v.size + n
	out := Value{size: newSize, signed: v.signed, data01: make([]uint64, numWords(newSize))}
	if v.dataXZ != nil {
		out.dataXZ = make([]uint64, numWords(newSize))
	}
	for pos := 0; pos < v.size; pos++ {
		setBit(out.data01, pos+n, bitAt(v.data01, pos))
		if out.dataXZ != nil {
			setBit(out.dataXZ, pos+n, bitAt(v.dataXZ, pos))
		}
	}
	return out
}

// Lsr performs a logical shift right by n, preserving size. Low bits fall
// off; vacated high bits fill with 0/0.
func Lsr(v Value, n int) Value {
	out := Value{size: v.size, signed: v.signed, data01: make([]uint64, numWords(v.size))}
	if v.dataXZ != nil {
		out.dataXZ = make([]uint64, numWords(v.size))
	}
	for pos := 0; pos < v.size; pos++ {
		src := pos + n
		if src < v.size {
			setBit(out.data01, pos, bitAt(v.data01, src))
			if out.dataXZ != nil {
				setBit(out.dataXZ, pos, bitAt(v.dataXZ, src))
			}
		}
	}
	return out
}

// Rol rotates v left within its current size by n positions.
func Rol(v Value, n int) Value {
	if v.size == 0 {
		return v
	}
	n = ((n % v.size) + v.size) % v.size
	out := Value{size: v.size, signed: v.signed, data01: make([]uint64, numWords(v.size))}
	if v.dataXZ != nil {
		out.dataXZ = make([]uint64, numWords(v.size))
	}
	for pos := 0; pos < v.size; pos++ {
		dst := (pos + n) % v.size
		setBit(out.data01, dst, bitAt(v.data01, pos))
		if out.dataXZ != nil {
			setBit(out.dataXZ, dst, bitAt(v.dataXZ, pos))
		}
	}
	return out
}

// Ror rotates v right within its current size by n positions.
func Ror(v Value, n int) Value {
	if v.size == 0 {
		return v
	}
	n = ((n % v.size) + v.size) % v.size
	return Rol(v, v.size-n)
}

// Inv flips every data01 bit, leaving dataXZ untouched so X/Z positions
// remain X/Z.
func Inv(v Value) Value {
	out := v
	out.data01 = cloneWords(v.data01)
	for i := range out.data01 {
		out.data01[i] = ^out.data01[i]
	}
	out.maskHighBits()
	return out
}

// Negate computes the two's complement of a signed value: inv(v) + 1. The
// width is adjusted to the minimum signed width of the result. Panics if v
// is unsigned and non-zero, matching the engine's own contract that negation
// is only meaningful for signed operands (the zero case is returned
// unchanged regardless of signedness).
func Negate(v Value) Value {
	if IsZero(v) {
		return v
	}
	if !v.signed {
		panic("fourstate: negate requires a signed operand")
	}
	one := FromUint64(1, 2, true)
	negated := AddPrimlit(Inv(v), one)
	return MinimumWidth(negated)
}

// AddPrimlit adds two values per the engine's fast/poisoned dual path.
func AddPrimlit(a, b Value) Value {
	if Is4State(a) != Is4State(b) {
		if !Is4State(a) {
			a = To4State(a)
		} else {
			b = To4State(b)
		}
	}

	resultSigned := a.signed && b.signed
	finalSize := maxInt(a.size, b.size) + 1

	if !ContainsXZ(a) && !ContainsXZ(b) {
		var ea, eb Value
		if !resultSigned {
			ea, eb = asUnsignedView(a), asUnsignedView(b)
			ea, eb = matchedZeroExtend(ea, eb)
		} else {
			ea, eb = a, b
			ea.signed, eb.signed = true, true
			n := numWords(finalSize)
			ea, eb = signExtendTo(ea, n), signExtendTo(eb, n)
		}

		sum, carry := wordwiseAdd(ea.data01, eb.data01)
		out := Value{size: len(sum) * wordBits, signed: resultSigned, data01: sum}
		if !resultSigned && len(out.data01) < numWords(finalSize) {
			out.data01 = append(out.data01, carry)
			out.size = len(out.data01) * wordBits
		}
		return Truncate(out, finalSize)
	}

	out := Value{size: finalSize, signed: resultSigned, data01: make([]uint64, numWords(finalSize)), dataXZ: make([]uint64, numWords(finalSize))}
	for i := range out.dataXZ {
		out.dataXZ[i] = ^uint64(0)
	}
	out.maskHighBits()
	return out
}

// asUnsignedView reinterprets v as unsigned without altering
// its bit pattern.
func asUnsignedView(v Value) Value {
	out := v
	out.signed = false
	return out
}

func wordwiseAdd(a, b []uint64) ([]uint64, uint64) {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]uint64, n)
	var carry uint64
	for i := 0; i < n; i++ {
		var av, bv uint64
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		sum := av + bv + carry
		if sum < av || (carry == 1 && sum == av) {
			carry = 1
		} else {
			carry = 0
		}
		out[i] = sum
	}
	return out, carry
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Mult multiplies two values via shift-and-add on the fast path, or poisons
// to all-X on the poisoned path.
func Mult(a, b Value) Value {
	if Is4State(a) != Is4State(b) {
		if !Is4State(a) {
			a = To4State(a)
		} else {
			b = To4State(b)
		}
	}

	resultSigned := a.signed && b.signed
	finalSize := a.size + b.size

	if !ContainsXZ(a) && !ContainsXZ(b) {
		ea, eb := a, b
		if resultSigned {
			n := len(a.data01) + len(b.data01)
			ea, eb = signExtendTo(setSigned(a, true), n), signExtendTo(setSigned(b, true), n)
		}

		acc := FromUint64(0, finalSize, resultSigned)
		for pos := 0; pos < eb.size && pos < finalSize; pos++ {
			if bitAt(eb.data01, pos) == 1 {
				term := Lsl(ea, pos)
				sum, _ := wordwiseAdd(acc.data01, term.data01)
				acc.data01 = sum
			}
		}
		acc.size = len(acc.data01) * wordBits
		acc = Truncate(acc, finalSize)
		acc.signed = resultSigned
		return acc
	}

	out := Value{size: finalSize, signed: resultSigned, data01: make([]uint64, numWords(finalSize)), dataXZ: make([]uint64, numWords(finalSize))}
	for i := range out.dataXZ {
		out.dataXZ[i] = ^uint64(0)
	}
	out.maskHighBits()
	return out
}

func setSigned(v Value, signed bool) Value {
	out := v
	out.signed = signed
	return out
}

func widen(v Value, size int) Value {
	n := numWords(size)
	out := v
	out.data01 = append(cloneWords(v.data01), make([]uint64, n-len(v.data01))...)
	if v.dataXZ != nil {
		out.dataXZ = append(cloneWords(v.dataXZ), make([]uint64, n-len(v.dataXZ))...)
	}
	out.size = size
	return out
}

// Cat concatenates a (high) with b (low): a shifted left by b.size, added to
// b (unsigned), combined width a.size + b.size.
func Cat(a, b Value) Value {
	shifted := Lsl(setSigned(a, false), b.size)
	bw := widen(setSigned(b, false), shifted.size)
	sum, _ := wordwiseAdd(shifted.data01, bw.data01)
	out := Value{size: shifted.size, signed: false, data01: sum}
	if shifted.dataXZ != nil || bw.dataXZ != nil {
		out.dataXZ = make([]uint64, len(sum))
		for pos := 0; pos < b.size; pos++ {
			setBit(out.dataXZ, pos, bitAt(b.dataXZ, pos))
		}
		for pos := 0; pos < a.size; pos++ {
			setBit(out.dataXZ, pos+b.size, bitAt(a.dataXZ, pos))
		}
	}
	return out
}

// Lt implements "<" per IEEE 1800-2017 S11.4.4, returning a four-state 1-bit
// value.
func Lt(a, b Value) Value {
	if ContainsXZ(a) || ContainsXZ(b) {
		return Logic1bX()
	}

	if a.signed != b.signed {
		a, b = setSigned(a, false), setSigned(b, false)
	}

	if !a.signed {
		ea, eb := matchedZeroExtend(a, b)
		return wordwiseLess(ea, eb)
	}

	negA, negB := IsNegative(a), IsNegative(b)
	if negA != negB {
		if negA {
			return Logic1b1()
		}
		return Logic1b0()
	}
	ea, eb := matchedSignExtend(a, b)
	return wordwiseLess(ea, eb)
}

func wordwiseLess(a, b Value) Value {
	for pos := len(a.data01)*wordBits - 1; pos >= 0; pos-- {
		av, bv := bitAt(a.data01, pos), bitAt(b.data01, pos)
		if av < bv {
			return Logic1b1()
		}
		if av > bv {
			return Logic1b0()
		}
	}
	return Logic1b0()
}

// Le implements "<=": lt(a,b) OR logical_eq(a,b), short-circuited to X.
func Le(a, b Value) Value {
	if ContainsXZ(a) || ContainsXZ(b) {
		return Logic1bX()
	}
	if truthy(Lt(a, b)) || truthy(LogicalEq(a, b)) {
		return Logic1b1()
	}
	return Logic1b0()
}

// Gt implements ">", symmetric to Lt.
func Gt(a, b Value) Value { return Lt(b, a) }

// Ge implements ">=", symmetric to Le.
func Ge(a, b Value) Value { return Le(b, a) }

func truthy(v Value) bool { return !ContainsXZ(v) && bitAt(v.data01, 0) == 1 }

// CaseEq implements "===": two-state, never X.
func CaseEq(a, b Value) bool {
	if a.signed != b.signed {
		a, b = setSigned(a, false), setSigned(b, false)
	}
	if ContainsXZ(a) != ContainsXZ(b) {
		return false
	}

	var ea, eb Value
	if a.signed {
		ea, eb = matchedSignExtend(a, b)
	} else {
		ea, eb = matchedZeroExtend(setSigned(a, false), setSigned(b, false))
	}
	for i := range ea.data01 {
		if ea.data01[i] != eb.data01[i] {
			return false
		}
	}
	if ea.dataXZ != nil {
		for i := range ea.dataXZ {
			var bxz uint64
			if eb.dataXZ != nil {
				bxz = eb.dataXZ[i]
			}
			if ea.dataXZ[i] != bxz {
				return false
			}
		}
	}
	return true
}

// LogicalEq implements "==": X if either operand has X/Z, else case_eq
// lifted to four-state.
func LogicalEq(a, b Value) Value {
	if ContainsXZ(a) || ContainsXZ(b) {
		return Logic1bX()
	}
	if CaseEq(a, b) {
		return Logic1b1()
	}
	return Logic1b0()
}

// WildcardEq implements "==?": X/Z positions in b act as wildcards against
// the corresponding position of a. a is never mutated: a's own X/Z bits
// still poison the result, since a wildcard only silences a mismatch, it
// does not silence an unknown.
func WildcardEq(a, b Value) Value {
	bb := To4State(b)
	aa := To4State(a)
	for pos := 0; pos < bb.size && pos < aa.size; pos++ {
		if bitAt(bb.dataXZ, pos) != 1 {
			continue
		}
		if bitAt(aa.dataXZ, pos) == 1 {
			continue
		}
		setBit(bb.data01, pos, bitAt(aa.data01, pos))
		setBit(bb.dataXZ, pos, 0)
	}
	return LogicalEq(aa, bb)
}

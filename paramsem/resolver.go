// Package paramsem resolves the semantics of a single `parameter` or
// `localparam` declaration from its syntax subtree: its declared or
// inferred data type, signedness, bit width, and whether those are
// overridable by an instantiating module.
package paramsem

import (
	"strconv"
	"strings"

	"github.com/svtools/svsem/svtypes"
	"github.com/svtools/svsem/synnode"
)

// Parameter is the resolved semantic model of one parameter or localparam.
type Parameter struct {
	Identifier            string
	Expression            *string
	Kind                  svtypes.ParamKind
	DataType              *svtypes.DataType
	DataTypeOverridable   bool
	ClassIdentifier       *string
	Signedness            *svtypes.Signedness
	SignednessOverridable bool
	PackedDimensions      []svtypes.PackedDimension
	UnpackedDimensions    []svtypes.UnpackedDimension
	NumBits               *uint64
	Comment               []string
}

// Resolve builds the semantic model for a single ParamAssignment node.
// commonData is the DataType/DataTypeOrImplicit subtree shared by every
// assignment in the same declaration list (nil when each assignment carries
// its own implicit type, i.e. outside a parameter-port-list common scope).
func Resolve(assignment synnode.Node, commonData synnode.Node, kind svtypes.ParamKind) Parameter {
	foundAssignment := checkDefault(assignment)
	dataType, dataTypeOverridable := resolveDataType(commonData, assignment, foundAssignment, kind)
	signedness, signednessOverridable := resolveSignedness(commonData, assignment, dataType, foundAssignment, dataTypeOverridable)

	var packed []svtypes.PackedDimension
	if commonData != nil {
		packed = packedDimensions(commonData)
	}

	isParam := kind == svtypes.Parameter
	p := Parameter{
		Identifier:            mustIdentifier(assignment, synnode.KindParameterIdentifier),
		Kind:                  kind,
		DataType:              dataType,
		DataTypeOverridable:   dataTypeOverridable && isParam,
		ClassIdentifier:       classIdentifier(commonData, dataType),
		Signedness:            signedness,
		SignednessOverridable: signednessOverridable && isParam,
		PackedDimensions:      packed,
		UnpackedDimensions:    unpackedDimensions(assignment),
		Expression:            parameterValue(assignment, foundAssignment),
		Comment:               commentOf(assignment),
	}
	p.NumBits = resolveBits(packed, assignment, dataType, dataTypeOverridable, foundAssignment, p.Expression)

	validateSyntax(p.DataType, p.Signedness, p.PackedDimensions, kind, foundAssignment)
	return p
}

func mustIdentifier(n synnode.Node, kind synnode.Kind) string {
	sub, ok := synnode.Find(n, kind)
	if !ok {
		panic("paramsem: missing identifier node")
	}
	id, ok := synnode.Identifier(sub)
	if !ok {
		panic("paramsem: identifier node has no identifier leaf")
	}
	return id
}

func checkDefault(assignment synnode.Node) bool {
	_, ok := synnode.Find(assignment, synnode.KindConstantParamExpression)
	return ok
}

func parameterValue(assignment synnode.Node, found bool) *string {
	if !found {
		return nil
	}
	expr, ok := synnode.Find(assignment, synnode.KindConstantParamExpression)
	if !ok {
		return nil
	}
	s, ok := synnode.GetString(expr)
	if !ok {
		return nil
	}
	return &s
}

func commentOf(assignment synnode.Node) []string {
	c, ok := synnode.GetComment(assignment)
	if !ok {
		return nil
	}
	return c
}

// resolverNeeded reports whether the expression is a compound form (call,
// binary op, concatenation, or conditional) that cannot be classified from a
// single literal production alone.
func resolverNeeded(assignment synnode.Node) bool {
	_, ok := synnode.Find(assignment,
		synnode.KindConstantFunctionCall,
		synnode.KindBinaryOperator,
		synnode.KindConstantConcatenation,
		synnode.KindConditionalExpression,
	)
	return ok
}

// classifyLiteral maps a bare literal expression to its implicit data type.
func classifyLiteral(assignment synnode.Node) svtypes.DataType {
	if n, ok := synnode.Find(assignment, synnode.KindNumber); ok {
		if _, isReal := synnode.Find(n, synnode.KindRealNumber); isReal {
			return svtypes.Real
		}
		if _, isIntegral := synnode.Find(n, synnode.KindIntegralNumber); isIntegral {
			return svtypes.Logic
		}
	}
	if n, ok := synnode.Find(assignment, synnode.KindTimeLiteral); ok {
		if _, isReal := synnode.Find(n, synnode.KindRealNumber); isReal {
			return svtypes.Real
		}
		if _, isIntegral := synnode.Find(n, synnode.KindIntegralNumber); isIntegral {
			return svtypes.Logic
		}
		return svtypes.Time
	}
	if n, ok := synnode.Find(assignment, synnode.KindUnbasedUnsizedLiteral); ok {
		if _, isReal := synnode.Find(n, synnode.KindRealNumber); isReal {
			return svtypes.Real
		}
		if _, isIntegral := synnode.Find(n, synnode.KindIntegralNumber); isIntegral {
			return svtypes.Logic
		}
		return svtypes.Bit
	}
	if _, ok := synnode.Find(assignment, synnode.KindStringLiteral); ok {
		return svtypes.String
	}
	return svtypes.DataTypeUnsupported
}

func resolveDataType(commonData, assignment synnode.Node, foundAssignment bool, kind svtypes.ParamKind) (*svtypes.DataType, bool) {
	if commonData != nil {
		if dt, ok := commonDataType(commonData); ok {
			return &dt, false
		}
	}

	if !foundAssignment {
		if kind == svtypes.LocalParam {
			dt := svtypes.Logic
			return &dt, false
		}
		return nil, true
	}

	if resolverNeeded(assignment) {
		if _, hasBinary := synnode.Find(assignment, synnode.KindBinaryOperator); hasBinary {
			dt := classifyLiteral(assignment)
			return &dt, true
		}
		dt := svtypes.DataTypeUnsupported
		return &dt, true
	}

	dt := classifyLiteral(assignment)
	return &dt, true
}

// commonDataType classifies the shared DataType/DataTypeOrImplicit subtree
// of a declaration list into an explicit, non-overridable data type. ok is
// false when the common scope left the type implicit (logic by default).
func commonDataType(commonData synnode.Node) (svtypes.DataType, bool) {
	if n, found := synnode.Find(commonData, synnode.KindIntegerVectorType); found {
		switch text := firstKeyword(n); text {
		case "reg":
			return svtypes.Reg, true
		case "bit":
			return svtypes.Bit, true
		default:
			return svtypes.Logic, true
		}
	}
	if n, found := synnode.Find(commonData, synnode.KindIntegerAtomType); found {
		switch firstKeyword(n) {
		case "byte":
			return svtypes.Byte, true
		case "shortint":
			return svtypes.Shortint, true
		case "int":
			return svtypes.Int, true
		case "longint":
			return svtypes.Longint, true
		case "integer":
			return svtypes.Integer, true
		case "time":
			return svtypes.Time, true
		}
	}
	if n, found := synnode.Find(commonData, synnode.KindNonIntegerType); found {
		switch firstKeyword(n) {
		case "shortreal":
			return svtypes.Shortreal, true
		case "realtime":
			return svtypes.Realtime, true
		case "real":
			return svtypes.Real, true
		}
	}
	if _, found := synnode.Find(commonData, synnode.KindClassType); found {
		return svtypes.Class, true
	}
	if _, found := synnode.Find(commonData, synnode.KindTypeReference); found {
		return svtypes.TypeRef, true
	}
	if dt, found := synnode.Find(commonData, synnode.KindDataType); found {
		if kw, ok := synnode.Keyword(dt); ok && kw == "string" {
			return svtypes.String, true
		}
	}
	return svtypes.Logic, false
}

func firstKeyword(n synnode.Node) string {
	kw, _ := synnode.Keyword(n)
	return kw
}

func resolveSignedness(commonData, assignment synnode.Node, datatype *svtypes.DataType, foundAssignment, datatypeOverridable bool) (*svtypes.Signedness, bool) {
	if commonData != nil {
		if n, ok := synnode.Find(commonData, synnode.KindSigning); ok {
			if kw, ok := synnode.Keyword(n); ok {
				if kw == "signed" {
					s := svtypes.Signed
					return &s, false
				}
				if kw == "unsigned" {
					s := svtypes.Unsigned
					return &s, false
				}
			}
		}
	}

	if datatype == nil {
		return nil, true
	}

	switch *datatype {
	case svtypes.Class, svtypes.String, svtypes.Real:
		return nil, datatypeOverridable

	case svtypes.Shortint, svtypes.Int, svtypes.Longint, svtypes.Byte, svtypes.Integer:
		s := svtypes.Signed
		return &s, true

	case svtypes.Logic:
		if !datatypeOverridable || !foundAssignment {
			s := svtypes.Unsigned
			return &s, true
		}
		if resolverNeeded(assignment) {
			if _, hasBinary := synnode.Find(assignment, synnode.KindBinaryOperator); hasBinary {
				return literalExpressionSignedness(assignment), true
			}
			s := svtypes.Unsupported
			return &s, true
		}
		return baseLiteralSignedness(assignment)

	case svtypes.DataTypeUnsupported:
		s := svtypes.Unsupported
		return &s, true

	default:
		s := svtypes.Unsigned
		return &s, true
	}
}

// literalExpressionSignedness resolves signedness from a compound default
// expression; resolveSignedness calls it only once it has found a binary
// operator in the assignment. It checks, in order: a real number (nil), a
// time or unbased unsized literal (Unsigned), a first binary operator that is
// bitwise, relational or equality (Unsigned), and the base of the first
// integral number
// (Signed for the 's forms, Unsigned for other bases, Unsupported when no
// base is found). An expression matching none of these is Signed.
func literalExpressionSignedness(assignment synnode.Node) *svtypes.Signedness {
	if n, ok := synnode.Find(assignment, synnode.KindRealNumber); ok {
		_ = n
		return nil
	}
	if _, ok := synnode.Find(assignment, synnode.KindTimeLiteral); ok {
		s := svtypes.Unsigned
		return &s
	}
	if _, ok := synnode.Find(assignment, synnode.KindUnbasedUnsizedLiteral); ok {
		s := svtypes.Unsigned
		return &s
	}
	if op, ok := synnode.Find(assignment, synnode.KindBinaryOperator); ok {
		if sym, ok := synnode.Symbol(op); ok {
			switch sym {
			case "&", "~&", "|", "~|", "^", "~^", "<", "<=", ">", ">=", "==", "=!":
				s := svtypes.Unsigned
				return &s
			}
		}
	}
	if n, ok := synnode.Find(assignment, synnode.KindIntegralNumber); ok {
		base, baseText, ok := integralBase(n)
		if !ok {
			s := svtypes.Unsupported
			return &s
		}
		var s svtypes.Signedness
		switch base {
		case synnode.KindBinaryBase:
			s = signedIf(baseText == "'sb")
		case synnode.KindHexBase:
			s = signedIf(baseText == "'sh")
		case synnode.KindOctalBase:
			s = signedIf(baseText == "'so")
		case synnode.KindDecimalBase, synnode.KindDecimalNumberBaseUnsigned:
			s = signedIf(baseText == "'sd")
		}
		return &s
	}
	s := svtypes.Signed
	return &s
}

func baseLiteralSignedness(assignment synnode.Node) (*svtypes.Signedness, bool) {
	if _, ok := synnode.Find(assignment, synnode.KindUnbasedUnsizedLiteral); ok {
		s := svtypes.Unsigned
		return &s, true
	}
	if n, ok := synnode.Find(assignment, synnode.KindDecimalNumber); ok {
		if text, ok := synnode.GetString(n); ok {
			if _, err := strconv.ParseUint(strings.TrimSpace(text), 10, 64); err == nil {
				s := svtypes.Signed
				return &s, true
			}
		}
	}

	base, baseText, ok := integralBase(assignment)
	if !ok {
		s := svtypes.Unsupported
		return &s, true
	}

	switch base {
	case synnode.KindBinaryBase:
		s := signedIf(baseText == "'sb")
		return &s, true
	case synnode.KindHexBase:
		s := signedIf(baseText == "'sh")
		return &s, true
	case synnode.KindOctalBase:
		s := signedIf(baseText == "'so")
		return &s, true
	case synnode.KindDecimalBase:
		// Unlike every other base, an unsigned decimal base ('d) also marks
		// the signedness as non-overridable; the signed 'sd base and a
		// decimal literal with no base keep it overridable.
		if baseText == "'sd" {
			s := svtypes.Signed
			return &s, true
		}
		s := svtypes.Unsigned
		return &s, false
	}
	s := svtypes.Unsupported
	return &s, true
}

func integralBase(n synnode.Node) (synnode.Kind, string, bool) {
	for _, k := range []synnode.Kind{synnode.KindBinaryBase, synnode.KindHexBase, synnode.KindOctalBase, synnode.KindDecimalBase, synnode.KindDecimalNumberBaseUnsigned} {
		if base, ok := synnode.Find(n, k); ok {
			text, ok := synnode.GetString(base)
			if !ok {
				return 0, "", false
			}
			return k, text, true
		}
	}
	return 0, "", false
}

func signedIf(cond bool) svtypes.Signedness {
	if cond {
		return svtypes.Signed
	}
	return svtypes.Unsigned
}

func classIdentifier(commonData synnode.Node, datatype *svtypes.DataType) *string {
	if datatype == nil || *datatype != svtypes.Class || commonData == nil {
		return nil
	}
	id := mustIdentifier(commonData, synnode.KindClassIdentifier)
	return &id
}

func packedDimensions(n synnode.Node) []svtypes.PackedDimension {
	var out []svtypes.PackedDimension
	for _, dim := range synnode.FindAll(n, synnode.KindPackedDimensionRange) {
		rng, ok := synnode.Find(dim, synnode.KindConstantRange)
		if !ok {
			continue
		}
		left, right, ok := rangeBounds(rng)
		if ok {
			out = append(out, svtypes.PackedDimension{Left: left, Right: right})
		}
	}
	return out
}

func unpackedDimensions(n synnode.Node) []svtypes.UnpackedDimension {
	var out []svtypes.UnpackedDimension
	for _, dim := range synnode.FindAll(n, synnode.KindUnpackedDimensionRange) {
		rng, ok := synnode.Find(dim, synnode.KindConstantRange)
		if !ok {
			continue
		}
		left, right, ok := rangeBounds(rng)
		if ok {
			out = append(out, svtypes.UnpackedDimension{Left: left, Right: &right})
		}
	}
	for _, dim := range synnode.FindAll(n, synnode.KindUnpackedDimensionExpression) {
		expr, ok := synnode.Find(dim, synnode.KindConstantExpression)
		if !ok {
			continue
		}
		left, ok := synnode.GetString(expr)
		if ok {
			out = append(out, svtypes.UnpackedDimension{Left: left})
		}
	}
	return out
}

func rangeBounds(rng synnode.Node) (string, string, bool) {
	children := rng.Children()
	if len(children) < 2 {
		return "", "", false
	}
	left, ok1 := synnode.GetString(children[0])
	right, ok2 := synnode.GetString(children[len(children)-1])
	return left, right, ok1 && ok2
}

func resolveBits(packed []svtypes.PackedDimension, assignment synnode.Node, datatype *svtypes.DataType, datatypeOverridable, foundAssignment bool, expression *string) *uint64 {
	if len(packed) > 0 {
		var bits uint64
		for i := len(packed) - 1; i >= 0; i-- {
			left, errL := strconv.ParseInt(strings.TrimSpace(packed[i].Left), 10, 64)
			right, errR := strconv.ParseInt(strings.TrimSpace(packed[i].Right), 10, 64)
			if errL != nil || errR != nil {
				v := svtypes.BitWidthUnresolved
				return &v
			}
			diff := left - right
			if diff < 0 {
				diff = -diff
			}
			width := uint64(diff) + 1
			if bits == 0 {
				bits = width
			} else {
				bits *= width
			}
		}
		return &bits
	}

	if datatype == nil {
		return nil
	}

	switch *datatype {
	case svtypes.Class:
		return nil
	case svtypes.Bit:
		return u64ptr(1)
	case svtypes.Byte:
		return u64ptr(8)
	case svtypes.Integer, svtypes.Int, svtypes.Shortreal:
		return u64ptr(32)
	case svtypes.Shortint:
		return u64ptr(16)
	case svtypes.Longint, svtypes.Time, svtypes.Real, svtypes.Realtime:
		return u64ptr(64)
	case svtypes.String:
		if resolverNeeded(assignment) {
			return u64ptr(svtypes.BitWidthUnresolved)
		}
		if !foundAssignment || expression == nil {
			return nil
		}
		return u64ptr(uint64(len(*expression)-2) * 8)
	case svtypes.Reg, svtypes.Logic:
		if resolverNeeded(assignment) {
			return u64ptr(svtypes.BitWidthUnresolved)
		}
		if !datatypeOverridable {
			return u64ptr(1)
		}
		if !foundAssignment {
			return nil
		}
		if size, ok := synnode.Find(assignment, synnode.KindSize); ok {
			if text, ok := synnode.GetString(size); ok {
				if n, err := strconv.ParseUint(strings.TrimSpace(text), 10, 64); err == nil {
					return &n
				}
			}
		}
		if _, ok := synnode.Find(assignment, synnode.KindUnbasedUnsizedLiteral); ok {
			return u64ptr(1)
		}
		return u64ptr(32)
	case svtypes.DataTypeUnsupported:
		return u64ptr(svtypes.BitWidthUnresolved)
	default:
		return nil
	}
}

func u64ptr(v uint64) *uint64 { return &v }

func validateSyntax(datatype *svtypes.DataType, signedness *svtypes.Signedness, packed []svtypes.PackedDimension, kind svtypes.ParamKind, foundAssignment bool) {
	if len(packed) > 0 && datatype != nil {
		switch *datatype {
		case svtypes.Integer:
			panic("paramsem: cannot combine packed dimensions with an integer")
		case svtypes.Real:
			panic("paramsem: cannot combine packed dimensions with a real")
		case svtypes.String:
			panic("paramsem: cannot combine packed dimensions with a string")
		case svtypes.Time:
			panic("paramsem: cannot combine packed dimensions with time")
		}
	}

	if signedness != nil && (*signedness == svtypes.Signed || *signedness == svtypes.Unsigned) && datatype != nil {
		switch *datatype {
		case svtypes.Real:
			panic("paramsem: reals cannot have signedness")
		case svtypes.String:
			panic("paramsem: strings cannot have signedness")
		}
	}

	if kind == svtypes.LocalParam && !foundAssignment {
		panic("paramsem: localparams must have a default value")
	}
}

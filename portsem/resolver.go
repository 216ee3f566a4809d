// Package portsem resolves the semantics of a single ANSI port declaration:
// its direction, data kind, data type, net type, signedness, and packed/
// unpacked dimensions, honoring SystemVerilog's port-list inheritance rule
// where a bare identifier continues the previous port's attributes.
package portsem

import (
	"github.com/svtools/svsem/svtypes"
	"github.com/svtools/svsem/synnode"
)

// Port is the resolved semantic model of one ANSI port declaration.
type Port struct {
	Identifier         string
	Direction          svtypes.PortDirection
	DataKind           svtypes.DataKind
	DataType           svtypes.DataType
	ClassIdentifier    *string
	NetType            *svtypes.NetType
	Signedness         *svtypes.Signedness
	PackedDimensions   []svtypes.PackedDimension
	UnpackedDimensions []svtypes.UnpackedDimension
	Comment            []string
}

// Resolve builds the semantic model for a single AnsiPortDeclaration node.
// prev is the previously resolved port in the same port list, or nil for
// the first port; it supplies inherited attributes when decl is a bare
// identifier continuation.
func Resolve(decl synnode.Node, prev *Port) Port {
	if checkInheritance(decl) && prev != nil {
		return Port{
			Identifier:         mustIdentifier(decl, synnode.KindPortIdentifier),
			Direction:          prev.Direction,
			DataKind:           prev.DataKind,
			DataType:           prev.DataType,
			ClassIdentifier:    prev.ClassIdentifier,
			NetType:            prev.NetType,
			Signedness:         prev.Signedness,
			PackedDimensions:   prev.PackedDimensions,
			UnpackedDimensions: unpackedDimensions(decl),
			Comment:            commentOf(decl),
		}
	}

	direction := direction(decl, prev)
	datatype := datatype(decl)
	nt := nettype(decl, direction)
	return Port{
		Identifier:         mustIdentifier(decl, synnode.KindPortIdentifier),
		Direction:          direction,
		DataKind:           dataKind(nt),
		DataType:           datatype,
		ClassIdentifier:    classIdentifier(decl, datatype),
		NetType:            nt,
		Signedness:         signedness(decl, datatype),
		PackedDimensions:   packedDimensions(decl),
		UnpackedDimensions: unpackedDimensions(decl),
		Comment:            commentOf(decl),
	}
}

func mustIdentifier(n synnode.Node, kind synnode.Kind) string {
	sub, ok := synnode.Find(n, kind)
	if !ok {
		panic("portsem: missing identifier node")
	}
	id, ok := synnode.Identifier(sub)
	if !ok {
		panic("portsem: identifier node has no identifier leaf")
	}
	return id
}

func commentOf(decl synnode.Node) []string {
	c, ok := synnode.GetComment(decl)
	if !ok {
		return nil
	}
	return c
}

// checkInheritance reports whether decl carries none of the attributes that
// would make it a fresh declaration, meaning it inherits everything but its
// identifier, unpacked dimensions and comment from the previous port (packed
// dimensions are inherited).
func checkInheritance(decl synnode.Node) bool {
	for _, k := range []synnode.Kind{
		synnode.KindDataType,
		synnode.KindSigning,
		synnode.KindNetType,
		synnode.KindVarDataType,
		synnode.KindPortDirection,
		synnode.KindPackedDimension,
	} {
		if _, ok := synnode.Find(decl, k); ok {
			return false
		}
	}
	return true
}

func direction(decl synnode.Node, prev *Port) svtypes.PortDirection {
	if n, ok := synnode.Find(decl, synnode.KindPortDirection); ok {
		if kw, ok := synnode.Keyword(n); ok {
			switch kw {
			case "input":
				return svtypes.Input
			case "output":
				return svtypes.Output
			case "inout":
				return svtypes.Inout
			case "ref":
				return svtypes.Ref
			}
		}
	}
	if prev != nil {
		return prev.Direction
	}
	return svtypes.Inout
}

// dataKind derives the port's data kind from its already-resolved net type:
// a port is Net when it has a net type at all, Variable otherwise.
func dataKind(nt *svtypes.NetType) svtypes.DataKind {
	if nt == nil {
		return svtypes.Variable
	}
	return svtypes.Net
}

func datatype(decl synnode.Node) svtypes.DataType {
	if n, ok := synnode.Find(decl, synnode.KindIntegerVectorType); ok {
		switch kw(n) {
		case "reg":
			return svtypes.Reg
		case "bit":
			return svtypes.Bit
		default:
			return svtypes.Logic
		}
	}
	if n, ok := synnode.Find(decl, synnode.KindIntegerAtomType); ok {
		switch kw(n) {
		case "byte":
			return svtypes.Byte
		case "shortint":
			return svtypes.Shortint
		case "int":
			return svtypes.Int
		case "longint":
			return svtypes.Longint
		case "integer":
			return svtypes.Integer
		case "time":
			return svtypes.Time
		}
	}
	if n, ok := synnode.Find(decl, synnode.KindNonIntegerType); ok {
		switch kw(n) {
		case "shortreal":
			return svtypes.Shortreal
		case "realtime":
			return svtypes.Realtime
		case "real":
			return svtypes.Real
		}
	}
	if _, ok := synnode.Find(decl, synnode.KindClassType); ok {
		return svtypes.Class
	}
	if _, ok := synnode.Find(decl, synnode.KindTypeReference); ok {
		return svtypes.TypeRef
	}
	if dt, ok := synnode.Find(decl, synnode.KindDataType); ok {
		if kw, ok := synnode.Keyword(dt); ok && kw == "string" {
			return svtypes.String
		}
	}
	return svtypes.Logic
}

func kw(n synnode.Node) string {
	s, _ := synnode.Keyword(n)
	return s
}

func classIdentifier(decl synnode.Node, datatype svtypes.DataType) *string {
	if datatype != svtypes.Class {
		return nil
	}
	if n, ok := synnode.Find(decl, synnode.KindClassIdentifier); ok {
		if id, ok := synnode.Identifier(n); ok {
			return &id
		}
	}
	return nil
}

func nettype(decl synnode.Node, direction svtypes.PortDirection) *svtypes.NetType {
	if _, ok := synnode.Find(decl, synnode.KindAnsiPortDeclarationVariable); ok {
		hasAttr := false
		for _, k := range []synnode.Kind{synnode.KindPortDirection, synnode.KindDataType, synnode.KindSigning, synnode.KindPackedDimension} {
			if _, ok := synnode.Find(decl, k); ok {
				hasAttr = true
				break
			}
		}
		if hasAttr {
			return nil
		}
		nt := svtypes.Wire
		return &nt
	}

	if n, ok := synnode.Find(decl, synnode.KindNetType); ok {
		if kw, ok := synnode.Keyword(n); ok {
			nt, ok := netTypeFromKeyword(kw)
			if ok {
				return &nt
			}
		}
	}

	switch direction {
	case svtypes.Inout, svtypes.Input:
		nt := svtypes.Wire
		return &nt
	case svtypes.Output:
		if _, ok := synnode.Find(decl, synnode.KindDataType); ok {
			return nil
		}
		nt := svtypes.Wire
		return &nt
	default: // Ref
		return nil
	}
}

func netTypeFromKeyword(kw string) (svtypes.NetType, bool) {
	switch kw {
	case "wire":
		return svtypes.Wire, true
	case "uwire":
		return svtypes.Uwire, true
	case "tri":
		return svtypes.Tri, true
	case "wor":
		return svtypes.Wor, true
	case "wand":
		return svtypes.Wand, true
	case "triand":
		return svtypes.Triand, true
	case "trior":
		return svtypes.Trior, true
	case "trireg":
		return svtypes.Trireg, true
	case "tri0":
		return svtypes.Tri0, true
	case "tri1":
		return svtypes.Tri1, true
	case "supply0":
		return svtypes.Supply0, true
	case "supply1":
		return svtypes.Supply1, true
	default:
		return 0, false
	}
}

func signedness(decl synnode.Node, datatype svtypes.DataType) *svtypes.Signedness {
	switch datatype {
	case svtypes.Class, svtypes.String, svtypes.Real:
		return nil
	}

	if n, ok := synnode.Find(decl, synnode.KindSigning); ok {
		if kw, ok := synnode.Keyword(n); ok {
			if kw == "signed" {
				s := svtypes.Signed
				return &s
			}
			if kw == "unsigned" {
				s := svtypes.Unsigned
				return &s
			}
		}
	}

	switch datatype {
	case svtypes.Shortint, svtypes.Int, svtypes.Longint, svtypes.Byte, svtypes.Integer:
		s := svtypes.Signed
		return &s
	default:
		s := svtypes.Unsigned
		return &s
	}
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

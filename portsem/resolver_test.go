package portsem_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/svtools/svsem/portsem"
	"github.com/svtools/svsem/svtypes"
	"github.com/svtools/svsem/synnode"
)

type fakeNode struct {
	kind synnode.Kind
	text string
	kids []*fakeNode
}

func leaf(kind synnode.Kind, text string) *fakeNode { return &fakeNode{kind: kind, text: text} }

func branch(kind synnode.Kind, kids ...*fakeNode) *fakeNode {
	return &fakeNode{kind: kind, kids: kids}
}

func (n *fakeNode) Kind() synnode.Kind { return n.kind }
func (n *fakeNode) Text() string       { return n.text }
func (n *fakeNode) Children() []synnode.Node {
	out := make([]synnode.Node, len(n.kids))
	for i, k := range n.kids {
		out[i] = k
	}
	return out
}

func portIdent(name string) *fakeNode {
	return branch(synnode.KindPortIdentifier, leaf(synnode.KindIdentifier, name))
}

var _ = Describe("Resolve", func() {
	It("resolves an explicit input logic port as a net of Wire type", func() {
		decl := branch(synnode.KindAnsiPortDeclarationNet,
			branch(synnode.KindPortDirection, leaf(synnode.KindKeyword, "input")),
			branch(synnode.KindIntegerVectorType, leaf(synnode.KindKeyword, "logic")),
			portIdent("clk"),
		)

		p := portsem.Resolve(decl, nil)

		Expect(p.Identifier).To(Equal("clk"))
		Expect(p.Direction).To(Equal(svtypes.Input))
		Expect(p.DataKind).To(Equal(svtypes.Net))
		Expect(p.DataType).To(Equal(svtypes.Logic))
		Expect(*p.NetType).To(Equal(svtypes.Wire))
		Expect(*p.Signedness).To(Equal(svtypes.Unsigned))
	})

	It("defaults a directionless first port to Inout", func() {
		decl := branch(synnode.KindAnsiPortDeclarationNet, portIdent("a"))

		p := portsem.Resolve(decl, nil)

		Expect(p.Direction).To(Equal(svtypes.Inout))
	})

	It("inherits every attribute but identifier from the previous port", func() {
		prev := &portsem.Port{
			Direction: svtypes.Output,
			DataKind:  svtypes.Net,
			DataType:  svtypes.Logic,
		}
		decl := branch(synnode.KindAnsiPortDeclarationNet, portIdent("b"))

		p := portsem.Resolve(decl, prev)

		Expect(p.Identifier).To(Equal("b"))
		Expect(p.Direction).To(Equal(svtypes.Output))
		Expect(p.DataType).To(Equal(svtypes.Logic))
	})

	It("does not inherit when the declaration carries its own direction", func() {
		prev := &portsem.Port{Direction: svtypes.Output, DataType: svtypes.Logic}
		decl := branch(synnode.KindAnsiPortDeclarationNet,
			branch(synnode.KindPortDirection, leaf(synnode.KindKeyword, "input")),
			portIdent("c"),
		)

		p := portsem.Resolve(decl, prev)

		Expect(p.Direction).To(Equal(svtypes.Input))
	})

	It("resolves a signed integer variable port with no net type", func() {
		decl := branch(synnode.KindAnsiPortDeclarationVariable,
			branch(synnode.KindPortDirection, leaf(synnode.KindKeyword, "output")),
			branch(synnode.KindIntegerAtomType, leaf(synnode.KindKeyword, "integer")),
			portIdent("count"),
		)

		p := portsem.Resolve(decl, nil)

		Expect(p.DataType).To(Equal(svtypes.Integer))
		Expect(p.NetType).To(BeNil())
		Expect(p.DataKind).To(Equal(svtypes.Variable))
		Expect(*p.Signedness).To(Equal(svtypes.Signed))
	})

	It("resolves DataKind Net for a port with a net type", func() {
		decl := branch(synnode.KindAnsiPortDeclarationNet,
			branch(synnode.KindPortDirection, leaf(synnode.KindKeyword, "input")),
			branch(synnode.KindIntegerVectorType, leaf(synnode.KindKeyword, "logic")),
			portIdent("clk"),
		)

		p := portsem.Resolve(decl, nil)

		Expect(p.NetType).NotTo(BeNil())
		Expect(p.DataKind).To(Equal(svtypes.Net))
	})

	It("extracts packed dimension bounds", func() {
		decl := branch(synnode.KindAnsiPortDeclarationNet,
			branch(synnode.KindPortDirection, leaf(synnode.KindKeyword, "input")),
			branch(synnode.KindIntegerVectorType, leaf(synnode.KindKeyword, "logic")),
			branch(synnode.KindPackedDimension,
				branch(synnode.KindPackedDimensionRange,
					branch(synnode.KindConstantRange,
						branch(synnode.KindConstantExpression, leaf(synnode.KindLocate, "31")),
						branch(synnode.KindConstantExpression, leaf(synnode.KindLocate, "0")),
					))),
			portIdent("data"),
		)

		p := portsem.Resolve(decl, nil)

		Expect(p.PackedDimensions).To(Equal([]svtypes.PackedDimension{{Left: "31", Right: "0"}}))
	})
})

package paramsem_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/svtools/svsem/paramsem"
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

func identifierNode(kind synnode.Kind, name string) *fakeNode {
	return branch(kind, leaf(synnode.KindIdentifier, name))
}

func decimalLiteral(text string) *fakeNode {
	return branch(synnode.KindConstantParamExpression,
		branch(synnode.KindNumber,
			branch(synnode.KindIntegralNumber,
				branch(synnode.KindDecimalNumber, leaf(synnode.KindLocate, text)))))
}

// decimalBasedLiteral builds a based decimal literal like `4'd5`, with the
// base token (e.g. "'d" or "'sd") as its own DecimalBase node.
func decimalBasedLiteral(baseText, numeral string) *fakeNode {
	return branch(synnode.KindConstantParamExpression,
		branch(synnode.KindNumber,
			branch(synnode.KindIntegralNumber,
				branch(synnode.KindDecimalNumber,
					branch(synnode.KindDecimalBase, leaf(synnode.KindLocate, baseText)),
					leaf(synnode.KindLocate, numeral)))))
}

var _ = Describe("Resolve", func() {
	It("infers Logic/Signed for a parameter with a bare decimal default", func() {
		assignment := branch(synnode.KindParamAssignment,
			identifierNode(synnode.KindParameterIdentifier, "W"),
			decimalLiteral("8"),
		)

		p := paramsem.Resolve(assignment, nil, svtypes.Parameter)

		Expect(p.Identifier).To(Equal("W"))
		Expect(*p.DataType).To(Equal(svtypes.Logic))
		Expect(p.DataTypeOverridable).To(BeTrue())
		Expect(*p.Signedness).To(Equal(svtypes.Signed))
		Expect(p.SignednessOverridable).To(BeTrue())
		Expect(*p.Expression).To(Equal("8"))
	})

	It("marks an unsigned based-decimal default as non-overridable signedness", func() {
		assignment := branch(synnode.KindParamAssignment,
			identifierNode(synnode.KindParameterIdentifier, "N"),
			decimalBasedLiteral("'d", "5"),
		)

		p := paramsem.Resolve(assignment, nil, svtypes.Parameter)

		Expect(*p.Signedness).To(Equal(svtypes.Unsigned))
		Expect(p.SignednessOverridable).To(BeFalse())
	})

	It("marks a signed based-decimal default ('sd) as overridable", func() {
		assignment := branch(synnode.KindParamAssignment,
			identifierNode(synnode.KindParameterIdentifier, "N"),
			decimalBasedLiteral("'sd", "5"),
		)

		p := paramsem.Resolve(assignment, nil, svtypes.Parameter)

		Expect(*p.Signedness).To(Equal(svtypes.Signed))
		Expect(p.SignednessOverridable).To(BeTrue())
	})

	It("panics when a localparam has no default value", func() {
		assignment := branch(synnode.KindParamAssignment,
			identifierNode(synnode.KindParameterIdentifier, "N"),
		)

		Expect(func() {
			paramsem.Resolve(assignment, nil, svtypes.LocalParam)
		}).To(PanicWith("paramsem: localparams must have a default value"))
	})

	It("classifies a common-scope integer type as non-overridable", func() {
		commonData := branch(synnode.KindDataTypeOrImplicit,
			branch(synnode.KindIntegerAtomType, leaf(synnode.KindKeyword, "integer")))
		assignment := branch(synnode.KindParamAssignment,
			identifierNode(synnode.KindParameterIdentifier, "I"),
			decimalLiteral("0"),
		)

		p := paramsem.Resolve(assignment, commonData, svtypes.Parameter)

		Expect(*p.DataType).To(Equal(svtypes.Integer))
		Expect(p.DataTypeOverridable).To(BeFalse())
		Expect(*p.Signedness).To(Equal(svtypes.Signed))
	})

	It("rejects packed dimensions combined with an integer datatype", func() {
		commonData := branch(synnode.KindDataTypeOrImplicit,
			branch(synnode.KindIntegerAtomType, leaf(synnode.KindKeyword, "integer")),
			branch(synnode.KindPackedDimension,
				branch(synnode.KindPackedDimensionRange,
					branch(synnode.KindConstantRange,
						branch(synnode.KindConstantExpression, leaf(synnode.KindLocate, "7")),
						branch(synnode.KindConstantExpression, leaf(synnode.KindLocate, "0")),
					))))
		assignment := branch(synnode.KindParamAssignment,
			identifierNode(synnode.KindParameterIdentifier, "I"),
			decimalLiteral("0"),
		)

		Expect(func() {
			paramsem.Resolve(assignment, commonData, svtypes.Parameter)
		}).To(PanicWith("paramsem: cannot combine packed dimensions with an integer"))
	})

	It("computes packed-dimension bit width as the product of dimension widths", func() {
		commonData := branch(synnode.KindDataTypeOrImplicit,
			branch(synnode.KindPackedDimension,
				branch(synnode.KindPackedDimensionRange,
					branch(synnode.KindConstantRange,
						branch(synnode.KindConstantExpression, leaf(synnode.KindLocate, "7")),
						branch(synnode.KindConstantExpression, leaf(synnode.KindLocate, "0")),
					))))
		assignment := branch(synnode.KindParamAssignment,
			identifierNode(synnode.KindParameterIdentifier, "B"),
			decimalLiteral("0"),
		)

		p := paramsem.Resolve(assignment, commonData, svtypes.Parameter)

		Expect(*p.NumBits).To(Equal(uint64(8)))
	})

	It("returns the 404 sentinel when a packed bound is not a literal integer", func() {
		commonData := branch(synnode.KindDataTypeOrImplicit,
			branch(synnode.KindPackedDimension,
				branch(synnode.KindPackedDimensionRange,
					branch(synnode.KindConstantRange,
						branch(synnode.KindConstantExpression, leaf(synnode.KindLocate, "WIDTH")),
						branch(synnode.KindConstantExpression, leaf(synnode.KindLocate, "0")),
					))))
		assignment := branch(synnode.KindParamAssignment,
			identifierNode(synnode.KindParameterIdentifier, "B"),
			decimalLiteral("0"),
		)

		p := paramsem.Resolve(assignment, commonData, svtypes.Parameter)

		Expect(*p.NumBits).To(Equal(svtypes.BitWidthUnresolved))
	})

	It("defaults an undefaulted parameter's datatype to nil and overridable", func() {
		assignment := branch(synnode.KindParamAssignment,
			identifierNode(synnode.KindParameterIdentifier, "T"),
		)

		p := paramsem.Resolve(assignment, nil, svtypes.Parameter)

		Expect(p.DataType).To(BeNil())
		Expect(p.DataTypeOverridable).To(BeTrue())
		Expect(p.Expression).To(BeNil())
	})
})

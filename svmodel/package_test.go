package svmodel_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/svtools/svsem/svmodel"
	"github.com/svtools/svsem/svtypes"
	"github.com/svtools/svsem/synnode"
)

var _ = Describe("AssemblePackage", func() {
	It("resolves every parameter in a package body as a LocalParam", func() {
		root := branch(synnode.KindPackageDeclaration,
			ident(synnode.KindPackageIdentifier, "util_pkg"),
			branch(synnode.KindLocalParameterDeclarationParam,
				branch(synnode.KindListOfParamAssignments,
					branch(synnode.KindParamAssignment,
						ident(synnode.KindParameterIdentifier, "DEPTH"),
						branch(synnode.KindConstantParamExpression,
							branch(synnode.KindNumber,
								branch(synnode.KindIntegralNumber,
									branch(synnode.KindDecimalNumber, leaf(synnode.KindLocate, "16")))))))),
		)

		p := svmodel.AssemblePackage(root, "util_pkg.sv")

		Expect(p.Identifier).To(Equal("util_pkg"))
		Expect(p.Parameters).To(HaveLen(1))
		Expect(p.Parameters[0].Kind).To(Equal(svtypes.LocalParam))
		Expect(p.Parameters[0].Identifier).To(Equal("DEPTH"))
	})
})

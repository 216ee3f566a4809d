package svmodel_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/svtools/svsem/svmodel"
	"github.com/svtools/svsem/synnode"
)

var _ = Describe("ResolveInstance", func() {
	It("collects every enclosing GenerateBlock in the whole tree, not just direct ancestors", func() {
		inst := branch(synnode.KindModuleInstantiation,
			ident(synnode.KindModuleIdentifier, "leaf"),
			ident(synnode.KindInstanceIdentifier, "u_leaf"),
		)
		block := branch(synnode.KindGenerateBlock,
			ident(synnode.KindGenerateBlockIdentifier, "gen_if"),
			branch(synnode.KindModuleDeclarationAnsi, inst), // intervening construct
		)
		tree := branch(synnode.KindModuleDeclarationAnsi, block)

		i := svmodel.ResolveInstance(inst, tree)

		Expect(i.ModuleIdentifier).To(Equal("leaf"))
		Expect(i.Hierarchy).To(Equal([]string{"gen_if"}))
	})

	It("resolves an ordered port connection with a bit-select index", func() {
		inst := branch(synnode.KindModuleInstantiation,
			ident(synnode.KindModuleIdentifier, "sub"),
			ident(synnode.KindInstanceIdentifier, "u_sub"),
			branch(synnode.KindOrderedPortConnection,
				ident(synnode.KindHierarchicalIdentifier, "bus"),
				branch(synnode.KindSelect,
					branch(synnode.KindIntegralNumber, leaf(synnode.KindLocate, "3"))),
			),
		)

		i := svmodel.ResolveInstance(inst, inst)

		Expect(i.Connections).To(HaveLen(1))
		Expect(i.Connections[0].Left).To(BeNil())
		Expect(i.Connections[0].Right).To(Equal("bus[3]"))
	})
})

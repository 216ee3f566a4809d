package svmodel

import (
	"github.com/svtools/svsem/paramsem"
	"github.com/svtools/svsem/svtypes"
	"github.com/svtools/svsem/synnode"
)

// AssemblePackage walks one PackageDeclaration subtree and produces its
// resolved semantic model. Every parameter found in a package body is a
// LocalParam: SystemVerilog packages have no port list to receive overrides
// through.
func AssemblePackage(root synnode.Node, filepath string) Package {
	idNode, ok := synnode.Find(root, synnode.KindPackageIdentifier)
	if !ok {
		panic("svmodel: package declaration has no identifier")
	}
	identifier, ok := synnode.Identifier(idNode)
	if !ok {
		panic("svmodel: package identifier has no identifier leaf")
	}

	p := Package{Identifier: identifier, Filepath: filepath}
	for _, decl := range declarationGroups(root) {
		commonData := sharedDataType(decl)
		assignments, ok := synnode.Find(decl, synnode.KindListOfParamAssignments)
		if !ok {
			continue
		}
		for _, assignment := range assignments.Children() {
			if assignment.Kind() != synnode.KindParamAssignment {
				continue
			}
			p.Parameters = append(p.Parameters, paramsem.Resolve(assignment, commonData, svtypes.LocalParam))
		}
	}
	return p
}

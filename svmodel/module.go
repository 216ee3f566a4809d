package svmodel

import (
	"github.com/svtools/svsem/paramsem"
	"github.com/svtools/svsem/portsem"
	"github.com/svtools/svsem/svtypes"
	"github.com/svtools/svsem/synnode"
)

// AssembleModule walks one ModuleDeclarationAnsi subtree and produces its
// resolved semantic model. filepath is recorded verbatim for diagnostics.
func AssembleModule(root synnode.Node, filepath string) Module {
	header, ok := synnode.Find(root, synnode.KindModuleAnsiHeader)
	if !ok {
		panic("svmodel: module declaration has no ANSI header")
	}
	idNode, ok := synnode.Find(header, synnode.KindModuleIdentifier)
	if !ok {
		panic("svmodel: module header has no identifier")
	}
	identifier, ok := synnode.Identifier(idNode)
	if !ok {
		panic("svmodel: module identifier has no identifier leaf")
	}

	m := Module{
		Identifier: identifier,
		Filepath:   filepath,
		Comments:   moduleComments(root),
		Parameters: moduleParameters(header),
		Ports:      modulePorts(header),
	}
	for _, inst := range synnode.FindAll(root, synnode.KindModuleInstantiation) {
		m.Instances = append(m.Instances, ResolveInstance(inst, root))
	}
	return m
}

// AssembleModuleNonANSI captures only the identifier of a non-ANSI module
// declaration. Full non-ANSI port-list resolution (binding an internal
// net/variable declaration back to each port-list identifier) is out of
// scope; this mirrors the stub the original resolver leaves in place.
func AssembleModuleNonANSI(root synnode.Node, filepath string) Module {
	idNode, ok := synnode.Find(root, synnode.KindModuleIdentifier)
	if !ok {
		panic("svmodel: non-ansi module declaration has no identifier")
	}
	identifier, ok := synnode.Identifier(idNode)
	if !ok {
		panic("svmodel: module identifier has no identifier leaf")
	}
	return Module{Identifier: identifier, Filepath: filepath}
}

func modulePorts(header synnode.Node) []portsem.Port {
	var ports []portsem.Port
	var prev *portsem.Port
	for _, decl := range portDeclarations(header) {
		p := portsem.Resolve(decl, prev)
		ports = append(ports, p)
		prev = &ports[len(ports)-1]
	}
	return ports
}

// portDeclarations returns every AnsiPortDeclaration node in pre-order,
// matching either the generic production or one of its Net/Variable
// variants directly, whichever the front end emits.
func portDeclarations(header synnode.Node) []synnode.Node {
	var out []synnode.Node
	synnode.Walk(header, func(e synnode.Event) {
		if e.Kind != synnode.Enter {
			return
		}
		switch e.Node.Kind() {
		case synnode.KindAnsiPortDeclaration, synnode.KindAnsiPortDeclarationNet, synnode.KindAnsiPortDeclarationVariable:
			out = append(out, e.Node)
		}
	})
	return out
}

func moduleParameters(header synnode.Node) []paramsem.Parameter {
	list, ok := synnode.Find(header, synnode.KindParameterPortList)
	if !ok {
		return nil
	}

	var params []paramsem.Parameter
	for _, decl := range declarationGroups(list) {
		kind := svtypes.Parameter
		if decl.Kind() == synnode.KindLocalParameterDeclarationParam {
			kind = svtypes.LocalParam
		}
		commonData := sharedDataType(decl)
		assignments, ok := synnode.Find(decl, synnode.KindListOfParamAssignments)
		if !ok {
			continue
		}
		for _, assignment := range assignments.Children() {
			if assignment.Kind() != synnode.KindParamAssignment {
				continue
			}
			params = append(params, paramsem.Resolve(assignment, commonData, kind))
		}
	}
	return params
}

// declarationGroups returns every ParameterDeclarationParam and
// LocalParameterDeclarationParam directly reachable within a parameter port
// list, one per comma-separated `parameter`/`localparam` keyword group.
func declarationGroups(list synnode.Node) []synnode.Node {
	var out []synnode.Node
	out = append(out, synnode.FindAll(list, synnode.KindParameterDeclarationParam)...)
	out = append(out, synnode.FindAll(list, synnode.KindLocalParameterDeclarationParam)...)
	return out
}

// sharedDataType returns the DataType/DataTypeOrImplicit subtree that
// applies to every ParamAssignment within decl, or nil when the group has
// no explicit shared type (each assignment resolves its own).
func sharedDataType(decl synnode.Node) synnode.Node {
	if dt, ok := synnode.Find(decl, synnode.KindDataTypeOrImplicit); ok {
		return dt
	}
	if dt, ok := synnode.Find(decl, synnode.KindDataType); ok {
		return dt
	}
	return nil
}

// moduleComments collects the free-floating comments the original module
// header comment attaches to the module as a whole: every comment whose
// ancestor chain, walking outward, is nothing but whitespace and symbols
// until it reaches the module's ANSI header.
func moduleComments(root synnode.Node) []string {
	var comments []string
	var stack []synnode.Node

	var walk func(n synnode.Node)
	walk = func(n synnode.Node) {
		if n == nil {
			return
		}
		if n.Kind() == synnode.KindComment {
			if text, ok := synnode.GetComment(n); ok && belongsToModuleHeader(stack) {
				comments = append(comments, text...)
			}
		}
		stack = append(stack, n)
		for _, c := range n.Children() {
			walk(c)
		}
		stack = stack[:len(stack)-1]
	}
	walk(root)
	return comments
}

func belongsToModuleHeader(ancestors []synnode.Node) bool {
	for i := len(ancestors) - 1; i >= 0; i-- {
		switch ancestors[i].Kind() {
		case synnode.KindModuleAnsiHeader:
			return true
		case synnode.KindWhiteSpace, synnode.KindSymbol:
			continue
		default:
			return false
		}
	}
	return false
}

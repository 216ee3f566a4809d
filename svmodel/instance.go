package svmodel

import (
	"fmt"

	"github.com/svtools/svsem/synnode"
)

// ResolveInstance builds the semantic model of one ModuleInstantiation node.
// tree is the whole file's syntax tree: the instance's generate-block
// hierarchy is found by scanning every GenerateBlock in the entire file, not
// just the instantiation's own ancestors, since a generate block can wrap an
// instantiation through an arbitrary number of intervening constructs.
func ResolveInstance(inst synnode.Node, tree synnode.Node) Instance {
	idNode, ok := synnode.Find(inst, synnode.KindModuleIdentifier)
	if !ok {
		panic("svmodel: module instantiation has no module identifier")
	}
	moduleIdentifier, ok := synnode.Identifier(idNode)
	if !ok {
		panic("svmodel: module identifier has no identifier leaf")
	}

	hierNode, ok := synnode.Find(inst, synnode.KindInstanceIdentifier)
	if !ok {
		panic("svmodel: module instantiation has no instance identifier")
	}
	hierarchicalInstance, ok := synnode.Identifier(hierNode)
	if !ok {
		panic("svmodel: instance identifier has no identifier leaf")
	}

	return Instance{
		ModuleIdentifier:     moduleIdentifier,
		HierarchicalInstance: hierarchicalInstance,
		Hierarchy:            instanceHierarchy(inst, tree),
		Connections:          instanceConnections(inst),
	}
}

// instanceHierarchy returns the labels of every GenerateBlock in the file
// whose subtree contains inst, outermost first.
func instanceHierarchy(inst, tree synnode.Node) []string {
	var hierarchy []string
	for _, block := range synnode.FindAll(tree, synnode.KindGenerateBlock) {
		if !subtreeContains(block, inst) {
			continue
		}
		if label, ok := synnode.Find(block, synnode.KindGenerateBlockIdentifier); ok {
			if id, ok := synnode.Identifier(label); ok {
				hierarchy = append(hierarchy, id)
			}
		}
	}
	return hierarchy
}

func subtreeContains(root, target synnode.Node) bool {
	if root == target {
		return true
	}
	for _, c := range root.Children() {
		if subtreeContains(c, target) {
			return true
		}
	}
	return false
}

func instanceConnections(inst synnode.Node) []Connection {
	var conns []Connection
	for _, c := range synnode.FindAll(inst, synnode.KindNamedPortConnection) {
		conns = append(conns, namedConnection(c))
	}
	for _, c := range synnode.FindAll(inst, synnode.KindOrderedPortConnection) {
		conns = append(conns, orderedConnection(c))
	}
	return conns
}

func namedConnection(c synnode.Node) Connection {
	portNode, ok := synnode.Find(c, synnode.KindPortIdentifier)
	if !ok {
		panic("svmodel: named port connection has no port identifier")
	}
	left, ok := synnode.Identifier(portNode)
	if !ok {
		panic("svmodel: port identifier has no identifier leaf")
	}
	right := connectionTarget(c)
	return Connection{Left: &left, Right: right}
}

func orderedConnection(c synnode.Node) Connection {
	return Connection{Right: connectionTarget(c)}
}

func connectionTarget(c synnode.Node) string {
	hid, ok := synnode.Find(c, synnode.KindHierarchicalIdentifier)
	if !ok {
		return ""
	}
	id, ok := synnode.Identifier(hid)
	if !ok {
		return ""
	}

	if sel, ok := synnode.Find(c, synnode.KindSelect); ok {
		if idx, ok := synnode.Find(sel, synnode.KindIntegralNumber); ok {
			if text, ok := synnode.GetString(idx); ok {
				return fmt.Sprintf("%s[%s]", id, text)
			}
		}
		if idxHid, ok := synnode.Find(sel, synnode.KindHierarchicalIdentifier); ok {
			if idxID, ok := synnode.Identifier(idxHid); ok {
				return fmt.Sprintf("%s[%s]", id, idxID)
			}
		}
	}
	return id
}

// Package svmodel assembles the per-file semantic model of SystemVerilog
// modules, packages, and instances from a resolved syntax tree, gluing
// together the parameter resolver, the port resolver, and the hierarchy
// walker into the single data shape a caller actually wants: "what does
// this file declare, and how is it wired together."
package svmodel

import (
	"fmt"
	"strings"

	"github.com/svtools/svsem/paramsem"
	"github.com/svtools/svsem/portsem"
	"github.com/svtools/svsem/svtypes"
)

// Module is the resolved semantic model of one module declaration.
type Module struct {
	Identifier string
	Filepath   string
	Comments   []string
	Ports      []portsem.Port
	Parameters []paramsem.Parameter
	Instances  []Instance
}

// Package is the resolved semantic model of one package declaration.
// Packages never carry ports or instances, only (local)parameters.
type Package struct {
	Identifier string
	Filepath   string
	Parameters []paramsem.Parameter
}

// Connection is one port connection of a module instantiation, either named
// (Left set to the child port identifier) or positional (Left nil).
type Connection struct {
	Left  *string
	Right string
}

// Instance is one module instantiation found anywhere within a module body.
type Instance struct {
	ModuleIdentifier     string
	HierarchicalInstance string
	Hierarchy            []string
	Connections          []Connection
}

// Data is the aggregate result of resolving one source file: every module
// and package declaration found in it.
type Data struct {
	Modules  []Module
	Packages []Package
}

func (d Data) String() string {
	var b strings.Builder
	for _, m := range d.Modules {
		b.WriteString(m.String())
	}
	for _, p := range d.Packages {
		b.WriteString(p.String())
	}
	return b.String()
}

func optStringOrNone(v *string) string {
	if v == nil {
		return "None"
	}
	return *v
}

func optUintOrNone(v *uint64) string {
	if v == nil {
		return "None"
	}
	return fmt.Sprintf("%d", *v)
}

func (m Module) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Module:\n  Identifier: %s\n  Filepath: %s\n  Comments: %v\n", m.Identifier, m.Filepath, m.Comments)
	for _, p := range m.Ports {
		b.WriteString(portString(p))
	}
	for _, p := range m.Parameters {
		b.WriteString(paramString(p))
	}
	for _, i := range m.Instances {
		b.WriteString(i.String())
	}
	b.WriteString("\n")
	return b.String()
}

func (p Package) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Package:\n  Identifier: %s\n  Filepath: %s\n", p.Identifier, p.Filepath)
	for _, param := range p.Parameters {
		b.WriteString(paramString(param))
	}
	b.WriteString("\n")
	return b.String()
}

func (i Instance) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "  Instance: \n    Module identifier: %s\n    Hierarchical instance: %s\n    Hierarchy: %v\n    Connections: %s\n",
		i.ModuleIdentifier, i.HierarchicalInstance, i.Hierarchy, connectionsString(i.Connections))
	return b.String()
}

func connectionsString(conns []Connection) string {
	parts := make([]string, len(conns))
	for i, c := range conns {
		parts[i] = fmt.Sprintf("(%s, %s)", optStringOrNone(c.Left), c.Right)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func portString(p portsem.Port) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  Port: \n    Identifier: %s\n    Direction: %s\n    DataKind: %s\n    DataType: %s\n    ClassIdentifier: %s\n    NetType: %s\n    Signedness: %s\n    PackedDimensions: %v\n    UnpackedDimensions: %v\n    Comment: %s\n",
		p.Identifier, p.Direction, p.DataKind, p.DataType,
		optStringOrNone(p.ClassIdentifier),
		netTypeOrNone(p.NetType),
		signOrNone(p.Signedness),
		p.PackedDimensions, p.UnpackedDimensions,
		commentOrNone(p.Comment))
	return b.String()
}

func paramString(p paramsem.Parameter) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  Parameter: \n    Identifier: %s\n    Expression: %s\n    ParameterType: %s\n    DataType: %s\n    DataTypeOverridable: %t\n    ClassIdentifier: %s\n    Signedness: %s\n    SignednessOverridable: %t\n    NumBits: %s\n    PackedDimensions: %v\n    UnpackedDimensions: %v\n    Comment: %s\n",
		p.Identifier, optStringOrNone(p.Expression), p.Kind, dataTypeOrNone(p.DataType),
		p.DataTypeOverridable, optStringOrNone(p.ClassIdentifier), signOrNone(p.Signedness),
		p.SignednessOverridable, optUintOrNone(p.NumBits), p.PackedDimensions, p.UnpackedDimensions,
		commentOrNone(p.Comment))
	return b.String()
}

func netTypeOrNone(n *svtypes.NetType) string {
	if n == nil {
		return "None"
	}
	return n.String()
}

func signOrNone(s *svtypes.Signedness) string {
	if s == nil {
		return "None"
	}
	return s.String()
}

func dataTypeOrNone(d *svtypes.DataType) string {
	if d == nil {
		return "None"
	}
	return d.String()
}

func commentOrNone(c []string) string {
	if len(c) == 0 {
		return "None"
	}
	return strings.Join(c, "")
}

package svmodel

import (
	"fmt"

	"github.com/svtools/svsem/synnode"
)

// ParseFunc turns a file's source text into a concrete syntax tree. Concrete
// front ends plug in here; this package never reads or lexes SystemVerilog
// itself.
type ParseFunc func(path string, source []byte) (synnode.Node, error)

// ReadSVFile parses path with parse and assembles every module and package
// declaration it contains into a Data. Parse failures are wrapped with the
// offending path so a caller walking many files can tell which one failed.
func ReadSVFile(path string, source []byte, parse ParseFunc) (*Data, error) {
	tree, err := parse(path, source)
	if err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", path, err)
	}

	data := &Data{}
	for _, m := range synnode.FindAll(tree, synnode.KindModuleDeclarationAnsi) {
		data.Modules = append(data.Modules, AssembleModule(m, path))
	}
	for _, p := range synnode.FindAll(tree, synnode.KindPackageDeclaration) {
		data.Packages = append(data.Packages, AssemblePackage(p, path))
	}
	return data, nil
}

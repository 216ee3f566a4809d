// Command svinspect reads SystemVerilog source files and prints the
// resolved semantic model of every module and package declaration they
// contain: identifiers, ports, parameters, and instance hierarchy.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/svtools/svsem/svmodel"
)

var (
	verbose    = flag.Bool("v", false, "log each file as it is processed")
	parserName = flag.String("parser", "", "name of the registered front end to parse source files with")
)

// parsers holds the concrete front ends a build of svinspect was linked
// against. None are registered by default: this module supplies the
// semantic resolvers, not a SystemVerilog lexer/parser.
var parsers = map[string]svmodel.ParseFunc{}

func main() {
	flag.Parse()

	parse, ok := parsers[*parserName]
	if !ok {
		fmt.Fprintf(os.Stderr, "svinspect: no front end registered for -parser=%q (registered: %v)\n", *parserName, registeredParsers())
		os.Exit(1)
	}

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "svinspect: usage: svinspect -parser=NAME file.sv [file.sv ...]")
		os.Exit(1)
	}

	status := 0
	for _, path := range flag.Args() {
		if *verbose {
			fmt.Fprintf(os.Stderr, "svinspect: reading %s\n", path)
		}
		if err := inspect(path, parse); err != nil {
			fmt.Fprintf(os.Stderr, "svinspect: %v\n", err)
			status = 1
		}
	}
	os.Exit(status)
}

func inspect(path string, parse svmodel.ParseFunc) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	data, err := svmodel.ReadSVFile(path, source, parse)
	if err != nil {
		return err
	}

	fmt.Print(data.String())
	return nil
}

func registeredParsers() []string {
	names := make([]string, 0, len(parsers))
	for name := range parsers {
		names = append(names, name)
	}
	return names
}

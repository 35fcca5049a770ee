// Command tmdump parses and validates a single Thing Model document and
// prints its warnings, errors, and registered names/topics to stdout. It is
// a worked example of driving the tmcore core end to end, not the
// filesystem-discovery/multi-file CLI driver the core's spec leaves out of
// scope.
//
// Usage:
//
//	tmdump [flags] file.tm.json
//
// Flags:
//
//	-verbose    print registered names and topics in addition to diagnostics
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/wotmodel/tmcore"
)

var verbose = flag.Bool("verbose", false, "print registered names and topics in addition to diagnostics")

func main() {
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: tmdump [flags] file.tm.json")
		os.Exit(2)
	}

	file := args[0]
	src, err := os.ReadFile(file)
	if err != nil {
		log.Fatalf("reading %s: %v", file, err)
	}

	thing, fatal := tmcore.Parse(file, src)
	if fatal != nil {
		fmt.Println(fatal.String())
		os.Exit(1)
	}

	reporter := tmcore.NewReporter(file, src)
	valid := tmcore.Validate(thing, reporter)
	reporter.Log().CheckForDuplicatesInThings(reporter)
	reporter.Log().CheckForDuplicatesInSchemas(reporter)

	for _, w := range reporter.Log().Warnings() {
		fmt.Println(w.String())
	}
	for _, e := range reporter.Log().Errors() {
		fmt.Println(e.String())
	}

	if *verbose {
		fmt.Println("--- registered names ---")
		for _, n := range reporter.RegisteredNames() {
			fmt.Println(n)
		}
		fmt.Println("--- registered topics ---")
		for _, t := range reporter.RegisteredTopics() {
			fmt.Println(t)
		}
	}

	if !valid || reporter.Log().HasErrors() {
		os.Exit(1)
	}
}

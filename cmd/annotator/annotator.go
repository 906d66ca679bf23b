package main

import (
	"fmt"
	"os"

	"github.com/akamensky/argparse"
	"github.com/cyclopcam/logs"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/classes"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/gateway"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/statedb"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/ui"
)

func check(err error) {
	if err != nil {
		panic(err)
	}
}

func main() {
	parser := argparse.NewParser("annotator", "YOLO multi-class image annotator")
	server := parser.String("s", "server", &argparse.Options{Help: "Annotation backend URL", Required: false, Default: "http://localhost:5000"})
	classFile := parser.String("c", "classes", &argparse.Options{Help: "JSON file with custom class definitions", Required: false, Default: ""})
	stateFile := parser.String("", "state", &argparse.Options{Help: "Path to local state database", Required: false, Default: ""})
	err := parser.Parse(os.Args)
	if err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(1)
	}

	logger, err := logs.NewLog()
	check(err)

	classSet := classes.DefaultSet()
	if *classFile != "" {
		classSet, err = classes.Load(*classFile)
		check(err)
	}

	stateFn := *stateFile
	if stateFn == "" {
		stateFn = statedb.DefaultFilename()
	}
	state, err := statedb.NewStateDB(logger, stateFn)
	check(err)

	client := gateway.NewClient(*server, logger)
	ui.NewApp(client, state, classSet, logger).Run()
}

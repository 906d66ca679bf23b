package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/akamensky/argparse"
	"github.com/cyclopcam/logs"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/annotator"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/classes"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/gateway"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/imageio"
)

func check(err error) {
	if err != nil {
		panic(err)
	}
}

func main() {
	parser := argparse.NewParser("visualize", "Write a session's images with their labels drawn on")
	server := parser.String("s", "server", &argparse.Options{Help: "Annotation backend URL", Required: false, Default: "http://localhost:5000"})
	session := parser.String("n", "session", &argparse.Options{Help: "Session name", Required: true})
	outDir := parser.String("o", "out", &argparse.Options{Help: "Output directory", Required: false, Default: "."})
	format := parser.Selector("f", "format", []string{"png", "jpeg", "webp"}, &argparse.Options{Help: "Output image format", Required: false, Default: "png"})
	classFile := parser.String("c", "classes", &argparse.Options{Help: "JSON file with custom class definitions", Required: false, Default: ""})
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

	client := gateway.NewClient(*server, logger)
	resp, err := client.VisualizeSession(context.Background(), *session)
	check(err)

	fmt.Println("Classes:")
	for _, cls := range classSet.List() {
		fmt.Printf("  %v %v\n", cls.Color, cls.Name)
	}

	check(os.MkdirAll(*outDir, 0770))
	for _, vi := range resp.Images {
		img := annotator.RenderVisualizerImage(vi, classSet)
		base := strings.TrimSuffix(vi.Filename, filepath.Ext(vi.Filename))
		fn := filepath.Join(*outDir, base+"_annotated."+*format)
		f, err := os.Create(fn)
		check(err)
		check(imageio.Encode(f, img, *format))
		check(f.Close())
		fmt.Printf("%v (%v boxes)\n", fn, len(vi.Annotations))
	}
	fmt.Printf("Wrote %v images\n", len(resp.Images))
}

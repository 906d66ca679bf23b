package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/akamensky/argparse"
	"github.com/cyclopcam/logs"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/anno"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/gateway"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/imageio"
)

func check(err error) {
	if err != nil {
		panic(err)
	}
}

func main() {
	parser := argparse.NewParser("saveboxes", "Save an image and its bounding boxes to the annotation backend")
	server := parser.String("s", "server", &argparse.Options{Help: "Annotation backend URL", Required: false, Default: "http://localhost:5000"})
	imageFile := parser.String("i", "image", &argparse.Options{Help: "Image file", Required: true})
	boxFile := parser.String("b", "boxes", &argparse.Options{Help: "JSON file with the annotation list", Required: true})
	name := parser.String("n", "name", &argparse.Options{Help: "Image name to save under, no extension", Required: true})
	session := parser.String("", "session", &argparse.Options{Help: "Session name", Required: false, Default: "default"})
	err := parser.Parse(os.Args)
	if err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(1)
	}

	logger, err := logs.NewLog()
	check(err)

	img, err := imageio.Open(*imageFile)
	check(err)
	dataURL, err := imageio.EncodeDataURL(img)
	check(err)

	raw, err := os.ReadFile(*boxFile)
	check(err)
	boxes := []anno.Annotation{}
	check(json.Unmarshal(raw, &boxes))
	if len(boxes) == 0 {
		fmt.Println("No boxes in", *boxFile)
		os.Exit(1)
	}

	client := gateway.NewClient(*server, logger)
	resp, err := client.SaveAnnotations(context.Background(), gateway.SaveRequest{
		Annotations: boxes,
		Filename:    *name,
		SessionName: *session,
		ImageWidth:  img.Bounds().Dx(),
		ImageHeight: img.Bounds().Dy(),
		ImageData:   dataURL,
	})
	check(err)

	fmt.Printf("Saved %v as %v\n", resp.OriginalName, resp.UniqueName)
	fmt.Printf("  image:  %v\n", resp.Files.Image)
	fmt.Printf("  labels: %v\n", resp.Files.Labels)
	for _, line := range resp.YoloFormat {
		fmt.Println(" ", line)
	}
}

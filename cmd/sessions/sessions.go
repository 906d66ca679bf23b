package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/akamensky/argparse"
	"github.com/cyclopcam/logs"
	"github.com/juancmacias/YOLO-Multi-Class-Annotator/pkg/gateway"
)

func check(err error) {
	if err != nil {
		panic(err)
	}
}

func main() {
	parser := argparse.NewParser("sessions", "List and manage annotation sessions")
	server := parser.String("s", "server", &argparse.Options{Help: "Annotation backend URL", Required: false, Default: "http://localhost:5000"})
	download := parser.String("d", "download", &argparse.Options{Help: "Download the named session as a ZIP", Required: false, Default: ""})
	out := parser.String("o", "out", &argparse.Options{Help: "Output file for --download", Required: false, Default: ""})
	deleteName := parser.String("", "delete", &argparse.Options{Help: "Delete the named session", Required: false, Default: ""})
	yes := parser.Flag("y", "yes", &argparse.Options{Help: "Skip the confirmation prompt for --delete", Required: false})
	augment := parser.String("a", "augment", &argparse.Options{Help: "Run augmentation on the named session", Required: false, Default: ""})
	variants := parser.String("v", "variants", &argparse.Options{Help: "Comma-separated augmentation variants for --augment (default: all)", Required: false, Default: ""})
	err := parser.Parse(os.Args)
	if err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(1)
	}

	logger, err := logs.NewLog()
	check(err)
	client := gateway.NewClient(*server, logger)
	ctx := context.Background()

	switch {
	case *download != "":
		fn := *out
		if fn == "" {
			fn = *download + ".zip"
		}
		f, err := os.Create(fn)
		check(err)
		n, err := client.DownloadSession(ctx, *download, f)
		check(err)
		check(f.Close())
		fmt.Printf("Wrote %v (%v bytes)\n", fn, n)

	case *deleteName != "":
		if !*yes {
			fmt.Printf("Delete session %q and all of its images and labels? [y/N] ", *deleteName)
			answer := ""
			fmt.Scanln(&answer)
			if strings.ToLower(answer) != "y" {
				fmt.Println("Aborted")
				return
			}
		}
		check(client.DeleteSession(ctx, *deleteName))
		fmt.Printf("Deleted %v\n", *deleteName)

	case *augment != "":
		picked := []string{}
		if *variants != "" {
			picked = strings.Split(*variants, ",")
		} else {
			info, err := client.AugmentationInfo(ctx, *augment)
			check(err)
			for key := range info {
				picked = append(picked, key)
			}
		}
		check(client.StartAugmentation(ctx, *augment, picked))
		poller := gateway.NewPoller(client, *augment)
		final, err := poller.Run(ctx, func(p gateway.Progress) {
			fmt.Printf("\r%v / %v", p.Current, p.Total)
		})
		fmt.Println()
		check(err)
		fmt.Printf("Augmentation complete: %v images\n", final.Total)

	default:
		sessions, err := client.ListSessions(ctx)
		check(err)
		if len(sessions) == 0 {
			fmt.Println("No sessions")
			return
		}
		for _, s := range sessions {
			fmt.Printf("%-30v %4v images %4v labels\n", s.Name, s.ImagesCount, s.LabelsCount)
		}
	}
}

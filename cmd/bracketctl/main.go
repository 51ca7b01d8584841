/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/bracketview/bracket"
	"github.com/mikeb26/bracketview/feed"
	"github.com/mikeb26/bracketview/internal"
	"github.com/mikeb26/bracketview/render"
	"github.com/mikeb26/bracketview/s3store"
	"github.com/mikeb26/bracketview/view"
)

//go:embed help.txt
var helpText string

// cmdHandler defines the signature for command handler functions.
type cmdHandler func(ctx context.Context, args []string)

// commands maps command names to their respective handler functions.
var commands = map[string]cmdHandler{
	"help":    handleHelp,
	"show":    handleShow,
	"layout":  handleLayout,
	"svg":     handleSVG,
	"png":     handlePNG,
	"publish": handlePublish,
}

func main() {
	ctx := context.Background()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	if handler, ok := commands[cmd]; ok {
		handler(ctx, os.Args[2:])
	} else {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf("%v", helpText)
}

func handleHelp(ctx context.Context, args []string) {
	usage()
}

// commonOpts are the flags every rendering command accepts.
type commonOpts struct {
	config  *string
	source  *string
	url     *string
	htmlURL *string
	strict  *bool
}

func addCommonFlags(fs *flag.FlagSet) commonOpts {
	return commonOpts{
		config:  fs.String("config", "", "YAML configuration file"),
		source:  fs.String("source", view.SourceStatic, "Match source: static or feed"),
		url:     fs.String("url", "", "Override the feed URL"),
		htmlURL: fs.String("html-url", "", "Fixtures page to scrape when the feed fails"),
		strict:  fs.Bool("strict", false, "Fail on a structurally inconsistent bracket"),
	}
}

func (o commonOpts) loadConfig() internal.Config {
	cfg, err := internal.LoadConfig(*o.config)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if *o.url != "" {
		cfg.FeedURL = *o.url
	}
	if *o.htmlURL != "" {
		cfg.HTMLURL = *o.htmlURL
	}
	return cfg
}

// loadModel runs the pipeline once and exits unless the bracket is ready.
func (o commonOpts) loadModel(ctx context.Context) (*view.Model, internal.Config) {
	cfg := o.loadConfig()
	src, err := view.NewSource(ctx, *o.source, cfg)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	m := view.NewModel(view.Dimensions(cfg), view.ModeFor(src))
	state, err := m.Run(ctx, src)
	if errors.Is(err, feed.ErrNoData) {
		fmt.Println("No knockout matches posted yet; try again later.")
		os.Exit(0)
	}
	if state != view.Ready {
		log.Fatalf("Error loading bracket: %v", err)
	}

	if *o.strict {
		order := bracket.StageOrderFromStrings(cfg.Stages)
		if err := m.Tournament().Validate(order); err != nil {
			log.Fatalf("Bracket failed validation: %v", err)
		}
	}

	return m, cfg
}

func handleShow(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	opts := addCommonFlags(fs)
	stage := fs.String("stage", "", "Only show this stage (e.g. SEMI_FINAL)")
	kickoff := fs.Bool("kickoff", false, "Include kickoff times")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	m, _ := opts.loadModel(ctx)
	textOpts := render.TextOptions{Kickoff: *kickoff}
	if *stage != "" {
		textOpts.Stage = bracket.ParseStageTag(*stage)
	}
	fmt.Print(render.Text(m.Tournament(), textOpts))
}

func handleLayout(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("layout", flag.ExitOnError)
	opts := addCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	m, _ := opts.loadModel(ctx)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(newLayoutDoc(m)); err != nil {
		log.Fatalf("Error encoding layout: %v", err)
	}
}

func handleSVG(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("svg", flag.ExitOnError)
	opts := addCommonFlags(fs)
	out := fs.String("out", "", "Output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	m, _ := opts.loadModel(ctx)
	writeOutput(*out, func(w io.Writer) error {
		return render.SVG(w, m.Tournament(), m.Layout(), m.Connectors(),
			render.DefaultTheme())
	})
}

func handlePNG(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("png", flag.ExitOnError)
	opts := addCommonFlags(fs)
	out := fs.String("out", "bracket.png", "Output file")
	scale := fs.Int("scale", render.DefaultTheme().Scale, "Supersampling factor (1-4)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	// enforce bounds
	if *scale < 1 {
		*scale = 1
	} else if *scale > 4 {
		*scale = 4
	}

	m, _ := opts.loadModel(ctx)
	theme := render.DefaultTheme()
	theme.Scale = *scale
	writeOutput(*out, func(w io.Writer) error {
		return render.PNG(w, m.Tournament(), m.Layout(), m.Connectors(), theme)
	})
}

func handlePublish(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("publish", flag.ExitOnError)
	opts := addCommonFlags(fs)
	name := fs.String("name", "bracket", "Base name of the published objects")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *name == "" || filepath.Base(*name) != *name {
		fmt.Fprintln(os.Stderr, "Please provide a plain --name without slashes.")
		fs.Usage()
		os.Exit(1)
	}

	m, cfg := opts.loadModel(ctx)
	theme := render.DefaultTheme()

	var svgBuf, pngBuf bytes.Buffer
	var eg errgroup.Group
	eg.Go(func() error {
		return render.SVG(&svgBuf, m.Tournament(), m.Layout(), m.Connectors(), theme)
	})
	eg.Go(func() error {
		return render.PNG(&pngBuf, m.Tournament(), m.Layout(), m.Connectors(), theme)
	})
	if err := eg.Wait(); err != nil {
		log.Fatalf("Error rendering bracket: %v", err)
	}

	store := s3store.New(ctx, cfg.PublishBucket, false, true)
	if err := store.Init(); err != nil {
		log.Fatalf("Error opening bucket %v: %v", cfg.PublishBucket, err)
	}
	store.PublicBaseURL = cfg.PublishBaseURL

	for _, obj := range []struct {
		ext, contentType string
		body             []byte
	}{
		{"svg", "image/svg+xml", svgBuf.Bytes()},
		{"png", "image/png", pngBuf.Bytes()},
	} {
		url, err := store.Publish(ctx, *name+"."+obj.ext, obj.contentType,
			bytes.NewReader(obj.body))
		if err != nil {
			log.Fatalf("Error publishing %v: %v", obj.ext, err)
		}
		fmt.Println(url)
	}
}

// writeOutput runs fn against path, or stdout when path is empty.
func writeOutput(path string, fn func(w io.Writer) error) {
	if path == "" {
		if err := fn(os.Stdout); err != nil {
			log.Fatalf("Error rendering bracket: %v", err)
		}
		return
	}

	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("Error creating %v: %v", path, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		log.Fatalf("Error rendering bracket: %v", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("Error writing %v: %v", path, err)
	}
	fmt.Printf("wrote %v\n", path)
}

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/hesusruiz/gutenberg/gutenberg"
	"github.com/hesusruiz/vcutils/yaml"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// The output formats
const (
	formatJSON   = "json"
	formatDebug  = "debug"
	formatTree   = "tree"
	formatD2     = "d2"
	formatSVG    = "svg"
	formatText   = "text"
	formatSource = "source"
	formatPlain  = "plain"
)

var formats = []string{formatJSON, formatDebug, formatTree, formatD2, formatSVG, formatText, formatSource, formatPlain}

// settings is the merge of the config file and the command line flags
type settings struct {
	inputFileName  string
	outputFileName string
	format         string
	color          bool
	style          string
	dryrun         bool
	options        gutenberg.Options
}

// loadSettings reads the optional config file and applies the flags on top.
// Flags always win over the config file.
func loadSettings(c *cli.Context, logger *zap.SugaredLogger) (*settings, error) {
	var config *yaml.YAML
	var err error

	if configFile := c.String("config"); len(configFile) > 0 {
		config, err = yaml.ParseYamlFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	} else {
		config, _ = yaml.ParseYaml("")
	}

	s := &settings{
		inputFileName:  c.Args().First(),
		outputFileName: c.String("output"),
		format:         config.String("format", formatJSON),
		color:          c.Bool("color"),
		style:          config.String("color.style", "monokai"),
		dryrun:         c.Bool("dryrun"),
		options: gutenberg.Options{
			DefaultNamespace: config.String("defaultNamespace", gutenberg.DefaultNamespace),
			MaxDepth:         config.Int("maxDepth", gutenberg.DefaultMaxDepth),
			Logger:           logger,
		},
	}

	if c.IsSet("format") {
		s.format = c.String("format")
	}
	if c.IsSet("max-depth") {
		s.options.MaxDepth = c.Int("max-depth")
	}

	s.format = strings.ToLower(s.format)
	if !contains(formats, s.format) {
		return nil, fmt.Errorf("unknown format %q, expected one of %s", s.format, strings.Join(formats, ", "))
	}

	return s, nil
}

func contains(set []string, s string) bool {
	for _, el := range set {
		if s == el {
			return true
		}
	}
	return false
}

// render writes the document in the requested format
func render(ctx context.Context, doc *gutenberg.Document, format string) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case formatJSON:
		if err := gutenberg.WriteJSON(&buf, doc.Nodes); err != nil {
			return nil, err
		}
	case formatDebug:
		for _, n := range doc.Nodes {
			buf.WriteString(n.String())
			buf.WriteByte('\n')
		}
	case formatTree:
		if err := gutenberg.WriteTree(&buf, doc.Nodes); err != nil {
			return nil, err
		}
	case formatD2:
		buf.WriteString(gutenberg.DiagramSource(doc.Nodes))
	case formatSVG:
		return gutenberg.RenderSVG(ctx, doc.Nodes)
	case formatText:
		return gutenberg.StripMarkers(doc.Source, doc.Nodes), nil
	case formatSource:
		return gutenberg.CompactAttributes(doc.Source, doc.Nodes), nil
	case formatPlain:
		return gutenberg.PlainText(doc.Source, doc.Nodes)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}

	return buf.Bytes(), nil
}

// readInput reads the input file, or stdin if no file was given
func readInput(fileName string) ([]byte, error) {
	if len(fileName) == 0 || fileName == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(fileName)
}

// processOnce parses the input and writes the output
func processOnce(ctx context.Context, s *settings, sugar *zap.SugaredLogger) error {

	src, err := readInput(s.inputFileName)
	if err != nil {
		return err
	}

	doc, err := gutenberg.ParseFromBytes(s.inputFileName, src, &s.options)
	if err != nil {
		return err
	}

	stats := gutenberg.Summarize(doc.Nodes)
	sugar.Debugw("parsed", "file", s.inputFileName, "bytes", len(src), "blocks", stats.Blocks, "phrases", stats.Phrases, "depth", stats.MaxDepth)

	out, err := render(ctx, doc, s.format)
	if err != nil {
		return err
	}

	// Do nothing if flag dryrun was specified
	if s.dryrun {
		return nil
	}

	if len(s.outputFileName) > 0 {
		return os.WriteFile(s.outputFileName, out, 0664)
	}

	if s.color && s.format != formatSVG {
		return highlight(os.Stdout, out, s.format, s.style)
	}

	_, err = os.Stdout.Write(out)
	return err
}

// processWatch checks periodically if an input file (inputFileName) has been modified, and if so
// it processes the file and writes the result. Parse errors are reported but do not stop watching.
func processWatch(ctx context.Context, s *settings, sugar *zap.SugaredLogger) error {

	if len(s.inputFileName) == 0 {
		return fmt.Errorf("watch requires an input file")
	}

	var old_timestamp time.Time
	var current_timestamp time.Time

	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	// Loop until the context is done
	for {

		// Get the modified timestamp of the input file
		info, err := os.Stat(s.inputFileName)
		if err != nil {
			return err
		}
		current_timestamp = info.ModTime()

		// If current modified timestamp is newer than the previous timestamp, process the file
		if old_timestamp.Before(current_timestamp) {
			old_timestamp = current_timestamp
			sugar.Infow("processing", "file", s.inputFileName)
			if err := processOnce(ctx, s, sugar); err != nil {
				sugar.Errorw("processing failed", "file", s.inputFileName, "error", err)
			}
		}

		// Check again in one second
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

	}
}

// process is the main entry point of the program
func process(c *cli.Context) error {

	var z *zap.Logger
	var err error

	// Setup the logging system
	if c.Bool("debug") {
		z, err = zap.NewDevelopment()
	} else {
		z, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}

	sugar := z.Sugar()
	defer sugar.Sync()

	s, err := loadSettings(c, sugar)
	if err != nil {
		return err
	}

	// This is useful for development.
	// If the user specified to watch, loop processing the input file when modified
	if c.Bool("watch") {
		return processWatch(c.Context, s, sugar)
	}

	return processOnce(c.Context, s, sugar)
}

func main() {

	app := &cli.App{
		Name:     "gutenberg",
		Version:  "v0.1.0",
		Compiled: time.Now(),
		Authors: []*cli.Author{
			{
				Name:  "Jesus Ruiz",
				Email: "hesus.ruiz@gmail.com",
			},
		},
		Usage:     "parse a post made of blocks and print its block tree",
		UsageText: "gutenberg [options] [INPUT_FILE] (default input is stdin)",
		Action:    process,
		ArgsUsage: "[INPUT_FILE]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write the result to `FILE` (default is stdout)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "output format: " + strings.Join(formats, ", "),
				Value:   formatJSON,
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "read settings from the YAML `FILE`",
			},
			&cli.IntFlag{
				Name:  "max-depth",
				Usage: "maximum nesting of blocks",
				Value: gutenberg.DefaultMaxDepth,
			},
			&cli.BoolFlag{
				Name:  "color",
				Usage: "highlight the output for a terminal",
			},
			&cli.BoolFlag{
				Name:    "dryrun",
				Aliases: []string{"n"},
				Usage:   "do not write the output, just parse the input",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "run in debug mode",
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "watch the file for changes",
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

}

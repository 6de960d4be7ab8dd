package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/doclayer/anchor"
	"github.com/doclayer/anchor/schema"
	"github.com/doclayer/anchor/selection"
)

var version = "0.1.0"

// fileConfig is the optional YAML configuration for engine tolerances.
type fileConfig struct {
	Tolerances struct {
		Head              float64 `yaml:"head"`
		Body              float64 `yaml:"body"`
		Tail              float64 `yaml:"tail"`
		RegionLineOverlap float64 `yaml:"regionLineOverlap"`
		RegionAdjacency   float64 `yaml:"regionAdjacency"`
	} `yaml:"tolerances"`
	ForceOverlap *bool `yaml:"forceOverlap"`
}

var (
	configPath string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "anchor",
		Short: "Geometry-to-text alignment for AI document layout output",
		Long: `Anchor maps between document geometry and document text.

It consumes the JSON layout output of an AI extraction service (pages,
words, lines, and paragraphs with offsets and polygons) and resolves
excerpt text to highlight bounds, selection rectangles to excerpt text,
and page points to the structure beneath them.`,
		Version: version,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML file with engine tolerances")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log anomaly diagnostics")

	rootCmd.AddCommand(inspectCmd())
	rootCmd.AddCommand(locateCmd())
	rootCmd.AddCommand(selectCmd())
	rootCmd.AddCommand(hittestCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <pattern>...",
		Short: "Summarize pages, paragraphs, and regions of layout files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := expandPatterns(args)
			if err != nil {
				return err
			}
			for _, path := range paths {
				engine, err := loadEngine(path)
				if err != nil {
					return err
				}
				doc := engine.Document()
				fmt.Printf("%s: %d pages, %d paragraphs\n", path, doc.PageCount(), len(doc.Paragraphs))
				for _, page := range doc.Pages {
					fmt.Printf("  page %d: %d words, %d lines, %d regions\n",
						page.Number, len(page.Words), len(page.Lines), len(page.Regions))
				}
			}
			return nil
		},
	}
}

func locateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locate <file> <text>",
		Short: "Resolve excerpt text to highlight bounds",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := loadEngine(args[0])
			if err != nil {
				return err
			}
			bounds := engine.LocateText(args[1])
			if len(bounds) == 0 {
				fmt.Println("not found")
				return nil
			}
			return printJSON(bounds)
		},
	}
}

func selectCmd() *cobra.Command {
	var (
		page    int
		rects   []string
		offsetX float64
		offsetY float64
		ppu     float64
	)
	cmd := &cobra.Command{
		Use:   "select <file>",
		Short: "Resolve screen-pixel selection rectangles to an excerpt and bounds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := loadEngine(args[0])
			if err != nil {
				return err
			}
			screenRects, err := parseRects(rects)
			if err != nil {
				return err
			}
			sel, err := engine.ResolveSelection(page, screenRects, selection.ViewportContext{
				OffsetX:       offsetX,
				OffsetY:       offsetY,
				PixelsPerUnit: ppu,
			})
			if err != nil {
				return err
			}
			if sel.Excerpt == "" {
				fmt.Println("selection covers no recognized words")
				return nil
			}
			return printJSON(sel)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "1-indexed page number")
	cmd.Flags().StringArrayVar(&rects, "rect", nil, "selection rectangle as x,y,w,h in screen pixels (repeatable)")
	cmd.Flags().Float64Var(&offsetX, "offset-x", 0, "viewport chrome X offset in pixels")
	cmd.Flags().Float64Var(&offsetY, "offset-y", 0, "viewport chrome Y offset in pixels")
	cmd.Flags().Float64Var(&ppu, "ppu", selection.DefaultPixelsPerUnit, "pixels per page-space unit")
	return cmd
}

func hittestCmd() *cobra.Command {
	var (
		page int
		x    float64
		y    float64
	)
	cmd := &cobra.Command{
		Use:   "hittest <file>",
		Short: "Report the paragraph, line, and word under a page-space point",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := loadEngine(args[0])
			if err != nil {
				return err
			}
			hit, ok, err := engine.HitTest(page, x, y)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("no paragraph at that point")
				return nil
			}
			return printJSON(hit)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "1-indexed page number")
	cmd.Flags().Float64Var(&x, "x", 0, "X coordinate in page-space units")
	cmd.Flags().Float64Var(&y, "y", 0, "Y coordinate in page-space units")
	return cmd
}

// loadEngine decodes a layout file and constructs an engine with any
// configured tolerances applied.
func loadEngine(path string) (*anchor.Engine, error) {
	doc, err := schema.Load(path)
	if err != nil {
		return nil, err
	}
	opts, err := engineOptions()
	if err != nil {
		return nil, err
	}
	return anchor.New(doc, opts...)
}

func engineOptions() ([]anchor.Option, error) {
	var opts []anchor.Option
	if verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("build logger: %w", err)
		}
		opts = append(opts, anchor.WithLogger(logger))
	}
	if configPath == "" {
		return opts, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", configPath, err)
	}

	tolerances := selection.DefaultTolerances()
	if cfg.Tolerances.Head != 0 {
		tolerances.Head = cfg.Tolerances.Head
	}
	if cfg.Tolerances.Body != 0 {
		tolerances.Body = cfg.Tolerances.Body
	}
	if cfg.Tolerances.Tail != 0 {
		tolerances.Tail = cfg.Tolerances.Tail
	}
	if cfg.Tolerances.RegionLineOverlap != 0 {
		tolerances.RegionLineOverlap = cfg.Tolerances.RegionLineOverlap
	}
	if cfg.Tolerances.RegionAdjacency != 0 {
		tolerances.RegionAdjacency = cfg.Tolerances.RegionAdjacency
	}
	opts = append(opts, anchor.WithTolerances(tolerances))
	if cfg.ForceOverlap != nil {
		opts = append(opts, anchor.WithForceOverlap(*cfg.ForceOverlap))
	}
	return opts, nil
}

// expandPatterns resolves doublestar glob patterns to file paths, passing
// plain paths through untouched.
func expandPatterns(patterns []string) ([]string, error) {
	var paths []string
	for _, pattern := range patterns {
		if !strings.ContainsAny(pattern, "*?[{") {
			paths = append(paths, pattern)
			continue
		}
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		paths = append(paths, matches...)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no files matched")
	}
	return paths, nil
}

func parseRects(args []string) ([]selection.ScreenRect, error) {
	rects := make([]selection.ScreenRect, 0, len(args))
	for _, arg := range args {
		fields := strings.Split(arg, ",")
		if len(fields) != 4 {
			return nil, fmt.Errorf("rect %q: want x,y,w,h", arg)
		}
		var values [4]float64
		for i, field := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("rect %q: %w", arg, err)
			}
			values[i] = v
		}
		rects = append(rects, selection.ScreenRect{X: values[0], Y: values[1], Width: values[2], Height: values[3]})
	}
	return rects, nil
}

func printJSON(v any) error {
	out, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

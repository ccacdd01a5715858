package main

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/phanxgames/dragdrop"
)

//go:embed board.yaml
var defaultLayout []byte

type options struct {
	layout string
	watch  bool
	debug  bool
	script string
	width  int
	height int
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:          "dropboard",
		Short:        "Drag tabs between panel sections",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}
	cmd.Flags().StringVarP(&opts.layout, "layout", "l", "", "YAML layout file (default: built-in board)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "reload the layout file when it changes")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "log pointer events and drag transitions to stderr")
	cmd.Flags().StringVar(&opts.script, "script", "", "JSON input script to replay")
	cmd.Flags().IntVar(&opts.width, "width", 800, "window width")
	cmd.Flags().IntVar(&opts.height, "height", 600, "window height")
	return cmd
}

func run(opts options) error {
	if opts.watch && opts.layout == "" {
		return fmt.Errorf("--watch requires --layout")
	}

	spec, err := loadSpec(opts.layout)
	if err != nil {
		return err
	}
	g, err := newGame(spec, opts.debug)
	if err != nil {
		return err
	}
	g.width, g.height = opts.width, opts.height

	if opts.script != "" {
		data, err := os.ReadFile(opts.script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		runner, err := dragdrop.LoadTestScript(data)
		if err != nil {
			return err
		}
		g.scene.SetTestRunner(runner)
	}

	if opts.watch {
		w, err := dragdrop.WatchLayout(opts.layout)
		if err != nil {
			return fmt.Errorf("watch %s: %w", opts.layout, err)
		}
		defer w.Close()
		g.watcher = w
	}

	ebiten.SetWindowTitle("dropboard")
	ebiten.SetWindowSize(opts.width, opts.height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}

func loadSpec(path string) (*dragdrop.LayoutSpec, error) {
	if path == "" {
		return dragdrop.ParseLayout(defaultLayout)
	}
	return dragdrop.LoadLayoutFile(path)
}

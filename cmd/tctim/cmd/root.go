/*
Copyright © 2024 blacktop

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/apex/log"
	clihander "github.com/apex/log/handlers/cli"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/blacktop/go-tctim"
	"github.com/blacktop/go-tctim/internal/config"
)

var verbose bool
var noFit bool
var grid string

func init() {
	log.SetHandler(clihander.Default)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "Enable verbose logging")
	rootCmd.Flags().BoolVar(&noFit, "no-fit", false, "Do not shrink the image to the terminal size")
	rootCmd.Flags().StringVarP(&grid, "grid", "g", "", "Montage layout as ROWSxCOLS (default: as many per row as fit)")
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tctim FILE...",
	Short: "Display images in true-color terminals",
	Long:  "Display images in true-color terminals. Several images of the same size are tiled into a montage.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		conf, err := config.Load()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		if verbose || conf.Verbose {
			log.SetLevel(log.DebugLevel)
		}

		opts := conf.Options()
		if noFit {
			opts.Fit = false
		}
		if grid != "" {
			g, err := parseGrid(grid)
			if err != nil {
				log.Fatalf("Invalid grid: %v", err)
			}
			opts.Grid = g
		}

		if err := render(os.Stdout, args, opts); err != nil {
			log.Fatalf("Failed to display image: %v", err)
		}
	},
}

// render decodes the images at paths and writes them to w. Nothing is
// written unless every image decodes and renders.
func render(w io.Writer, paths []string, opts tctim.Options) error {
	images := make([]*tctim.Array, 0, len(paths))
	for _, path := range paths {
		if fi, err := os.Stat(path); err == nil {
			log.WithField("size", humanize.IBytes(uint64(fi.Size()))).Debugf("Decoding %s", path)
		}
		a, err := tctim.DecodeFile(path)
		if err != nil {
			return err
		}
		log.Debugf("Image Info: %s", a)
		images = append(images, a)
	}

	var src any = images[0]
	if len(images) > 1 || opts.Grid != nil {
		batch, err := tctim.Stack(images...)
		if err != nil {
			return fmt.Errorf("montage needs images of the same size: %w", err)
		}
		src = batch
		opts.Montage = true
	}

	bw := bufio.NewWriter(w)
	return tctim.Print(bw, src, opts, true)
}

// parseGrid parses a ROWSxCOLS layout such as "2x3"
func parseGrid(s string) (*tctim.Grid, error) {
	rows, cols, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return nil, fmt.Errorf("expected ROWSxCOLS, got %q", s)
	}
	r, err := strconv.Atoi(strings.TrimSpace(rows))
	if err != nil {
		return nil, fmt.Errorf("invalid rows in %q: %w", s, err)
	}
	c, err := strconv.Atoi(strings.TrimSpace(cols))
	if err != nil {
		return nil, fmt.Errorf("invalid columns in %q: %w", s, err)
	}
	if r <= 0 || c <= 0 {
		return nil, fmt.Errorf("grid %q must be positive", s)
	}
	return &tctim.Grid{Rows: r, Cols: c}, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

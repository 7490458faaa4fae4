package main

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/urfave/cli"
)

const (
	startMarker = "<!-- SNAPSHOTS:START -->"
	endMarker   = "<!-- SNAPSHOTS:END -->"
)

var errMarkersMissing = errors.New("snapshot markers not found")

// snapshot is a golden PNG produced by the integration suite.
type snapshot struct {
	Name    string
	Encoded string
}

func main() {
	app := cli.NewApp()
	app.Name = "gen_snapshots_table"
	app.Usage = "Regenerate the README gallery of integration test snapshots"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "readme",
			Usage: "Path to README file to update in place",
			Value: "README.md",
		},
		cli.StringFlag{
			Name:  "snapshots",
			Usage: "Snapshots directory",
			Value: filepath.Join("test", "integration", "testdata", "snapshots"),
		},
		cli.IntFlag{
			Name:  "cols",
			Usage: "Number of columns per row",
			Value: 4,
		},
		cli.IntFlag{
			Name:  "width",
			Usage: "Image width in pixels",
			Value: 128,
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("Failed to update snapshot table", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	dir := c.String("snapshots")
	items, err := collectSnapshots(dir)
	if err != nil {
		return err
	}

	readme := c.String("readme")
	content, err := os.ReadFile(readme)
	if err != nil {
		return fmt.Errorf("reading %s: %w", readme, err)
	}

	updated, err := replaceTable(string(content), renderTable(items, dir, c.Int("cols"), c.Int("width")))
	if err != nil {
		return fmt.Errorf("%s: %w", readme, err)
	}

	if err := os.WriteFile(readme, []byte(updated), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", readme, err)
	}
	slog.Info("Snapshot table updated", "readme", readme, "snapshots", len(items))
	return nil
}

// collectSnapshots lists golden PNGs sorted by name, skipping the
// _actual files left behind by failed runs.
func collectSnapshots(dir string) ([]snapshot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var items []snapshot
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(name), ".png") || strings.Contains(name, "_actual.") {
			continue
		}
		items = append(items, snapshot{Name: strings.TrimSuffix(name, ".png"), Encoded: url.PathEscape(name)})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func renderTable(items []snapshot, dir string, cols, width int) string {
	if cols <= 0 {
		cols = 3
	}

	var buf bytes.Buffer
	buf.WriteString("<table>\n")
	for i := 0; i < len(items); i += cols {
		buf.WriteString("  <tr>\n")
		for c := 0; c < cols; c++ {
			if i+c >= len(items) {
				buf.WriteString("    <td></td>\n")
				continue
			}
			it := items[i+c]
			src := filepath.ToSlash(filepath.Join(dir, it.Encoded))
			fmt.Fprintf(&buf, "    <td align=\"center\"><img src=\"%s\" width=\"%d\" /><br><sub>%s</sub></td>\n", src, width, it.Name)
		}
		buf.WriteString("  </tr>\n")
	}
	buf.WriteString("</table>\n")
	return buf.String()
}

// replaceTable swaps whatever sits between the markers for table.
func replaceTable(content, table string) (string, error) {
	start := strings.Index(content, startMarker)
	end := strings.Index(content, endMarker)
	if start == -1 || end == -1 || end < start {
		return "", errMarkersMissing
	}

	var out strings.Builder
	out.WriteString(content[:start+len(startMarker)])
	out.WriteString("\n")
	out.WriteString(table)
	after := content[end:]
	if !strings.HasPrefix(after, "\n") && !strings.HasSuffix(table, "\n") {
		out.WriteString("\n")
	}
	out.WriteString(after)
	return out.String(), nil
}

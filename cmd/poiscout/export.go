package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/poiscout"
	"github.com/fwojciec/poiscout/fs"
	"github.com/gocarina/gocsv"
)

// poiRow is the CSV shape of one exported POI.
type poiRow struct {
	Name        string `csv:"Name"`
	Category    string `csv:"Category"`
	Location    string `csv:"Location"`
	Description string `csv:"Description"`
}

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	crawl, err := deps.Crawls.FindCrawlByID(deps.Ctx, c.CrawlID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: crawl %q not found. Use 'poiscout list' to see stored crawls.\n", c.CrawlID)
		return err
	}

	pois, err := deps.POIs.FindPOIs(deps.Ctx, poiscout.POIFilter{CrawlID: &crawl.ID})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", poiscout.ErrorMessage(err))
		return err
	}

	// Markdown with an output path becomes a full report file.
	if c.Format == "markdown" && c.Out != "" {
		writer := fs.NewReportWriter(c.Out)
		if err := writer.WriteReport(deps.Ctx, crawl, poiMap(pois)); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", poiscout.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Report written to %s\n", c.Out)
		return nil
	}

	out := deps.Stdout
	if c.Out != "" {
		f, err := os.Create(c.Out)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		defer f.Close()
		out = f
	}

	if err := writeExport(out, c.Format, pois); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", poiscout.ErrorMessage(err))
		return err
	}
	if c.Out != "" {
		fmt.Fprintf(deps.Stdout, "Exported %d POIs to %s\n", len(pois), c.Out)
	}
	return nil
}

// writeExport renders the POI records in the requested format.
func writeExport(w io.Writer, format string, pois []*poiscout.POIRecord) error {
	switch format {
	case "csv":
		rows := make([]poiRow, 0, len(pois))
		for _, poi := range pois {
			rows = append(rows, poiRow{
				Name:        poi.Name,
				Category:    poi.Category,
				Location:    poi.Location,
				Description: poi.Description,
			})
		}
		return gocsv.Marshal(&rows, w)

	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(pois)

	case "markdown":
		_, err := io.WriteString(w, poiscout.FormatPOIs(poiMap(pois)))
		return err
	}
	return poiscout.Errorf(poiscout.EINVALID, "unknown export format %q", format)
}

// poiMap converts stored records to the registry map shape used by the
// markdown formatter.
func poiMap(pois []*poiscout.POIRecord) map[string]poiscout.POI {
	m := make(map[string]poiscout.POI, len(pois))
	for _, poi := range pois {
		m[poi.Name] = poiscout.POI{
			Name:        poi.Name,
			Description: poi.Description,
			Category:    poi.Category,
			Location:    poi.Location,
		}
	}
	return m
}

// Package archive writes ComicInfo.xml files for a batch of galleries.
package archive

import (
	"context"
	"log/slog"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mushishi06/nhentai-archivist/internal/comicinfo"
	"github.com/mushishi06/nhentai-archivist/internal/gallery"
)

// Converter maps galleries and writes <Output>/<id>/ComicInfo.xml for each.
type Converter struct {
	Output      string
	Concurrency int
	DryRun      bool
}

// NewConverter creates a converter writing below output
func NewConverter(output string, concurrency int) *Converter {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Converter{
		Output:      output,
		Concurrency: concurrency,
	}
}

// Run converts galleries with bounded concurrency. A gallery that fails is
// recorded in the report and does not stop the others. Cancelling ctx stops
// scheduling; galleries not started are reported as skipped.
func (c *Converter) Run(ctx context.Context, galleries []gallery.Gallery) *Report {
	report := &Report{
		RunID:   uuid.NewString(),
		Output:  c.Output,
		Started: time.Now(),
		Total:   len(galleries),
		Results: make([]Result, 0, len(galleries)),
	}

	concurrency := max(c.Concurrency, 1)
	slog.Info("Starting conversion", "run_id", report.RunID, "galleries", len(galleries), "output", c.Output, "concurrency", concurrency)

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, concurrency)
	resultsChan := make(chan Result, len(galleries))

	skip := func(rest []gallery.Gallery) {
		for _, g := range rest {
			resultsChan <- Result{ID: g.ID, Error: "skipped: " + ctx.Err().Error()}
		}
	}

schedule:
	for i, g := range galleries {
		if ctx.Err() != nil {
			skip(galleries[i:])
			break
		}
		select {
		case <-ctx.Done():
			skip(galleries[i:])
			break schedule
		case semaphore <- struct{}{}: // Acquire
		}

		wg.Add(1)
		go func(idx int, g gallery.Gallery) {
			defer wg.Done()
			defer func() { <-semaphore }() // Release

			slog.Debug("Converting gallery", "id", g.ID, "progress", strconv.Itoa(idx+1)+"/"+strconv.Itoa(len(galleries)))
			resultsChan <- c.convert(g)
		}(i, g)
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	for result := range resultsChan {
		if result.Error != "" {
			report.Failed++
			slog.Warn("Gallery conversion failed", "id", result.ID, "err", result.Error)
		} else {
			report.Succeeded++
		}
		report.Results = append(report.Results, result)
	}

	sort.Slice(report.Results, func(i, j int) bool {
		return report.Results[i].ID < report.Results[j].ID
	})
	report.Finished = time.Now()

	slog.Info("Conversion complete", "run_id", report.RunID, "succeeded", report.Succeeded, "failed", report.Failed, "elapsed", report.Finished.Sub(report.Started))
	return report
}

func (c *Converter) convert(g gallery.Gallery) Result {
	result := Result{ID: g.ID}

	ci, err := comicinfo.SafeFromGallery(g)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Title = ci.Title
	result.Language = ci.LanguageISO

	if c.DryRun {
		return result
	}

	path, err := comicinfo.WriteFile(filepath.Join(c.Output, strconv.FormatInt(g.ID, 10)), ci)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Path = path
	return result
}

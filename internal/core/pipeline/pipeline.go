package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cheggaaa/pb/v3"

	"cue-splitter/internal/core/cover"
	"cue-splitter/internal/core/cuesheet"
	"cue-splitter/internal/core/probe"
	"cue-splitter/internal/core/replaygain"
	"cue-splitter/internal/core/splitter"
	"cue-splitter/internal/core/tagger"
	"cue-splitter/internal/shared"
)

// tempCueName is the working copy of the cuesheet inside the working
// directory; removed before the final rename.
const tempCueName = "CDImage.cue"

// Config is the immutable per-batch configuration threaded through every
// pipeline call.
type Config struct {
	OutputDirectory string
	Codec           shared.Codec
	Quality         string
	Concurrency     int
}

// ProgressEvent describes which cuesheet is being processed and in which
// stage; the CLI (or any other shell) subscribes to these instead of
// polling shared state.
type ProgressEvent struct {
	Cuesheet string
	Number   int // 1-based position in the batch
	Total    int
	Stage    string // "splitting", "replay gain analysis", "finalizing"
}

// ProgressFunc receives progress events. May be nil.
type ProgressFunc func(ProgressEvent)

// Batch drives the full per-cuesheet pipeline across a list of cuesheets,
// strictly one cuesheet at a time; only the per-track cut commands within a
// cuesheet run concurrently. Failures stay local to one cuesheet.
type Batch struct {
	cfg      Config
	warnings *shared.WarningCollector

	// Progress, when set, receives stage transitions.
	Progress ProgressFunc

	// SplitRunner overrides the external encoder invocation in tests.
	SplitRunner func(ctx context.Context, job splitter.Job) error

	// ShowBars enables a per-cuesheet progress bar over split jobs.
	ShowBars bool
}

// NewBatch creates a batch processor for the given configuration.
func NewBatch(cfg Config, warnings *shared.WarningCollector) *Batch {
	return &Batch{cfg: cfg, warnings: warnings}
}

// Process runs the pipeline for every cuesheet in order and returns the
// aggregated counts. A failure of one cuesheet never aborts the batch.
func (b *Batch) Process(ctx context.Context, cuesheets []string) shared.BatchResult {
	var result shared.BatchResult
	for i, path := range cuesheets {
		shared.ColorInfo.Printf("Processing cuesheet: %s\n", path)
		if err := b.processOne(ctx, path, i+1, len(cuesheets)); err != nil {
			shared.ColorError.Printf("❌ %s: %v\n", path, err)
			result.Failed++
			continue
		}
		result.Succeeded++
	}
	return result
}

func (b *Batch) emit(path string, number, total int, stage string) {
	if b.Progress != nil {
		b.Progress(ProgressEvent{Cuesheet: path, Number: number, Total: total, Stage: stage})
	}
}

// processOne runs parse, probe, split, sanitize, tag, cover, replaygain and
// finalize for a single cuesheet. The working directory is a disposable
// arena owned exclusively by this call: removed on parse failure, renamed
// in place on completion, left behind for manual recovery when the final
// rename cannot find a free name.
func (b *Batch) processOne(ctx context.Context, cuesheetPath string, number, total int) error {
	workDir, err := os.MkdirTemp(b.cfg.OutputDirectory, "tmp")
	if err != nil {
		return fmt.Errorf("failed to create working directory: %w", err)
	}

	raw, err := os.ReadFile(cuesheetPath)
	if err != nil {
		os.RemoveAll(workDir)
		return fmt.Errorf("failed to read cuesheet: %w", err)
	}
	decoded, err := cuesheet.DecodeToUTF8(raw)
	if err != nil {
		os.RemoveAll(workDir)
		return err
	}

	// Rewrite frame-based INDEX lines to decimal seconds before anything
	// downstream sees the cuesheet.
	normalized := cuesheet.NormalizeTimestamps(string(decoded))
	tempCue := filepath.Join(workDir, tempCueName)
	if err := os.WriteFile(tempCue, []byte(normalized), 0644); err != nil {
		os.RemoveAll(workDir)
		return fmt.Errorf("failed to write working cuesheet: %w", err)
	}

	album, err := cuesheet.Parse(normalized, filepath.Dir(cuesheetPath))
	if err != nil {
		os.RemoveAll(workDir)
		return fmt.Errorf("cuesheet parsing error: %w", err)
	}
	shared.ColorInfo.Printf("  Parsed: %s - %s (%d tracks)\n", album.Performer, album.Title, len(album.Tracks))

	info := probe.Inspect(album.AudioImagePath)
	if info.Format == "" {
		b.warnings.AddProbeWarning(album.AudioImagePath, "no probe strategy succeeded; assuming resampling is needed")
	} else {
		shared.ColorInfo.Printf("  Audio image: %s, %d Hz, %d bits\n", info.Format, info.SampleRate, info.BitsPerSample)
	}

	b.emit(cuesheetPath, number, total, "splitting")
	jobs, err := splitter.BuildJobs(album, info, b.cfg.Codec, b.cfg.Quality, workDir)
	if err != nil {
		os.RemoveAll(workDir)
		return fmt.Errorf("failed to build cut commands: %w", err)
	}

	pool := splitter.NewPool(b.cfg.Concurrency)
	if b.SplitRunner != nil {
		pool.Runner = b.SplitRunner
	}
	var bar *pb.ProgressBar
	if b.ShowBars && shared.IsTTY() {
		bar = pb.StartNew(len(jobs))
		pool.OnComplete = func(splitter.Job, error) { bar.Increment() }
	}
	splitResult := pool.Run(ctx, jobs)
	if bar != nil {
		bar.Finish()
	}
	splitOK := splitResult.OK()
	if !splitOK {
		shared.ColorError.Printf("  %d of %d cut command/s failed\n", splitResult.Failed, len(jobs))
	}

	if err := shared.CleanupTrackFilenames(workDir); err != nil {
		b.warnings.AddTagWriteWarning(workDir, fmt.Sprintf("filename cleanup failed: %v", err))
	}

	// Tag failures are recorded but do not fail the cuesheet; the audio is
	// already cut and worth keeping.
	if err := tagger.Transfer(workDir, b.cfg.Codec, album, b.warnings); err != nil {
		shared.ColorError.Printf("  Tag transfer ended with an error condition: %v\n", err)
	}

	found, coverData, err := cover.Transfer(filepath.Dir(cuesheetPath), workDir)
	if err != nil {
		b.warnings.AddCoverArtWarning(album.Title, err.Error())
	} else if found {
		tagger.EmbedCover(workDir, b.cfg.Codec, coverData, b.warnings)
		shared.ColorInfo.Println("  Source cover file copied to destination directory")
	}

	replayGainOK := true
	if replaygain.HasTrackFiles(workDir) {
		b.emit(cuesheetPath, number, total, "replay gain analysis")
		if err := replaygain.Run(ctx, workDir, b.cfg.Concurrency); err != nil {
			replayGainOK = false
			b.warnings.AddReplayGainWarning(workDir, err.Error())
		}
	}

	if err := os.Remove(tempCue); err != nil {
		b.warnings.AddTagWriteWarning(tempCue, fmt.Sprintf("failed to remove working cuesheet: %v", err))
	}

	b.emit(cuesheetPath, number, total, "finalizing")
	finalPath, err := Finalize(workDir, album)
	if err != nil {
		return fmt.Errorf("could not finalize %s (directory kept for manual recovery): %w", workDir, err)
	}

	if !splitOK {
		return fmt.Errorf("splitting did not complete successfully (output kept in %s)", finalPath)
	}
	if !replayGainOK {
		return fmt.Errorf("replay gain analysis failed (output kept in %s)", finalPath)
	}
	shared.ColorSuccess.Printf("  Successfully split the cuesheet, folder: %s\n", finalPath)
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cue-splitter/internal/config"
	"cue-splitter/internal/core/pipeline"
	"cue-splitter/internal/core/replaygain"
	"cue-splitter/internal/core/splitter"
	"cue-splitter/internal/shared"
)

const toolVersion = "0.4.0"

var (
	outputDirectory string
	codecName       string
	quality         string
	concurrency     int
	debug           bool
)

var rootCmd = &cobra.Command{
	Use:     "cue-splitter",
	Version: toolVersion,
	Short:   "Split single-file+cuesheet audio images into per-track tagged files.",
	Long: fmt.Sprintf(`Cue Splitter (v%s)

Splits single-file+cuesheet audio images (flac, wav, aiff) into per-track
tagged ogg vorbis, mp3 or flac files. Tracks are cut sample-accurately with
ffmpeg, tagged from the cuesheet, given a resized cover.jpg when the source
folder carries one, and loudness-analyzed with rsgain.`, toolVersion),
}

var splitCmd = &cobra.Command{
	Use:   "split [cuesheet...]",
	Short: "Split one or more cuesheets into per-track files.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := resolveConfig()
		if err != nil {
			colorError.Printf("❌ %v\n", err)
			os.Exit(1)
		}

		if !splitter.CheckFFmpeg() {
			colorError.Println("❌ ffmpeg was not found in PATH; cuesheet processing aborted")
			os.Exit(1)
		}
		if !replaygain.CheckRsgain() {
			colorWarning.Println("⚠️ rsgain was not found in PATH; replay gain analysis will fail")
		}

		colorInfo.Println("  Starting splitting process: output folder:", cfg.OutputDirectory)
		colorInfo.Println("          codec:", cfg.Codec)
		if cfg.Codec != shared.CodecFLAC {
			colorInfo.Println("        quality:", cfg.Quality)
		}
		colorInfo.Println("    concurrency:", cfg.Concurrency)

		warnings := shared.NewWarningCollector(true)
		batch := pipeline.NewBatch(cfg, warnings)
		batch.ShowBars = true
		batch.Progress = func(ev pipeline.ProgressEvent) {
			colorInfo.Printf("Processing Cuesheet: %d of %d (%s)\n", ev.Number, ev.Total, ev.Stage)
		}

		result := batch.Process(context.Background(), args)

		warnings.PrintSummary()
		if result.Failed > 0 {
			colorWarning.Println(result.Summary())
			os.Exit(1)
		}
		colorSuccess.Println(result.Summary())
	},
}

// resolveConfig merges config.json (when present) with command-line flags;
// flags win. The merged value is immutable for the whole batch.
func resolveConfig() (pipeline.Config, error) {
	fileCfg := config.Config{}
	configFile := "config.json"
	if shared.FileExists(configFile) {
		if err := config.LoadConfig(configFile, &fileCfg); err != nil {
			colorWarning.Printf("⚠️ Failed to load config from %s: %v\n", configFile, err)
		}
	}

	if outputDirectory == "" {
		outputDirectory = fileCfg.OutputDirectory
	}
	if outputDirectory == "" {
		outputDirectory = "."
	}
	if info, err := os.Stat(outputDirectory); err != nil || !info.IsDir() {
		return pipeline.Config{}, fmt.Errorf("the selected output directory [%s] does not exist", outputDirectory)
	}

	if codecName == "" {
		codecName = fileCfg.Codec
	}
	if codecName == "" {
		codecName = "ogg"
	}
	codec, err := shared.ParseCodec(codecName)
	if err != nil {
		return pipeline.Config{}, err
	}

	if quality == "" {
		quality = fileCfg.Quality
	}
	if quality == "" {
		quality = config.DefaultQuality(codecName)
	}

	if concurrency == 0 {
		concurrency = fileCfg.Concurrency
	}
	if concurrency < 1 {
		concurrency = shared.DefaultConcurrency()
	}

	return pipeline.Config{
		OutputDirectory: outputDirectory,
		Codec:           codec,
		Quality:         quality,
		Concurrency:     concurrency,
	}, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	splitCmd.Flags().StringVarP(&outputDirectory, "output-directory", "d", "", "Directory to write the split albums into")
	splitCmd.Flags().StringVarP(&codecName, "codec", "c", "", "Output codec (ogg, mp3 or flac)")
	splitCmd.Flags().StringVarP(&quality, "quality", "q", "", "Encoder quality target (codec-dependent)")
	splitCmd.Flags().IntVarP(&concurrency, "concurrency", "j", 0, "Number of tracks cut at the same time")

	rootCmd.AddCommand(splitCmd)
}

func main() {
	shared.InitializeColors()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

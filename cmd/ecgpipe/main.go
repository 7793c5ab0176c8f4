// Command ecgpipe runs the processing pipeline over waveform records:
// the preprocess subcommand filters, normalizes and persists a record, and
// the features subcommand extracts per-channel feature documents from a
// persisted record.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/SapoSopa/Projeto-SSC/config"
	"github.com/SapoSopa/Projeto-SSC/features"
	"github.com/SapoSopa/Projeto-SSC/preprocess"
	"github.com/SapoSopa/Projeto-SSC/store"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	flag.Usage = usage
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ecgpipe: %v\n", err)
		os.Exit(1)
	}
	setupLogging(cfg.Logging)

	args := flag.Args()
	if len(args) < 1 {
		usage()
		os.Exit(2)
	}

	switch args[0] {
	case "preprocess":
		err = runPreprocess(cfg, args[1:])
	case "features":
		err = runFeatures(cfg, args[1:])
	default:
		fmt.Fprintf(os.Stderr, "ecgpipe: unknown command %q\n", args[0])
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage:
  ecgpipe [-config file] preprocess -id N <record-path>
  ecgpipe [-config file] features -id N [-channels 0,1,...]

The record path is given without extension; <record-path>.hea and the signal
file it references must exist. When -id is omitted in preprocess, the record
id is derived from the leading digits of the record file name.
`)
}

func setupLogging(cfg config.LoggingConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func runPreprocess(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("preprocess", flag.ExitOnError)
	id := fs.Int("id", 0, "record id (derived from the file name when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("preprocess expects exactly one record path")
	}
	recordPath := fs.Arg(0)

	ecgID := *id
	if ecgID == 0 {
		derived, err := deriveRecordID(recordPath)
		if err != nil {
			return err
		}
		ecgID = derived
	}

	method, err := preprocess.ParseNormMethod(cfg.Preprocess.Method)
	if err != nil {
		return err
	}
	opts := preprocess.Options{
		RemoveBaseline:       cfg.Preprocess.RemoveBaseline,
		BaselineCutoff:       cfg.Preprocess.BaselineCutoff,
		ApplyBandpass:        cfg.Preprocess.ApplyBandpass,
		BandLow:              cfg.Preprocess.BandLow,
		BandHigh:             cfg.Preprocess.BandHigh,
		FilterOrder:          cfg.Preprocess.FilterOrder,
		Normalize:            cfg.Preprocess.Normalize,
		Method:               method,
		AssessQuality:        cfg.Preprocess.AssessQuality,
		ShortSignalThreshold: cfg.Preprocess.ShortSignalThreshold,
	}

	sig, md, err := preprocess.NewPipeline(opts).Run(recordPath)
	if err != nil {
		return err
	}

	st := store.New(cfg.OutputDir)
	if err := st.Save(sig, md, ecgID); err != nil {
		return err
	}

	log.Info().
		Int("ecg_id", ecgID).
		Str("record", recordPath).
		Str("archive", st.SignalPath(ecgID)).
		Msg("record processed")
	return nil
}

func runFeatures(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("features", flag.ExitOnError)
	id := fs.Int("id", 0, "record id")
	channelList := fs.String("channels", "", "comma-separated channel indices (all channels when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id < 1 {
		return fmt.Errorf("features requires -id with a positive record id")
	}

	var channels []int
	if *channelList != "" {
		for _, field := range strings.Split(*channelList, ",") {
			ch, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return fmt.Errorf("invalid channel index %q", field)
			}
			channels = append(channels, ch)
		}
	}

	opts := features.Options{
		PeakMinDistance:  cfg.Features.PeakMinDistance,
		RolloffThreshold: cfg.Features.RolloffThreshold,
		EntropyBins:      cfg.Features.EntropyBins,
		DefaultFS:        cfg.Features.DefaultFS,
		Bands:            features.DefaultBands(),
	}

	paths, err := features.NewPipeline(store.New(cfg.OutputDir), opts).Run(*id, channels)
	if err != nil {
		return err
	}

	log.Info().
		Int("ecg_id", *id).
		Strs("documents", paths).
		Msg("features extracted")
	return nil
}

// deriveRecordID pulls the record id from the leading digits of the record
// file name, as in PTB-XL names like 00123_lr.
func deriveRecordID(recordPath string) (int, error) {
	base := filepath.Base(recordPath)
	end := 0
	for end < len(base) && base[end] >= '0' && base[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, fmt.Errorf("cannot derive record id from %q, pass -id explicitly", base)
	}
	id, err := strconv.Atoi(base[:end])
	if err != nil || id < 1 {
		return 0, fmt.Errorf("cannot derive record id from %q, pass -id explicitly", base)
	}
	return id, nil
}

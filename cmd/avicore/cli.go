package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/backmassage/avicore/internal/config"
	"github.com/backmassage/avicore/internal/request"
)

// cli is the kong command tree. It only parses tokens and builds validated
// JobRequests; all orchestration lives behind app.execute.
type cli struct {
	Verbose bool   `short:"v" help:"Debug logging; keep full engine output on failures."`
	DryRun  bool   `help:"Preview engine commands without executing them."`
	Color   string `default:"auto" enum:"auto,always,never" help:"Color output: auto, always, or never."`
	LogFile string `placeholder:"PATH" help:"Also append logs to this file."`

	Video   videoCmd   `cmd:"" help:"Video operations."`
	Audio   audioCmd   `cmd:"" help:"Audio operations."`
	Image   imageCmd   `cmd:"" help:"Image operations."`
	Version versionCmd `cmd:"" help:"Print version information."`
}

// apply copies the global flags onto the process config.
func (c *cli) apply(cfg *config.Config) {
	cfg.Verbose = c.Verbose
	cfg.DryRun = c.DryRun
	cfg.ColorMode = config.ColorMode(c.Color)
	if c.LogFile != "" {
		cfg.LogFile = c.LogFile
	}
}

type videoCmd struct {
	Convert videoConvertCmd `cmd:"" help:"Convert video container. Safe default: libx264 + aac; --fast stream-copies."`
	Mute    videoMuteCmd    `cmd:"" help:"Remove audio streams, keep video untouched."`
}

type audioCmd struct {
	Convert audioConvertCmd `cmd:"" help:"Convert audio format."`
	Extract audioExtractCmd `cmd:"" help:"Extract the audio track from a video as MP3 (192kbps)."`
}

type imageCmd struct {
	Convert  imageConvertCmd  `cmd:"" help:"Convert an image to another format."`
	Compress imageCompressCmd `cmd:"" help:"Compress images; JPEG-family via quality factor, PNG via deflate level."`
}

type videoConvertCmd struct {
	Inputs []string `arg:"" name:"input" help:"Input files or quoted glob patterns."`
	Format string   `arg:"" help:"Target container format (mp4, mkv, mov, avi, webm)."`
	Fast   bool     `help:"Stream-copy instead of re-encoding, when the codecs allow it."`
	Force  bool     `help:"Overwrite existing outputs instead of suffixing."`
	Backup bool     `help:"Move originals to ./backup after success."`
}

func (cmd *videoConvertCmd) Run(a *app) error {
	return a.execute(request.JobRequest{
		Operation:    pickOp(cmd.Inputs, request.OpConvert, request.OpBulkConvert),
		Inputs:       cmd.Inputs,
		TargetFormat: cmd.Format,
		Options: optionBag(map[string]bool{
			"fast": cmd.Fast, "force": cmd.Force, "backup": cmd.Backup,
		}, -1),
		Verbose: a.cfg.Verbose,
	})
}

type videoMuteCmd struct {
	Input  string `arg:"" help:"Input video file."`
	Format string `help:"Optional output container override."`
	Force  bool   `help:"Overwrite existing outputs instead of suffixing."`
}

func (cmd *videoMuteCmd) Run(a *app) error {
	return a.execute(request.JobRequest{
		Operation:    request.OpMute,
		Inputs:       []string{cmd.Input},
		TargetFormat: cmd.Format,
		Options:      optionBag(map[string]bool{"force": cmd.Force}, -1),
		Verbose:      a.cfg.Verbose,
	})
}

type audioConvertCmd struct {
	Inputs []string `arg:"" name:"input" help:"Input files or quoted glob patterns."`
	Format string   `arg:"" help:"Target audio format (mp3, wav, aac, flac, ogg)."`
	Force  bool     `help:"Overwrite existing outputs instead of suffixing."`
	Backup bool     `help:"Move originals to ./backup after success."`
}

func (cmd *audioConvertCmd) Run(a *app) error {
	return a.execute(request.JobRequest{
		Operation:    pickOp(cmd.Inputs, request.OpConvert, request.OpBulkAudio),
		Inputs:       cmd.Inputs,
		TargetFormat: cmd.Format,
		Options: optionBag(map[string]bool{
			"force": cmd.Force, "backup": cmd.Backup,
		}, -1),
		Verbose: a.cfg.Verbose,
	})
}

type audioExtractCmd struct {
	Input string `arg:"" help:"Input video file."`
	Force bool   `help:"Overwrite existing outputs instead of suffixing."`
}

func (cmd *audioExtractCmd) Run(a *app) error {
	return a.execute(request.JobRequest{
		Operation: request.OpExtractAudio,
		Inputs:    []string{cmd.Input},
		Options:   optionBag(map[string]bool{"force": cmd.Force}, -1),
		Verbose:   a.cfg.Verbose,
	})
}

type imageConvertCmd struct {
	Input  string `arg:"" help:"Input image file."`
	Format string `arg:"" help:"Target image format (jpg, jpeg, png, webp, bmp)."`
	Force  bool   `help:"Overwrite existing outputs instead of suffixing."`
}

func (cmd *imageConvertCmd) Run(a *app) error {
	return a.execute(request.JobRequest{
		Operation:    request.OpConvertImage,
		Inputs:       []string{cmd.Input},
		TargetFormat: cmd.Format,
		Options:      optionBag(map[string]bool{"force": cmd.Force}, -1),
		Verbose:      a.cfg.Verbose,
	})
}

type imageCompressCmd struct {
	Inputs  []string `arg:"" name:"pattern" help:"Input files or quoted glob patterns."`
	Quality int      `default:"60" help:"Compression quality 0-100 (JPEG family only)."`
	Force   bool     `help:"Overwrite existing outputs instead of suffixing."`
	Backup  bool     `help:"Move originals to ./backup after success."`
}

func (cmd *imageCompressCmd) Run(a *app) error {
	return a.execute(request.JobRequest{
		Operation: request.OpCompressImage,
		Inputs:    cmd.Inputs,
		Options: optionBag(map[string]bool{
			"force": cmd.Force, "backup": cmd.Backup,
		}, cmd.Quality),
		Verbose: a.cfg.Verbose,
	})
}

type versionCmd struct{}

func (versionCmd) Run(a *app) error {
	fmt.Printf("avicore v%s (%s)\n", version, commit)
	if a.avail.Available {
		fmt.Printf("engine:  %s\n", a.avail.Version)
	} else {
		fmt.Printf("engine:  unavailable (%s)\n", a.avail.Reason)
	}
	return nil
}

// pickOp selects the single-file operation when the sole input is a literal
// existing file, and the bulk operation otherwise (patterns or multiple
// inputs).
func pickOp(inputs []string, single, bulk request.Operation) request.Operation {
	if len(inputs) == 1 {
		if fi, err := os.Stat(inputs[0]); err == nil && fi.Mode().IsRegular() {
			return single
		}
	}
	return bulk
}

// optionBag assembles the loosely-typed option mapping the core normalizes
// at the job-builder boundary. Only set flags are included; quality is
// carried when non-negative.
func optionBag(flags map[string]bool, quality int) map[string]string {
	bag := make(map[string]string)
	for key, set := range flags {
		if set {
			bag[key] = "true"
		}
	}
	if quality >= 0 {
		bag["quality"] = strconv.Itoa(quality)
	}
	if len(bag) == 0 {
		return nil
	}
	return bag
}

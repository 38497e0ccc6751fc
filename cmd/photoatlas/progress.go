package main

import (
	"os"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"photoatlas/internal/ingest"
)

// uploadProgress renders a per-item progress bar on stderr during upload.
type uploadProgress struct {
	bar *progressbar.ProgressBar
}

func newUploadProgress(enabled bool) ingest.ProgressReporter {
	if !enabled {
		return nil
	}
	return &uploadProgress{}
}

func (p *uploadProgress) Start(total int) {
	if total <= 0 {
		return
	}
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("uploading"),
		progressbar.OptionSetWidth(32),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func (p *uploadProgress) Increment() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Add(1)
}

func (p *uploadProgress) Finish() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
}

func defaultProgressEnabled() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

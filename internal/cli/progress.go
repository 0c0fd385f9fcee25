package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/schollz/progressbar/v3"
)

// SyncProgress shows a progress bar over a fixed list of sync steps.
type SyncProgress struct {
	bar     *progressbar.ProgressBar
	writer  io.Writer
	started int
}

// NewSyncProgress creates a progress bar with one tick per step.
func NewSyncProgress(writer io.Writer, steps int) *SyncProgress {
	p := &SyncProgress{writer: writer}
	p.bar = progressbar.NewOptions(steps,
		progressbar.OptionSetWriter(writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription("[cyan][bold]Syncing...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(writer); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
	return p
}

// Step marks the previous step finished and describes the one starting now.
func (p *SyncProgress) Step(name string) {
	if p.started > 0 {
		p.advance()
	}
	p.started++
	p.bar.Describe(fmt.Sprintf("[cyan][bold]%s...[reset]", name))
}

// Finish completes the bar.
func (p *SyncProgress) Finish() {
	if err := p.bar.Finish(); err != nil {
		slog.Warn("Failed to finish progress bar", "error", err)
	}
}

func (p *SyncProgress) advance() {
	if err := p.bar.Add(1); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
}

package utils

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// Standard progress bar descriptions
const (
	DescInstalling = "Installing packages"
	DescBuilding   = "Building"
)

// NewProgressBarTo creates a consistently styled progress bar rendering to
// w; a nil w keeps the library default (stdout). A negative total switches to
// spinner mode.
//
//	bar := utils.NewProgressBarTo(os.Stderr, len(pkgs), utils.DescInstalling)
//	defer bar.Finish()
func NewProgressBarTo(w io.Writer, total int, description string) *progressbar.ProgressBar {
	opts := []progressbar.Option{
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
	}
	if w != nil {
		opts = append(opts, progressbar.OptionSetWriter(w))
	}

	if total < 0 {
		opts = append(opts,
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetRenderBlankState(true),
		)
	} else {
		opts = append(opts, progressbar.OptionShowIts())
	}

	return progressbar.NewOptions(total, opts...)
}

package output

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/efhk-flights/flightboard/internal/models"
)

// ColorMode represents the color output mode
type ColorMode int

const (
	// ColorAuto enables colors if output is a TTY
	ColorAuto ColorMode = iota
	// ColorAlways forces colors on
	ColorAlways
	// ColorNever disables colors
	ColorNever
)

// Colors holds the color functions for different output types
type Colors struct {
	Title     func(format string, a ...interface{}) string
	Time      func(format string, a ...interface{}) string
	Route     func(format string, a ...interface{}) string
	Flight    func(format string, a ...interface{}) string
	Landed    func(format string, a ...interface{}) string
	Delayed   func(format string, a ...interface{}) string
	Cancelled func(format string, a ...interface{}) string
	Estimated func(format string, a ...interface{}) string
	Header    func(format string, a ...interface{}) string
	Muted     func(format string, a ...interface{}) string
	Error     func(format string, a ...interface{}) string
}

// NewColors creates a new Colors instance based on the color mode
func NewColors(mode ColorMode) *Colors {
	// Determine if we should use colors
	useColors := false
	switch mode {
	case ColorAlways:
		useColors = true
		color.NoColor = false // Force colors on
	case ColorNever:
		useColors = false
	case ColorAuto:
		useColors = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	if !useColors {
		// Return no-op color functions
		noColor := func(format string, a ...interface{}) string {
			if len(a) == 0 {
				return format
			}
			return fmt.Sprintf(format, a...)
		}
		return &Colors{
			Title:     noColor,
			Time:      noColor,
			Route:     noColor,
			Flight:    noColor,
			Landed:    noColor,
			Delayed:   noColor,
			Cancelled: noColor,
			Estimated: noColor,
			Header:    noColor,
			Muted:     noColor,
			Error:     noColor,
		}
	}

	return &Colors{
		Title:     color.New(color.FgHiWhite, color.Bold).SprintfFunc(),
		Time:      color.New(color.FgWhite, color.Bold).SprintfFunc(),
		Route:     color.New(color.FgCyan, color.Bold).SprintfFunc(),
		Flight:    color.New(color.FgHiBlack).SprintfFunc(),
		Landed:    color.New(color.FgGreen).SprintfFunc(),
		Delayed:   color.New(color.FgYellow).SprintfFunc(),
		Cancelled: color.New(color.FgRed, color.Bold).SprintfFunc(),
		Estimated: color.New(color.FgBlue).SprintfFunc(),
		Header:    color.New(color.FgWhite, color.Bold, color.Underline).SprintfFunc(),
		Muted:     color.New(color.FgHiBlack).SprintfFunc(),
		Error:     color.New(color.FgRed).SprintfFunc(),
	}
}

// ForCategory returns the color function for a status badge
func (c *Colors) ForCategory(cat models.Category) func(format string, a ...interface{}) string {
	switch cat {
	case models.CategoryLanded:
		return c.Landed
	case models.CategoryDelayed:
		return c.Delayed
	case models.CategoryCancelled:
		return c.Cancelled
	default:
		return c.Estimated
	}
}

// ParseColorMode parses a color mode string
func ParseColorMode(s string) ColorMode {
	switch s {
	case "always":
		return ColorAlways
	case "never":
		return ColorNever
	default:
		return ColorAuto
	}
}

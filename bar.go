// Package loadingbar renders ANSI terminal progress bars. Bars fill all the
// available space.
//
// Usage:
//
//	bar := loadingbar.New(0.5, false, 0)
//	fmt.Println(bar)
//	bar.Progress = 41.0 / 82.0
//	fmt.Println(bar)
//
// The bar is built by adding components until there is no space left for
// them. The minimum size for a bar is 5, which is enough space for "[100%]".
package loadingbar

import (
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Glyphs
const (
	textIncomplete = "⟳ "
	textComplete   = "✓ "
	capLeft        = "["
	capRight       = "]"
	cellIncomplete = "▒"
	cellComplete   = "█"
)

// LineEnd moves the cursor to the start of the previous line. It is
// appended to every rendered bar, so printing a bar followed by a newline
// leaves the cursor where the next bar will overwrite it.
const LineEnd = "\x1b[1F"

// Width defaults
const (
	DefaultWidth       = 80
	MinWidth           = 7
	StructuralMinWidth = 5
)

// Bar is a single progress bar. Callers own it and mutate its fields
// between renders; rendering never changes it.
type Bar struct {
	// A number between 0 and 1
	Progress float32
	// Right-to-left modifier
	RTL bool
	// Fixed width in cells. Zero or negative resolves the width from the
	// terminal on every render.
	Width int
}

// New creates a bar. Pass a width of 0 for a dynamic bar.
func New(progress float32, rtl bool, width int) Bar {
	return Bar{
		Progress: progress,
		RTL:      rtl,
		Width:    width,
	}
}

// FromRTL creates an empty bar of DefaultWidth cells.
func FromRTL(rtl bool) Bar {
	return Bar{RTL: rtl, Width: DefaultWidth}
}

// FromProgress creates a left-to-right bar of DefaultWidth cells.
func FromProgress(progress float32) Bar {
	return Bar{Progress: progress, Width: DefaultWidth}
}

// String renders the bar against the terminal attached to stdout.
func (b Bar) String() string {
	return b.Render(TerminalWidth)
}

// Render renders the bar. The query is consulted only when the bar has no
// fixed width; a nil query behaves as an unknown terminal.
func (b Bar) Render(query WidthFunc) string {
	size := b.size(query)

	percent := percentText(b.Progress)
	indicator := textIncomplete
	if percent == "100%" {
		indicator = textComplete
	}

	// the smallest number of components is 4 -> '[', '50%', ']', LineEnd
	components := make([]string, 0, max(size, 4))
	components = append(components, indicator)

	segment := make([]string, 0, max(size, 3))
	segment = append(segment, capLeft)
	if size == StructuralMinWidth {
		segment = append(segment, percent)
	} else {
		complete, incomplete := cells(size, b.Progress)
		for i := 0; i < complete; i++ {
			segment = append(segment, cellComplete)
		}
		for i := 0; i < incomplete; i++ {
			segment = append(segment, cellIncomplete)
		}
	}
	segment = append(segment, capRight)

	// Mirroring takes two reversals: the segment, then the whole line.
	if b.RTL {
		lo.Reverse(segment)
	}
	components = append(components, segment...)
	if b.RTL {
		lo.Reverse(components)
	}

	// LineEnd always goes last, mirrored or not.
	components = append(components, LineEnd)

	return strings.Join(components, "")
}

func (b Bar) size(query WidthFunc) int {
	if b.Width > 0 {
		return b.Width
	}

	cols := DefaultWidth
	if query != nil {
		if w, ok := query(); ok {
			cols = w
		}
	}
	if cols <= MinWidth {
		return MinWidth
	}
	return cols
}

// cells splits the fill region of a size-wide bar into complete and
// incomplete counts. Counts saturate at the bounds of the region.
func cells(size int, progress float32) (complete, incomplete int) {
	n := max(size-4, 0)

	f := math.Floor(float64(float32(n) * progress))
	if math.IsNaN(f) {
		f = 0
	}
	complete = int(lo.Clamp(f, 0, float64(n)))

	return complete, n - complete
}

func percentText(progress float32) string {
	p := math.Floor(float64(progress * 100))

	var whole uint64
	switch {
	case !(p > 0):
		// negative or NaN
	case p >= math.MaxUint64:
		whole = math.MaxUint64
	default:
		whole = uint64(p)
	}

	return strconv.FormatUint(whole, 10) + "%"
}

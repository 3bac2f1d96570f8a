package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
)

const (
	minBarWidth = 20
	maxBarWidth = 60
	// bar decoration: two-space indent, brackets, " 100%", two spaces,
	// "MM:SS" — everything around the bar itself.
	barChrome = 16
)

// BarRenderer shows study progress on a terminal: a status line plus a
// redrawn ASCII bar on a TTY, or one timestamped line per event when
// the output is piped.
type BarRenderer struct {
	out       io.Writer
	start     time.Time
	tty       bool
	barWidth  int
	lastEvent Event
	drawn     int // lines currently on screen, to overwrite in place
}

// NewBarRenderer sizes the bar for out's terminal. Piped output gets
// the plain line-per-event mode.
func NewBarRenderer(out *os.File) *BarRenderer {
	r := &BarRenderer{
		out:      out,
		start:    time.Now(),
		tty:      isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd()),
		barWidth: maxBarWidth,
	}
	if r.tty {
		if w, _, err := term.GetSize(out.Fd()); err == nil && w > 0 {
			r.barWidth = clampWidth(w - barChrome)
		}
	}
	return r
}

// Handle renders one progress event. It satisfies the Callback type.
func (r *BarRenderer) Handle(e Event) {
	e.Elapsed = time.Since(r.start)
	if e.Stage == StageComplete {
		e.Percent = 1.0
	}
	r.lastEvent = e

	if !r.tty {
		fmt.Fprintf(r.out, "[%s] %s\n", clock(e.Elapsed), e.Message)
		return
	}

	r.erase()
	status := "  " + e.Message
	if e.InterviewTotal > 0 {
		status = fmt.Sprintf("  [%d/%d] %s", e.InterviewNum, e.InterviewTotal, e.Message)
	}
	fmt.Fprintf(r.out, "%s\n  %s %3d%%  %s",
		status, asciiBar(e.Percent, r.barWidth), int(e.Percent*100), clock(e.Elapsed))
	r.drawn = 2
}

// Finish replaces the bar with the closing summary. Call it after the
// study settles, whatever its outcome.
func (r *BarRenderer) Finish() {
	r.erase()

	e := r.lastEvent
	switch {
	case e.Error != nil:
		fmt.Fprintf(r.out, "\n  Error: %v\n", e.Error)
	case e.Stage == StageComplete && e.Interviews > 0:
		fmt.Fprintf(r.out, "\n  Study %s complete: %d interviews, avg sentiment %.2f\n",
			e.StudyID, e.Interviews, e.AvgSentiment)
		if e.LogFile != "" {
			fmt.Fprintf(r.out, "  Log: %s  |  Total: %s\n", e.LogFile, clock(e.Elapsed))
		}
	case e.Stage == StageComplete:
		fmt.Fprintf(r.out, "\n  %s (%s)\n", e.Message, clock(e.Elapsed))
		if e.LogFile != "" {
			fmt.Fprintf(r.out, "  Log: %s\n", e.LogFile)
		}
	}
}

// erase rewinds over the lines drawn by the previous event.
func (r *BarRenderer) erase() {
	if !r.tty || r.drawn == 0 {
		return
	}
	fmt.Fprint(r.out, "\r\033[2K")
	for i := 1; i < r.drawn; i++ {
		fmt.Fprint(r.out, "\033[A\033[2K")
	}
	fmt.Fprint(r.out, "\r")
	r.drawn = 0
}

func clampWidth(w int) int {
	if w < minBarWidth {
		return minBarWidth
	}
	if w > maxBarWidth {
		return maxBarWidth
	}
	return w
}

// asciiBar renders pct as a fixed-width "[####....]" gauge.
func asciiBar(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	filled := int(pct * float64(width))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

// clock formats elapsed time as M:SS.
func clock(d time.Duration) string {
	s := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

package cli

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/amp-labs/rbtset/envutil"
)

const (
	boxTopLeft     = "╒"
	boxBottomLeft  = "└"
	boxTopRight    = "╕"
	boxBottomRight = "┘"
	boxSide        = "│"
	boxTop         = "═"
	boxBottom      = "─"
	dividerLeft    = "┠"
	dividerMiddle  = "─"
	dividerRight   = "┨"
	ellipsis       = "…"
)

// Alignment of text inside a banner.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

const (
	DefaultTerminalWidth = 80

	borderWidth = 2
)

// RBTSET_NO_BANNER=true prints banner text without the box.
var suppressBanner = sync.OnceValue(func() bool { //nolint:gochecknoglobals
	return envutil.Bool("RBTSET_NO_BANNER", envutil.Default(false)).ValueOrElse(false)
})

func terminalWidth() int {
	_, cols, err := TerminalDimensions()
	if err != nil || cols == 0 {
		return DefaultTerminalWidth
	}

	return cols
}

// DividerAutoWidth is Divider sized to the terminal.
func DividerAutoWidth() string {
	return Divider(terminalWidth())
}

// BannerAutoWidth is Banner sized to the terminal.
func BannerAutoWidth(s string, a Alignment) string {
	return Banner(s, terminalWidth(), a)
}

func Divider(width int) string {
	width = max(width, borderWidth)

	return dividerLeft + strings.Repeat(dividerMiddle, width-borderWidth) + dividerRight + "\n"
}

// Banner draws s inside a box width columns wide. Lines longer than the box
// are truncated with an ellipsis.
func Banner(s string, width int, a Alignment) string {
	if suppressBanner() {
		return s + "\n"
	}

	return drawBanner(s, width, a)
}

func drawBanner(s string, width int, a Alignment) string {
	if width <= borderWidth || s == "" {
		return ""
	}

	inner := width - borderWidth
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")

	var sb strings.Builder

	sb.WriteString(boxTopLeft + strings.Repeat(boxTop, inner) + boxTopRight)

	for _, line := range lines {
		sb.WriteString("\n" + boxSide + pad(line, inner, a) + boxSide)
	}

	sb.WriteString("\n" + boxBottomLeft + strings.Repeat(boxBottom, inner) + boxBottomRight)

	return sb.String()
}

func graphicLen(s string) int {
	n := 0

	for _, r := range s {
		if unicode.IsGraphic(r) {
			n++
		}
	}

	return n
}

// truncate keeps the first n-1 graphic runes of s and appends an ellipsis.
func truncate(s string, n int) string {
	var sb strings.Builder

	count := 0

	for _, r := range s {
		if unicode.IsGraphic(r) {
			count++
		}

		if count >= n {
			break
		}

		sb.WriteRune(r)
	}

	return sb.String() + ellipsis
}

func pad(text string, width int, a Alignment) string {
	if graphicLen(text) > width {
		text = truncate(text, width)
	}

	gap := width - graphicLen(text)

	switch a {
	case AlignCenter:
		left := gap / 2 //nolint:mnd

		return strings.Repeat(" ", left) + text + strings.Repeat(" ", gap-left)
	case AlignRight:
		return strings.Repeat(" ", gap) + text
	default:
		return text + strings.Repeat(" ", gap)
	}
}

// TerminalDimensions returns the rows and columns of the controlling terminal.
func TerminalDimensions() (int, int, error) {
	tty, err := os.Open("/dev/tty")
	if err != nil {
		return 0, 0, err
	}

	defer func() { _ = tty.Close() }()

	cmd := exec.Command("stty", "size")
	cmd.Stdin = tty

	out, err := cmd.Output()
	if err != nil {
		return 0, 0, err
	}

	return parseSize(string(out))
}

// parseSize reads stty's "rows columns" output.
func parseSize(out string) (int, int, error) {
	fields := strings.Fields(out)
	if len(fields) != 2 { //nolint:mnd
		return 0, 0, fmt.Errorf("unexpected stty output %q", out) //nolint:err113
	}

	rows, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, err
	}

	cols, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, err
	}

	return rows, cols, nil
}

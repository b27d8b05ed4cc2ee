package verify

import (
	"fmt"
	"io"
	"strings"
)

// Message is a single diagnostic produced during verification.
type Message struct {
	Severity Severity `json:"severity"`
	Code     Code     `json:"code"`
	HDU      int      `json:"hdu"`
	Text     string   `json:"text"`
	FixHint  string   `json:"fixHint,omitempty"`
	Explain  string   `json:"explain,omitempty"`
}

// Sink receives diagnostics as they are produced. Implementations must
// tolerate being called for every message of a verification run,
// including informational output such as headers and summaries.
type Sink interface {
	Emit(msg Message)
}

// StreamSink writes diagnostics as formatted text. Informational and
// warning messages go to Out; errors go to Err. When Tee is set,
// errors are additionally written to Out, which is the behavior used
// when Out is a report file rather than the terminal.
type StreamSink struct {
	Out io.Writer
	Err io.Writer
	Tee bool
}

func (s *StreamSink) Emit(msg Message) {
	text := formatMessage(msg)
	switch msg.Severity {
	case SeverityError, SeveritySevere:
		if s.Err != nil {
			io.WriteString(s.Err, text)
		}
		if s.Tee && s.Out != nil {
			io.WriteString(s.Out, text)
		}
	default:
		if s.Out != nil {
			io.WriteString(s.Out, text)
		}
	}
}

// CallbackSink forwards each message to a function. Used by callers
// that collect diagnostics programmatically instead of as text.
type CallbackSink struct {
	Fn func(Message)
}

func (s *CallbackSink) Emit(msg Message) {
	if s.Fn != nil {
		s.Fn(msg)
	}
}

// NopSink discards all messages. Used in quiet mode where only the
// final counts matter.
type NopSink struct{}

func (NopSink) Emit(Message) {}

// CollectSink appends every message to a slice.
type CollectSink struct {
	Messages []Message
}

func (s *CollectSink) Emit(msg Message) {
	s.Messages = append(s.Messages, msg)
}

func formatMessage(msg Message) string {
	var b strings.Builder
	wrapLine(&b, msg.Text)
	if msg.FixHint != "" {
		wrapLine(&b, "    Fix: "+msg.FixHint)
	}
	if msg.Explain != "" {
		wrapLine(&b, "    Explanation: "+msg.Explain)
	}
	return b.String()
}

const (
	wrapWidth     = 80
	contIndent    = 13
	contWidth     = 67
	contIndentStr = "             "
)

// wrapLine writes mess to b folded at 80 columns. The first line
// prefers to break at a space; continuation lines are indented 13
// spaces and hold at most 67 characters each.
func wrapLine(b *strings.Builder, mess string) {
	mess = strings.TrimRight(mess, "\n")
	if len(mess) <= wrapWidth {
		b.WriteString(mess)
		b.WriteByte('\n')
		return
	}
	brk := wrapWidth
	for i := wrapWidth; i > 0; i-- {
		if mess[i-1] == ' ' {
			brk = i
			break
		}
	}
	b.WriteString(mess[:brk])
	b.WriteByte('\n')
	rest := strings.TrimLeft(mess[brk:], " ")
	for len(rest) > 0 {
		n := contWidth
		if n > len(rest) {
			n = len(rest)
		}
		b.WriteString(contIndentStr)
		b.WriteString(rest[:n])
		b.WriteByte('\n')
		rest = rest[n:]
	}
}

// Separator returns a title centered in a line of fill characters,
// width 60, used to delimit per-HDU report sections.
func Separator(fill byte, title string) string {
	const width = 60
	if len(title) >= width {
		return title
	}
	left := (width - len(title)) / 2
	right := width - len(title) - left
	return strings.Repeat(string(fill), left) + title + strings.Repeat(string(fill), right)
}

// hduLabel names an HDU for report headings, e.g.
// "HDU 2: Binary Table".
func hduLabel(num int, typeName string) string {
	return fmt.Sprintf("HDU %d: %s", num, typeName)
}

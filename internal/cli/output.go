package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mcoot/gamehub/internal/app"
	"github.com/mcoot/gamehub/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case *model.User:
		o.printUser(v)
	case app.State:
		o.printState(v)
	case LaunchResult:
		o.printLaunch(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// LaunchResult is printed after a successful play
type LaunchResult struct {
	GameID    model.GameID `json:"game_id"`
	Title     string       `json:"title"`
	SessionID string       `json:"session_id"`
	URL       string       `json:"url"`
	Opened    bool         `json:"opened"`
}

func newLaunchResult(l *app.Launch, opened bool) LaunchResult {
	res := LaunchResult{GameID: l.Game.ID, Title: l.Game.Title, URL: l.URL, Opened: opened}
	if l.Session != nil {
		res.SessionID = l.Session.SessionID
	}
	return res
}

func (o *Output) printUser(u *model.User) {
	if u == nil {
		_, _ = fmt.Fprintln(o.w, "Not signed in")
		return
	}
	_, _ = fmt.Fprintf(o.w, "Signed in as %s (%s)\n", u.DisplayName(), u.Email)
}

func (o *Output) printState(s app.State) {
	if s.Catalog == model.CatalogFallback {
		_, _ = fmt.Fprintln(o.w, "Catalog service unavailable, showing the built-in games")
	}

	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tTITLE\tDIFFICULTY")
	for _, g := range s.Games {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", g.ID, g.Title, g.Difficulty)
	}
	_ = tw.Flush()
}

func (o *Output) printLaunch(l LaunchResult) {
	if l.Opened {
		_, _ = fmt.Fprintf(o.w, "Launching %s in your browser\n", l.Title)
		return
	}
	_, _ = fmt.Fprintln(o.w, l.URL)
}

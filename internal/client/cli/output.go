package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/pr-poehali-dev/news-chat-app/internal/client/api"
)

// printer writes either JSON or human readable text
type printer struct {
	format string
	w      io.Writer
}

func newPrinter(opts *RootOptions, w io.Writer) *printer {
	return &printer{format: opts.Format, w: w}
}

// print encodes v as JSON, or calls text for the text format
func (p *printer) print(v interface{}, text func(w io.Writer)) error {
	if p.format == "json" {
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(p.w)
	return nil
}

func writeMessage(w io.Writer, m api.Message, own bool) {
	marker := " "
	if own {
		marker = "*"
	}
	fmt.Fprintf(w, "%s [%d] %s %s: %s\n", marker, m.ID, m.Timestamp.Local().Format("15:04"), m.UserName, m.Text)
}

func writeNewsLine(w io.Writer, p api.NewsPost) {
	author := p.Nickname
	if author == "" {
		author = "Аноним"
	}
	image := ""
	if p.ImageURL != "" {
		image = " [фото]"
	}
	fmt.Fprintf(w, "[%d] %s%s (%s, %s)\n", p.ID, p.Title, image, author, since(p.CreatedAt))
}

func writeNewsPost(w io.Writer, p api.NewsPost) {
	writeNewsLine(w, p)
	fmt.Fprintln(w, strings.Repeat("-", 40))
	fmt.Fprintln(w, p.Content)
	if p.ImageURL != "" && !strings.HasPrefix(p.ImageURL, "data:") {
		fmt.Fprintln(w, p.ImageURL)
	}
}

func writeProfile(w io.Writer, p api.Profile) {
	fmt.Fprintf(w, "Никнейм: %s\n", p.Nickname)
	if p.Bio != "" {
		fmt.Fprintf(w, "О себе:  %s\n", p.Bio)
	}
	if p.Avatar != "" {
		fmt.Fprintln(w, "Аватар:  есть")
	}
	fmt.Fprintf(w, "С нами:  %s\n", since(p.CreatedAt))
}

func since(t time.Time) string {
	if t.IsZero() {
		return "только что"
	}
	return humanize.Time(t)
}

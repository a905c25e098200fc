package report

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/bnema/audiobatch/internal/domain"
)

const pageStyle = `body{font-family:system-ui,sans-serif;margin:2rem;color:#222}
table{border-collapse:collapse;width:100%}
th,td{border:1px solid #ccc;padding:.3rem .6rem;text-align:left;font-size:.9rem}
th{background:#f3f3f3}
.succeeded{color:#1a7f37}.failed{color:#cf222e}.skipped{color:#9a6700}.not_run{color:#6e7781}
.summary{margin:1rem 0}`

// Page returns the outcome as a standalone HTML document.
func Page(o *domain.BatchOutcome) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := templ.EscapeString(fmt.Sprintf("audiobatch %s %s", o.Operation, o.ID))
		if _, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html lang=\"en\"><head><meta charset=\"utf-8\"><title>%s</title><style>%s</style></head><body>\n", title, pageStyle); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "<h1>%s</h1>\n<p class=\"summary\">%s</p>\n", title, templ.EscapeString(SummaryLine(o))); err != nil {
			return err
		}
		if err := resultsTable(o).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</body></html>\n")
		return err
	})
}

func resultsTable(o *domain.BatchOutcome) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		headers := []string{"#", "File", "Status", "Output", "Duration", "Sample rate", "Channels", "Codec", "Bitrate", "Detail"}
		if _, err := io.WriteString(w, "<table>\n<thead><tr>"); err != nil {
			return err
		}
		for _, h := range headers {
			if _, err := fmt.Fprintf(w, "<th>%s</th>", templ.EscapeString(h)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</tr></thead>\n<tbody>\n"); err != nil {
			return err
		}
		for _, r := range o.Results {
			if err := resultRow(r).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</tbody>\n</table>\n")
		return err
	})
}

func resultRow(r domain.FileResult) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var duration, rate, channels, codec, bitrate string
		if p := r.Probe; p != nil {
			duration = domain.FormatDuration(p.Duration)
			rate = domain.FormatSampleRate(p.SampleRate)
			channels = domain.FormatChannels(p.Channels)
			codec = p.Codec
			bitrate = domain.FormatBitrate(p.BitRate)
		}
		cells := []string{
			strconv.Itoa(r.Index + 1), r.InputPath, "", r.OutputPath,
			duration, rate, channels, codec, bitrate, detail(r),
		}
		if _, err := io.WriteString(w, "<tr>"); err != nil {
			return err
		}
		for i, c := range cells {
			var err error
			if i == 2 {
				_, err = fmt.Fprintf(w, "<td class=\"%s\">%s</td>",
					templ.EscapeString(string(r.Status)), templ.EscapeString(StatusLabel(r.Status, false)))
			} else {
				_, err = fmt.Fprintf(w, "<td>%s</td>", templ.EscapeString(c))
			}
			if err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</tr>\n")
		return err
	})
}

// RenderHTML writes Page(o) to w.
func RenderHTML(ctx context.Context, w io.Writer, o *domain.BatchOutcome) error {
	return Page(o).Render(ctx, w)
}

// HistoryPage lists stored batches. Each ID links to batchURL(id).
func HistoryPage(summaries []domain.BatchSummary, batchURL func(id string) string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html lang=\"en\"><head><meta charset=\"utf-8\"><title>audiobatch history</title><style>%s</style></head><body>\n<h1>audiobatch history</h1>\n", pageStyle); err != nil {
			return err
		}
		if len(summaries) == 0 {
			_, err := io.WriteString(w, "<p class=\"summary\">No batches recorded.</p>\n</body></html>\n")
			return err
		}
		if _, err := io.WriteString(w, "<table>\n<thead><tr><th>ID</th><th>Operation</th><th>Started</th><th>Files</th><th>OK</th><th>Failed</th><th>Skipped</th><th>Not run</th><th>State</th></tr></thead>\n<tbody>\n"); err != nil {
			return err
		}
		for _, s := range summaries {
			state := "done"
			if s.Cancelled {
				state = "cancelled"
			}
			_, err := fmt.Fprintf(w,
				"<tr><td><a href=\"%s\">%s</a></td><td>%s</td><td>%s</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%s</td></tr>\n",
				templ.EscapeString(batchURL(s.ID)), templ.EscapeString(s.ID),
				templ.EscapeString(string(s.Operation)),
				templ.EscapeString(s.StartedAt.UTC().Format("2006-01-02 15:04:05 UTC")),
				s.Counts.Total, s.Counts.Succeeded, s.Counts.Failed, s.Counts.Skipped, s.Counts.NotRun,
				state)
			if err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</tbody>\n</table>\n</body></html>\n")
		return err
	})
}

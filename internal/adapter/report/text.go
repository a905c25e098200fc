package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/bnema/audiobatch/internal/domain"
)

type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Table renders rows under headers with rounded borders. Short rows are
// padded with empty cells.
func Table(headers []string, rows [][]string, aligns []Align) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == AlignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// RenderText writes the per-file table followed by a one-line summary.
func RenderText(w io.Writer, o *domain.BatchOutcome, colorize bool) error {
	var headers []string
	var aligns []Align
	if o.Operation == domain.OperationConvert {
		headers = []string{"#", "File", "Status", "Output", "Detail"}
		aligns = []Align{AlignRight}
	} else {
		headers = []string{"#", "File", "Status", "Duration", "Sample rate", "Channels", "Codec", "Bitrate", "Detail"}
		aligns = []Align{AlignRight, AlignLeft, AlignLeft, AlignRight, AlignRight}
	}

	rows := make([][]string, 0, len(o.Results))
	for _, r := range o.Results {
		status := StatusLabel(r.Status, colorize)
		if o.Operation == domain.OperationConvert {
			rows = append(rows, []string{
				strconv.Itoa(r.Index + 1), r.InputPath, status, r.OutputPath, detail(r),
			})
			continue
		}
		row := []string{strconv.Itoa(r.Index + 1), r.InputPath, status, "", "", "", "", "", detail(r)}
		if p := r.Probe; p != nil {
			row[3] = domain.FormatDuration(p.Duration)
			row[4] = domain.FormatSampleRate(p.SampleRate)
			row[5] = domain.FormatChannels(p.Channels)
			row[6] = p.Codec
			row[7] = domain.FormatBitrate(p.BitRate)
		}
		rows = append(rows, row)
	}

	if _, err := fmt.Fprintln(w, Table(headers, rows, aligns)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, SummaryLine(o))
	return err
}

// SummaryLine is the human-readable count line printed under every report.
func SummaryLine(o *domain.BatchOutcome) string {
	c := o.Counts()
	line := fmt.Sprintf("%d succeeded, %d failed, %d skipped, %d not run (%d files in %s)",
		c.Succeeded, c.Failed, c.Skipped, c.NotRun, c.Total, o.Elapsed().Round(time.Millisecond))
	if o.Cancelled {
		line += "; batch cancelled"
	}
	return line
}

func StatusLabel(s domain.JobStatus, colorize bool) string {
	label := strings.ReplaceAll(string(s), "_", " ")
	if !colorize {
		return label
	}
	switch s {
	case domain.JobStatusSucceeded:
		return text.Colors{text.FgGreen}.Sprint(label)
	case domain.JobStatusFailed:
		return text.Colors{text.FgRed}.Sprint(label)
	case domain.JobStatusSkipped:
		return text.Colors{text.FgYellow}.Sprint(label)
	default:
		return text.Colors{text.FgHiBlack}.Sprint(label)
	}
}

func detail(r domain.FileResult) string {
	if r.ErrorMessage == "" {
		if r.Probe != nil && r.Probe.Tags != nil {
			return r.Probe.Tags.String()
		}
		return ""
	}
	if r.ErrorKind == domain.ErrorKindNone {
		return r.ErrorMessage
	}
	return fmt.Sprintf("%s: %s", r.ErrorKind, firstLine(r.ErrorMessage))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// HistoryTable lists stored batches, newest first.
func HistoryTable(summaries []domain.BatchSummary) string {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		state := "done"
		if s.Cancelled {
			state = "cancelled"
		}
		rows = append(rows, []string{
			s.ID,
			string(s.Operation),
			s.StartedAt.Local().Format("2006-01-02 15:04:05"),
			strconv.Itoa(s.Counts.Total),
			strconv.Itoa(s.Counts.Succeeded),
			strconv.Itoa(s.Counts.Failed),
			strconv.Itoa(s.Counts.Skipped),
			strconv.Itoa(s.Counts.NotRun),
			state,
		})
	}
	return Table(
		[]string{"ID", "Operation", "Started", "Files", "OK", "Failed", "Skipped", "Not run", "State"},
		rows,
		[]Align{AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight, AlignRight},
	)
}

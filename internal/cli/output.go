package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/pfrederiksen/novel-search/internal/novel"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatJSON  OutputFormat = "json"
	FormatTable OutputFormat = "table"
)

const (
	ansiReset  = "\x1b[0m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

func parseFormat(s string, allowed ...OutputFormat) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	names := make([]string, len(allowed))
	for i, f := range allowed {
		if format == f {
			return format, nil
		}
		names[i] = "'" + string(f) + "'"
	}
	return "", fmt.Errorf("invalid format: %s (must be %s)", s, strings.Join(names, ", "))
}

// ListResult contains the novels selected by `list`
type ListResult struct {
	Filter string         `json:"filter"`
	Count  int            `json:"count"`
	Novels []*novel.Novel `json:"novels"`
}

// WriteList writes the listing in the specified format
func WriteList(w io.Writer, result *ListResult, format OutputFormat, colorize bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatTable:
		return writeListTable(w, result)
	case FormatText:
		return writeListText(w, result, colorize)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}

func writeListText(w io.Writer, result *ListResult, colorize bool) error {
	if result.Count == 0 {
		fmt.Fprintln(w, "No novels found.")
		return nil
	}

	for _, n := range result.Novels {
		status := "unprocessed"
		if n.Annotated() {
			status = n.POV.Label()
			if n.Read {
				status += ", read"
			}
		}
		if colorize {
			if n.Annotated() {
				status = ansiGreen + status + ansiReset
			} else {
				status = ansiYellow + status + ansiReset
			}
		}
		fmt.Fprintf(w, "%d  %-12s %s (%s)\n", n.Year, n.Award, n.Title, status)
	}

	fmt.Fprintf(w, "\nTotal: %d novels (%s)\n", result.Count, result.Filter)
	return nil
}

func writeListTable(w io.Writer, result *ListResult) error {
	rows := make([][]string, 0, len(result.Novels))
	for _, n := range result.Novels {
		pov := "-"
		if n.Annotated() {
			pov = n.POV.Label()
		}
		read := ""
		if n.Read {
			read = "yes"
		}
		rows = append(rows, []string{strconv.Itoa(n.Year), n.Title, n.Award, pov, read})
	}

	fmt.Fprintln(w, renderTable(
		[]string{"Year", "Title", "Award", "POV", "Read"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
		fmt.Sprintf("%d novels", result.Count),
	))
	return nil
}

// WriteStats writes collection statistics in the specified format
func WriteStats(w io.Writer, stats *novel.Stats, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, stats)
	case FormatText, FormatTable:
		return writeStatsText(w, stats)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeStatsText(w io.Writer, stats *novel.Stats) error {
	if stats.Total == 0 {
		fmt.Fprintln(w, "No award novels found. Run 'scrape' first.")
		return nil
	}

	fmt.Fprintf(w, "Novels:      %d (%d-%d)\n", stats.Total, stats.MinYear, stats.MaxYear)
	fmt.Fprintf(w, "Annotated:   %d\n", stats.Annotated)
	fmt.Fprintf(w, "Unprocessed: %d\n", stats.Pending)
	fmt.Fprintf(w, "Read:        %d\n\n", stats.Read)

	awards := make([]string, 0, len(stats.ByAward))
	for a := range stats.ByAward {
		awards = append(awards, a)
	}
	sort.Strings(awards)

	rows := make([][]string, 0, len(awards))
	for _, a := range awards {
		rows = append(rows, []string{a, strconv.Itoa(stats.ByAward[a])})
	}
	fmt.Fprintln(w, renderTable([]string{"Award", "Novels"}, rows, []columnAlignment{alignLeft, alignRight}, ""))

	rows = make([][]string, 0, len(novel.POVs)+1)
	for _, p := range novel.POVs {
		rows = append(rows, []string{p.Label(), strconv.Itoa(stats.ByPOV[string(p)])})
	}
	rows = append(rows, []string{"Unprocessed", strconv.Itoa(stats.Pending)})
	fmt.Fprintln(w, renderTable([]string{"POV", "Novels"}, rows, []columnAlignment{alignLeft, alignRight}, ""))

	return nil
}

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment, footer string) string {
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

	if footer != "" {
		f := make(table.Row, columns)
		f[0] = footer
		for i := 1; i < columns; i++ {
			f[i] = ""
		}
		tw.AppendFooter(f)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func shouldColorize(writer io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

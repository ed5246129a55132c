package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"github.com/wippyai/gmsbind/binding"
	"github.com/wippyai/gmsbind/descriptor"
	"github.com/wippyai/gmsbind/session"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	textStyle   = cellStyle.Foreground(lipgloss.Color("#87CEEB"))
	nameStyle   = cellStyle.Foreground(lipgloss.Color("#98FB98"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

var summaryHeaders = []string{"#", "name", "external", "returns", "args"}

func codeName(code int) string {
	switch code {
	case binding.CodeText:
		return binding.Text.String()
	case binding.CodeNumber:
		return binding.Number.String()
	default:
		return strconv.Itoa(code)
	}
}

func argList(fn descriptor.Function) string {
	names := make([]string, len(fn.Args.Codes))
	for i, c := range fn.Args.Codes {
		names[i] = codeName(c)
	}
	return strings.Join(names, ", ")
}

func summaryRows(doc *descriptor.Document) [][]string {
	fns := doc.Files.File.Functions.Items
	rows := make([][]string, len(fns))
	for i, fn := range fns {
		rows[i] = []string{strconv.Itoa(i + 1), fn.Name, fn.ExternalName, codeName(fn.ReturnType), argList(fn)}
	}
	return rows
}

func printSummary(w *os.File, t session.Target, doc *descriptor.Document) {
	writeSummary(w, t, doc, term.IsTerminal(int(w.Fd())))
}

func writeSummary(w io.Writer, t session.Target, doc *descriptor.Document, styled bool) {
	rows := summaryRows(doc)
	heading := fmt.Sprintf("%s (%s, prefix %s): %d functions", t.Name, t.FileName, t.Prefix, len(rows))

	if !styled {
		fmt.Fprintln(w, heading)
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(summaryHeaders, "\t"))
		for _, r := range rows {
			fmt.Fprintln(tw, strings.Join(r, "\t"))
		}
		_ = tw.Flush()
		return
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(summaryHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 1:
				return nameStyle
			case col == 3 && row >= 0 && row < len(rows) && rows[row][col] == binding.Text.String():
				return textStyle
			default:
				return cellStyle
			}
		})

	fmt.Fprintln(w, titleStyle.Render(heading))
	fmt.Fprintln(w, tbl.Render())
}

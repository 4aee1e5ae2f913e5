package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	accStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	rejStyle     = lipgloss.NewStyle().Faint(true)
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	keywordStyle = lipgloss.NewStyle().Bold(true)
	tagStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

func AcceptedLine(w io.Writer, uri string, line int, name string) {
	fmt.Fprintf(w, "%s  %s:%d  %s\n", accStyle.Render("acc"), uri, line, name)
}

func RejectedLine(w io.Writer, uri string, line int, name string) {
	fmt.Fprintf(w, "%s  %s:%d  %s\n", rejStyle.Render("rej"), uri, line, name)
}

func FailureLine(w io.Writer, uri string, err error) {
	fmt.Fprintf(w, "%s  %s  %v\n", errStyle.Render("err"), uri, err)
}

func SummaryLine(w io.Writer, accepted, total, files int) {
	fmt.Fprintf(w, "%d of %d scenarios accepted from %d files\n", accepted, total, files)
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	clrBrand  = lipgloss.Color("214")
	clrGreen  = lipgloss.Color("114")
	clrRed    = lipgloss.Color("203")
	clrYellow = lipgloss.Color("220")
	clrDim    = lipgloss.Color("245")
)

// styles renders plain text unless out is a terminal.
type styles struct {
	enabled bool

	Header  lipgloss.Style
	Key     lipgloss.Style
	Dim     lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
}

func newStyles(out io.Writer) styles {
	s := styles{}
	if f, ok := out.(*os.File); ok {
		s.enabled = term.IsTerminal(int(f.Fd()))
	}
	if !s.enabled {
		return s
	}

	s.Header = lipgloss.NewStyle().Bold(true).Foreground(clrBrand)
	s.Key = lipgloss.NewStyle().Foreground(clrDim)
	s.Dim = lipgloss.NewStyle().Foreground(clrDim)
	s.Warning = lipgloss.NewStyle().Foreground(clrYellow).Bold(true)
	s.Error = lipgloss.NewStyle().Foreground(clrRed).Bold(true)
	s.Success = lipgloss.NewStyle().Foreground(clrGreen)
	return s
}

func (s styles) render(style lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return style.Render(text)
}

func (s styles) header(text string) string  { return s.render(s.Header, text) }
func (s styles) dim(text string) string     { return s.render(s.Dim, text) }
func (s styles) warn(text string) string    { return s.render(s.Warning, text) }
func (s styles) success(text string) string { return s.render(s.Success, text) }
func (s styles) errPrefix() string          { return s.render(s.Error, "ERROR:") }

func (s styles) kv(key, value string) string {
	return fmt.Sprintf("  %s %s", s.render(s.Key, fmt.Sprintf("%-12s", key+":")), value)
}

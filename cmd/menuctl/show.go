package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"toolbox-backend/pkg/navigation"
)

type showOptions struct {
	format string
	role   string
}

func newShowCmd(root *rootOptions) *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Print the menu as a given role would see it, or a single entry",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			menu, err := root.load()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				entry, ok := menu.Lookup(args[0])
				if !ok {
					return fmt.Errorf("no menu entry with id %q", args[0])
				}
				return render(cmd.OutOrStdout(), []navigation.Entry{entry}, opts.format)
			}

			var entries []navigation.Entry
			switch strings.ToLower(opts.role) {
			case "", "all":
				entries = menu.Entries()
			case "admin":
				entries = menu.VisibleTo(true)
			case "user":
				entries = menu.VisibleTo(false)
			default:
				return fmt.Errorf("unknown role %q (want all, admin or user)", opts.role)
			}

			return render(cmd.OutOrStdout(), entries, opts.format)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "output", "o", "table", "output format: table, json or yaml")
	cmd.Flags().StringVar(&opts.role, "role", "all", "viewer role: all, admin or user")
	return cmd
}

func render(out io.Writer, entries []navigation.Entry, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "yaml", "yml":
		data, err := yaml.Marshal(entries)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	case "table", "":
		renderTable(out, entries)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func renderTable(out io.Writer, entries []navigation.Entry) {
	s := newStyles(out)

	header := []string{"ID", "TITLE", "ICON", "URL"}
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{entry.ID, entry.Title, entry.Icon, entry.URL})
	}

	// Pad by display cells so wide titles stay aligned.
	widths := make([]int, len(header))
	for _, row := range append([][]string{header}, rows...) {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}
	line := func(cells []string) string {
		var b strings.Builder
		for i, cell := range cells {
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)+2))
		}
		return b.String()
	}

	fmt.Fprintln(out, s.header(line(header)+"ADMIN"))
	for i, entry := range entries {
		admin := "no"
		if entry.AdminOnly {
			admin = s.warn("yes")
		}
		fmt.Fprintln(out, line(rows[i])+admin)
	}
	fmt.Fprintln(out, s.dim(fmt.Sprintf("%d entries", len(entries))))
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newValidateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check a menu file for missing fields, duplicate ids and markup in titles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			s := newStyles(out)

			menu, err := root.load()
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), s.errPrefix(), err)
				return fmt.Errorf("menu is invalid")
			}

			admins := 0
			for _, entry := range menu.All() {
				if entry.AdminOnly {
					admins++
				}
			}

			source := root.file
			if source == "" {
				source = "built-in"
			}
			fmt.Fprintln(out, s.success("menu is valid"))
			fmt.Fprintln(out, s.kv("Source", source))
			fmt.Fprintln(out, s.kv("Entries", fmt.Sprint(menu.Len())))
			fmt.Fprintln(out, s.kv("Admin only", fmt.Sprint(admins)))
			fmt.Fprintln(out, s.kv("IDs", strings.Join(menu.IDs(), ", ")))
			return nil
		},
	}
}

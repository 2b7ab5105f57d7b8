package main

import (
	"github.com/spf13/cobra"

	"toolbox-backend/pkg/navigation"
)

type rootOptions struct {
	file string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "menuctl",
		Short:         "Inspect and validate toolbox navigation menus",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.file, "file", "f", "", "menu file (.json, .yaml); built-in menu when empty")

	cmd.AddCommand(newValidateCmd(opts))
	cmd.AddCommand(newShowCmd(opts))
	return cmd
}

func (o *rootOptions) load() (*navigation.Config, error) {
	if o.file == "" {
		return navigation.Default(), nil
	}
	return navigation.LoadFile(o.file)
}

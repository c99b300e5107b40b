package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/assertgen/format"
)

func newDumpCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <class|file|dir|jar>...",
		Short: "Dump the class model read from class files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := format.NewModel(a.cfg.Format, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			in, err := a.resolve(args)
			if err != nil {
				return err
			}
			defer in.Close()

			for _, name := range in.names {
				model, err := in.provider.Lookup(name)
				if err != nil {
					return err
				}
				if err := enc.Encode(model); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringP("format", "f", "line", "output format (json, yaml, line)")

	return cmd
}

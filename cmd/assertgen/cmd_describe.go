package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/assertgen/format"
)

func newDescribeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe <class|file|dir|jar>...",
		Short: "Print the getters and public fields of classes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := format.New(a.cfg.Format, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			in, err := a.resolve(args)
			if err != nil {
				return err
			}
			defer in.Close()

			descs, err := a.converter(in.provider).ConvertAll(cmd.Context(), in.names, a.cfg.Workers)
			if err != nil {
				return err
			}
			for _, desc := range descs {
				if err := enc.Encode(desc); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringP("format", "f", "line", "output format (json, yaml, line)")

	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/assertgen/generate"
)

func newGenerateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <class|file|dir|jar>...",
		Short: "Write an assertion class for every class",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := a.resolve(args)
			if err != nil {
				return err
			}
			defer in.Close()

			descs, err := a.converter(in.provider).ConvertAll(cmd.Context(), in.names, a.cfg.Workers)
			if err != nil {
				return err
			}

			g := &generate.Generator{
				OutputDir:   a.cfg.Output.Dir,
				BasePackage: a.cfg.Output.Package,
			}
			for _, desc := range descs {
				path, err := g.WriteFile(desc)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			newReporter(cmd.ErrOrStderr(), false).Success("generated %d assertion classes in %s", len(descs), g.OutputDir)
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "generated-assertions", "directory the assertion sources are written to")
	cmd.Flags().StringP("package", "p", "", "package of the assertion classes (default: package of each class)")

	return cmd
}

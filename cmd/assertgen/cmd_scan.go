package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/assertgen/classpath"
)

func newScanCmd(a *app) *cobra.Command {
	var keepGoing bool

	cmd := &cobra.Command{
		Use:   "scan <path>...",
		Short: "List the classes in directories, jars or class files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := newReporter(cmd.ErrOrStderr(), a.verbosity > 1)
			total, failed := 0, 0
			for _, path := range args {
				names, err := classpath.Discover(path)
				if err != nil {
					if !keepGoing {
						return err
					}
					r.Warn(err)
					failed++
					continue
				}
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				total += len(names)
			}
			r.Success("%d classes in %d paths", total, len(args)-failed)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&keepGoing, "keep-going", "k", false, "report unreadable paths and continue")

	return cmd
}

package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/assertgen/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	a := &app{}
	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		newReporter(stderr, a.verbosity > 1).Error(err)
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "assertgen",
		Short: "Describe compiled Java classes and generate assertions for them",
		Long: `assertgen reads compiled classes from directories, jars and .class files
and reports the properties an assertion class would check: getters, public
fields and the element types of arrays and iterables.

Arguments are binary class names looked up on the classpath, .class files,
directories or jars. Directories and jars contribute every class they hold.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			commonlog.Configure(a.verbosity, nil)
			v, err := config.New(a.configFile)
			if err != nil {
				return err
			}
			if err := config.BindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			a.cfg, err = config.Load(v)
			return err
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringSliceP("classpath", "c", nil, "classpath entries: directories, .jar or .zip files")
	flags.StringSlice("skip-annotation", nil, "annotation excluding a member (replaces the default)")
	flags.Int("workers", 0, "parallel conversions, 0 for one per CPU")
	flags.StringVar(&a.configFile, "config", "", "configuration file (default: nearest "+config.FileName+")")
	flags.CountVarP(&a.verbosity, "verbose", "v", "log more, repeat for debug output")

	rootCmd.AddCommand(newDescribeCmd(a))
	rootCmd.AddCommand(newGenerateCmd(a))
	rootCmd.AddCommand(newDumpCmd(a))
	rootCmd.AddCommand(newScanCmd(a))

	return rootCmd
}

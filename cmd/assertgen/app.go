package main

import (
	"os"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/dhamidi/assertgen/classpath"
	"github.com/dhamidi/assertgen/config"
	"github.com/dhamidi/assertgen/converter"
	"github.com/dhamidi/assertgen/java"
)

type app struct {
	configFile string
	verbosity  int
	cfg        *config.Config
}

// inputs is the resolved form of the command line arguments.
type inputs struct {
	names    []string
	provider classpath.Provider
	cp       *classpath.Classpath
}

func (in *inputs) Close() error {
	return in.cp.Close()
}

// resolve turns arguments into class names and a provider able to load
// them. A .class file is read directly and its package root, when it has
// one, joins the classpath so that its supertypes resolve. Directories and
// jars join the classpath and contribute all of their classes. Anything
// else is taken to be a class name.
func (a *app) resolve(args []string) (*inputs, error) {
	if len(args) == 0 {
		return nil, errors.WithHint(errors.New("no classes given"),
			"pass class names, .class files, directories or jars")
	}

	entries := slices.Clone(a.cfg.Classpath)
	memory := classpath.NewMemory()
	var names []string

	for _, arg := range args {
		switch {
		case strings.HasSuffix(arg, ".class"):
			model, err := java.ClassModelFromFile(arg)
			if err != nil {
				return nil, errors.Wrapf(err, "read %s", arg)
			}
			memory[model.Name] = model
			if root := classpath.ClassRoot(arg, model); root != "" {
				entries = appendUnique(entries, root)
			}
			names = append(names, model.Name)
		case isPath(arg):
			found, err := classpath.Discover(arg)
			if err != nil {
				return nil, err
			}
			entries = appendUnique(entries, arg)
			names = append(names, found...)
		default:
			names = append(names, classpath.NormalizeName(arg))
		}
	}

	cp, err := classpath.New(entries...)
	if err != nil {
		return nil, err
	}
	return &inputs{
		names:    names,
		provider: classpath.Chain{memory, cp},
		cp:       cp,
	}, nil
}

func (a *app) converter(provider classpath.Provider) *converter.Converter {
	var opts []converter.Option
	if len(a.cfg.SkipAnnotations) > 0 {
		opts = append(opts, converter.WithSkipAnnotations(a.cfg.SkipAnnotations...))
	}
	return converter.New(provider, opts...)
}

func isPath(arg string) bool {
	if strings.HasSuffix(arg, ".jar") || strings.HasSuffix(arg, ".zip") {
		return true
	}
	info, err := os.Stat(arg)
	return err == nil && info.IsDir()
}

func appendUnique(entries []string, entry string) []string {
	if slices.Contains(entries, entry) {
		return entries
	}
	return append(entries, entry)
}

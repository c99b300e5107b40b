// Package config loads assertgen settings from assertgen.toml, ASSERTGEN_*
// environment variables and command line flags, in increasing precedence.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/assertgen/converter"
)

var log = commonlog.GetLogger("assertgen.config")

// FileName is the project configuration file searched for by Find.
const FileName = "assertgen.toml"

const envPrefix = "ASSERTGEN"

type Config struct {
	Classpath       []string `mapstructure:"classpath"`
	SkipAnnotations []string `mapstructure:"skip_annotations"`
	Format          string   `mapstructure:"format"`
	Workers         int      `mapstructure:"workers"`
	Output          Output   `mapstructure:"output"`

	// File is the configuration file that was read, if any.
	File string `mapstructure:"-"`
}

type Output struct {
	Dir     string `mapstructure:"dir"`
	Package string `mapstructure:"package"`
}

// flagKeys maps command line flag names to configuration keys.
var flagKeys = map[string]string{
	"classpath":       "classpath",
	"skip-annotation": "skip_annotations",
	"format":          "format",
	"workers":         "workers",
	"output":          "output.dir",
	"package":         "output.package",
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("classpath", []string{})
	v.SetDefault("skip_annotations", []string{converter.DefaultSkipAnnotation})
	v.SetDefault("format", "line")
	// Zero means one worker per CPU.
	v.SetDefault("workers", 0)
	v.SetDefault("output.dir", "generated-assertions")
	v.SetDefault("output.package", "")
}

// New builds a viper instance with defaults and environment binding. When
// file is empty the nearest assertgen.toml above the working directory is
// used, if there is one.
func New(file string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if file == "" {
		if wd, err := os.Getwd(); err == nil {
			file = Find(wd)
		}
		if file == "" {
			return v, nil
		}
	}

	v.SetConfigFile(file)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "read config %s", file)
	}
	log.Debug("read config", "file", file)
	return v, nil
}

// Find walks up from dir looking for assertgen.toml.
func Find(dir string) string {
	for {
		path := filepath.Join(dir, FileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// BindFlags lets explicitly set flags override file and environment values.
// Flags missing from fs are ignored.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := fs.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return errors.Wrapf(err, "bind flag --%s", name)
		}
	}
	return nil
}

func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	cfg.File = v.ConfigFileUsed()
	cfg.Classpath = splitPaths(cfg.Classpath)
	return &cfg, nil
}

// splitPaths expands entries written as a path list, such as a.jar:b.jar.
func splitPaths(entries []string) []string {
	var paths []string
	for _, entry := range entries {
		for _, p := range filepath.SplitList(entry) {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			paths = append(paths, p)
		}
	}
	return paths
}

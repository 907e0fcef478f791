// Command sqlriver reads SQL from stdin or a file, pretty-prints it with
// river-style layout, and writes the result to stdout.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/juju/errors"
	"github.com/k0kubun/pp/v3"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/freeeve/sqlriver"
)

var version = "dev"

type cliOptions struct {
	Dialect       string `short:"d" long:"dialect" description:"SQL dialect (ansi, postgres, mysql, tsql, oracle, sqlite, snowflake, bigquery, exasol, db2)" default:"ansi"`
	MaxLineLength int    `long:"max-line-length" description:"soft line-length budget for river layout" default:"88"`
	Indent        string `long:"indent" description:"indentation unit" default:"  "`
	Lower         bool   `long:"lower" description:"emit keywords in lowercase"`
	Recover       bool   `long:"recover" description:"pass failing statements through verbatim instead of aborting"`
	Config        string `long:"config" description:"YAML config file (its values apply wherever a flag holds its default value)" value-name:"path"`
	DebugAST      bool     `long:"debug-ast" description:"dump the parsed AST instead of formatting"`
	Verbose       bool     `short:"v" long:"verbose" description:"log parse/format diagnostics to stderr"`
	Files         []string `long:"file" description:"read SQL from these files instead of stdin" value-name:"path"`
}

// fileConfig mirrors the subset of cliOptions that may be set from a
// .sqlriver.yml config file, loaded before flag parsing overrides apply.
type fileConfig struct {
	Dialect       string `yaml:"dialect"`
	MaxLineLength int    `yaml:"maxLineLength"`
	Indent        string `yaml:"indent"`
	Lower         bool   `yaml:"lower"`
	Recover       bool   `yaml:"recover"`
}

var dialectNames = map[string]sqlriver.Dialect{
	"ansi":      sqlriver.ANSI,
	"postgres":  sqlriver.Postgres,
	"mysql":     sqlriver.MySQL,
	"tsql":      sqlriver.TSQL,
	"oracle":    sqlriver.Oracle,
	"sqlite":    sqlriver.SQLite,
	"snowflake": sqlriver.Snowflake,
	"bigquery":  sqlriver.BigQuery,
	"exasol":    sqlriver.Exasol,
	"db2":       sqlriver.DB2,
}

func loadFileConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Annotatef(err, "reading config %q", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Annotatef(err, "parsing config %q", path)
	}
	return cfg, nil
}

func buildOptions(opts cliOptions, cfg fileConfig) (sqlriver.Options, error) {
	out := sqlriver.DefaultOptions()

	dialectName := opts.Dialect
	if dialectName == "" || dialectName == "ansi" {
		if cfg.Dialect != "" {
			dialectName = cfg.Dialect
		}
	}
	d, ok := dialectNames[dialectName]
	if !ok {
		return out, errors.Errorf("unknown dialect %q", dialectName)
	}
	out.Dialect = d

	out.MaxLineLength = opts.MaxLineLength
	if opts.MaxLineLength == 88 && cfg.MaxLineLength != 0 {
		out.MaxLineLength = cfg.MaxLineLength
	}

	out.Indent = opts.Indent
	if opts.Indent == "  " && cfg.Indent != "" {
		out.Indent = cfg.Indent
	}

	if opts.Lower || cfg.Lower {
		out.KeywordCase = sqlriver.KeywordCaseLower
	}
	if opts.Recover || cfg.Recover {
		out.Recover = true
		out.OnRecover = func(err error, source string) {
			logrus.WithError(err).Warnf("passed statement through unparsed: %s", source)
		}
	}

	return out, nil
}

func readInput(files []string) (string, error) {
	if len(files) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", errors.Annotate(err, "reading stdin")
		}
		return string(data), nil
	}
	var all []byte
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return "", errors.Annotatef(err, "reading %q", f)
		}
		all = append(all, data...)
		all = append(all, ';', '\n')
	}
	return string(all), nil
}

func run(args []string) error {
	var opts cliOptions
	parser := flags.NewParser(&opts, flags.Default)
	parser.Usage = "[options]"
	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return nil
		}
		return err
	}

	if opts.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}

	configPath := opts.Config
	if configPath == "" {
		configPath = ".sqlriver.yml"
	}
	cfg, err := loadFileConfig(configPath)
	if err != nil {
		return err
	}

	sqlOpts, err := buildOptions(opts, cfg)
	if err != nil {
		return err
	}

	source, err := readInput(opts.Files)
	if err != nil {
		return err
	}

	if opts.DebugAST {
		stmts, err := sqlriver.ParseAll(source, sqlOpts)
		if err != nil {
			return errors.Annotate(err, "parsing")
		}
		for _, stmt := range stmts {
			pp.Println(stmt)
		}
		return nil
	}

	logrus.WithField("dialect", sqlOpts.Dialect).Debug("formatting")
	out, err := sqlriver.Format(source, sqlOpts)
	if err != nil {
		return errors.Annotate(err, "formatting")
	}
	fmt.Print(out)
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

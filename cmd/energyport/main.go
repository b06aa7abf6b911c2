// Command energyport translates building energy model documents into the
// simulation engine's object model, saves the result under a key and reads
// it back out again.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"energyport/internal/blob"
	"energyport/internal/config"
	"energyport/internal/core"
	"energyport/internal/platform/logger"
	"energyport/internal/schema"
	"energyport/internal/validation"
	"energyport/pkg/domain"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

var exitFunc = os.Exit

type command struct {
	summary string
	run     func(a *app, args []string) int
}

var commands = map[string]command{
	"translate":       {"translate a model document and save it under a key", (*app).translate},
	"extract":         {"rebuild a model document from a saved model", (*app).extract},
	"simulate-params": {"apply simulation parameters to a saved model", (*app).simulateParams},
	"validate":        {"check documents against the schema catalogue", (*app).validate},
	"models":          {"list saved model keys", (*app).models},
	"delete":          {"remove a saved model", (*app).deleteModel},
}

type app struct {
	cfg     config.Config
	log     *logger.Logger
	metrics *core.PrometheusRecorder
	stdout  io.Writer
	stderr  io.Writer
}

// main runs the command-line interface and exits with the status code
// returned by cli.
func main() {
	exitFunc(cli(os.Args[1:], os.Stdout, os.Stderr))
}

func cli(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("energyport", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(fs, stderr) }
	configPath := fs.String("config", "", "path to a YAML config file (default $"+config.EnvConfigFile+")")
	logLevel := fs.String("log-level", "", "override the configured log level")
	metricsFile := fs.String("metrics-file", "", "write Prometheus textfile metrics to this path on exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}
	cmd, ok := commands[fs.Arg(0)]
	if !ok {
		_, _ = fmt.Fprintf(stderr, "energyport: unknown command %q\n", fs.Arg(0))
		fs.Usage()
		return exitUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "energyport: %v\n", err)
		return exitFailure
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *metricsFile != "" {
		cfg.Metrics.Textfile = *metricsFile
	}
	log, err := logger.New(cfg.Log.Mode, cfg.Log.Level, stderr)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "energyport: %v\n", err)
		return exitUsage
	}
	defer log.Sync()

	a := &app{cfg: cfg, log: log, metrics: core.NewPrometheusRecorder(), stdout: stdout, stderr: stderr}
	code := cmd.run(a, fs.Args()[1:])
	if path := cfg.Metrics.Textfile; path != "" {
		if err := a.metrics.WriteTextfile(path); err != nil {
			log.Error("write metrics textfile", "path", path, "error", err)
			if code == exitOK {
				code = exitFailure
			}
		}
	}
	return code
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	_, _ = fmt.Fprintln(w, "usage: energyport [flags] <command> [command flags]")
	_, _ = fmt.Fprintln(w, "\ncommands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		_, _ = fmt.Fprintf(w, "  %-16s %s\n", name, commands[name].summary)
	}
	_, _ = fmt.Fprintln(w, "\nflags:")
	fs.PrintDefaults()
}

func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("energyport "+name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

func (a *app) fail(err error) int {
	_, _ = fmt.Fprintf(a.stderr, "energyport: %v\n", err)
	return exitFailure
}

func (a *app) usage(fs *flag.FlagSet, msg string) int {
	_, _ = fmt.Fprintf(a.stderr, "energyport: %s\n", msg)
	fs.PrintDefaults()
	return exitUsage
}

func (a *app) defaults() (*schema.Defaults, error) {
	if len(a.cfg.Schema.Paths) == 0 {
		return schema.LoadEmbedded()
	}
	return schema.LoadFiles(a.cfg.Schema.Paths...)
}

func (a *app) catalogue() (*validation.Catalogue, error) {
	if len(a.cfg.Schema.Paths) == 0 {
		return validation.EmbeddedCatalogue()
	}
	return validation.LoadCatalogue(a.cfg.Schema.Paths...)
}

// service wires the configured stores and observers. The blob store is only
// opened when a command reads or writes blobs.
func (a *app) service(ctx context.Context, withBlobs bool) (*core.Service, error) {
	defs, err := a.defaults()
	if err != nil {
		return nil, err
	}
	store, err := a.cfg.OpenModelStore(ctx)
	if err != nil {
		return nil, err
	}
	opts := []core.ServiceOption{
		core.WithLogger(a.log),
		core.WithMetricsRecorder(a.metrics),
		core.WithModelStore(store),
	}
	if withBlobs {
		blobs, err := a.cfg.OpenBlobStore(ctx)
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		opts = append(opts, core.WithBlobStore(blobs))
	}
	svc, err := core.NewService(defs, opts...)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return svc, nil
}

func (a *app) reportWarnings(res domain.Result) {
	for _, issue := range res.Warnings() {
		_, _ = fmt.Fprintf(a.stderr, "warning: %s\n", issue)
	}
}

// checkDocument validates raw document bytes and prints every violation.
func (a *app) checkDocument(name string, data []byte) (bool, error) {
	cat, err := a.catalogue()
	if err != nil {
		return false, err
	}
	errs := cat.ValidateDocument(data)
	for _, e := range errs {
		if e.File == "" {
			e.File = name
		}
		_, _ = fmt.Fprintln(a.stderr, e.String())
	}
	return len(errs) == 0, nil
}

func (a *app) translate(args []string) int {
	fs := a.flags("translate")
	in := fs.String("in", "", "model document to translate")
	blobKey := fs.String("blob", "", "read the model document from this blob key instead of -in")
	key := fs.String("key", "", "key to save the model under (default: file name without extension)")
	out := fs.String("out", "", "also write the translated object snapshot to this path")
	check := fs.Bool("validate", a.cfg.Schema.Validate, "validate the document against the schema catalogue first")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if (*in == "") == (*blobKey == "") {
		return a.usage(fs, "translate needs exactly one of -in or -blob")
	}
	source := *in
	if source == "" {
		source = *blobKey
	}
	if *key == "" {
		*key = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	}

	ctx := context.Background()
	svc, err := a.service(ctx, *blobKey != "")
	if err != nil {
		return a.fail(err)
	}
	defer func() { _ = svc.Close() }()

	var data []byte
	if *in != "" {
		// #nosec G304 -- document paths are supplied by the operator
		if data, err = os.ReadFile(*in); err != nil {
			return a.fail(fmt.Errorf("read document: %w", err))
		}
	} else if *check {
		if data, _, err = blob.ReadDocument(ctx, svc.Blobs(), *blobKey); err != nil {
			return a.fail(err)
		}
	}
	if *check {
		ok, err := a.checkDocument(source, data)
		if err != nil {
			return a.fail(err)
		}
		if !ok {
			return a.fail(fmt.Errorf("%s does not match the schema", source))
		}
	}

	var res domain.Result
	if *in != "" {
		doc, err := domain.DecodeModel(data)
		if err != nil {
			return a.fail(fmt.Errorf("%s: %w", source, err))
		}
		res, err = svc.TranslateAndSave(ctx, *key, doc)
		if err != nil {
			return a.fail(err)
		}
	} else if res, err = svc.TranslateBlob(ctx, *blobKey, *key); err != nil {
		return a.fail(err)
	}
	a.reportWarnings(res)

	if *out != "" {
		if err := writeSnapshot(ctx, svc, *key, *out); err != nil {
			return a.fail(err)
		}
	}
	_, _ = fmt.Fprintf(a.stdout, "translated %s into model %q (%d warnings)\n", source, *key, len(res.Warnings()))
	return exitOK
}

func writeSnapshot(ctx context.Context, svc *core.Service, key, path string) error {
	model, err := svc.LoadModel(ctx, key)
	if err != nil {
		return err
	}
	snap, err := model.Export()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create snapshot directory: %w", err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func (a *app) extract(args []string) int {
	fs := a.flags("extract")
	key := fs.String("key", "", "saved model to extract")
	out := fs.String("out", "", "write the document to this path instead of stdout")
	blobKey := fs.String("blob", "", "write the document to this blob key instead of stdout")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *key == "" {
		return a.usage(fs, "extract needs -key")
	}
	if *out != "" && *blobKey != "" {
		return a.usage(fs, "extract takes at most one of -out or -blob")
	}

	ctx := context.Background()
	svc, err := a.service(ctx, *blobKey != "")
	if err != nil {
		return a.fail(err)
	}
	defer func() { _ = svc.Close() }()

	if *blobKey != "" {
		res, err := svc.ExtractToBlob(ctx, *key, *blobKey)
		if err != nil {
			return a.fail(err)
		}
		a.reportWarnings(res)
		_, _ = fmt.Fprintf(a.stdout, "extracted model %q to blob %s\n", *key, *blobKey)
		return exitOK
	}

	doc, res, err := svc.Extract(ctx, *key)
	if err != nil {
		return a.fail(err)
	}
	a.reportWarnings(res)
	if *out != "" {
		if err := core.WriteModel(*out, doc); err != nil {
			return a.fail(err)
		}
		_, _ = fmt.Fprintf(a.stdout, "extracted model %q to %s\n", *key, *out)
		return exitOK
	}
	data, err := core.EncodeModel(doc)
	if err != nil {
		return a.fail(err)
	}
	if _, err := a.stdout.Write(data); err != nil {
		return a.fail(err)
	}
	return exitOK
}

func (a *app) simulateParams(args []string) int {
	fs := a.flags("simulate-params")
	key := fs.String("key", "", "saved model to update")
	in := fs.String("in", "", "simulation parameter document")
	blobKey := fs.String("blob", "", "read the simulation parameter document from this blob key instead of -in")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *key == "" {
		return a.usage(fs, "simulate-params needs -key")
	}
	if (*in == "") == (*blobKey == "") {
		return a.usage(fs, "simulate-params needs exactly one of -in or -blob")
	}

	ctx := context.Background()
	svc, err := a.service(ctx, *blobKey != "")
	if err != nil {
		return a.fail(err)
	}
	defer func() { _ = svc.Close() }()

	var doc *domain.SimulationParameter
	if *in != "" {
		doc, err = core.ReadSimulationParameter(*in)
	} else {
		doc, err = core.ReadSimulationParameterBlob(ctx, svc.Blobs(), *blobKey)
	}
	if err != nil {
		return a.fail(err)
	}
	res, err := svc.ApplySimulationParameter(ctx, *key, doc)
	if err != nil {
		return a.fail(err)
	}
	a.reportWarnings(res)
	_, _ = fmt.Fprintf(a.stdout, "applied simulation parameters to model %q (%d warnings)\n", *key, len(res.Warnings()))
	return exitOK
}

func (a *app) validate(args []string) int {
	fs := a.flags("validate")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() == 0 {
		return a.usage(fs, "validate needs at least one file or directory")
	}
	cat, err := a.catalogue()
	if err != nil {
		return a.fail(err)
	}

	var errs []validation.Error
	for _, path := range fs.Args() {
		if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
			errs = append(errs, cat.ValidateDirectory(path)...)
			continue
		}
		errs = append(errs, cat.ValidateFile(path)...)
	}
	for _, e := range errs {
		_, _ = fmt.Fprintln(a.stdout, e.String())
	}
	if len(errs) > 0 {
		_, _ = fmt.Fprintf(a.stderr, "energyport: %d schema violations\n", len(errs))
		return exitFailure
	}
	_, _ = fmt.Fprintln(a.stdout, "all documents valid")
	return exitOK
}

func (a *app) models(args []string) int {
	fs := a.flags("models")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	ctx := context.Background()
	svc, err := a.service(ctx, false)
	if err != nil {
		return a.fail(err)
	}
	defer func() { _ = svc.Close() }()

	keys, err := svc.Models(ctx)
	if err != nil {
		return a.fail(err)
	}
	for _, key := range keys {
		_, _ = fmt.Fprintln(a.stdout, key)
	}
	return exitOK
}

func (a *app) deleteModel(args []string) int {
	fs := a.flags("delete")
	key := fs.String("key", "", "saved model to remove")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *key == "" {
		return a.usage(fs, "delete needs -key")
	}
	ctx := context.Background()
	svc, err := a.service(ctx, false)
	if err != nil {
		return a.fail(err)
	}
	defer func() { _ = svc.Close() }()

	existed, err := svc.DeleteModel(ctx, *key)
	if err != nil {
		return a.fail(err)
	}
	if !existed {
		return a.fail(fmt.Errorf("no model %q", *key))
	}
	_, _ = fmt.Fprintf(a.stdout, "deleted model %q\n", *key)
	return exitOK
}

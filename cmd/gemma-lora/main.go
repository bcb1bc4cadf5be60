// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Command gemma-lora prepares PubMedQA-style datasets for LoRA tuning of Gemma models and
// submits the tuning job.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/go-a2a/gemma-lora/artifact"
	"github.com/go-a2a/gemma-lora/dataset"
	"github.com/go-a2a/gemma-lora/pkg/logging"
	"github.com/go-a2a/gemma-lora/tuning"
)

var usage = heredoc.Doc(`
	Usage: gemma-lora [-log-level level] [-log-format text|json] <command> [flags]

	Commands:
	  convert  reformat a nested QA JSON file into prompt/completion JSONL
	  verify   check a JSONL file against the formatted example schema
	  schema   print the JSON Schema of a formatted example
	  tune     submit a LoRA tuning job described by a JSON config

	Run "gemma-lora <command> -h" for the flags of a command.
`)

// errUsage reports a command line that cannot be run. The usage has already been printed.
var errUsage = errors.New("usage error")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "gemma-lora: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("gemma-lora", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	logLevel := fs.String("log-level", "info", "minimum log level (debug, info, warn, error)")
	logFormat := fs.String("log-format", string(logging.FormatText), "log format (text, json)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return errUsage
	}

	level, err := logging.ParseLevel(*logLevel)
	if err != nil {
		return err
	}
	logger, err := logging.New(stderr, level, logging.Format(*logFormat))
	if err != nil {
		return err
	}
	ctx = logging.NewContext(ctx, logger)

	if fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "convert":
		return runConvert(ctx, rest, stdout, stderr)
	case "verify":
		return runVerify(ctx, rest, stdout, stderr)
	case "schema":
		return runSchema(stdout)
	case "tune":
		return runTune(ctx, rest, stdout, stderr)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", cmd)
		fs.Usage()
		return errUsage
	}
}

// splitFlags collects repeated -split values.
type splitFlags []dataset.Split

func (s *splitFlags) String() string {
	names := make([]string, len(*s))
	for i, sp := range *s {
		names[i] = sp.Name
	}
	return strings.Join(names, ",")
}

func (s *splitFlags) Set(v string) error {
	sp, err := dataset.ParseSplit(v)
	if err != nil {
		return err
	}
	*s = append(*s, sp)
	return nil
}

func runConvert(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(stderr)
	in := fs.String("in", "", "source JSON file")
	out := fs.String("out", "", "destination JSONL file")
	answerField := fs.String("answer-field", "", "record member holding the answer label")
	mismatch := fs.String("mismatch", dataset.MismatchError.String(), "context/label length mismatch policy (error, truncate)")
	publish := fs.String("publish", "", "gs://bucket/prefix to upload the outputs to")
	var splits splitFlags
	fs.Var(&splits, "split", "name=src:dst split to convert, repeatable")
	if err := fs.Parse(args); err != nil {
		return flagErr(err)
	}

	switch {
	case len(splits) == 0 && (*in == "" || *out == ""):
		fmt.Fprintln(stderr, "convert: -in and -out, or at least one -split, are required")
		return errUsage
	case len(splits) > 0 && (*in != "" || *out != ""):
		fmt.Fprintln(stderr, "convert: -split cannot be combined with -in or -out")
		return errUsage
	}
	if len(splits) == 0 {
		splits = append(splits, dataset.Split{Name: "data", Source: *in, Output: *out})
	}

	policy, err := dataset.ParseMismatchPolicy(*mismatch)
	if err != nil {
		return err
	}
	opts := []dataset.Option{
		dataset.WithMismatchPolicy(policy),
		dataset.WithLogger(logging.FromContext(ctx)),
	}
	if *answerField != "" {
		opts = append(opts, dataset.WithAnswerField(*answerField))
	}

	results, err := dataset.New(opts...).ReformatSplits(ctx, splits)
	if err != nil {
		return err
	}
	for _, res := range results {
		fmt.Fprintf(stdout, "%s\t%d\t%s\n", res.Split.Name, res.Records, res.Split.Output)
	}

	if *publish == "" {
		return nil
	}
	store, err := artifact.NewGCSStore(ctx, *publish)
	if err != nil {
		return err
	}
	defer store.Close()

	published, err := artifact.PublishSplits(ctx, store, results)
	if err != nil {
		return err
	}
	for _, p := range published {
		fmt.Fprintf(stdout, "%s\t%s\n", p.Split, p.URI)
	}
	return nil
}

func runVerify(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(stderr)
	in := fs.String("in", "", "JSONL file to verify")
	if err := fs.Parse(args); err != nil {
		return flagErr(err)
	}
	if *in == "" {
		fmt.Fprintln(stderr, "verify: -in is required")
		return errUsage
	}

	report, err := dataset.Verify(ctx, *in, "")
	if err != nil {
		return err
	}
	return writeJSON(stdout, report)
}

func runSchema(stdout io.Writer) error {
	schema, err := dataset.Schema()
	if err != nil {
		return err
	}
	if _, err := stdout.Write(schema); err != nil {
		return err
	}
	_, err = io.WriteString(stdout, "\n")
	return err
}

func runTune(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("tune", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "tuning config JSON file")
	project := fs.String("project", "", "Google Cloud project; selects the Vertex AI backend")
	location := fs.String("location", "us-central1", "Vertex AI location")
	wait := fs.Bool("wait", false, "wait for the job to reach a terminal state")
	interval := fs.Duration("poll-interval", tuning.DefaultPollInterval, "job state polling interval with -wait")
	if err := fs.Parse(args); err != nil {
		return flagErr(err)
	}
	if *configPath == "" {
		fmt.Fprintln(stderr, "tune: -config is required")
		return errUsage
	}

	cfg, err := tuning.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	loc := *location
	if *project == "" {
		loc = ""
	}
	svc, err := tuning.NewService(ctx, *project, loc, tuning.WithLogger(logging.FromContext(ctx)))
	if err != nil {
		return err
	}

	job, err := svc.Submit(ctx, cfg)
	if err != nil {
		return err
	}
	if *wait {
		job, err = svc.Wait(ctx, job.Name, *interval)
		if err != nil && job == nil {
			return err
		}
		if err != nil {
			logging.FromContext(ctx).ErrorContext(ctx, "tuning job did not succeed", slog.String("error", err.Error()))
		}
	}

	if werr := writeJSON(stdout, job); werr != nil {
		return werr
	}
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := jsontext.NewEncoder(w, jsontext.WithIndent("  "))
	return json.MarshalEncode(enc, v)
}

func flagErr(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return errUsage
}

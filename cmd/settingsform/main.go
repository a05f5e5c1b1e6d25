package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-settingsform/components/timezones"
	"github.com/goliatone/go-settingsform/pkg/form"
	"github.com/goliatone/go-settingsform/pkg/i18n"
	"github.com/goliatone/go-settingsform/pkg/openapi"
	"github.com/goliatone/go-settingsform/pkg/orchestrator"
	"github.com/goliatone/go-settingsform/pkg/settings"
	"github.com/goliatone/go-settingsform/pkg/validation"
	"github.com/goliatone/go-settingsform/pkg/widgets"
)

var (
	errCheckFailed      = errors.New("schema check failed")
	errValidationFailed = errors.New("settings record is invalid")
)

func main() {
	var args Args
	arg.MustParse(&args)

	logger := newLogger(args.Verbose)
	defer func() { _ = logger.Sync() }()

	if err := run(context.Background(), args, os.Stdout, logger); err != nil {
		if !errors.Is(err, errCheckFailed) && !errors.Is(err, errValidationFailed) {
			logger.Error("settingsform failed", zap.Error(err))
		}
		os.Exit(1)
	}
}

func newLogger(verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}
	logger, err := config.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func run(ctx context.Context, args Args, stdout io.Writer, logger *zap.Logger) error {
	schemaDir, schemaName := splitPath(args.Schema)
	options := []orchestrator.Option{
		orchestrator.WithLogger(logger),
		orchestrator.WithSchemaFS(os.DirFS(schemaDir)),
		orchestrator.WithFormName(args.Name),
		orchestrator.WithDecorators(widgets.NewRegistry()),
	}
	if args.Zones || len(args.Regions) > 0 {
		zones, err := timezones.NewDecorator(timezones.WithRegions(args.Regions...))
		if err != nil {
			return err
		}
		options = append(options, orchestrator.WithDecorators(zones))
	}
	if args.Preset != "" {
		dir, name := splitPath(args.Preset)
		preset, err := orchestrator.NewPresetTransformerFromFS(os.DirFS(dir), name)
		if err != nil {
			return err
		}
		options = append(options, orchestrator.WithTransformer(preset))
	}
	orch := orchestrator.New(options...)

	if args.Check {
		return check(ctx, orch, schemaName, stdout)
	}

	if strings.TrimSpace(args.Data) == "" {
		return errors.New("--data is required unless --check is set")
	}
	raw, err := os.ReadFile(args.Data)
	if err != nil {
		return fmt.Errorf("read data: %w", err)
	}
	data, err := settings.LoadData(raw)
	if err != nil {
		return err
	}

	f, err := orch.Generate(ctx, orchestrator.Request{
		SchemaPath: schemaName,
		Data:       data,
		Disabled:   settings.NewDisabled(args.DisabledNames()...),
	})
	if err != nil {
		return err
	}

	if args.Validate {
		return validate(f, data, stdout)
	}

	if args.Locale != "" {
		if err := localize(f, args.Locale, args.Catalog); err != nil {
			return err
		}
	}

	payload, err := encode(ctx, f, args.Format)
	if err != nil {
		return err
	}
	if args.Output != "" {
		if err := os.WriteFile(args.Output, payload, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		logger.Info("form written", zap.String("path", args.Output))
		return nil
	}
	_, err = stdout.Write(payload)
	return err
}

func check(ctx context.Context, orch *orchestrator.Orchestrator, schemaName string, stdout io.Writer) error {
	err := orch.Check(ctx, orchestrator.Request{SchemaPath: schemaName})
	if err == nil {
		fmt.Fprintln(stdout, "ok")
		return nil
	}
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		return err
	}
	for _, problem := range merr.Errors {
		fmt.Fprintln(stdout, problem)
	}
	return errCheckFailed
}

func validate(f *form.Form, data settings.Data, stdout io.Writer) error {
	result := validation.ValidateForm(f, data)
	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode validation result: %w", err)
	}
	if _, err := fmt.Fprintln(stdout, string(payload)); err != nil {
		return err
	}
	if !result.Valid {
		return errValidationFailed
	}
	return nil
}

func localize(f *form.Form, locale, catalogPath string) error {
	var translator i18n.Translator
	if catalogPath != "" {
		dir, name := splitPath(catalogPath)
		catalog, err := i18n.LoadCatalogFS(os.DirFS(dir), name)
		if err != nil {
			return err
		}
		translator = catalog
	}
	i18n.LocalizeForm(f, i18n.Options{Locale: locale, Translator: translator})
	return nil
}

func encode(ctx context.Context, f *form.Form, format string) ([]byte, error) {
	var value any
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatJSON:
		value = f
	case FormatOpenAPI:
		value = openapi.SchemaForForm(f)
	case FormatDocument:
		doc, err := openapi.Document(ctx, f, openapi.DocumentOptions{})
		if err != nil {
			return nil, err
		}
		value = doc
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}
	return append(payload, '\n'), nil
}

func splitPath(path string) (string, string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return filepath.Dir(abs), filepath.Base(abs)
}

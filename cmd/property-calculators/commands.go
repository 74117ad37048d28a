package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/iwvelando/property-calculators/internal/batch"
	"github.com/iwvelando/property-calculators/internal/calculator"
	"github.com/iwvelando/property-calculators/internal/config"
	"github.com/iwvelando/property-calculators/internal/engine"
	"github.com/iwvelando/property-calculators/internal/server"
	"github.com/iwvelando/property-calculators/internal/storage"
	"github.com/iwvelando/property-calculators/pkg/constants"
	"github.com/iwvelando/property-calculators/pkg/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available calculators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, release := a.registry()
			defer release()

			if a.outputFormat == constants.OutputFormatJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"calculators": reg.List()})
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, info := range reg.List() {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Name, info.Title, info.Description)
			}
			return tw.Flush()
		},
	}
}

func newCalculateCmd(a *app) *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "calculate <name>",
		Short: "Run a calculator over an input file (defaults when omitted)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			reg, release := a.registry()
			defer release()

			runner, err := reg.Get(args[0])
			if err != nil {
				return err
			}
			payload, format, err := readInput(input, cmd.InOrStdin())
			if err != nil {
				return err
			}

			result, err := runner.Calculate(ctx, payload, format)
			if err != nil {
				return err
			}
			a.archive(ctx, result)
			return output.Write(cmd.OutOrStdout(), result, a.outputFormat)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "input file (.yaml, .yml or .json); - reads stdin")
	return cmd
}

func newValidateCmd(a *app) *cobra.Command {
	var input, field, value string
	cmd := &cobra.Command{
		Use:   "validate <name>",
		Short: "Validate calculator inputs without calculating",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, release := a.registry()
			defer release()

			runner, err := reg.Get(args[0])
			if err != nil {
				return err
			}
			payload, format, err := readInput(input, cmd.InOrStdin())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if field != "" {
				res, err := runner.ValidateField(field, parseValue(value), payload, format)
				if err != nil {
					return err
				}
				if a.outputFormat == constants.OutputFormatJSON {
					if err := writeJSON(out, res); err != nil {
						return err
					}
				} else {
					printFieldResult(out, field, res)
				}
				if !res.IsValid {
					return fmt.Errorf("%s: %s", field, res.Error)
				}
				return nil
			}

			res, err := runner.Validate(payload, format)
			if err != nil {
				return err
			}
			if a.outputFormat == constants.OutputFormatJSON {
				if err := writeJSON(out, res); err != nil {
					return err
				}
			} else {
				printValidation(out, res)
			}
			if !res.IsValid {
				return fmt.Errorf("%d field(s) failed validation", len(res.Errors))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "input file (.yaml, .yml or .json); - reads stdin")
	cmd.Flags().StringVar(&field, "field", "", "validate only this field")
	cmd.Flags().StringVar(&value, "value", "", "candidate value for --field")
	return cmd
}

func newReportCmd(a *app) *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "report <name>",
		Short: "Print the markdown analysis report of a calculation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, release := a.registry()
			defer release()

			runner, err := reg.Get(args[0])
			if err != nil {
				return err
			}
			payload, format, err := readInput(input, cmd.InOrStdin())
			if err != nil {
				return err
			}
			report, err := runner.Report(payload, format)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), report)
			return err
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "input file (.yaml, .yml or .json); - reads stdin")
	return cmd
}

func newBatchCmd(a *app) *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run every job of a jobs file concurrently",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			payload, format, err := readInput(input, cmd.InOrStdin())
			if err != nil {
				return err
			}
			jobs, err := batch.ParseJobs(payload, format)
			if err != nil {
				return err
			}

			reg, release := a.registry()
			defer release()
			sink, err := a.sink(ctx)
			if err != nil {
				return err
			}
			defer closeSink(sink, a.logger)

			outcomes, err := batch.NewRunner(reg, a.conf.BatchConcurrency(), sink, a.logger).Run(ctx, jobs)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.outputFormat == constants.OutputFormatJSON {
				if err := writeJSON(out, map[string]any{"outcomes": outcomes}); err != nil {
					return err
				}
			} else {
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				for _, o := range outcomes {
					status := "ok"
					if o.Error != "" {
						status = o.Error
					}
					_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", o.ID, o.Calculator, status)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			}

			failed := 0
			for _, o := range outcomes {
				if o.Error != "" {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d jobs failed", failed, len(outcomes))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "jobs file (.yaml, .yml or .json); - reads stdin")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	var serverConfig, address string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := server.LoadConfig(serverConfig)
			if err != nil {
				return err
			}
			if address != "" {
				cfg.Address = address
			}
			logger := a.logger
			if cfg.Logging != (config.LoggingConfig{}) {
				if logger, err = initializeLogger(cfg.Logging, a.logLevel); err != nil {
					return fmt.Errorf("failed to initialize server logger: %w", err)
				}
				a.logger = logger
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			reg, release := a.registry()
			defer release()
			sink, err := a.sink(ctx)
			if err != nil {
				return err
			}
			defer closeSink(sink, logger)

			srv := &http.Server{
				Addr: cfg.Address,
				Handler: server.NewHandler(logger, reg, server.Options{
					MaxUploadSize:    cfg.UploadSizeBytes(),
					RequestTimeout:   cfg.Timeout(),
					BatchConcurrency: a.conf.BatchConcurrency(),
					Version:          version,
					Sink:             sink,
				}),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("server starting",
					zap.String("op", "main.serve"),
					zap.String("address", cfg.Address),
					zap.Int64("maxUploadSize", cfg.UploadSizeBytes()),
				)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server failed: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info("shutting down server", zap.String("op", "main.serve"))
			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.DefaultRequestTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("server forced to shutdown: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&serverConfig, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	cmd.Flags().StringVar(&address, "address", "", "listen address override")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "property-calculators %s (commit %s)\n", version, commit)
		},
	}
}

// archive saves a result to the configured sinks. Failures are logged, not returned.
func (a *app) archive(ctx context.Context, result *calculator.Result) {
	sink, err := a.sink(ctx)
	if err == nil {
		defer closeSink(sink, a.logger)
		var rec storage.Record
		if rec, err = storage.NewRecord(result, time.Now()); err == nil {
			err = sink.Save(ctx, rec)
		}
	}
	if err != nil {
		a.logger.Warn("failed to archive calculation",
			zap.String("op", "main.archive"),
			zap.String("calculator", result.Calculator),
			zap.Error(err),
		)
	}
}

func closeSink(sink storage.Sink, logger *zap.Logger) {
	if err := sink.Close(); err != nil {
		logger.Warn("failed to close report sink", zap.String("op", "main.closeSink"), zap.Error(err))
	}
}

// readInput loads a payload. An empty path means no payload; "-" reads stdin and
// treats anything not starting with '{' as YAML.
func readInput(path string, stdin io.Reader) ([]byte, calculator.Format, error) {
	switch path {
	case "":
		return nil, calculator.FormatJSON, nil
	case "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read stdin: %w", err)
		}
		if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
			return data, calculator.FormatJSON, nil
		}
		return data, calculator.FormatYAML, nil
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read input %s: %w", path, err)
		}
		return data, calculator.FormatFromPath(path), nil
	}
}

// parseValue interprets a --value flag as a number when it parses as one.
func parseValue(raw string) any {
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

func printValidation(w io.Writer, res engine.ValidationResult) {
	if res.IsValid {
		_, _ = fmt.Fprintln(w, "inputs are valid")
	}
	for _, field := range sortedKeys(res.Errors) {
		_, _ = fmt.Fprintf(w, "error   %s: %s\n", field, res.Errors[field])
	}
	for _, field := range sortedKeys(res.Warnings) {
		_, _ = fmt.Fprintf(w, "warning %s: %s\n", field, res.Warnings[field])
	}
}

func printFieldResult(w io.Writer, field string, res engine.FieldResult) {
	switch {
	case !res.IsValid:
		_, _ = fmt.Fprintf(w, "error   %s: %s\n", field, res.Error)
	case res.Warning != "":
		_, _ = fmt.Fprintf(w, "warning %s: %s\n", field, res.Warning)
	default:
		_, _ = fmt.Fprintf(w, "%s is valid\n", field)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

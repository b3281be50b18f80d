package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"nestsummary/core"
	"nestsummary/parallel"
)

func newRootCmd(out io.Writer) *cobra.Command {
	flags := &globalFlags{}
	rootCmd := &cobra.Command{
		Use:          "nestsummary",
		Short:        "Summarise repeated nested sampling runs",
		Long:         `Builds summary tables of repeated calculations, with numerical uncertainties, and compares the efficiency of methods.`,
		SilenceUsage: true,
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flags.storePath, "store", "", "Badger directory for stored tables; empty keeps them in memory")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "YAML file of summary options")

	rootCmd.AddCommand(newSummarizeCmd(flags), newGainCmd(flags))
	return rootCmd
}

func newSummarizeCmd(flags *globalFlags) *cobra.Command {
	var axis int
	var cacheName string
	cmd := &cobra.Command{
		Use:   "summarize [file.csv]",
		Short: "Summarise the repeats in a CSV file",
		Long:  `Reads a CSV with a header of estimator names and one repeat per record, and prints the mean and standard deviation of each estimator with their uncertainties.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), flags.logLevel)
			if err != nil {
				return err
			}
			opts, err := loadOptions(flags.configPath)
			if err != nil {
				return err
			}
			store, err := openStore(flags.storePath, logger)
			if err != nil {
				return err
			}
			defer closeStore(store, logger)

			compute := func() (*core.Table, error) {
				names, values, err := readRepeatsFile(args[0])
				if err != nil {
					return nil, err
				}
				if axis == 1 {
					names = columnLabels(values.RawMatrix().Rows)
				}
				logger.Debug("summarising", "file", args[0], "axis", axis)
				return core.SummarizeArray(values, names, axis, opts)
			}
			cached := cacheName != ""
			table, err := store.LoadOrCompute(cacheName, compute, cached, cached)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), table.String())
			return nil
		},
	}
	cmd.Flags().IntVar(&axis, "axis", 0, "0 if each record is a repeat, 1 if each column is")
	cmd.Flags().StringVar(&cacheName, "cache-name", "", "Store the table under this name and reuse it when present")
	return cmd
}

func newGainCmd(flags *globalFlags) *cobra.Command {
	var paper bool
	var cacheName string
	cmd := &cobra.Command{
		Use:   "gain [name=file.csv]...",
		Short: "Compare the efficiency of methods against the first one",
		Long:  `Each argument names a method and the CSV of its repeats. The first method is the baseline; efficiency gains of the others are relative to it.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), flags.logLevel)
			if err != nil {
				return err
			}
			opts, err := loadGainOptions(flags.configPath)
			if err != nil {
				return err
			}
			methods, err := parseMethodArgs(args)
			if err != nil {
				return err
			}
			store, err := openStore(flags.storePath, logger)
			if err != nil {
				return err
			}
			defer closeStore(store, logger)

			compute := func() (*core.Table, error) {
				popts := parallel.DefaultOptions()
				popts.Logger = logger
				estNames, values, err := readMethods(cmd.Context(), methods, popts)
				if err != nil {
					return nil, err
				}
				names := make([]string, len(methods))
				for i, m := range methods {
					names[i] = m.name
				}
				return core.EfficiencyGain(names, values, estNames, opts)
			}
			cached := cacheName != ""
			table, err := store.LoadOrCompute(cacheName, compute, cached, cached)
			if err != nil {
				return err
			}
			if paper {
				if table, err = core.PaperFormat(table); err != nil {
					return err
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), table.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&paper, "paper", false, "Print the publication layout")
	cmd.Flags().StringVar(&cacheName, "cache-name", "", "Store the table under this name and reuse it when present")
	return cmd
}

// columnLabels names the estimators when each column of the file is a
// repeat, in which case the file's records are the estimators.
func columnLabels(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("%d", i)
	}
	return names
}

func closeStore(store *core.TableStore, logger *slog.Logger) {
	if err := store.Close(); err != nil {
		logger.Error("failed to close table store", "error", err)
	}
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sidblab/gss/driver"
	"github.com/sidblab/gss/enumerate"
	"github.com/sidblab/gss/layout"
)

func newRunCmd() *cobra.Command {
	var (
		verbose        bool
		maxWitnessSize int
		parallel       bool
		showConfigs    bool
	)

	cmd := &cobra.Command{
		Use:   "run <layout.yaml>",
		Short: "Resolve the ground-state space of a layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGSS(cmd, args[0], verbose, maxWitnessSize, parallel, showConfigs)
		},
	}

	cmd.Flags().BoolVar(&verbose, "verbose", false, "log driver progress at debug level")
	cmd.Flags().IntVar(&maxWitnessSize, "max-witness-size", 0, "T in the witness-partitioning test (0 = default)")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "run pruning passes concurrently across the frontier")
	cmd.Flags().BoolVar(&showConfigs, "show-configurations", false, "also enumerate and print every concrete configuration")

	return cmd
}

func runGSS(cmd *cobra.Command, path string, verbose bool, maxWitnessSize int, parallel, showConfigs bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("gss: opening layout: %w", err)
	}
	defer func() { _ = f.Close() }()

	doc, err := layout.Load(f)
	if err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return err
	}
	lyt := doc.ToLayout()

	logger := logrus.New()
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}

	opts := driver.Options{
		MaxClusterSizeForWitnessPartitioning: maxWitnessSize,
		Logger:                               logger,
	}

	run := driver.Run
	if parallel {
		run = driver.RunParallel
	}

	res, err := run(context.Background(), lyt, opts)
	if err != nil {
		return fmt.Errorf("gss: run: %w", err)
	}

	printSummary(cmd, lyt.NumSites(), res)

	if showConfigs {
		configs, err := enumerate.Enumerate(res.TopCluster)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d concrete configuration(s):\n", len(configs))
		for i, cfg := range configs {
			if err := enumerate.ValidateConfiguration(res.TopCluster, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  #%d: %v\n", i+1, cfg)
		}
	}

	return nil
}

func printSummary(cmd *cobra.Command, numSites int, res driver.Result) {
	rows := [][2]string{
		{"run id", res.RunID.String()},
		{"sites", fmt.Sprintf("%d", numSites)},
		{"runtime", res.Runtime.String()},
		{"surviving root multisets", fmt.Sprintf("%d", res.TopCluster.ChargeSpace().Len())},
		{"maximum root multisets", fmt.Sprintf("%d", res.MaximumTopLevelMultisets)},
		{"pruned root multisets", fmt.Sprintf("%d", res.PrunedTopLevelMultisets)},
		{"outer iterations", fmt.Sprintf("%d", res.Stats.NbOuterIterations)},
		{"merge-ups", fmt.Sprintf("%d", res.Stats.NbMergeUps)},
		{"pruning passes", fmt.Sprintf("%d", res.Stats.NbPruningPasses)},
		{"multisets pruned", fmt.Sprintf("%d", res.Stats.NbMultisetsPruned)},
	}

	out := cmd.OutOrStdout()
	if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		printStyledSummary(out, rows)
		return
	}
	for _, row := range rows {
		fmt.Fprintf(out, "%-28s %s\n", row[0]+":", row[1])
	}
}

func printStyledSummary(out interface{ Write([]byte) (int, error) }, rows [][2]string) {
	label := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Width(28)
	value := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var body string
	for _, row := range rows {
		body += label.Render(row[0]) + value.Render(row[1]) + "\n"
	}
	fmt.Fprint(out, border.Render(body))
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/casegrade/internal/store"
	"github.com/pdiddy/casegrade/pkg/types"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Inspect runs recorded in the run database",
	Long: `Store reads the SQLite database written by extract, grade and run when
--db is set. Use subcommands to list runs, show one run, or export runs.`,
}

// --- list subcommand ---

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored runs, newest first",
	RunE:  runStoreList,
}

func runStoreList(cmd *cobra.Command, args []string) error {
	st, err := openStoreRequired()
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns(cmd.Context())
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs stored.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-20s  %-9s  %7s  %8s  %8s  %s\n",
		"ID", "Started", "Status", "Records", "Degraded", "Fallback", "Input")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))
	for _, r := range runs {
		fmt.Fprintf(os.Stdout, "%-36s  %-20s  %-9s  %7d  %8d  %8d  %s\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.Status,
			r.Records, r.Degraded, r.Fallbacks, r.Input)
	}
	fmt.Fprintf(os.Stdout, "\n%d runs\n", len(runs))
	return nil
}

// --- show subcommand ---

var storeShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the cases of one run",
	Long: `Show prints the feature counts and grade of every case in a run. The
run may be named by a unique ID prefix.`,
	Args: cobra.ExactArgs(1),
	RunE: runStoreShow,
}

func runStoreShow(cmd *cobra.Command, args []string) error {
	st, err := openStoreRequired()
	if err != nil {
		return err
	}
	defer st.Close()

	run, err := st.GetRun(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	cases, err := st.Cases(cmd.Context(), run.ID)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "run %s (%s) from %s\n\n", run.ID, run.Status, run.Input)
	fmt.Fprintf(os.Stdout, "%-5s  %-12s  %4s  %4s  %4s  %4s  %4s  %3s  %-7s  %s\n",
		"#", "Case", "Med", "Proc", "Pain", "Diag", "Sum", "Age", "Gender", "Grade")
	for _, c := range cases {
		caseID := c.CaseID
		if len(caseID) > 12 {
			caseID = caseID[:9] + "..."
		}
		f := c.Features
		fmt.Fprintf(os.Stdout, "%-5d  %-12s  %4d  %4d  %4d  %4d  %4d  %3d  %-7s  %s\n",
			c.Index, caseID, f.Medications, f.Procedures, f.Pain, f.Diagnoses,
			f.KeywordSum(), f.Age, f.Gender, gradeLabel(c.Grade))
	}
	return nil
}

func gradeLabel(g types.Grade) string {
	if g == "" {
		return "-"
	}
	return string(g)
}

// --- export subcommand ---

var storeExportCmd = &cobra.Command{
	Use:   "export [run-id]",
	Short: "Export runs to YAML or JSON",
	Long: `Export writes stored runs with their cases to stdout or --out. Without a
run ID every run is exported.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStoreExport,
}

func runStoreExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	st, err := openStoreRequired()
	if err != nil {
		return err
	}
	defer st.Close()

	var runID string
	if len(args) > 0 {
		runID = args[0]
	}

	if out == "" {
		return st.Export(cmd.Context(), runID, format, os.Stdout)
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := st.Export(cmd.Context(), runID, format, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Exported to %s\n", out)
	return nil
}

// --- shared helpers ---

func openStoreRequired() (*store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Store.DBPath == "" {
		return nil, fmt.Errorf("no run database: use --db or store.db")
	}
	return store.Open(cfg.Store.DBPath)
}

func init() {
	storeExportCmd.Flags().String("format", store.FormatYAML, "export format: yaml or json")
	storeExportCmd.Flags().String("out", "", "write to this file instead of stdout")

	storeCmd.AddCommand(storeListCmd)
	storeCmd.AddCommand(storeShowCmd)
	storeCmd.AddCommand(storeExportCmd)

	rootCmd.AddCommand(storeCmd)
}

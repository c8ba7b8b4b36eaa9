package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pdiddy/casegrade/internal/metrics"
	"github.com/pdiddy/casegrade/internal/table"
	"github.com/pdiddy/casegrade/pkg/types"
)

var gradeCmd = &cobra.Command{
	Use:   "grade",
	Short: "Grade a feature table",
	Long: `Grade reads a feature table written by extract, sums the medications,
procedures, pain management and diagnoses counts of each row, and writes a
single-column RF_Model_Grade table: O above 15, A from 8 to 15, B below 8.

With --db and --run the grades are also stored against an extraction run;
--run latest selects the most recent run.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, map[string]string{
			"input":  "grading.input",
			"output": "grading.output",
		})
	},
	RunE: runGrade,
}

func runGrade(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	runID, _ := cmd.Flags().GetString("run")

	start := time.Now()
	m := metrics.New()
	defer finishMetrics(cfg, m, start)

	features, err := table.ReadFeaturesFile(cfg.Grading.InputPath)
	if err != nil {
		return err
	}

	grades, err := runGrading(features, cfg.Grading.OutputPath, m, os.Stdout)
	if err != nil {
		return err
	}

	if runID == "" {
		return nil
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	if st == nil {
		return fmt.Errorf("--run requires --db")
	}
	defer st.Close()

	var run types.Run
	if runID == "latest" {
		run, err = st.LatestRun(cmd.Context())
	} else {
		run, err = st.GetRun(cmd.Context(), runID)
	}
	if err != nil {
		return err
	}
	if err := st.SaveGrades(cmd.Context(), run.ID, grades); err != nil {
		return err
	}
	log.Info().Str("run", run.ID).Msg("grades stored")
	return nil
}

func init() {
	gradeCmd.Flags().StringP("input", "i", "features.csv", "feature table to grade")
	gradeCmd.Flags().StringP("output", "o", "grades.csv", "grade table to write")
	gradeCmd.Flags().String("run", "", "stored run to attach grades to (ID, ID prefix, or latest)")

	rootCmd.AddCommand(gradeCmd)
}

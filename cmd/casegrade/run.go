package main

import (
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pdiddy/casegrade/internal/metrics"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Extract features and grade them in one pass",
	Long: `Run performs extract followed by grade without re-reading the feature
table. Both tables are written; with --db the run and its grades are stored.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		flags := map[string]string{"grades": "grading.output"}
		for k, v := range extractionFlags {
			flags[k] = v
		}
		return bindFlags(cmd, flags)
	},
	RunE: runPipeline,
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	start := time.Now()
	m := metrics.New()
	defer finishMetrics(cfg, m, start)

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}

	res, err := runExtraction(cmd.Context(), cfg, m, os.Stdout)
	if err != nil {
		return err
	}
	grades, err := runGrading(res.features, cfg.Grading.OutputPath, m, os.Stdout)
	if err != nil {
		return err
	}

	if st == nil {
		return nil
	}
	if err := st.SaveRun(cmd.Context(), res.run, res.records, res.features); err != nil {
		return err
	}
	if err := st.SaveGrades(cmd.Context(), res.run.ID, grades); err != nil {
		return err
	}
	log.Info().Str("run", res.run.ID).Msg("run stored")
	return nil
}

func init() {
	addExtractionFlags(runCmd)
	runCmd.Flags().String("grades", "grades.csv", "grade table to write")

	rootCmd.AddCommand(runCmd)
}

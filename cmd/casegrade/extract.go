package main

import (
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pdiddy/casegrade/internal/metrics"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract the feature table from a case-study table",
	Long: `Extract reads a CSV or TSV table whose "Case Study" column holds nursing
case narratives and writes a feature table with one row per input row:
keyword counts for medications, procedures, pain management and diagnoses,
lexical flags, age and gender.

Keyword counts combine an entity recognizer (none, dictionary or a remote
NER service) with whole-word keyword matching. Records whose extraction
fails are written with default values and counted in the summary.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, extractionFlags)
	},
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
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

	if st != nil {
		if err := st.SaveRun(cmd.Context(), res.run, res.records, res.features); err != nil {
			return err
		}
		log.Info().Str("run", res.run.ID).Msg("run stored")
	}
	return nil
}

func init() {
	addExtractionFlags(extractCmd)
	rootCmd.AddCommand(extractCmd)
}

//go:build mage

package main

import (
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// pipelineEnv returns the file locations for the pipeline targets. They
// default to data/cases.csv and out/ and can be overridden with
// CASES, FEATURES and GRADES.
func pipelineEnv() (cases, features, grades string) {
	get := func(key, def string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return def
	}
	return get("CASES", "data/cases.csv"), get("FEATURES", "out/features.csv"), get("GRADES", "out/grades.csv")
}

// Extract builds the CLI and writes the feature table for data/cases.csv.
func Extract() error {
	mg.Deps(Build)
	cases, features, _ := pipelineEnv()
	return sh.RunV(binPath(), "extract", "--input", cases, "--output", features)
}

// Grade builds the CLI and grades the feature table written by Extract.
func Grade() error {
	mg.Deps(Build)
	_, features, grades := pipelineEnv()
	return sh.RunV(binPath(), "grade", "--input", features, "--output", grades)
}

// Pipeline runs Extract then Grade.
func Pipeline() {
	mg.SerialDeps(Extract, Grade)
}

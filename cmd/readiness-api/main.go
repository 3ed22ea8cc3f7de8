package main

import (
	"fmt"
	"os"
)

// @title Clinic Readiness API
// @version 1.0.0
// @description Readiness assessments, goal generation and progress tracking for a clinician's caseload.
// @BasePath /api/v1
// @schemes http

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

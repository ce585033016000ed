package main

import (
	"fmt"
	"io"
	"time"

	"github.com/rknit/whiskc/internal/buildpipeline"
)

func printStageTimings(out io.Writer, timings buildpipeline.Timings, includeRun bool) {
	if out == nil {
		return
	}
	if timings.Has(buildpipeline.StageParse) {
		fmt.Fprintf(out, "parsed %.1f ms\n", toMillis(timings.Duration(buildpipeline.StageParse)))
	}
	if timings.Has(buildpipeline.StageResolve) {
		fmt.Fprintf(out, "resolved %.1f ms\n", toMillis(timings.Duration(buildpipeline.StageResolve)))
	}
	if timings.Has(buildpipeline.StageFold) || timings.Has(buildpipeline.StageCodegen) {
		built := timings.Sum(buildpipeline.StageFold, buildpipeline.StageCodegen)
		fmt.Fprintf(out, "built %.1f ms\n", toMillis(built))
	}
	if timings.Has(buildpipeline.StageWrite) {
		fmt.Fprintf(out, "wrote %.1f ms\n", toMillis(timings.Duration(buildpipeline.StageWrite)))
	}
	if includeRun && timings.Has(buildpipeline.StageRun) {
		fmt.Fprintf(out, "ran %.1f ms\n", toMillis(timings.Duration(buildpipeline.StageRun)))
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// Copyright 2024 Aerospike, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aerospike/aslua/cmd/internal/models"
)

const headerRunReport = "Script report"

// ReportRun prints the run report to w.
// if isJSON is true, it logs the report instead, so logger must be passed.
func ReportRun(w io.Writer, stats *models.RunStats, isJSON bool, logger *slog.Logger) {
	if isJSON {
		logRunReport(stats, logger)
		return
	}

	printRunReport(w, stats)
}

func printRunReport(w io.Writer, stats *models.RunStats) {
	fmt.Fprintln(w, headerRunReport)
	fmt.Fprintln(w, strings.Repeat("-", len(headerRunReport)))

	printMetric(w, "Start Time", stats.StartTime.Format(time.RFC1123))
	printMetric(w, "Duration", stats.Duration)

	fmt.Fprintln(w)

	printMetric(w, "Scripts", len(stats.Results))
	printMetric(w, "Failed", stats.Failed())

	if len(stats.Results) == 0 {
		return
	}

	fmt.Fprintln(w)

	for i := range stats.Results {
		status := "ok"
		if stats.Results[i].Err != nil {
			status = "failed: " + stats.Results[i].Err.Error()
		}

		printMetric(w, stats.Results[i].Location, fmt.Sprintf("%s (%s)", status, stats.Results[i].Duration))
	}
}

func logRunReport(stats *models.RunStats, logger *slog.Logger) {
	logger.Info("script report",
		slog.Time("start_time", stats.StartTime),
		slog.Duration("duration", stats.Duration),
		slog.Int("scripts", len(stats.Results)),
		slog.Int("failed", stats.Failed()),
	)
}

func printMetric(w io.Writer, key string, value any) {
	fmt.Fprintf(w, "%s%v\n", indent(key), value)
}

func indent(key string) string {
	pad := 21 - len(key)
	if pad < 1 {
		pad = 1
	}

	return fmt.Sprintf("%s:%s", key, strings.Repeat(" ", pad))
}

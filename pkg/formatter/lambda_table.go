package formatter

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/younsl/awsmods/internal/layer"
	"github.com/younsl/awsmods/internal/models"
	"github.com/younsl/awsmods/pkg/utils"
)

// WriteLayersTable prints layer versions in a table
func WriteLayersTable(w io.Writer, versions []models.LayerVersion) error {
	if len(versions) == 0 {
		fmt.Fprintln(w, "No Lambda layers found.")
		return nil
	}

	t := newTable(w)
	fmt.Fprintln(t, "LAYER\tVERSION\tRUNTIMES\tARCHITECTURES\tSIZE\tCREATED\tDESCRIPTION")

	for _, v := range versions {
		fmt.Fprintf(t, "%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			truncateString(layerName(v), 40),
			v.Version,
			orDash(strings.Join(v.CompatibleRuntimes, ",")),
			orDash(strings.Join(v.CompatibleArchitectures, ",")),
			codeSize(v),
			created(v.CreatedDate, time.Now()),
			orDash(truncateString(v.Description, 50)),
		)
	}

	fmt.Fprintf(t, "Total:\t%d\t\t\t\t\t\n", len(versions))
	return t.Flush()
}

// layerName falls back to the name part of the version ARN
// (arn:aws:lambda:region:account:layer:name:version)
func layerName(v models.LayerVersion) string {
	if v.LayerName != "" {
		return v.LayerName
	}
	parts := strings.Split(v.LayerVersionArn, ":")
	if len(parts) >= 8 {
		return parts[6]
	}
	return v.LayerVersionArn
}

func codeSize(v models.LayerVersion) string {
	if v.Content == nil || v.Content.CodeSize <= 0 {
		return "-"
	}
	return humanize.Bytes(uint64(v.Content.CodeSize))
}

// created renders the Lambda creation timestamp relative to now
func created(value string, now time.Time) string {
	ts := utils.ParseLambdaTimestamp(value)
	if ts == nil {
		return orDash(value)
	}
	return humanize.RelTime(*ts, now, "ago", "from now")
}

// WriteLayersSummary prints the runtime distribution of layer versions
func WriteLayersSummary(w io.Writer, versions []models.LayerVersion) error {
	if len(versions) == 0 {
		return nil
	}

	runtimeCounts := make(map[string]int)
	for _, v := range versions {
		if len(v.CompatibleRuntimes) == 0 {
			runtimeCounts["(any)"]++
		}
		for _, runtime := range v.CompatibleRuntimes {
			runtimeCounts[runtime]++
		}
	}

	runtimes := make([]string, 0, len(runtimeCounts))
	for runtime := range runtimeCounts {
		runtimes = append(runtimes, runtime)
	}
	sort.Strings(runtimes)

	fmt.Fprintln(w, "\n## Lambda Layer Runtime Distribution")

	t := newTable(w)
	fmt.Fprintln(t, "RUNTIME\tCOUNT")
	for _, runtime := range runtimes {
		fmt.Fprintf(t, "%s\t%d\n", runtime, runtimeCounts[runtime])
	}
	return t.Flush()
}

// WriteLayerResult prints the outcome of a publish or delete
func WriteLayerResult(w io.Writer, result *layer.Result) error {
	t := newTable(w)
	fmt.Fprintln(t, "CHANGED\tLAYER VERSION ARN\tVERSION\tMESSAGE")

	arn, version := "-", "-"
	if result.LayerVersion != nil {
		arn = orDash(result.LayerVersion.LayerVersionArn)
		version = fmt.Sprintf("%d", result.LayerVersion.Version)
	}
	fmt.Fprintf(t, "%t\t%s\t%s\t%s\n", result.Changed, arn, version, orDash(result.Msg))
	return t.Flush()
}

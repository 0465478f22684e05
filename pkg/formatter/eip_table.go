package formatter

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/younsl/awsmods/internal/eip"
	"github.com/younsl/awsmods/internal/models"
)

// WriteEIPResult prints the outcome of an eip reconciliation as a table
func WriteEIPResult(w io.Writer, result *eip.Result) error {
	t := newTable(w)
	fmt.Fprintln(t, "CHANGED\tPUBLIC IP\tALLOCATION ID\tDISASSOCIATED\tRELEASED")
	fmt.Fprintf(t, "%t\t%s\t%s\t%s\t%s\n",
		result.Changed,
		orDash(result.PublicIP),
		orDash(result.AllocationID),
		optionalBool(result.Disassociated),
		optionalBool(result.Released),
	)
	return t.Flush()
}

func optionalBool(b *bool) string {
	if b == nil {
		return "-"
	}
	return strconv.FormatBool(*b)
}

// WriteEIPsTable prints a formatted table of Elastic IPs across regions
func WriteEIPsTable(w io.Writer, eips []models.EIPInfo, scanTime time.Time, scanDuration time.Duration) error {
	if len(eips) == 0 {
		fmt.Fprintln(w, "No Elastic IPs found.")
		return nil
	}

	// Sort EIPs alphabetically by region
	sort.Slice(eips, func(i, j int) bool {
		if eips[i].Region == eips[j].Region {
			return eips[i].PublicIP < eips[j].PublicIP
		}
		return eips[i].Region < eips[j].Region
	})

	t := newTable(w)
	fmt.Fprintln(t, "PUBLIC IP\tALLOCATION ID\tDOMAIN\tNAME\tREGION\tDEVICE\tSTATUS\tCOST/MO")

	var totalMonthlyCost float64
	unattached := 0
	for _, e := range eips {
		device := e.InstanceID
		if device == "" {
			device = e.NetworkInterfaceID
		}
		if e.AssociationState == "Unattached" {
			unattached++
		}
		totalMonthlyCost += e.EstimatedMonthlyCost

		fmt.Fprintf(t, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t$%.2f\n",
			e.PublicIP,
			orDash(e.AllocationID),
			e.Domain,
			orDash(truncateString(e.Name, 30)),
			e.Region,
			orDash(device),
			e.AssociationState,
			e.EstimatedMonthlyCost,
		)
	}

	fmt.Fprintf(t, "Total:\t\t\t\t\t\t%d unattached\t$%.2f (%d EIPs)\n",
		unattached, totalMonthlyCost, len(eips))
	if err := t.Flush(); err != nil {
		return err
	}

	writeTimestamp(w, scanTime, scanDuration)
	return nil
}

// WriteEIPsSummary prints the number of Elastic IPs per region
func WriteEIPsSummary(w io.Writer, eips []models.EIPInfo) error {
	if len(eips) == 0 {
		return nil
	}

	regionCounts := make(map[string]int)
	for _, e := range eips {
		regionCounts[e.Region]++
	}

	regions := make([]string, 0, len(regionCounts))
	for region := range regionCounts {
		regions = append(regions, region)
	}
	sort.Strings(regions)

	fmt.Fprintln(w, "\n## Elastic IPs by Region")

	t := newTable(w)
	fmt.Fprintln(t, "REGION\tCOUNT")
	for _, region := range regions {
		fmt.Fprintf(t, "%s\t%d\n", region, regionCounts[region])
	}
	return t.Flush()
}

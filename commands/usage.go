package commands

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/allscreenshots/allscreenshots-cli/types"
	"github.com/allscreenshots/allscreenshots-cli/ui"
	"github.com/allscreenshots/allscreenshots-cli/utils"
)

const (
	UsageFormatGraph = "graph"
	UsageFormatTable = "table"
	UsageFormatJSON  = "json"

	usageBarWidth = 40
)

type UsageRequest struct {
	Format    string
	QuotaOnly bool
}

// UsageResponse is the JSON shape of the usage command.
type UsageResponse struct {
	types.UsageSnapshot
	Usage *types.Usage `json:"usage"`
}

func UsageCommand(ctx context.Context, rt *Runtime, req UsageRequest) *CommandResponse {
	format := strings.ToLower(req.Format)
	switch format {
	case "":
		format = UsageFormatGraph
	case UsageFormatGraph, UsageFormatTable, UsageFormatJSON:
	default:
		return NewErrorResponse(types.InvalidOption("format", "must be one of graph, table, json"))
	}

	client, err := rt.Client()
	if err != nil {
		return NewErrorResponse(err)
	}

	if req.QuotaOnly {
		spinner := rt.Spinner("Fetching quota...")
		quota, err := client.GetQuota(ctx)
		spinner.Stop()
		if err != nil {
			return NewErrorResponse(fmt.Errorf("failed to get quota: %w", err))
		}
		if format == UsageFormatJSON {
			if !rt.JSON {
				printJSONTo(rt.Out, quota)
			}
		} else {
			rt.printQuota(quota)
		}
		return NewSuccessResponse(quota)
	}

	spinner := rt.Spinner("Fetching usage data...")
	usage, err := client.GetUsage(ctx)
	spinner.Stop()
	if err != nil {
		return NewErrorResponse(fmt.Errorf("failed to get usage: %w", err))
	}

	switch format {
	case UsageFormatGraph:
		rt.printUsageGraph(usage)
	case UsageFormatTable:
		rt.printUsageTable(usage)
	}

	// --format json without --json still prints the raw document
	resp := NewSuccessResponse(UsageResponse{UsageSnapshot: usage.Snapshot(), Usage: usage})
	if format == UsageFormatJSON && !rt.JSON {
		printJSONTo(rt.Out, usage)
	}
	return resp
}

func (rt *Runtime) printQuota(q *types.QuotaStatus) {
	rt.Printf("%s %s\n", ui.Title("Quota Status"), ui.Dim("("+q.Tier+")"))
	rt.printQuotaBar("Screenshots", q.Screenshots, fmt.Sprint(q.Screenshots.Used), fmt.Sprint(q.Screenshots.Limit))
	rt.printQuotaBar("Bandwidth", q.Bandwidth, utils.FormatFileSize(q.Bandwidth.Used), utils.FormatFileSize(q.Bandwidth.Limit))
	if !q.PeriodEnds.IsZero() {
		rt.Printf("\n  Resets %s\n", ui.Accent(q.PeriodEnds.Format("2006-01-02")))
	}
}

func (rt *Runtime) printQuotaBar(label string, d types.QuotaDetail, used, limit string) {
	p := d.Percent()
	rt.Printf("\n%s\n", ui.Bold(label))
	rt.Printf("%s %s / %s (%s)\n", ui.QuotaBar(p, usageBarWidth), used, limit, utils.FormatPercent(p))
}

func (rt *Runtime) printUsageGraph(u *types.Usage) {
	rt.Printf("%s %s\n", ui.Title("API Usage"), ui.Dim("("+u.Tier+")"))
	rt.printQuotaBar("Screenshots", u.Quota.Screenshots,
		fmt.Sprint(u.Quota.Screenshots.Used), fmt.Sprint(u.Quota.Screenshots.Limit))
	rt.printQuotaBar("Bandwidth", u.Quota.Bandwidth,
		utils.FormatFileSize(u.Quota.Bandwidth.Used), utils.FormatFileSize(u.Quota.Bandwidth.Limit))

	if len(u.History) > 0 {
		var peak int64
		for _, p := range u.History {
			peak = max(peak, p.ScreenshotsCount)
		}
		rt.Printf("\n%s\n", ui.Bold("History"))
		for _, p := range u.History {
			share := 0.0
			if peak > 0 {
				share = float64(p.ScreenshotsCount) / float64(peak) * 100
			}
			rt.Printf("  %s %s %d\n", p.Start.Format("2006-01"), ui.QuotaBar(share, usageBarWidth/2), p.ScreenshotsCount)
		}
	}

	snap := u.Snapshot()
	if !snap.ResetDate.IsZero() {
		rt.Printf("\n  Resets %s\n", ui.Accent(snap.ResetDate.Format("2006-01-02")))
	}
}

func (rt *Runtime) printUsageTable(u *types.Usage) {
	if rt.JSON {
		return
	}
	w := tabwriter.NewWriter(rt.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\n\n", ui.Title("API Usage"))
	fmt.Fprintf(w, "Tier:\t%s\n", ui.Accent(u.Tier))

	p := u.CurrentPeriod
	fmt.Fprintf(w, "\n%s\n", ui.Bold("Current Period"))
	fmt.Fprintf(w, "  Start:\t%s\n", p.Start.Format("2006-01-02"))
	fmt.Fprintf(w, "  End:\t%s\n", p.End.Format("2006-01-02"))
	fmt.Fprintf(w, "  Screenshots:\t%d\n", p.ScreenshotsCount)
	fmt.Fprintf(w, "  Bandwidth:\t%s\n", bandwidth(p.BandwidthFormatted, p.BandwidthBytes))

	s := u.Quota.Screenshots
	b := u.Quota.Bandwidth
	fmt.Fprintf(w, "\n%s\n", ui.Bold("Quota"))
	fmt.Fprintf(w, "  Screenshots:\t%d / %d (%s used)\n", s.Used, s.Limit, utils.FormatPercent(s.Percent()))
	fmt.Fprintf(w, "  Remaining:\t%s\n", ui.Success(fmt.Sprint(s.Remaining)))
	fmt.Fprintf(w, "  Bandwidth:\t%s / %s (%s used)\n", utils.FormatFileSize(b.Used), utils.FormatFileSize(b.Limit), utils.FormatPercent(b.Percent()))

	fmt.Fprintf(w, "\n%s\n", ui.Bold("All-Time Totals"))
	fmt.Fprintf(w, "  Screenshots:\t%d\n", u.Totals.ScreenshotsCount)
	fmt.Fprintf(w, "  Bandwidth:\t%s\n", bandwidth(u.Totals.BandwidthFormatted, u.Totals.BandwidthBytes))
	w.Flush()
}

func bandwidth(formatted string, bytes int64) string {
	if formatted != "" {
		return formatted
	}
	return utils.FormatFileSize(bytes)
}

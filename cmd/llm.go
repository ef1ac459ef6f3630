package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/vocabflow/vocabflow/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect story generation requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		e, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		events, err := e.store.EventRepo().LLMEvents(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if purpose != "" {
			events = lo.Filter(events, func(ev store.LLMEvent, _ int) bool { return ev.Purpose == purpose })
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM events found.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-12s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"Seq", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
		fmt.Fprintln(out, strings.Repeat("─", 100))
		for _, ev := range events {
			ok := "✓"
			if !ev.Success {
				ok = "✗ " + ev.ErrorMessage
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-12s  %-28s  %-6d  %-6d  %-7d  %s\n",
				ev.Sequence,
				ev.Timestamp.Local().Format("2006-01-02 15:04:05"),
				ev.Purpose,
				truncate(ev.Model, 28),
				ev.InputTokens,
				ev.OutputTokens,
				ev.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and estimated cost by model",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		events, err := e.store.EventRepo().LLMEvents(cmd.Context(), store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No LLM usage recorded yet.")
			return nil
		}

		byModel := lo.GroupBy(events, func(ev store.LLMEvent) string { return ev.Model })
		models := lo.Keys(byModel)
		slices.Sort(models)

		fmt.Fprintf(out, "%-32s  %6s  %6s  %10s  %10s  %10s\n", "Model", "Calls", "Failed", "Input", "Output", "Cost")
		fmt.Fprintln(out, strings.Repeat("─", 82))

		var totalCalls, totalIn, totalOut int
		var totalCost float64
		for _, m := range models {
			evs := byModel[m]
			in := lo.SumBy(evs, func(ev store.LLMEvent) int { return ev.InputTokens })
			outTok := lo.SumBy(evs, func(ev store.LLMEvent) int { return ev.OutputTokens })
			cost := lo.SumBy(evs, func(ev store.LLMEvent) float64 { return ev.CostUSD })
			failed := lo.CountBy(evs, func(ev store.LLMEvent) bool { return !ev.Success })
			fmt.Fprintf(out, "%-32s  %6d  %6d  %10d  %10d  %10s\n",
				truncate(m, 32), len(evs), failed, in, outTok, formatCost(cost))
			totalCalls += len(evs)
			totalIn += in
			totalOut += outTok
			totalCost += cost
		}
		fmt.Fprintln(out, strings.Repeat("─", 82))
		fmt.Fprintf(out, "%-32s  %6d  %6s  %10d  %10d  %10s\n",
			"TOTAL", totalCalls, "", totalIn, totalOut, formatCost(totalCost))
		return nil
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. story)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmStatsCmd)
}

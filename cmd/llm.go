package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessonloop/internal/llm"
	"github.com/abhisek/lessonloop/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM usage from catalog authoring",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		reqs, err := st.EventRepo().RecentLLMRequests(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(reqs) == 0 {
			fmt.Println("No LLM requests recorded.")
			return nil
		}

		fmt.Printf("%-19s  %-12s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 96))
		for _, r := range reqs {
			if purpose != "" && r.Purpose != purpose {
				continue
			}
			ok := "✓"
			if !r.Success {
				ok = "✗ " + truncate(r.ErrorMessage, 40)
			}
			fmt.Printf("%-19s  %-12s  %-28s  %-6d  %-6d  %-7d  %s\n",
				r.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(r.Purpose, 12), truncate(r.Model, 28),
				r.InputTokens, r.OutputTokens, r.LatencyMs, ok)
		}
		return nil
	},
}

type modelUsage struct {
	model        string
	calls        int
	inputTokens  int
	outputTokens int
}

func summarize(reqs []store.LLMRequestRecord) []modelUsage {
	byModel := make(map[string]*modelUsage)
	for _, r := range reqs {
		u, ok := byModel[r.Model]
		if !ok {
			u = &modelUsage{model: r.Model}
			byModel[r.Model] = u
		}
		u.calls++
		u.inputTokens += r.InputTokens
		u.outputTokens += r.OutputTokens
	}
	out := make([]modelUsage, 0, len(byModel))
	for _, u := range byModel {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].model < out[j].model })
	return out
}

var llmUsageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show token usage and estimated cost by model",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		reqs, err := st.EventRepo().RecentLLMRequests(cmd.Context(), 0)
		if err != nil {
			return err
		}
		if len(reqs) == 0 {
			fmt.Println("No LLM usage recorded yet.")
			return nil
		}

		fmt.Println("Estimated Cost (USD)")
		fmt.Println(strings.Repeat("─", 72))
		fmt.Printf("%-32s  %6s  %10s  %10s  %10s\n", "Model", "Calls", "Input", "Output", "Cost")
		fmt.Println(strings.Repeat("─", 72))

		var total float64
		var unknown []string
		for _, u := range summarize(reqs) {
			cost, ok := llm.LookupCost(u.model)
			if !ok {
				unknown = append(unknown, u.model)
				fmt.Printf("%-32s  %6d  %10d  %10d  %10s\n",
					truncate(u.model, 32), u.calls, u.inputTokens, u.outputTokens, "?")
				continue
			}
			c := cost.Cost(u.inputTokens, u.outputTokens)
			total += c
			fmt.Printf("%-32s  %6d  %10d  %10d  %10s\n",
				truncate(u.model, 32), u.calls, u.inputTokens, u.outputTokens, formatCost(c))
		}

		fmt.Println(strings.Repeat("─", 72))
		label := "TOTAL"
		if len(unknown) > 0 {
			label = "TOTAL (partial)"
		}
		fmt.Printf("%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(total))
		if len(unknown) > 0 {
			fmt.Printf("\nPricing unavailable for: %s\n", strings.Join(unknown, ", "))
		}
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
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. authoring)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmUsageCmd)
}

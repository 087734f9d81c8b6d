package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessonloop/internal/auth"
	"github.com/abhisek/lessonloop/internal/learning"
)

var learnerCmd = &cobra.Command{
	Use:   "learner",
	Short: "Manage learners",
}

// withService opens the store and builds the service for a one-shot
// command.
func withService(cmd *cobra.Command, fn func(svc *learning.Service) error) error {
	ctx := cmd.Context()
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	svc, release, err := newService(ctx, st, log)
	if err != nil {
		return err
	}
	defer release()
	return fn(svc)
}

var learnerCreateCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Register a learner",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd, func(svc *learning.Service) error {
			lv, err := svc.CreateLearner(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Created %s (%s)\n", lv.Username, lv.ID)
			return nil
		})
	},
}

var learnerShowCmd = &cobra.Command{
	Use:   "show <username>",
	Short: "Show a learner's progress and badges",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd, func(svc *learning.Service) error {
			ctx := cmd.Context()
			lv, err := svc.FindLearner(ctx, args[0])
			if err != nil {
				return err
			}
			p, err := svc.Profile(ctx, lv.ID)
			if err != nil {
				return err
			}
			plan, err := svc.DailyPlan(ctx, lv.ID)
			if err != nil {
				return err
			}

			sep := strings.Repeat("─", 48)
			fmt.Printf("%s (%s)\n%s\n", p.Learner.Username, p.Learner.ID, sep)
			fmt.Printf("Level:     %s\n", p.Learner.Level)
			fmt.Printf("Credits:   %d\n", p.Learner.Credits)
			fmt.Printf("Streak:    %d day(s)\n", p.Learner.Streak)
			fmt.Printf("Answered:  %d (%.0f%% correct)\n", p.Learner.TotalAnswered, p.Accuracy)
			fmt.Printf("Lessons:   %d/%d, %d topic(s) complete\n", p.CompletedLessons, p.TotalLessons, p.CompletedTopics)
			fmt.Printf("Review:    %d due\n", plan.ReviewCount)

			fmt.Printf("\nMissions for %s\n%s\n", plan.Date, sep)
			for _, m := range plan.Missions {
				mark := " "
				if m.Completed {
					mark = "✓"
				}
				fmt.Printf("[%s] %-28s %3d/%-3d +%d\n", mark, m.Title, m.Current, m.Target, m.Reward)
			}

			fmt.Printf("\nBadges\n%s\n", sep)
			for _, a := range p.Achievements {
				mark := "☆"
				if a.Earned {
					mark = "★"
				}
				fmt.Printf("%s %-18s %s\n", mark, a.Title, a.Description)
			}
			return nil
		})
	},
}

var learnerTokenCmd = &cobra.Command{
	Use:   "token <username>",
	Short: "Issue an API token for a learner",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.RequireServer(); err != nil {
			return err
		}
		tokens, err := auth.New(cfg.Auth)
		if err != nil {
			return err
		}
		return withService(cmd, func(svc *learning.Service) error {
			lv, err := svc.FindLearner(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			token, exp, err := tokens.Issue(lv.ID, lv.Username)
			if err != nil {
				return err
			}
			log.Info("token issued", "learner_id", lv.ID, "expires_at", exp)
			fmt.Println(token)
			return nil
		})
	},
}

var learnerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List learners",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		ls, err := st.StateRepo().List(ctx)
		if err != nil {
			return fmt.Errorf("list learners: %w", err)
		}
		if len(ls) == 0 {
			fmt.Println("No learners yet.")
			return nil
		}

		fmt.Printf("%-36s  %-16s  %-12s  %7s  %6s\n", "ID", "Username", "Level", "Credits", "Streak")
		fmt.Println(strings.Repeat("─", 84))
		for _, l := range ls {
			fmt.Printf("%-36s  %-16s  %-12s  %7d  %6d\n",
				l.ID, truncate(l.Username, 16), l.Level, l.Credits, l.Streak)
		}
		return nil
	},
}

func init() {
	learnerCmd.AddCommand(learnerCreateCmd)
	learnerCmd.AddCommand(learnerShowCmd)
	learnerCmd.AddCommand(learnerTokenCmd)
	learnerCmd.AddCommand(learnerListCmd)
}

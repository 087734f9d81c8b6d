package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/lessonloop/internal/authoring"
	"github.com/abhisek/lessonloop/internal/catalog"
	"github.com/abhisek/lessonloop/internal/llm"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect, validate and draft lesson catalogs",
}

var catalogShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the configured catalog's topics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		policy := cat.UnlockPolicy
		if cfg.Unlock.Policy != "" {
			policy = cfg.Unlock.Policy + " (config override)"
		}
		if policy == "" {
			policy = "default"
		}

		fmt.Printf("Catalog %s, %d cards, unlock policy %s\n", cat.Version, cat.Len(), policy)
		fmt.Println(strings.Repeat("─", 72))
		fmt.Printf("%-4s  %-28s  %-28s  %7s  %3s\n", "#", "ID", "Title", "Lessons", "Day")
		fmt.Println(strings.Repeat("─", 72))
		for i, t := range cat.Topics() {
			fmt.Printf("%-4d  %-28s  %-28s  %7d  %3d\n",
				i+1, truncate(t.ID, 28), truncate(t.Title, 28), len(cat.QuestionCards(t.ID)), t.UnlockDay)
		}
		return nil
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a catalog file for problems",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.Catalog.Path
		if len(args) == 1 {
			path = args[0]
		}
		f, err := catalog.ReadFile(path)
		if err != nil {
			return err
		}
		if err := f.Validate(); err != nil {
			return err
		}
		cat, err := f.Build()
		if err != nil {
			return err
		}
		fmt.Printf("ok: %d topics, %d lessons, %d cards\n", len(cat.Topics()), cat.QuestionCount(), cat.Len())
		return nil
	},
}

var catalogGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Draft a topic from source text with an LLM",
	Long: "Generates a topic's lessons from --title and a source text file. " +
		"With --out the topic is appended to that catalog file; otherwise the topic YAML is printed.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		title, _ := cmd.Flags().GetString("title")
		sourcePath, _ := cmd.Flags().GetString("source")
		difficulty, _ := cmd.Flags().GetString("difficulty")
		unlockDay, _ := cmd.Flags().GetInt("unlock-day")
		lessons, _ := cmd.Flags().GetInt("lessons")
		out, _ := cmd.Flags().GetString("out")

		source, err := os.ReadFile(sourcePath)
		if err != nil {
			return fmt.Errorf("read source text: %w", err)
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		llmCfg := cfg.LLM
		if !llmCfg.Discover() {
			return fmt.Errorf("no LLM provider configured; set llm.provider or a vendor API key")
		}
		provider, err := llm.New(ctx, llmCfg, st.EventRepo(), log)
		if err != nil {
			return err
		}

		authorCfg := authoring.DefaultConfig()
		authorCfg.Lessons = lessons
		topic, err := authoring.New(provider, authorCfg, log).GenerateTopic(ctx, authoring.Request{
			Title:      title,
			Source:     string(source),
			Difficulty: catalog.Difficulty(difficulty),
			UnlockDay:  unlockDay,
		})
		if err != nil {
			return err
		}

		if out == "" {
			data, err := yaml.Marshal(topic)
			if err != nil {
				return fmt.Errorf("encode topic: %w", err)
			}
			fmt.Print(string(data))
			return nil
		}

		f, err := catalog.ReadFile(out)
		if err != nil {
			return err
		}
		if err := authoring.Append(&f, topic); err != nil {
			return err
		}
		data, err := f.Marshal()
		if err != nil {
			return fmt.Errorf("encode catalog: %w", err)
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write catalog: %w", err)
		}
		log.Info("topic added", "topic_id", topic.ID, "lessons", len(topic.Lessons), "catalog", out)
		return nil
	},
}

func init() {
	catalogGenerateCmd.Flags().String("title", "", "Topic title")
	catalogGenerateCmd.Flags().String("source", "", "Path to the source text")
	catalogGenerateCmd.Flags().String("difficulty", "", "Difficulty for every lesson (beginner, intermediate, advanced)")
	catalogGenerateCmd.Flags().Int("unlock-day", 1, "Day the topic opens under the static policy")
	catalogGenerateCmd.Flags().IntP("lessons", "n", authoring.DefaultConfig().Lessons, "Lessons to generate")
	catalogGenerateCmd.Flags().StringP("out", "o", "", "Catalog file to append the topic to")
	_ = catalogGenerateCmd.MarkFlagRequired("title")
	_ = catalogGenerateCmd.MarkFlagRequired("source")

	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogGenerateCmd)
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Iktahana/illusions-sub003/internal/history"
	"github.com/Iktahana/illusions-sub003/internal/lint"
	"github.com/Iktahana/illusions-sub003/internal/model"
	"github.com/Iktahana/illusions-sub003/internal/preset"
	"github.com/Iktahana/illusions-sub003/internal/validate"
)

var (
	flagFormat    string
	flagValidate  bool
	flagNoHistory bool
)

var lintCmd = &cobra.Command{
	Use:   "lint [file]",
	Short: "Check a manuscript and report issues",
	Long: `Check a manuscript file (or stdin when no file is given) against the
selected preset's rules. Each line of input is one paragraph.

With --validate, findings are additionally confirmed by a language
model; when the model is unreachable the findings pass through
unchanged.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, source, err := readManuscript(args)
		if err != nil {
			return err
		}
		if flagFormat != "text" && flagFormat != "json" {
			return fmt.Errorf("unknown format %q (want text or json)", flagFormat)
		}

		runner, mode := newRunner()
		paras := splitParagraphs(text)

		started := time.Now()
		byPara := runManuscript(runner, paras)

		validated := hostCfg.Validate
		if cmd.Flags().Changed("validate") {
			validated = flagValidate
		}
		discarded := 0
		if validated {
			byPara, discarded, err = validateIssues(cmd.Context(), runner, mode, paras, byPara)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: validation unavailable: %v\n", err)
			}
		}
		elapsed := time.Since(started)

		flat := flatten(byPara)
		if err := renderIssues(cmd.OutOrStdout(), source, paras, flat); err != nil {
			return err
		}

		if !flagNoHistory && hostCfg.HistoryPath != "" {
			recordRun(cmd.Context(), source, mode.ID, paras, flat, elapsed, validated, discarded)
		}

		if countSeverity(flat, lint.SeverityError) > 0 {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	lintCmd.Flags().StringVarP(&flagFormat, "format", "f", "text",
		"output format: text or json")
	lintCmd.Flags().BoolVar(&flagValidate, "validate", false,
		"confirm findings with the language model")
	lintCmd.Flags().BoolVar(&flagNoHistory, "no-history", false,
		"skip recording this run in the history database")
	rootCmd.AddCommand(lintCmd)
}

func readManuscript(args []string) (string, string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("reading manuscript: %w", err)
		}
		return string(data), args[0], nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), "<stdin>", nil
}

// splitParagraphs treats each input line as one paragraph, keeping
// line numbering stable by passing blank lines through as empty
// paragraphs.
func splitParagraphs(text string) []lint.Paragraph {
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	paras := make([]lint.Paragraph, len(lines))
	for i, line := range lines {
		paras[i] = lint.Paragraph{Text: strings.TrimSuffix(line, "\r"), Index: i}
	}
	return paras
}

// runManuscript runs every enabled rule over the manuscript: the
// paragraph rules per paragraph, plus the document-scope consistency
// rules, merged into one per-paragraph map sorted by offset.
func runManuscript(runner *lint.Runner, paras []lint.Paragraph) map[int][]lint.Issue {
	out := runner.RunDocument(paras)
	if out == nil {
		out = make(map[int][]lint.Issue)
	}
	for _, p := range paras {
		if issues := runner.RunAll(p.Text); len(issues) > 0 {
			out[p.Index] = append(out[p.Index], issues...)
		}
	}
	for idx := range out {
		issues := out[idx]
		sort.SliceStable(issues, func(i, j int) bool {
			return issues[i].From < issues[j].From
		})
	}
	return out
}

// validateIssues routes all findings through the model validation
// service and rebuilds the per-paragraph map from the survivors.
func validateIssues(ctx context.Context, runner *lint.Runner, mode preset.Mode,
	paras []lint.Paragraph, byPara map[int][]lint.Issue) (map[int][]lint.Issue, int, error) {

	configs := make(map[string]lint.RuleConfig)
	for _, rule := range runner.Rules() {
		if cfg, ok := runner.GetConfig(rule.ID()); ok {
			configs[rule.ID()] = cfg
		}
	}

	var candidates []validate.Candidate
	for _, p := range paras {
		issues := byPara[p.Index]
		if len(issues) == 0 {
			continue
		}
		cs := validate.BuildCandidates(issues, p.Text, configs)
		for i := range cs {
			cs[i].Paragraph = p.Index
		}
		candidates = append(candidates, cs...)
	}
	if len(candidates) == 0 {
		return byPara, 0, nil
	}

	client := model.NewAnthropicClient(nil)
	controller, err := model.NewController(&model.ControllerConfig{
		Client:   client,
		ModelID:  modelID(),
		Cooldown: time.Duration(hostCfg.CooldownSeconds) * time.Second,
	})
	if err != nil {
		return byPara, 0, err
	}
	validator, err := validate.New(&validate.Config{
		Client:     client,
		PromptHint: mode.PromptHint,
	})
	if err != nil {
		return byPara, 0, err
	}
	svc, err := validate.NewService(controller, validator)
	if err != nil {
		return byPara, 0, err
	}

	kept, err := svc.Run(ctx, candidates)
	if err != nil {
		// Fail open: the unvalidated findings are still findings.
		return byPara, 0, err
	}

	out := make(map[int][]lint.Issue, len(kept))
	for _, c := range kept {
		out[c.Paragraph] = append(out[c.Paragraph], c.Issue)
	}
	for idx := range out {
		sort.SliceStable(out[idx], func(i, j int) bool {
			return out[idx][i].From < out[idx][j].From
		})
	}
	return out, len(candidates) - len(kept), nil
}

func modelID() string {
	if hostCfg.ModelID != "" {
		return hostCfg.ModelID
	}
	return model.GetModelID()
}

type flatIssue struct {
	Paragraph int    `json:"paragraph"`
	RuleID    string `json:"rule"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	From      int    `json:"from"`
	To        int    `json:"to"`
	Fix       string `json:"fix,omitempty"`
	Guideline string `json:"guideline,omitempty"`
}

func flatten(byPara map[int][]lint.Issue) []flatIssue {
	indices := make([]int, 0, len(byPara))
	for idx := range byPara {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	var out []flatIssue
	for _, idx := range indices {
		for _, is := range byPara[idx] {
			fi := flatIssue{
				Paragraph: idx,
				RuleID:    is.RuleID,
				Severity:  string(is.Severity),
				Message:   is.Message,
				From:      is.From,
				To:        is.To,
				Guideline: is.GuidelineID,
			}
			if is.Fix != nil {
				fi.Fix = is.Fix.Replacement
			}
			out = append(out, fi)
		}
	}
	return out
}

func renderIssues(w io.Writer, source string, paras []lint.Paragraph, issues []flatIssue) error {
	if flagFormat == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(issues)
	}

	if len(issues) == 0 {
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Fprintf(w, "%s 指摘はありません\n", green("✓"))
		return nil
	}

	gray := color.New(color.FgHiBlack).SprintFunc()
	for _, is := range issues {
		sev := severityColor(lint.Severity(is.Severity))(is.Severity)
		fmt.Fprintf(w, "%s:%d:%d: %s [%s] %s\n",
			source, is.Paragraph+1, is.From+1, sev, is.RuleID, is.Message)
		if is.Fix != "" && is.Paragraph < len(paras) {
			runes := []rune(paras[is.Paragraph].Text)
			if is.From >= 0 && is.To <= len(runes) && is.From < is.To {
				fmt.Fprintf(w, "  %s %q → %q\n", gray("fix:"),
					string(runes[is.From:is.To]), is.Fix)
			}
		}
	}

	errs := countSeverity(issues, lint.SeverityError)
	warns := countSeverity(issues, lint.SeverityWarning)
	infos := len(issues) - errs - warns
	fmt.Fprintf(w, "\n%d issues (%d errors, %d warnings, %d info)\n",
		len(issues), errs, warns, infos)
	return nil
}

func severityColor(sev lint.Severity) func(a ...interface{}) string {
	switch sev {
	case lint.SeverityError:
		return color.New(color.FgRed).SprintFunc()
	case lint.SeverityWarning:
		return color.New(color.FgYellow).SprintFunc()
	default:
		return color.New(color.FgCyan).SprintFunc()
	}
}

func countSeverity(issues []flatIssue, sev lint.Severity) int {
	n := 0
	for _, is := range issues {
		if is.Severity == string(sev) {
			n++
		}
	}
	return n
}

func recordRun(ctx context.Context, source, presetID string, paras []lint.Paragraph,
	issues []flatIssue, elapsed time.Duration, validated bool, discarded int) {

	store, err := history.Open(hostCfg.HistoryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: history disabled: %v\n", err)
		return
	}
	defer store.Close()

	run := history.Run{
		Duration:   elapsed,
		Source:     source,
		Preset:     presetID,
		Paragraphs: len(paras),
		Issues:     len(issues),
		Errors:     countSeverity(issues, lint.SeverityError),
		Warnings:   countSeverity(issues, lint.SeverityWarning),
		Validated:  validated,
		Discarded:  discarded,
	}
	run.Infos = run.Issues - run.Errors - run.Warnings
	if _, err := store.Record(ctx, run); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to record run: %v\n", err)
	}
}

// Package repl implements the interactive correction shell. Plain
// input lines are linted as manuscript paragraphs; everything else is
// a command.
package repl

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/Iktahana/illusions-sub003/internal/guideline"
	"github.com/Iktahana/illusions-sub003/internal/history"
	"github.com/Iktahana/illusions-sub003/internal/lint"
	"github.com/Iktahana/illusions-sub003/internal/preset"
)

// REPL represents the interactive shell
type REPL struct {
	runner   *lint.Runner
	mode     preset.Mode
	hist     *history.Store
	rl       *readline.Instance
	ctx      context.Context
	commands map[string]CommandHandler
}

// CommandHandler handles a specific command
type CommandHandler func(args []string) error

// Config holds REPL configuration
type Config struct {
	Runner *lint.Runner
	Mode   preset.Mode
	// History is optional; nil disables the history command.
	History *history.Store
}

// New creates a new REPL instance
func New(cfg *Config) (*REPL, error) {
	if cfg.Runner == nil {
		return nil, fmt.Errorf("runner is required")
	}

	r := &REPL{
		runner:   cfg.Runner,
		mode:     cfg.Mode,
		hist:     cfg.History,
		commands: make(map[string]CommandHandler),
	}
	r.registerCommands()
	return r, nil
}

// Run starts the REPL loop
func (r *REPL) Run(ctx context.Context) error {
	r.ctx = ctx

	cyan := color.New(color.FgCyan).SprintFunc()
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            cyan("kosei> "),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()
	r.rl = rl

	r.printWelcome()

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			} else if err == io.EOF {
				fmt.Println()
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if err := r.processInput(line); err != nil {
			if err == io.EOF {
				return nil
			}
			red := color.New(color.FgRed).SprintFunc()
			fmt.Printf("%s %v\n", red("Error:"), err)
		}
	}
}

// processInput dispatches one line: a leading ":" marks a command,
// anything else is linted as a paragraph. Bare command words are also
// accepted when they don't look like Japanese text.
func (r *REPL) processInput(line string) error {
	if name, args, ok := r.commandFor(line); ok {
		return r.commands[name](args)
	}
	r.lintLine(line)
	return nil
}

func (r *REPL) commandFor(line string) (string, []string, bool) {
	trimmed := strings.TrimPrefix(line, ":")
	parts := strings.Fields(trimmed)
	if len(parts) == 0 {
		return "", nil, false
	}
	if _, ok := r.commands[parts[0]]; !ok {
		return "", nil, false
	}
	// Without the ":" prefix, only accept if the whole line is the
	// command and its arguments: "help", "preset novel". A sentence
	// that merely starts with a command word still gets linted.
	if !strings.HasPrefix(line, ":") && len(parts) > 2 {
		return "", nil, false
	}
	return parts[0], parts[1:], true
}

// lintLine runs every enabled rule over one paragraph and prints the
// findings.
func (r *REPL) lintLine(text string) {
	issues := r.runner.RunAll(text)
	if len(issues) == 0 {
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s 指摘はありません\n", green("✓"))
		return
	}
	for _, is := range issues {
		printIssue(is, text)
	}
}

func printIssue(is lint.Issue, text string) {
	sev := severityColor(is.Severity)(string(is.Severity))
	gray := color.New(color.FgHiBlack).SprintFunc()
	fmt.Printf("  %s [%s] %s %s\n", sev, is.RuleID, is.Message,
		gray(fmt.Sprintf("(%d-%d)", is.From, is.To)))
	if is.Fix != nil {
		runes := []rune(text)
		if is.From >= 0 && is.To <= len(runes) && is.From < is.To {
			fmt.Printf("    %s %q → %q\n", gray("fix:"),
				string(runes[is.From:is.To]), is.Fix.Replacement)
		}
	}
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

// registerCommands registers all built-in commands
func (r *REPL) registerCommands() {
	r.commands["help"] = r.cmdHelp
	r.commands["?"] = r.cmdHelp
	r.commands["rules"] = r.cmdRules
	r.commands["presets"] = r.cmdPresets
	r.commands["preset"] = r.cmdPreset
	r.commands["guidelines"] = r.cmdGuidelines
	r.commands["history"] = r.cmdHistory
	r.commands["exit"] = r.cmdExit
	r.commands["quit"] = r.cmdExit
}

// printWelcome prints the welcome message
func (r *REPL) printWelcome() {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Printf("\n%s\n", cyan("kosei — 日本語原稿校正"))
	fmt.Printf("プリセット: %s\n", r.mode.Name)
	fmt.Println()
	fmt.Println("文章を入力すると校正します。'help' でコマンド一覧、'exit' で終了。")
	fmt.Println()
}

// cmdHelp shows help information
func (r *REPL) cmdHelp(args []string) error {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Printf("\n%s\n\n", cyan("Available Commands:"))

	commands := []struct {
		name string
		desc string
	}{
		{"help, ?", "Show this help message"},
		{"rules", "List rules and their status under the current preset"},
		{"presets", "List available presets"},
		{"preset <id>", "Switch to a preset"},
		{"guidelines", "List the guideline catalog"},
		{"history", "Show recent correction runs"},
		{"exit, quit", "Exit the shell"},
	}
	for _, cmd := range commands {
		fmt.Printf("  %-14s %s\n", green(cmd.name), cmd.desc)
	}
	fmt.Println()
	fmt.Println("それ以外の入力は一段落の原稿として校正されます。")
	fmt.Println()
	return nil
}

func (r *REPL) cmdRules(args []string) error {
	gray := color.New(color.FgHiBlack).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	for _, rule := range r.runner.Rules() {
		cfg, _ := r.runner.GetConfig(rule.ID())
		status := gray("off")
		if cfg.Enabled {
			status = green("on ")
		}
		fmt.Printf("  %s L%d %-24s %s\n", status, rule.Level(), rule.ID(), rule.Name())
	}
	return nil
}

func (r *REPL) cmdPresets(args []string) error {
	for _, m := range preset.Modes() {
		marker := " "
		if m.ID == r.mode.ID {
			marker = color.New(color.FgGreen).Sprint("*")
		}
		fmt.Printf("  %s %-10s %s\n", marker, m.ID, m.Name)
	}
	return nil
}

func (r *REPL) cmdPreset(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: preset <id>")
	}
	mode, ok := preset.Lookup(args[0])
	if !ok {
		return fmt.Errorf("unknown preset %q", args[0])
	}
	preset.Apply(r.runner, mode)
	r.mode = mode
	fmt.Printf("プリセットを %s に切り替えました\n", mode.Name)
	return nil
}

func (r *REPL) cmdGuidelines(args []string) error {
	gray := color.New(color.FgHiBlack).SprintFunc()
	for _, g := range guideline.Catalog {
		year := ""
		if g.Year != nil {
			year = fmt.Sprintf("(%d)", *g.Year)
		}
		fmt.Printf("  %-16s %s %s\n", g.ID, g.Name, gray(year))
	}
	return nil
}

func (r *REPL) cmdHistory(args []string) error {
	if r.hist == nil {
		return fmt.Errorf("history is disabled")
	}
	runs, err := r.hist.Recent(r.ctx, 10)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("  まだ実行履歴がありません")
		return nil
	}
	for _, run := range runs {
		fmt.Printf("  %s %-10s %3d issues (%dE/%dW/%dI) %s\n",
			run.StartedAt.Local().Format("2006-01-02 15:04"),
			run.Preset, run.Issues, run.Errors, run.Warnings, run.Infos,
			run.Duration.Round(1e6))
	}
	return nil
}

// cmdExit exits the REPL
func (r *REPL) cmdExit(args []string) error {
	return io.EOF
}

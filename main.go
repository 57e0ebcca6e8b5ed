package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/field"
	"github.com/iburimskiy/particle-field/internal/game"
	"github.com/iburimskiy/particle-field/internal/quiz"
	"github.com/iburimskiy/particle-field/internal/roi"
	"github.com/iburimskiy/particle-field/internal/term"
)

var (
	// Global flags
	verbose    bool
	configPath string
	watch      bool
	count      int
	seed       int64

	// roi flags
	roiInputs = roi.DefaultInputs

	// quiz flags
	quizPath string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "particle-field",
	Short: "Interactive particle field backdrop",
	Long: `Opens a window with the animated particle field: particles drift,
wrap at the edges, flee the mouse and link up with their neighbours.

Keys: Esc/Q quit, Space pause, R reset, O open a YAML preset, H toggle HUD.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if cmd.Name() == "term" {
			// stderr is the terminal being drawn on.
			zcfg.OutputPaths = []string{os.DevNull}
			zcfg.ErrorOutputPaths = []string{os.DevNull}
		}
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runWindow,
}

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Run the particle field in the terminal",
	Long: `Draws the particle field with terminal cells. Mouse movement repels
particles when the terminal reports it.

Keys: Esc/q/Ctrl-C quit, r reset.`,
	RunE: runTerm,
}

var roiCmd = &cobra.Command{
	Use:   "roi",
	Short: "Estimate ERP savings and payback",
	RunE:  runROI,
}

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take a multiple-choice quiz from a YAML question bank",
	Long: `Asks each question in turn. Answer with the option number; q quits.
The bank is a YAML file with a "questions" list (see quizzes/erp.yaml).`,
	RunE: runQuiz,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	RunE:  runConfig,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	pf.StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	pf.BoolVarP(&watch, "watch", "w", false, "Reload the configuration file when it changes")
	pf.IntVarP(&count, "count", "n", 0, "Override the particle count")
	pf.Int64Var(&seed, "seed", 0, "Seed for particle placement (0 uses the clock)")

	rf := roiCmd.Flags()
	rf.IntVar(&roiInputs.Employees, "employees", roiInputs.Employees, "Number of employees")
	rf.Float64Var(&roiInputs.AvgSalary, "salary", roiInputs.AvgSalary, "Average annual salary")
	rf.Float64Var(&roiInputs.ManualHours, "hours", roiInputs.ManualHours, "Hours per week on manual processes")
	rf.Float64Var(&roiInputs.ErrorRate, "error-rate", roiInputs.ErrorRate, "Estimated error rate in percent")

	quizCmd.Flags().StringVarP(&quizPath, "questions", "q", "", "YAML question bank")
	_ = quizCmd.MarkFlagRequired("questions")

	rootCmd.AddCommand(termCmd, roiCmd, quizCmd, configCmd)
}

// loadConfig reads --config and applies the flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	applyOverrides(cmd, &cfg)
	return cfg, nil
}

func applyOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("count") {
		cfg.Field.ParticleCount = max(count, 0)
	}
	if cmd.Flags().Changed("seed") {
		cfg.Field.Seed = seed
	}
}

// startWatch returns the reload channel for --watch, or nil. Reloaded
// configs get the same flag overrides as the initial one.
func startWatch(ctx context.Context, cmd *cobra.Command) (<-chan config.Config, func(), error) {
	if !watch {
		return nil, func() {}, nil
	}
	if configPath == "" {
		return nil, nil, fmt.Errorf("--watch needs --config")
	}
	w, err := config.NewWatcher(configPath, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := w.Start(ctx); err != nil {
		w.Stop()
		return nil, nil, err
	}

	out := make(chan config.Config, 1)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case cfg := <-w.Changes():
				applyOverrides(cmd, &cfg)
				select {
				case <-out:
				default:
				}
				out <- cfg
			}
		}
	}()
	return out, w.Stop, nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	reloads, stop, err := startWatch(ctx, cmd)
	if err != nil {
		return err
	}
	defer stop()

	logger.Info("starting window", zap.Int("particles", cfg.Field.ParticleCount))
	return game.Run(cfg, reloads, logger)
}

func runTerm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	f, err := field.New(cfg.Field, logger)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	reloads, stop, err := startWatch(ctx, cmd)
	if err != nil {
		return err
	}
	defer stop()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	return term.New(screen, logger).Run(ctx, f, reloads)
}

func runROI(cmd *cobra.Command, args []string) error {
	est, err := roi.Calculate(roiInputs)
	if err != nil {
		return err
	}

	payback := "never"
	if !math.IsInf(est.PaybackMonths, 1) {
		payback = fmt.Sprintf("%.1f months", est.PaybackMonths)
	}
	body := fmt.Sprintf(`Current annual cost   $%s
  manual processes    $%s
  errors              $%s
Annual savings        $%s
Implementation cost   $%s
Annual ROI            %+.0f%%
Payback               %s`,
		money(est.TotalCurrentCost), money(est.ManualProcessCost), money(est.ErrorCost),
		money(est.TotalSavings), money(est.ImplementationCost), est.AnnualROI, payback)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 1)
	title := lipgloss.NewStyle().Bold(true).Render("ERP ROI estimate")

	fmt.Fprintln(cmd.OutOrStdout(), box.Render(title+"\n\n"+body))
	fmt.Fprintln(cmd.OutOrStdout(), "Assumes 70% less manual work and errors, $2,000 per employee to implement, 20% yearly maintenance.")
	return nil
}

func runQuiz(cmd *cobra.Command, args []string) error {
	questions, err := quiz.Load(quizPath)
	if err != nil {
		return err
	}
	q, err := quiz.New(questions)
	if err != nil {
		return err
	}

	bold := lipgloss.NewStyle().Bold(true)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 1)

	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()
	for {
		for !q.Completed() {
			cur := q.Current()
			fmt.Fprintf(out, "\nQuestion %d of %d    Score: %d/%d\n%s\n",
				q.Index()+1, q.Len(), q.Score(), q.AnsweredCount(), bold.Render(cur.Prompt))
			for i, opt := range cur.Options {
				fmt.Fprintf(out, "  %d) %s\n", i+1, opt)
			}

			fmt.Fprint(out, "Answer: ")
			line, err := readLine(in)
			if err != nil {
				return err
			}
			if line == "q" {
				return nil
			}

			n, err := strconv.Atoi(line)
			if err != nil {
				fmt.Fprintf(out, "Pick a number from 1 to %d.\n", len(cur.Options))
				continue
			}
			correct, err := q.Answer(n - 1)
			if errors.Is(err, quiz.ErrNoSuchOption) {
				fmt.Fprintf(out, "Pick a number from 1 to %d.\n", len(cur.Options))
				continue
			}
			if err != nil {
				return err
			}

			if correct {
				fmt.Fprintln(out, "✓ Correct!")
			} else {
				fmt.Fprintf(out, "Not quite right. The answer is %d) %s\n", cur.Answer+1, cur.Options[cur.Answer])
			}
			if cur.Explanation != "" {
				fmt.Fprintln(out, cur.Explanation)
			}
			if err := q.Next(); err != nil {
				return err
			}
		}

		body := fmt.Sprintf("%d%%\nYou got %d out of %d questions correct\n\n%s",
			q.Percentage(), q.Score(), q.Len(), q.Result())
		fmt.Fprintln(out, box.Render(bold.Render("Quiz complete!")+"\n\n"+body))
		logger.Debug("quiz completed", zap.Int("score", q.Score()), zap.Int("percent", q.Percentage()))

		fmt.Fprint(out, "Retake? [y/N] ")
		line, err := readLine(in)
		if err != nil {
			return err
		}
		if !strings.EqualFold(line, "y") {
			return nil
		}
		q.Restart()
	}
}

// readLine reads one trimmed line. End of input reads as "q".
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	switch {
	case errors.Is(err, io.EOF) && line == "":
		return "q", nil
	case err != nil && !errors.Is(err, io.EOF):
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// money formats v as whole dollars with thousands separators.
func money(v float64) string {
	return humanize.Comma(int64(math.Round(v)))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/purrgress/purrgress/pkg/progress"
	"github.com/purrgress/purrgress/pkg/report"
	"github.com/purrgress/purrgress/pkg/stages"
)

// demoConfig holds the knobs shared by the demo subcommands.
type demoConfig struct {
	Theme    string
	Desc     string
	Unit     string
	Total    int64
	Width    int
	Refresh  time.Duration
	SleepPer time.Duration
}

func defaultDemoConfig() demoConfig {
	return demoConfig{
		Theme:    "classic",
		Desc:     "Progress",
		Unit:     "it",
		Total:    100,
		Width:    0,
		Refresh:  100 * time.Millisecond,
		SleepPer: 50 * time.Millisecond,
	}
}

// envConfigMapping defines how environment variables map to demo fields
type envConfigMapping struct {
	EnvKey string
	Setter func(cfg *demoConfig, value string) error
}

// buildEnvMappings creates the environment variable to config field mappings
func buildEnvMappings() []envConfigMapping {
	return []envConfigMapping{
		{"PURRGRESS_THEME", func(cfg *demoConfig, value string) error {
			cfg.Theme = value
			return nil
		}},
		{"PURRGRESS_DESC", func(cfg *demoConfig, value string) error {
			cfg.Desc = value
			return nil
		}},
		{"PURRGRESS_UNIT", func(cfg *demoConfig, value string) error {
			cfg.Unit = value
			return nil
		}},
		{"PURRGRESS_TOTAL", func(cfg *demoConfig, value string) error {
			if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
				cfg.Total = parsed
			}
			return nil
		}},
		{"PURRGRESS_WIDTH", func(cfg *demoConfig, value string) error {
			if parsed, err := strconv.Atoi(value); err == nil {
				cfg.Width = parsed
			}
			return nil
		}},
		{"PURRGRESS_REFRESH", func(cfg *demoConfig, value string) error {
			if parsed, err := time.ParseDuration(value); err == nil {
				cfg.Refresh = parsed
			}
			return nil
		}},
		{"PURRGRESS_SLEEP", func(cfg *demoConfig, value string) error {
			if parsed, err := time.ParseDuration(value); err == nil {
				cfg.SleepPer = parsed
			}
			return nil
		}},
	}
}

// applyEnvMappings applies environment variable mappings to the config
func applyEnvMappings(cfg *demoConfig) error {
	for _, mapping := range buildEnvMappings() {
		if val := os.Getenv(mapping.EnvKey); val != "" {
			if err := mapping.Setter(cfg, val); err != nil {
				return err
			}
		}
	}
	return nil
}

var (
	demoTheme   string
	demoTotal   int64
	demoWidth   int
	demoSleep   time.Duration
	demoRefresh time.Duration
)

// demoSettings resolves env then flag overrides on the defaults.
func demoSettings() (demoConfig, error) {
	cfg := defaultDemoConfig()
	if err := applyEnvMappings(&cfg); err != nil {
		return cfg, err
	}
	if demoTheme != "" {
		cfg.Theme = demoTheme
	}
	if demoTotal > 0 {
		cfg.Total = demoTotal
	}
	if demoWidth > 0 {
		cfg.Width = demoWidth
	}
	if demoSleep > 0 {
		cfg.SleepPer = demoSleep
	}
	if demoRefresh > 0 {
		cfg.Refresh = demoRefresh
	}
	return cfg, nil
}

func (cfg demoConfig) barOptions() []progress.Option {
	opts := []progress.Option{
		progress.WithThemeName(cfg.Theme),
		progress.WithDescription(cfg.Desc),
		progress.WithUnit(cfg.Unit),
		progress.WithRefreshRate(cfg.Refresh),
	}
	if cfg.Width > 0 {
		opts = append(opts, progress.WithWidth(cfg.Width))
	}
	return opts
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a progress display demo",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var demoBarCmd = &cobra.Command{
	Use:   "bar",
	Short: "Centered big cat bar with live training metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := demoSettings()
		if err != nil {
			return err
		}

		bar, err := progress.New(cfg.Total, cfg.barOptions()...)
		if err != nil {
			return err
		}
		if err := bar.Open(); err != nil {
			return err
		}
		defer bar.Close()

		for i := int64(1); i <= cfg.Total; i++ {
			if err := bar.Add(1); err != nil {
				return err
			}
			if i%10 == 0 {
				loss := 1.0 / float64(i)
				if err := bar.SetPostfix(
					progress.Field{Key: "loss", Value: loss},
					progress.Field{Key: "acc", Value: 1.0 - loss},
					progress.Field{Key: "epoch", Value: int(i / 10)},
				); err != nil {
					return err
				}
			}
			time.Sleep(cfg.SleepPer)
		}
		return bar.Close()
	},
}

var demoMovingCmd = &cobra.Command{
	Use:   "moving",
	Short: "Cat that walks across the terminal as work completes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := demoSettings()
		if err != nil {
			return err
		}

		opts := append(cfg.barOptions(),
			progress.WithMovingCat(),
			progress.WithSleepPer(cfg.SleepPer),
		)
		for range progress.Range(int(cfg.Total), opts...) {
		}
		return nil
	},
}

var demoIterCmd = &cobra.Command{
	Use:   "iter",
	Short: "Decorated iteration over a slice",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := demoSettings()
		if err != nil {
			return err
		}

		batches := make([]string, cfg.Total)
		for i := range batches {
			batches[i] = "batch-" + strconv.Itoa(i)
		}
		opts := append(cfg.barOptions(), progress.WithSleepPer(cfg.SleepPer))
		for range progress.EachSlice(batches, opts...) {
		}
		return nil
	},
}

var demoStagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "Weighted multi-stage pipeline with a phase cat",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := demoSettings()
		if err != nil {
			return err
		}

		runner, err := stages.NewRunner([]stages.Stage{
			{Name: "Initializing cats", Weight: 1},
			{Name: "Loading cat database", Weight: 3},
			{Name: "Training cats", Weight: 4},
			{Name: "Deploying cats", Weight: 2},
			{Name: "Finalizing", Weight: 1},
		}, stages.WithRefresh(cfg.Refresh))
		if err != nil {
			return err
		}
		if err := runner.Start(); err != nil {
			return err
		}

		const stepsPerStage = 20
		for stage := 0; stage < 5; stage++ {
			for step := 1; step <= stepsPerStage; step++ {
				if err := runner.Advance(float64(step) / stepsPerStage); err != nil {
					return err
				}
				time.Sleep(cfg.SleepPer)
			}
			if err := runner.NextStage(); err != nil {
				return err
			}
		}
		return runner.Finish()
	},
}

var demoReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Step reporter for a long running task",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := demoSettings()
		if err != nil {
			return err
		}

		task := report.NewTask(cmd.Context(), report.WithThrottle(cfg.Refresh))
		defer task.Close()

		if err := task.Begin("building the scratching post"); err != nil {
			return err
		}
		steps := []string{"measuring", "cutting", "wrapping sisal", "mounting perch", "quality check"}
		for i, step := range steps {
			if err := task.Update(i+1, len(steps), step); err != nil {
				return err
			}
			time.Sleep(5 * cfg.SleepPer)
		}
		return task.Complete("scratching post ready")
	},
}

func init() {
	demoCmd.PersistentFlags().StringVar(&demoTheme, "theme", "", "Theme name (see 'purrgress themes')")
	demoCmd.PersistentFlags().Int64Var(&demoTotal, "total", 0, "Number of items to process")
	demoCmd.PersistentFlags().IntVar(&demoWidth, "width", 0, "Track width in cells")
	demoCmd.PersistentFlags().DurationVar(&demoSleep, "sleep", 0, "Pause per item")
	demoCmd.PersistentFlags().DurationVar(&demoRefresh, "refresh", 0, "Minimum delay between repaints")

	demoCmd.AddCommand(demoBarCmd)
	demoCmd.AddCommand(demoMovingCmd)
	demoCmd.AddCommand(demoIterCmd)
	demoCmd.AddCommand(demoStagesCmd)
	demoCmd.AddCommand(demoReportCmd)
}

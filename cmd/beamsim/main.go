package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/nkoval/beamsim/internal/config"
	"github.com/nkoval/beamsim/internal/experiment"
	"github.com/nkoval/beamsim/internal/live"
	"github.com/nkoval/beamsim/internal/relativity"
	"github.com/nkoval/beamsim/internal/storage"
)

var (
	dataDir    string
	configFile string
	dt         float64
	steps      int
	direction  string
	// live view
	stepsPerFrame int
	// collide
	mass1, mass2 float64
	vel1, vel2   float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "beamsim",
		Short: "reversible charged-particle tracking through a linac beamline",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".beamsim", "data directory")

	trackCmd := &cobra.Command{
		Use:   "track [preset]",
		Short: "run a tracking experiment",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTrack,
	}
	trackCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	trackCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	trackCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "step count")
	trackCmd.Flags().StringVar(&direction, "direction", "", "forward or backward")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run samples",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (s)")
	liveCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "step count")
	liveCmd.Flags().StringVar(&direction, "direction", "", "forward or backward")
	liveCmd.Flags().IntVar(&stepsPerFrame, "steps-per-frame", 10, "integration steps per frame")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	collideCmd := &cobra.Command{
		Use:   "collide",
		Short: "relativistic elastic collision calculator",
		RunE:  runCollide,
	}
	collideCmd.Flags().Float64Var(&mass1, "m1", 1.0, "first rest mass (kg)")
	collideCmd.Flags().Float64Var(&mass2, "m2", 1.0, "second rest mass (kg)")
	collideCmd.Flags().Float64Var(&vel1, "v1", 0.0, "first velocity (m/s)")
	collideCmd.Flags().Float64Var(&vel2, "v2", 0.0, "second velocity (m/s)")

	rootCmd.AddCommand(trackCmd, listCmd, plotCmd, exportCmd, liveCmd, presetsCmd, collideCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig resolves the run configuration: CLI flags beat the
// config file, which beats the preset.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, string, error) {
	name := "run"
	var cfg *config.Config

	if len(args) > 0 {
		preset := config.GetPreset(args[0])
		if preset == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
		}
		// Copy so flag overrides don't mutate the preset table.
		c := *preset
		cfg = &c
		name = args[0]
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		name = "config"
	}

	if cfg == nil {
		return nil, "", fmt.Errorf("a preset name or --config is required (presets: %v)", config.ListPresets())
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("direction") {
		cfg.Direction = direction
	}

	return cfg, name, nil
}

func runTrack(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return err
	}

	fmt.Printf("tracking %s (%d steps x %.2e s, %s)...\n", name, cfg.Steps, cfg.Dt, cfg.Direction)
	start := time.Now()

	result, runErr := exp.Run(context.Background())
	elapsed := time.Since(start)
	if result == nil {
		return runErr
	}

	kinds := make([]string, len(cfg.Beamline))
	for i, ec := range cfg.Beamline {
		kinds[i] = ec.Kind
	}

	var runID string
	if result.StepsTaken > 0 {
		runID, err = st.Save(name, cfg.Dt, cfg.Direction, kinds, result)
		if err != nil {
			return err
		}
	}

	if runErr != nil {
		// Samples recorded before the failing step were saved above.
		fmt.Printf("run aborted after %d steps: %v\n", result.StepsTaken, runErr)
	} else {
		fmt.Printf("completed in %v\n", elapsed)
	}
	if runID != "" {
		fmt.Printf("run id: %s\n", runID)
	}

	for i, p := range exp.Engine().Particles() {
		fmt.Printf("\nparticle %d:\n", i)
		fmt.Printf("  final energy:   %.4f GeV\n", p.Energy())
		fmt.Printf("  final position: [%.4e %.4e %.4e] m\n", p.Position.X, p.Position.Y, p.Position.Z)
		fmt.Printf("  final momentum: [%.4e %.4e %.4e] kg·m/s\n", p.Momentum.X, p.Momentum.Y, p.Momentum.Z)
	}

	fmt.Println("\nmetrics:")
	for metric, val := range result.Metrics {
		fmt.Printf("  %s: %.6e\n", metric, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return err
	}

	model := live.NewModel(exp.Engine(), cfg.Dt, cfg.Steps, stepsPerFrame)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tDIRECTION\tSTEPS\tDT\tELEMENTS\tPARTICLES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2e\t%d\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Direction,
			run.Steps,
			run.Dt,
			len(run.Elements),
			run.Particles,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	times, columns, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("direction: %s\n", meta.Direction)
	fmt.Printf("samples: %d\n\n", len(times))

	for p := 0; p < meta.Particles; p++ {
		panels := []struct {
			column  string
			caption string
		}{
			{fmt.Sprintf("p%d_energy_gev", p), fmt.Sprintf("particle %d energy (GeV)", p)},
			{fmt.Sprintf("p%d_x", p), fmt.Sprintf("particle %d x (m)", p)},
			{fmt.Sprintf("p%d_y", p), fmt.Sprintf("particle %d y (m)", p)},
			{fmt.Sprintf("p%d_z", p), fmt.Sprintf("particle %d z (m)", p)},
		}
		for _, panel := range panels {
			data, ok := columns[panel.column]
			if !ok || len(data) < 2 {
				continue
			}
			graph := asciigraph.Plot(data,
				asciigraph.Height(10),
				asciigraph.Width(80),
				asciigraph.Caption(panel.caption),
			)
			fmt.Println(graph)
			fmt.Println()
		}
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func runCollide(cmd *cobra.Command, args []string) error {
	v1f, v2f, err := relativity.ElasticCollision(mass1, mass2, vel1, vel2)
	if err != nil {
		return err
	}

	fmt.Printf("initial: v1=%.6e m/s (γ=%.6f)  v2=%.6e m/s (γ=%.6f)\n",
		vel1, relativity.Gamma(vel1), vel2, relativity.Gamma(vel2))
	fmt.Printf("final:   v1=%.6e m/s (γ=%.6f)  v2=%.6e m/s (γ=%.6f)\n",
		v1f, relativity.Gamma(v1f), v2f, relativity.Gamma(v2f))
	return nil
}

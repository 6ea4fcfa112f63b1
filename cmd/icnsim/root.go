// The icnsim command runs interconnection-network simulations from the
// command line.
package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sarchlab/icnsim/sim"
	"github.com/sarchlab/icnsim/simulation"
	"github.com/sarchlab/icnsim/topology"
)

var (
	flagTopology  string
	flagSwitching string
	flagSize      int
	flagPackets   int
	flagPacing    time.Duration
	flagSeed      int64
	flagMaxSteps  int
	flagStopEarly bool

	flagMonitor     bool
	flagMonitorPort int
	flagRecord      bool
	flagOutput      string
	flagVerbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "icnsim",
	Short: "Simulate packet movement over interconnection-network topologies.",
	Long: `icnsim simulates packet movement across mesh, torus, and ` +
		`hypercube topologies under congestion-aware adaptive routing, ` +
		`classifying deadlock and livelock conditions per packet.`,
	RunE: run,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	loadEnvDefaults()

	rootCmd.Flags().StringVarP(&flagTopology, "topology", "t", "Mesh",
		"topology kind: Mesh, Torus, or Hypercube")
	rootCmd.Flags().StringVarP(&flagSwitching, "switching", "w", "Packet",
		"switching technique label: Circuit, Packet, or Virtual")
	rootCmd.Flags().IntVarP(&flagSize, "size", "n", 3,
		"nodes per dimension (hypercube: dimension)")
	rootCmd.Flags().IntVarP(&flagPackets, "packets", "k", 3,
		"number of packets to simulate")
	rootCmd.Flags().DurationVar(&flagPacing, "pacing", 0,
		"delay between steps, e.g. 500ms (0 runs at full speed)")
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 0,
		"random seed for traffic generation (0 seeds from the clock)")
	rootCmd.Flags().IntVar(&flagMaxSteps, "max-steps", 0,
		"override the default step bound of size*size*2")
	rootCmd.Flags().BoolVar(&flagStopEarly, "stop-on-completion", false,
		"stop once every packet has completed")

	rootCmd.Flags().BoolVar(&flagMonitor, "monitor", false,
		"serve live simulation state over HTTP")
	rootCmd.Flags().IntVar(&flagMonitorPort, "monitor-port",
		envInt("ICNSIM_MONITOR_PORT"),
		"port for the monitoring server (0 picks a free port)")
	rootCmd.Flags().BoolVar(&flagRecord, "record", false,
		"record step states and packet traces into SQLite")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o",
		os.Getenv("ICNSIM_OUTPUT"),
		"recording file name, without the .sqlite3 suffix")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"log a summary line for every step")
}

// loadEnvDefaults reads .env so that deployments can pin defaults without
// wrapping the command.
func loadEnvDefaults() {
	_ = godotenv.Load()
}

func envInt(key string) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return 0
	}

	return v
}

func run(cmd *cobra.Command, _ []string) error {
	kind, err := topology.ParseKind(flagTopology)
	if err != nil {
		return err
	}

	switching, err := sim.ParseSwitchingTechnique(flagSwitching)
	if err != nil {
		return err
	}

	builder := simulation.MakeBuilder().
		WithTopology(kind).
		WithSize(flagSize).
		WithPacketCount(flagPackets).
		WithSwitching(switching).
		WithSeed(flagSeed).
		WithMaxSteps(flagMaxSteps).
		WithPacing(flagPacing)

	if flagStopEarly {
		builder = builder.WithStopOnCompletion()
	}

	if flagMonitor {
		builder = builder.WithMonitoring()
		if flagMonitorPort > 0 {
			builder = builder.WithMonitorPort(flagMonitorPort)
		}
	}

	if flagRecord {
		builder = builder.WithRecording()
		if flagOutput != "" {
			builder = builder.WithOutputFileName(flagOutput)
		}
	}

	if flagVerbose {
		builder = builder.WithStepLogging()
	}

	s, err := builder.Build()
	if err != nil {
		return err
	}
	defer s.Terminate()

	if flagMonitor {
		s.GetMonitor().OpenDashboard()
	}

	if err := s.Run(); err != nil {
		log.Printf("simulation failed: %v", err)
		return err
	}

	s.WriteSummary(cmd.OutOrStdout())

	return nil
}

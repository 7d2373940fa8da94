package main

import (
	"github.com/iti/rwasim"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var verbose bool

func newRootCmd(version string) *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:          "rwasim",
		Short:        "Simulate routing and wavelength assignment over an optical network",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.AddCommand(newRunCmd(), newExampleCmd())
	return rootCmd
}

func newRunCmd() *cobra.Command {
	var expFile string
	var policyNames []string
	var traceFile string
	var spacing float64

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the experiment described in a YAML, JSON or TOML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Debugf("Reading experiment from %s", expFile)
			cfg, err := rwasim.ReadExpCfg(expFile, nil)
			if err != nil {
				return err
			}
			if len(policyNames) > 0 {
				cfg.Policies = cfg.Policies[:0]
				for _, name := range policyNames {
					policy, err := rwasim.ParsePolicy(name)
					if err != nil {
						return err
					}
					cfg.Policies = append(cfg.Policies, policy)
				}
			}
			if traceFile != "" {
				cfg.TraceFile = traceFile
			}
			if cmd.Flags().Changed("spacing") {
				cfg.Spacing = spacing
			}

			res, err := rwasim.RunExperiment(cfg)
			if err != nil {
				return err
			}
			writeReport(cmd.OutOrStdout(), res)
			return nil
		},
	}
	runCmd.Flags().StringVarP(&expFile, "file", "f", "experiment.yaml", "path to experiment description")
	runCmd.Flags().StringSliceVarP(&policyNames, "policy", "p", nil, "policies to run (first-fit, random-fit, least-used)")
	runCmd.Flags().StringVar(&traceFile, "trace", "", "write a trace of every run to this .yaml or .json file")
	runCmd.Flags().Float64Var(&spacing, "spacing", 0, "replay requests on a virtual timeline with this gap")
	return runCmd
}

func newExampleCmd() *cobra.Command {
	var outFile string
	var explicit bool

	exampleCmd := &cobra.Command{
		Use:   "example",
		Short: "Write the five node reference experiment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rwasim.ReferenceExpCfg()
			if explicit {
				addReferencePaths(cfg)
			}
			if err := cfg.WriteToFile(outFile); err != nil {
				return err
			}
			log.Infof("Wrote %s", outFile)
			return nil
		},
	}
	exampleCmd.Flags().StringVarP(&outFile, "output", "o", "reference.yaml", "description file to write")
	exampleCmd.Flags().BoolVar(&explicit, "paths", false, "include an explicit path table instead of deriving routes")
	return exampleCmd
}

// addReferencePaths supplies the fewest-hop routes of the reference topology directly
func addReferencePaths(cfg *rwasim.ExpCfg) {
	cfg.AddPath(1, 2, []int{1, 3, 4, 2})
	cfg.AddPath(1, 3, []int{1, 3})
	cfg.AddPath(1, 4, []int{1, 3, 4})
	cfg.AddPath(1, 5, []int{1, 3, 4, 5})
	cfg.AddPath(2, 3, []int{2, 4, 3})
	cfg.AddPath(2, 4, []int{2, 4})
	cfg.AddPath(2, 5, []int{2, 5})
	cfg.AddPath(3, 4, []int{3, 4})
	cfg.AddPath(3, 5, []int{3, 4, 5})
	cfg.AddPath(4, 5, []int{4, 5})
}

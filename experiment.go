package rwasim

// experiment.go builds the structures an experiment description calls for and runs
// every requested assignment policy over them

import (
	log "github.com/sirupsen/logrus"
)

// ExpResult holds everything an experiment produced, for reporting
type ExpResult struct {
	Name string

	// Catalog, Selection and Lightpaths are nil when the description supplied its own path table
	Catalog    *Catalog
	Selection  *Selection
	Lightpaths *LightpathPlan

	// Table is the route table the runs used
	Table PathTable

	// Runs holds one assignment per policy, in the order run
	Runs []*Assignment

	// Trace is the trace of the runs, inactive unless the description named a trace file
	Trace *TraceManager
}

// RunExperiment validates the description, derives or loads the route table, and runs
// each policy against independently initialized link state.  Options are handed to
// the Assigner.
func RunExperiment(cfg *ExpCfg, opts ...AssignerOption) (*ExpResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	res := new(ExpResult)
	res.Name = cfg.Name
	res.Trace = CreateTraceManager(cfg.Name, cfg.TraceFile != "")

	if len(cfg.Paths) > 0 {
		table, err := cfg.PathTable()
		if err != nil {
			return nil, err
		}
		res.Table = table
		log.Debugf("%s: using %d supplied routes", cfg.Name, len(table))
	} else {
		tp, err := NewTopology(cfg.Topology)
		if err != nil {
			return nil, err
		}
		res.Catalog, err = BuildCatalog(tp, cfg.K)
		if err != nil {
			return nil, err
		}
		res.Selection = SelectPaths(res.Catalog)
		res.Lightpaths = AllocateLightpaths(res.Selection)
		res.Table = res.Selection.PathTable()
		log.Debugf("%s: selected %d routes, edge usage max %d min %d avg %.2f", cfg.Name,
			len(res.Table), res.Selection.MaxUsage, res.Selection.MinUsage, res.Selection.AvgUsage)
	}

	opts = append(opts, WithTrace(res.Trace))
	asgn, err := NewAssigner(res.Table, cfg.Wavelengths, opts...)
	if err != nil {
		return nil, err
	}

	policies := cfg.Policies
	if len(policies) == 0 {
		policies = Policies
	}
	for _, policy := range policies {
		var result *Assignment
		if cfg.Spacing > 0 {
			result, err = asgn.RunTimeline(cfg.Demand, policy, cfg.Spacing)
		} else {
			result, err = asgn.Assign(cfg.Demand, policy)
		}
		if err != nil {
			return nil, err
		}
		res.Runs = append(res.Runs, result)
	}

	if cfg.TraceFile != "" {
		if err := res.Trace.WriteToFile(cfg.TraceFile, true); err != nil {
			return nil, err
		}
	}
	return res, nil
}

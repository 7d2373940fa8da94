package rwasim

// trace.go gathers a record of every commit and block decision made during
// assignment runs, for post-run analysis

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"sort"
	"strconv"

	"github.com/iti/evt/vrtime"
	"gopkg.in/yaml.v3"
)

// TraceInst is one serialized trace record and the time it was made
type TraceInst struct {
	TraceTime string `json:"tracetime" yaml:"tracetime"`
	TraceType string `json:"tracetype" yaml:"tracetype"`
	TraceStr  string `json:"tracestr" yaml:"tracestr"`
}

// NameType is an entry in the dictionary mapping run ids to a (name,type) pair
type NameType struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// TraceManager gathers trace records for an experiment.  When it is not in use
// every method is a no-op, so callers need not test before recording.
type TraceManager struct {
	// experiment uses trace
	InUse bool `json:"inuse" yaml:"inuse"`

	// name of experiment
	ExpName string `json:"expname" yaml:"expname"`

	// text name associated with each run id
	NameByID map[int]NameType `json:"namebyid" yaml:"namebyid"`

	// trace records, by run id
	Traces map[int][]TraceInst `json:"traces" yaml:"traces"`
}

// CreateTraceManager is a constructor.  It saves the name of the experiment
// and a flag indicating whether the trace manager is active
func CreateTraceManager(expName string, active bool) *TraceManager {
	tm := new(TraceManager)
	tm.InUse = active
	tm.ExpName = expName
	tm.NameByID = make(map[int]NameType)
	tm.Traces = make(map[int][]TraceInst)
	return tm
}

// Active tells the caller whether the trace manager is being used
func (tm *TraceManager) Active() bool {
	return tm.InUse
}

// AddTrace stores a trace record under the run id, stamped with the virtual time vrt
func (tm *TraceManager) AddTrace(vrt vrtime.Time, execID int, trace TraceInst) {
	if !tm.InUse {
		return
	}
	trace.TraceTime = strconv.FormatFloat(vrt.Seconds(), 'f', -1, 64)
	tm.Traces[execID] = append(tm.Traces[execID], trace)
}

// AddName records the name and type of a run id.  A later name for the same id replaces the earlier.
func (tm *TraceManager) AddName(id int, name string, objDesc string) {
	if !tm.InUse {
		return
	}
	tm.NameByID[id] = NameType{Name: name, Type: objDesc}
}

// Count returns the number of records held for the run id
func (tm *TraceManager) Count(execID int) int {
	return len(tm.Traces[execID])
}

// WriteToFile stores the trace manager to the named file, as YAML or JSON
// depending on the extension.  With globalOrder all records are merged into
// one list ordered by trace time.  Nothing is written when the manager is inactive.
func (tm *TraceManager) WriteToFile(filename string, globalOrder bool) error {
	if !tm.InUse {
		return nil
	}

	out := tm
	if globalOrder {
		out = CreateTraceManager(tm.ExpName, tm.InUse)
		for key, value := range tm.NameByID {
			out.NameByID[key] = value
		}
		merged := make([]TraceInst, 0)
		ids := make([]int, 0, len(tm.Traces))
		for id := range tm.Traces {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		for _, id := range ids {
			merged = append(merged, tm.Traces[id]...)
		}
		sort.SliceStable(merged, func(i, j int) bool {
			v1, _ := strconv.ParseFloat(merged[i].TraceTime, 64)
			v2, _ := strconv.ParseFloat(merged[j].TraceTime, 64)
			return v1 < v2
		})
		out.Traces[0] = merged
	}

	var bytes []byte
	var merr error
	switch path.Ext(filename) {
	case ".yaml", ".YAML", ".yml":
		bytes, merr = yaml.Marshal(*out)
	case ".json", ".JSON":
		bytes, merr = json.MarshalIndent(*out, "", "\t")
	default:
		return fmt.Errorf("trace file %s: extension must be .yaml, .yml or .json", filename)
	}
	if merr != nil {
		return merr
	}
	return os.WriteFile(filename, bytes, 0o644)
}

// AssignTrace records the fate of one request
type AssignTrace struct {
	Time       float64 `json:"time" yaml:"time"`
	ExecID     int     `json:"execid" yaml:"execid"`
	Policy     string  `json:"policy" yaml:"policy"`
	From       int     `json:"from" yaml:"from"`
	To         int     `json:"to" yaml:"to"`
	Route      []int   `json:"route" yaml:"route"`
	Wavelength int     `json:"wavelength" yaml:"wavelength"` // zero unless committed
	Outcome    string  `json:"outcome" yaml:"outcome"`       // "committed", "blocked", "unprovisioned"
}

// Serialize renders the record as YAML
func (at *AssignTrace) Serialize() string {
	bytes, merr := yaml.Marshal(*at)
	if merr != nil {
		panic(merr)
	}
	return string(bytes[:])
}

// AddAssignTrace creates a record of one assignment decision and stores it
func AddAssignTrace(tm *TraceManager, vrt vrtime.Time, execID int, policy Policy,
	conn Connection, route []int, lambda int, outcome string) {
	at := new(AssignTrace)
	at.Time = vrt.Seconds()
	at.ExecID = execID
	at.Policy = policy.String()
	at.From = conn.From
	at.To = conn.To
	at.Route = route
	at.Wavelength = lambda
	at.Outcome = outcome

	trcInst := TraceInst{TraceType: "assign", TraceStr: at.Serialize()}
	tm.AddTrace(vrt, execID, trcInst)
}

// DecodeAssignTrace parses the record held in a TraceInst of type "assign"
func DecodeAssignTrace(inst TraceInst) (*AssignTrace, error) {
	at := new(AssignTrace)
	if err := yaml.Unmarshal([]byte(inst.TraceStr), at); err != nil {
		return nil, err
	}
	return at, nil
}

package rwasim

// wavelength.go assigns a wavelength to every unit of demand routed over a path table,
// subject to wavelength continuity (one wavelength end to end) and the fixed number of
// wavelengths each link offers.  No committed lightpath is ever released.

import (
	"github.com/iti/evt/vrtime"
	"github.com/iti/rngstream"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

// Connection is an ordered demand pair as it appears in the demand matrix
type Connection struct {
	From int `json:"from" yaml:"from"`
	To   int `json:"to" yaml:"to"`
}

// Lightpath is a committed connection: its route and the wavelength (1-based) it holds
type Lightpath struct {
	Conn       Connection `json:"conn" yaml:"conn"`
	Route      []int      `json:"route" yaml:"route"`
	Wavelength int        `json:"wavelength" yaml:"wavelength"`
}

// Assignment is the outcome of one assignment run
type Assignment struct {
	Policy      Policy `json:"policy" yaml:"policy"`
	Wavelengths int    `json:"wavelengths" yaml:"wavelengths"`

	// request counts; Total = Committed + Blocked
	Total     int `json:"total" yaml:"total"`
	Committed int `json:"committed" yaml:"committed"`
	Blocked   int `json:"blocked" yaml:"blocked"`

	// Blocked split by cause: no route in the table, or no wavelength free along the route
	Unprovisioned int `json:"unprovisioned" yaml:"unprovisioned"`
	Exhausted     int `json:"exhausted" yaml:"exhausted"`

	// BlockedPct is 100*Blocked/Total, zero when there were no requests
	BlockedPct float64 `json:"blockedpct" yaml:"blockedpct"`

	// Allocation maps every wavelength 1..Wavelengths to the connections it carries, in commit order
	Allocation map[int][]Connection `json:"allocation" yaml:"allocation"`

	// Lightpaths lists every commit in order
	Lightpaths []Lightpath `json:"lightpaths" yaml:"lightpaths"`

	// LinkInUse maps each link of the path table to the wavelengths committed on it, ascending
	LinkInUse map[Link][]int `json:"-" yaml:"-"`

	// Usage[w-1] counts the connections carried on wavelength w
	Usage []int `json:"usage" yaml:"usage"`
}

// Carried returns the connections on wavelength lambda (1-based)
func (asgn *Assignment) Carried(lambda int) []Connection {
	return asgn.Allocation[lambda]
}

// Assigner runs wavelength assignment over a fixed path table and wavelength count.
// It is not safe for concurrent use.
type Assigner struct {
	table          PathTable
	numWavelengths int

	// links of the table, each one carrying numWavelengths wavelengths
	links []Link

	// random source used by RandomFit
	rng U01Source

	// optional trace of every commit/block decision
	traceMgr *TraceManager

	// numRuns numbers the runs for the trace
	numRuns int
}

// AssignerOption configures an Assigner
type AssignerOption func(*Assigner)

// WithRandSource sets the random source RandomFit draws from.  The default is an
// rngstream stream created with the Assigner.
func WithRandSource(src U01Source) AssignerOption {
	return func(asgn *Assigner) {
		asgn.rng = src
	}
}

// WithTrace records every commit and block decision into tm
func WithTrace(tm *TraceManager) AssignerOption {
	return func(asgn *Assigner) {
		asgn.traceMgr = tm
	}
}

// NewAssigner validates the path table and wavelength count and keeps a copy of
// the table, so later changes to it do not reach the Assigner.  Every run starts
// from fully available links.
func NewAssigner(table PathTable, numWavelengths int, opts ...AssignerOption) (*Assigner, error) {
	if numWavelengths < 1 {
		return nil, invalidf("wavelength count %d, must be at least 1", numWavelengths)
	}
	if err := table.Validate(0); err != nil {
		return nil, err
	}

	asgn := new(Assigner)
	asgn.table = make(PathTable, len(table))
	for pair, route := range table {
		nodes := make([]int, len(route))
		copy(nodes, route)
		asgn.table[pair] = nodes
	}
	asgn.numWavelengths = numWavelengths
	asgn.links = table.Links()
	for _, opt := range opts {
		opt(asgn)
	}
	if asgn.rng == nil {
		asgn.rng = rngstream.New("random-fit")
	}
	return asgn, nil
}

// NumWavelengths returns the number of wavelengths each link offers
func (asgn *Assigner) NumWavelengths() int {
	return asgn.numWavelengths
}

// Links returns the links holding wavelength state
func (asgn *Assigner) Links() []Link {
	links := make([]Link, len(asgn.links))
	copy(links, asgn.links)
	return links
}

// Assign processes the demand matrix under the given policy.  Ordered pairs are
// visited row-major and each unit of demand is an independent request that is
// either committed or blocked before the next is considered.
func (asgn *Assigner) Assign(demand Demand, policy Policy) (*Assignment, error) {
	reqs, err := asgn.requests(demand)
	if err != nil {
		return nil, err
	}
	rn, err := asgn.newRun(policy)
	if err != nil {
		return nil, err
	}
	idx := 0
	for _, req := range reqs {
		for unit := 0; unit < req.count; unit++ {
			rn.offer(req, vrtime.SecondsToTime(float64(idx)))
			idx += 1
		}
	}
	return rn.finish(), nil
}

// CompareAll runs every policy against independently initialized link state
func (asgn *Assigner) CompareAll(demand Demand) ([]*Assignment, error) {
	results := make([]*Assignment, 0, len(Policies))
	for _, policy := range Policies {
		result, err := asgn.Assign(demand, policy)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

// request is the demand of one ordered pair: count unit requests sharing route and links
type request struct {
	conn  Connection
	route []int
	links []Link
	count int
}

// requests lists, row-major, the ordered pairs with non-zero demand.
// A pair without a route has nil links.
func (asgn *Assigner) requests(demand Demand) ([]request, error) {
	n := len(demand)
	if err := demand.Validate(n); err != nil {
		return nil, err
	}
	if maxID := asgn.table.MaxNode(); maxID > n {
		return nil, invalidf("path table names node %d but the demand matrix covers %d nodes", maxID, n)
	}

	reqs := make([]request, 0)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j || demand[i][j] == 0 {
				continue
			}
			conn := Connection{From: i + 1, To: j + 1}
			route, present := asgn.table.Route(conn.From, conn.To)
			var links []Link
			if present {
				links = routeLinks(route)
			} else {
				log.Warnf("no route provisioned for %d->%d, blocking %d requests", conn.From, conn.To, demand[i][j])
			}
			reqs = append(reqs, request{conn: conn, route: route, links: links, count: demand[i][j]})
		}
	}
	return reqs, nil
}

// run is the state of one assignment run.  Nothing in it outlives the run.
type run struct {
	asgn   *Assigner
	execID int
	pick   chooser

	// avail[link][w] is true while wavelength w+1 is free on link
	avail map[Link][]bool

	result *Assignment
}

func (asgn *Assigner) newRun(policy Policy) (*run, error) {
	pick, err := newChooser(policy, asgn.numWavelengths, asgn.rng)
	if err != nil {
		return nil, err
	}
	asgn.numRuns += 1

	rn := new(run)
	rn.asgn = asgn
	rn.execID = asgn.numRuns
	rn.pick = pick
	rn.avail = make(map[Link][]bool, len(asgn.links))
	for _, link := range asgn.links {
		free := make([]bool, asgn.numWavelengths)
		for w := range free {
			free[w] = true
		}
		rn.avail[link] = free
	}

	rn.result = new(Assignment)
	rn.result.Policy = policy
	rn.result.Wavelengths = asgn.numWavelengths
	rn.result.Allocation = make(map[int][]Connection, asgn.numWavelengths)
	for lambda := 1; lambda <= asgn.numWavelengths; lambda++ {
		rn.result.Allocation[lambda] = []Connection{}
	}
	rn.result.Lightpaths = make([]Lightpath, 0)
	rn.result.Usage = make([]int, asgn.numWavelengths)

	if tm := asgn.traceMgr; tm != nil && tm.Active() {
		tm.AddName(rn.execID, policy.String(), "run")
	}
	return rn, nil
}

// freeAlong returns, ascending, the zero-based wavelengths free on every one of links
func (rn *run) freeAlong(links []Link) []int {
	free := make([]int, 0, rn.asgn.numWavelengths)
	for w := 0; w < rn.asgn.numWavelengths; w++ {
		ok := true
		for _, link := range links {
			if !rn.avail[link][w] {
				ok = false
				break
			}
		}
		if ok {
			free = append(free, w)
		}
	}
	return free
}

// offer decides one unit of req, committing a wavelength or counting it as blocked
func (rn *run) offer(req request, vrt vrtime.Time) {
	res := rn.result
	res.Total += 1

	if req.links == nil {
		res.Blocked += 1
		res.Unprovisioned += 1
		rn.trace(vrt, req, 0, "unprovisioned")
		return
	}

	free := rn.freeAlong(req.links)
	if len(free) == 0 {
		res.Blocked += 1
		res.Exhausted += 1
		rn.trace(vrt, req, 0, "blocked")
		return
	}

	w := rn.pick.choose(free)
	for _, link := range req.links {
		rn.avail[link][w] = false
	}
	rn.pick.committed(w)

	lambda := w + 1
	res.Committed += 1
	res.Usage[w] += 1
	res.Allocation[lambda] = append(res.Allocation[lambda], req.conn)
	res.Lightpaths = append(res.Lightpaths, Lightpath{Conn: req.conn, Route: req.route, Wavelength: lambda})
	rn.trace(vrt, req, lambda, "committed")
}

func (rn *run) trace(vrt vrtime.Time, req request, lambda int, outcome string) {
	tm := rn.asgn.traceMgr
	if tm == nil || !tm.Active() {
		return
	}
	AddAssignTrace(tm, vrt, rn.execID, rn.result.Policy, req.conn, req.route, lambda, outcome)
}

// finish computes the blocking percentage and per-link occupancy
func (rn *run) finish() *Assignment {
	res := rn.result
	if res.Total > 0 {
		res.BlockedPct = 100.0 * float64(res.Blocked) / float64(res.Total)
	}

	res.LinkInUse = make(map[Link][]int, len(rn.avail))
	for link, free := range rn.avail {
		inUse := make([]int, 0)
		for w, avail := range free {
			if !avail {
				inUse = append(inUse, w+1)
			}
		}
		res.LinkInUse[link] = inUse
	}

	log.Debugf("%s: %d requests, %d committed, %d blocked (%.2f%%)",
		res.Policy, res.Total, res.Committed, res.Blocked, res.BlockedPct)
	return res
}

// LinksOf returns the links of the table whose in-use set contains lambda, ordered
func (asgn *Assignment) LinksOf(lambda int) []Link {
	links := make([]Link, 0)
	for link, inUse := range asgn.LinkInUse {
		if slices.Contains(inUse, lambda) {
			links = append(links, link)
		}
	}
	slices.SortFunc(links, func(a, b Link) int { return cmpBy(linkLess, a, b) })
	return links
}

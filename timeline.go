package rwasim

// timeline.go replays the request sequence of an assignment run as discrete events,
// so trace records carry the virtual time at which each request was decided

import (
	"fmt"
	"math"

	"github.com/iti/evt/evtm"
	"github.com/iti/evt/vrtime"
)

// A replay ends at (total+1)*ticks.  The event manager takes that limit in float
// seconds, so the request count must stay within float precision and the tick
// count well inside int64.
const (
	maxTimelineRequests = int64(1) << 52
	maxTimelineTicks    = int64(math.MaxInt64 / 2)
)

// timeline walks the unit requests of a run, one event per unit
type timeline struct {
	rn   *run
	reqs []request

	// reqs[pos] is the pair offering next, unit counts its units already offered
	pos  int
	unit int

	// ticks between consecutive requests
	ticks int64
}

// advance moves to the next unit request, reporting false when none is left
func (tl *timeline) advance() bool {
	tl.unit += 1
	for tl.pos < len(tl.reqs) && tl.unit >= tl.reqs[tl.pos].count {
		tl.pos += 1
		tl.unit = 0
	}
	return tl.pos < len(tl.reqs)
}

// RunTimeline processes the demand exactly as Assign does, but each unit request is
// an event on a fresh event manager, request r firing at virtual time r*spacing.
// Strictly increasing times keep the row-major processing order.  spacing is
// rounded to whole ticks and must come to at least one; the last request must
// fall inside the event manager's time range.
func (asgn *Assigner) RunTimeline(demand Demand, policy Policy, spacing float64) (*Assignment, error) {
	if !(spacing > 0) {
		return nil, invalidf("timeline spacing %v, must be positive", spacing)
	}
	ticks := vrtime.SecondsToTicks(spacing)
	if ticks < 1 {
		return nil, invalidf("timeline spacing %v is shorter than one tick", spacing)
	}

	reqs, err := asgn.requests(demand)
	if err != nil {
		return nil, err
	}
	total := int64(demand.Total())
	if total+1 > maxTimelineRequests || ticks > maxTimelineTicks/(total+1) {
		return nil, invalidf("timeline of %d requests spaced %v apart exceeds the virtual time range", total, spacing)
	}

	rn, err := asgn.newRun(policy)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return rn.finish(), nil
	}

	tl := &timeline{rn: rn, reqs: reqs, ticks: ticks, unit: -1}
	tl.advance()

	evtMgr := evtm.New()
	evtMgr.Schedule(tl, nil, offerRequest, vrtime.CreateTime(0, 0))
	evtMgr.Run(vrtime.CreateTime((total+1)*ticks, 0).Seconds())

	res := rn.finish()
	if int64(res.Total) != total {
		return nil, fmt.Errorf("timeline decided %d of %d requests", res.Total, total)
	}
	return res, nil
}

// offerRequest is the event handler deciding one request; context is the timeline.
// The next request is scheduled one spacing later.
func offerRequest(evtMgr *evtm.EventManager, context any, data any) any {
	tl := context.(*timeline)
	tl.rn.offer(tl.reqs[tl.pos], vrtime.SecondsToTime(evtMgr.CurrentSeconds()))
	if tl.advance() {
		evtMgr.Schedule(tl, nil, offerRequest, vrtime.CreateTime(tl.ticks, 0))
	}
	return nil
}

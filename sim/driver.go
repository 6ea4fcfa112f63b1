package sim

import (
	"sync"

	"github.com/sarchlab/icnsim/routing"
	"github.com/sarchlab/icnsim/topology"
	"github.com/sarchlab/icnsim/traffic"
)

// SwitchingTechnique labels the switching style of a run. It is descriptive
// metadata echoed in reports and recordings; it has no effect on routing.
type SwitchingTechnique string

// Supported switching technique labels.
const (
	CircuitSwitching SwitchingTechnique = "Circuit Switching"
	PacketSwitching  SwitchingTechnique = "Packet Switching"
	VirtualChannel   SwitchingTechnique = "Virtual Channel"
)

// PacketStatus is the end-of-run status of a packet.
type PacketStatus string

// End-of-run statuses. A packet that is not completed when the run ends is
// Blocked, regardless of its blocked-step count.
const (
	StatusCompleted PacketStatus = "Completed"
	StatusBlocked   PacketStatus = "Blocked"
)

// A PacketResult is the end-of-run trace of one packet.
type PacketResult struct {
	ID           string          `json:"id"`
	Src          topology.Node   `json:"src"`
	Dst          topology.Node   `json:"dst"`
	Path         []topology.Node `json:"path"`
	Status       PacketStatus    `json:"status"`
	BlockedSteps int             `json:"blocked_steps"`
}

// A Driver advances all packets one hop per step. It is the only place that
// mutates packet state. Reporters observe the run through the StepComplete
// and SimulationEnd hooks, or by reading the latest snapshot.
type Driver struct {
	HookableBase

	engine   Engine
	topology topology.Topology
	router   routing.Router
	packets  []*traffic.Packet

	maxSteps         int
	stopOnCompletion bool
	switching        SwitchingTechnique

	latestLock sync.RWMutex
	latest     Snapshot
}

// Start schedules the first step. The run performs exactly MaxSteps steps
// unless stop-on-completion is enabled.
func (d *Driver) Start() {
	if d.maxSteps <= 0 {
		return
	}

	d.engine.Schedule(MakeStepEvent(0, d))
}

// Handle performs one simulation step.
func (d *Driver) Handle(evt Event) error {
	stepEvt := evt.(StepEvent)

	d.step()

	snapshot := TakeSnapshot(stepEvt.Step(), d.topology, d.packets)
	d.setLatest(snapshot)

	d.InvokeHook(HookCtx{
		Domain: d,
		Pos:    HookPosStepComplete,
		Item:   snapshot,
	})

	next := stepEvt.Step() + 1
	if next < d.maxSteps && !(d.stopOnCompletion && d.allCompleted()) {
		d.engine.Schedule(MakeStepEvent(next, d))
		return nil
	}

	d.InvokeHook(HookCtx{
		Domain: d,
		Pos:    HookPosSimulationEnd,
		Item:   d.Results(),
	})

	return nil
}

// step applies the per-packet transition in creation order. Congestion is
// counted from the positions settled at the end of the previous step, so
// packets moving earlier within a step do not skew the scores of later ones.
func (d *Driver) step() {
	occ := routing.CountOccupancy(d.packets)

	for _, p := range d.packets {
		if p.Completed {
			continue
		}

		if p.Current == p.Dst {
			p.MarkCompleted()
			continue
		}

		hop := d.router.NextHop(p, occ)
		if hop == p.Current {
			p.RecordBlocked()
		}

		p.RecordHop(hop)
	}
}

func (d *Driver) allCompleted() bool {
	for _, p := range d.packets {
		if !p.Completed {
			return false
		}
	}

	return true
}

func (d *Driver) setLatest(s Snapshot) {
	d.latestLock.Lock()
	d.latest = s
	d.latestLock.Unlock()
}

// LatestSnapshot returns the snapshot of the most recently completed step.
func (d *Driver) LatestSnapshot() Snapshot {
	d.latestLock.RLock()
	defer d.latestLock.RUnlock()

	return d.latest
}

// Results lists the end-of-run trace of every packet, in creation order.
func (d *Driver) Results() []PacketResult {
	results := make([]PacketResult, 0, len(d.packets))
	for _, p := range d.packets {
		status := StatusBlocked
		if p.Completed {
			status = StatusCompleted
		}

		results = append(results, PacketResult{
			ID:           p.ID,
			Src:          p.Src,
			Dst:          p.Dst,
			Path:         p.Path,
			Status:       status,
			BlockedSteps: p.BlockedSteps,
		})
	}

	return results
}

// Packets exposes the driver's packets. Callers must not mutate them.
func (d *Driver) Packets() []*traffic.Packet {
	return d.packets
}

// Topology returns the topology the driver runs on.
func (d *Driver) Topology() topology.Topology {
	return d.topology
}

// MaxSteps returns the bound on the number of steps.
func (d *Driver) MaxSteps() int {
	return d.maxSteps
}

// Switching returns the run's switching technique label.
func (d *Driver) Switching() SwitchingTechnique {
	return d.switching
}

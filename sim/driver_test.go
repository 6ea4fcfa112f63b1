package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"

	"github.com/sarchlab/icnsim/sim"
	"github.com/sarchlab/icnsim/topology"
	"github.com/sarchlab/icnsim/traffic"
)

type captureHook struct {
	ctxs []sim.HookCtx
}

func (h *captureHook) Func(ctx sim.HookCtx) {
	h.ctxs = append(h.ctxs, ctx)
}

var _ = Describe("Driver", func() {
	var (
		mockCtrl *gomock.Controller
		router   *MockRouter
		engine   *sim.SerialEngine
		topo     topology.Topology
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		router = NewMockRouter(mockCtrl)
		engine = sim.NewSerialEngine()
		topo = topology.MakeBuilder().
			WithKind(topology.Mesh).
			WithSize(2).
			MustBuild()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	buildDriver := func(packets []*traffic.Packet) *sim.Driver {
		return sim.MakeDriverBuilder().
			WithEngine(engine).
			WithTopology(topo).
			WithRouter(router).
			WithPackets(packets).
			WithMaxSteps(1).
			Build()
	}

	It("should move a packet to the hop the router returns", func() {
		p := traffic.NewPacket("1", "0,0", "1,1")
		driver := buildDriver([]*traffic.Packet{p})

		router.EXPECT().
			NextHop(p, gomock.Any()).
			Return(topology.Node("1,0"))

		err := driver.Handle(sim.MakeStepEvent(0, driver))

		Expect(err).To(BeNil())
		Expect(p.Current).To(Equal(topology.Node("1,0")))
		Expect(p.Path).To(Equal([]topology.Node{"0,0", "1,0"}))
		Expect(p.BlockedSteps).To(Equal(0))
	})

	It("should count a blocked step once and append a no-op hop", func() {
		p := traffic.NewPacket("1", "0,0", "1,1")
		driver := buildDriver([]*traffic.Packet{p})

		router.EXPECT().
			NextHop(p, gomock.Any()).
			Return(topology.Node("0,0"))

		driver.Handle(sim.MakeStepEvent(0, driver))

		Expect(p.BlockedSteps).To(Equal(1))
		Expect(p.Path).To(Equal([]topology.Node{"0,0", "0,0"}))
		Expect(p.Current).To(Equal(topology.Node("0,0")))
	})

	It("should mark an arrived packet completed without routing it", func() {
		p := traffic.NewPacket("1", "0,0", "1,1")
		p.RecordHop("1,0")
		p.RecordHop("1,1")
		driver := buildDriver([]*traffic.Packet{p})

		driver.Handle(sim.MakeStepEvent(0, driver))

		Expect(p.Completed).To(BeTrue())
		Expect(p.Path).To(HaveLen(3), "no hop is appended on completion")
	})

	It("should never touch completed packets", func() {
		p := traffic.NewPacket("1", "0,0", "1,1")
		p.RecordHop("1,0")
		p.RecordHop("1,1")
		p.MarkCompleted()
		pathBefore := append([]topology.Node{}, p.Path...)
		driver := buildDriver([]*traffic.Packet{p})

		driver.Handle(sim.MakeStepEvent(0, driver))

		Expect(p.Path).To(Equal(pathBefore))
		Expect(p.Current).To(Equal(topology.Node("1,1")))
		Expect(p.Completed).To(BeTrue())
	})

	It("should publish a snapshot after each step", func() {
		p := traffic.NewPacket("1", "0,0", "1,1")
		driver := buildDriver([]*traffic.Packet{p})
		hook := &captureHook{}
		driver.AcceptHook(hook)

		router.EXPECT().
			NextHop(p, gomock.Any()).
			Return(topology.Node("1,0"))

		driver.Handle(sim.MakeStepEvent(0, driver))

		var snapshots []sim.Snapshot
		for _, ctx := range hook.ctxs {
			if ctx.Pos == sim.HookPosStepComplete {
				snapshots = append(snapshots, ctx.Item.(sim.Snapshot))
			}
		}

		Expect(snapshots).To(HaveLen(1))
		Expect(snapshots[0].Step).To(Equal(0))
		Expect(snapshots[0].Nodes[topology.Node("1,0")]).
			To(Equal(sim.NodeActive))
		Expect(snapshots[0].Nodes[topology.Node("0,0")]).
			To(Equal(sim.NodeEmpty))

		Expect(driver.LatestSnapshot()).To(Equal(snapshots[0]))
	})

	It("should report results at the end of the run", func() {
		p := traffic.NewPacket("1", "0,0", "1,1")
		driver := buildDriver([]*traffic.Packet{p})
		hook := &captureHook{}
		driver.AcceptHook(hook)

		router.EXPECT().
			NextHop(p, gomock.Any()).
			Return(topology.Node("1,0"))

		driver.Handle(sim.MakeStepEvent(0, driver))

		var results []sim.PacketResult
		for _, ctx := range hook.ctxs {
			if ctx.Pos == sim.HookPosSimulationEnd {
				results = ctx.Item.([]sim.PacketResult)
			}
		}

		Expect(results).To(HaveLen(1))
		Expect(results[0].Status).To(Equal(sim.StatusBlocked))
		Expect(results[0].Path).To(Equal([]topology.Node{"0,0", "1,0"}))
	})
})

var _ = Describe("Snapshot", func() {
	topo := topology.MakeBuilder().
		WithKind(topology.Mesh).
		WithSize(2).
		MustBuild()

	It("should classify blocked over active", func() {
		blocked := traffic.NewPacket("1", "0,0", "1,1")
		for i := 0; i < sim.DeadlockThreshold; i++ {
			blocked.RecordBlocked()
		}
		active := traffic.NewPacket("2", "0,0", "0,1")

		s := sim.TakeSnapshot(0, topo,
			[]*traffic.Packet{active, blocked})

		Expect(s.Nodes[topology.Node("0,0")]).To(Equal(sim.NodeBlocked))
	})

	It("should ignore completed packets", func() {
		done := traffic.NewPacket("1", "0,0", "1,1")
		done.MarkCompleted()

		s := sim.TakeSnapshot(0, topo, []*traffic.Packet{done})

		Expect(s.Nodes[topology.Node("0,0")]).To(Equal(sim.NodeEmpty))
	})
})

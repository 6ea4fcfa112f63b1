package routing_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"

	"github.com/sarchlab/icnsim/routing"
	"github.com/sarchlab/icnsim/topology"
	"github.com/sarchlab/icnsim/traffic"
)

var _ = Describe("CongestionAware Router", func() {
	var (
		mockCtrl *gomock.Controller
		topo     *MockTopology
		router   routing.Router
		pkt      *traffic.Packet
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		topo = NewMockTopology(mockCtrl)
		router = routing.NewCongestionAware(topo)
		pkt = traffic.NewPacket("1", "0,0", "2,2")
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should pick the first neighbor when occupancy ties", func() {
		topo.EXPECT().
			Neighbors(topology.Node("0,0")).
			Return([]topology.Node{"1,0", "0,1"})

		hop := router.NextHop(pkt, routing.Occupancy{})

		Expect(hop).To(Equal(topology.Node("1,0")))
	})

	It("should prefer the less occupied neighbor", func() {
		topo.EXPECT().
			Neighbors(topology.Node("0,0")).
			Return([]topology.Node{"1,0", "0,1"})

		occ := routing.Occupancy{"1,0": 2, "0,1": 1}

		hop := router.NextHop(pkt, occ)

		Expect(hop).To(Equal(topology.Node("0,1")))
	})

	It("should never revisit a node on the packet's path", func() {
		pkt.RecordHop("1,0")
		topo.EXPECT().
			Neighbors(topology.Node("1,0")).
			Return([]topology.Node{"0,0", "2,0", "1,1"})

		occ := routing.Occupancy{"2,0": 5, "1,1": 5, "0,0": 0}

		hop := router.NextHop(pkt, occ)

		Expect(hop).To(Equal(topology.Node("2,0")))
	})

	It("should return the current node when all neighbors are visited", func() {
		pkt.RecordHop("1,0")
		pkt.RecordHop("0,0")
		topo.EXPECT().
			Neighbors(topology.Node("0,0")).
			Return([]topology.Node{"1,0"})

		hop := router.NextHop(pkt, routing.Occupancy{})

		Expect(hop).To(Equal(topology.Node("0,0")))
		Expect(pkt.BlockedSteps).To(Equal(0),
			"the router must not apply blocked accounting itself")
	})

	It("should not mutate the packet", func() {
		topo.EXPECT().
			Neighbors(topology.Node("0,0")).
			Return([]topology.Node{"1,0", "0,1"}).
			Times(2)

		occ := routing.Occupancy{"1,0": 1}

		hop1 := router.NextHop(pkt, occ)
		hop2 := router.NextHop(pkt, occ)

		Expect(hop1).To(Equal(hop2))
		Expect(pkt.Path).To(HaveLen(1))
		Expect(pkt.Current).To(Equal(topology.Node("0,0")))
	})
})

var _ = Describe("Occupancy", func() {
	It("should count only active packets", func() {
		p1 := traffic.NewPacket("1", "0,0", "1,1")
		p2 := traffic.NewPacket("2", "0,0", "0,1")
		p3 := traffic.NewPacket("3", "1,0", "0,0")
		p3.MarkCompleted()

		occ := routing.CountOccupancy([]*traffic.Packet{p1, p2, p3})

		Expect(occ.At("0,0")).To(Equal(2))
		Expect(occ.At("1,0")).To(Equal(0))
	})

	It("should be stable when recomputed from the same snapshot", func() {
		p1 := traffic.NewPacket("1", "0,0", "1,1")
		packets := []*traffic.Packet{p1}

		occ1 := routing.CountOccupancy(packets)
		occ2 := routing.CountOccupancy(packets)

		Expect(occ1).To(Equal(occ2))
	})
})

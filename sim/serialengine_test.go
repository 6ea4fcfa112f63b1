package sim_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/icnsim/sim"
)

type recordingHandler struct {
	handled []int
}

func (h *recordingHandler) Handle(e sim.Event) error {
	h.handled = append(h.handled, e.Step())
	return nil
}

var _ = Describe("SerialEngine", func() {
	var (
		engine  *sim.SerialEngine
		handler *recordingHandler
	)

	BeforeEach(func() {
		engine = sim.NewSerialEngine()
		handler = &recordingHandler{}
	})

	It("should handle events in step order", func() {
		engine.Schedule(sim.MakeStepEvent(2, handler))
		engine.Schedule(sim.MakeStepEvent(0, handler))
		engine.Schedule(sim.MakeStepEvent(1, handler))

		Expect(engine.Run()).To(Succeed())
		Expect(handler.handled).To(Equal([]int{0, 1, 2}))
	})

	It("should track the current step", func() {
		engine.Schedule(sim.MakeStepEvent(3, handler))

		Expect(engine.Run()).To(Succeed())
		Expect(engine.CurrentStep()).To(Equal(3))
	})

	It("should allow scheduling from within a handler", func() {
		chained := &chainingHandler{engine: engine}
		engine.Schedule(sim.MakeStepEvent(0, chained))

		Expect(engine.Run()).To(Succeed())
		Expect(chained.steps).To(Equal([]int{0, 1, 2}))
	})
})

type chainingHandler struct {
	engine *sim.SerialEngine
	steps  []int
}

func (h *chainingHandler) Handle(e sim.Event) error {
	h.steps = append(h.steps, e.Step())
	if e.Step() < 2 {
		h.engine.Schedule(sim.MakeStepEvent(e.Step()+1, h))
	}
	return nil
}

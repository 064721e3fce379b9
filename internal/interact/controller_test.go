package interact_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pendulab/internal/interact"
	"github.com/san-kum/pendulab/internal/pendulum"
)

var _ = Describe("Controller", func() {
	var (
		p    *pendulum.Pendulum
		ctrl *interact.Controller
		bob1 pendulum.Vec2
		bob2 pendulum.Vec2
	)

	BeforeEach(func() {
		p = pendulum.New(pendulum.DefaultConfig(), pendulum.Vec2{X: 320, Y: 50})
		ctrl = interact.New(p)
		bob1, bob2 = p.Bobs()
	})

	It("starts idle", func() {
		Expect(ctrl.State()).To(Equal(interact.Idle))
		Expect(ctrl.Dragging()).To(BeFalse())
	})

	Describe("PointerDown", func() {
		It("grabs bob 1 inside its hit radius", func() {
			Expect(ctrl.PointerDown(pendulum.Vec2{X: bob1.X + 10, Y: bob1.Y - 10})).To(Equal(interact.DraggingBob1))
		})

		It("grabs bob 2 inside its hit radius", func() {
			Expect(ctrl.PointerDown(pendulum.Vec2{X: bob2.X - 29, Y: bob2.Y})).To(Equal(interact.DraggingBob2))
		})

		It("ignores clicks outside both hit radii", func() {
			Expect(ctrl.PointerDown(pendulum.Vec2{X: 0, Y: 0})).To(Equal(interact.Idle))
			Expect(ctrl.PointerDown(pendulum.Vec2{X: bob1.X + 30, Y: bob1.Y})).To(Equal(interact.Idle))
		})

		It("uses the current angles for hit testing", func() {
			p.Motion.Theta1 = math.Pi / 2
			moved, _ := p.Bobs()
			Expect(ctrl.PointerDown(bob1)).To(Equal(interact.Idle))
			Expect(ctrl.PointerDown(moved)).To(Equal(interact.DraggingBob1))
		})

		It("prefers bob 1 when both hit radii contain the point", func() {
			p.Config.Length2 = 50
			b1, b2 := p.Bobs()
			probe := pendulum.Vec2{X: b1.X, Y: (b1.Y + b2.Y) / 2}

			Expect(probe.Dist(b1)).To(BeNumerically("<", interact.HitRadius))
			Expect(probe.Dist(b2)).To(BeNumerically("<", interact.HitRadius))
			Expect(ctrl.PointerDown(probe)).To(Equal(interact.DraggingBob1))
		})

		It("keeps a single drag session until release", func() {
			Expect(ctrl.PointerDown(bob1)).To(Equal(interact.DraggingBob1))
			Expect(ctrl.PointerDown(bob2)).To(Equal(interact.DraggingBob1))
			Expect(ctrl.State()).To(Equal(interact.DraggingBob1))

			ctrl.PointerUp()
			Expect(ctrl.PointerDown(bob2)).To(Equal(interact.DraggingBob2))
		})
	})

	Describe("PointerMove", func() {
		It("is ignored while idle", func() {
			p.Motion = pendulum.Motion{Theta1: 0.2, Omega1: 1.5, Theta2: -0.1, Omega2: 0.5}
			before := p.Motion

			ctrl.PointerMove(pendulum.Vec2{X: 620, Y: 50})
			Expect(p.Motion).To(Equal(before))
		})

		It("sets theta1 from the pointer relative to the origin", func() {
			p.Motion.Omega1 = 3
			ctrl.PointerDown(bob1)

			ctrl.PointerMove(pendulum.Vec2{X: 320, Y: 350})
			Expect(p.Motion.Theta1).To(BeNumerically("~", 0, 1e-12))
			Expect(p.Motion.Omega1).To(BeZero())

			ctrl.PointerMove(pendulum.Vec2{X: 620, Y: 50})
			Expect(p.Motion.Theta1).To(BeNumerically("~", math.Pi/2, 1e-12))
		})

		It("sets theta2 relative to the current position of bob 1", func() {
			p.Motion.Theta1 = math.Pi / 2
			p.Motion.Omega2 = -2
			_, b2 := p.Bobs()
			Expect(ctrl.PointerDown(b2)).To(Equal(interact.DraggingBob2))

			// bob 1 now sits at (470, 50).
			ctrl.PointerMove(pendulum.Vec2{X: 470, Y: 200})
			Expect(p.Motion.Theta2).To(BeNumerically("~", 0, 1e-9))
			Expect(p.Motion.Omega2).To(BeZero())

			ctrl.PointerMove(pendulum.Vec2{X: 320, Y: 50})
			Expect(p.Motion.Theta2).To(BeNumerically("~", -math.Pi/2, 1e-9))
			Expect(p.Motion.Theta1).To(Equal(math.Pi / 2))
		})
	})

	Describe("Frame", func() {
		It("integrates while idle", func() {
			p.Motion.Theta1 = 0.5
			ctrl.Frame()
			Expect(p.Motion.Theta1).NotTo(Equal(0.5))
			Expect(p.Motion.Omega1).To(BeNumerically("<", 0))
		})

		It("pauses the whole simulation while dragging", func() {
			p.Motion = pendulum.Motion{Theta1: 0.3, Theta2: -0.4, Omega1: 0.7, Omega2: 1.1}
			b1, _ := p.Bobs()
			Expect(ctrl.PointerDown(b1)).To(Equal(interact.DraggingBob1))
			before := p.Motion

			for i := 0; i < 10; i++ {
				ctrl.Frame()
			}

			Expect(p.Motion.Theta2).To(Equal(before.Theta2))
			Expect(p.Motion.Omega2).To(Equal(before.Omega2))
			Expect(p.Motion.Theta1).To(Equal(before.Theta1))
		})

		It("resumes from rest after release", func() {
			ctrl.PointerDown(bob1)
			ctrl.PointerMove(pendulum.Vec2{X: 620, Y: 50})
			ctrl.PointerUp()

			Expect(ctrl.State()).To(Equal(interact.Idle))
			Expect(p.Motion.Omega1).To(BeZero())

			ctrl.Frame()
			Expect(p.Motion.Theta1).To(BeNumerically("<", math.Pi/2))
		})
	})

	Describe("PointerUp", func() {
		It("is a no-op while idle", func() {
			var calls int
			ctrl = interact.New(p, interact.WithTransitionHook(func(_, _ interact.DragState) { calls++ }))
			ctrl.PointerUp()
			Expect(calls).To(BeZero())
			Expect(ctrl.State()).To(Equal(interact.Idle))
		})
	})

	Describe("options", func() {
		It("reports every transition", func() {
			var seen []interact.DragState
			ctrl = interact.New(p, interact.WithTransitionHook(func(_, to interact.DragState) {
				seen = append(seen, to)
			}))

			ctrl.PointerDown(bob2)
			ctrl.PointerUp()
			ctrl.PointerDown(bob1)
			ctrl.PointerUp()

			Expect(seen).To(Equal([]interact.DragState{
				interact.DraggingBob2, interact.Idle,
				interact.DraggingBob1, interact.Idle,
			}))
		})

		It("honours a custom hit radius", func() {
			ctrl = interact.New(p, interact.WithHitRadius(5))
			Expect(ctrl.PointerDown(pendulum.Vec2{X: bob1.X + 10, Y: bob1.Y})).To(Equal(interact.Idle))
			Expect(ctrl.PointerDown(pendulum.Vec2{X: bob1.X + 4, Y: bob1.Y})).To(Equal(interact.DraggingBob1))
		})
	})

	It("keeps the drag session across a reset", func() {
		p.Motion.Theta2 = 1
		ctrl.PointerDown(bob1)
		ctrl.Reset()
		Expect(p.Motion).To(Equal(pendulum.Motion{}))
		Expect(ctrl.State()).To(Equal(interact.DraggingBob1))
	})
})

var _ = DescribeTable("DragState.String",
	func(s interact.DragState, want string) {
		Expect(s.String()).To(Equal(want))
	},
	Entry("idle", interact.Idle, "idle"),
	Entry("bob 1", interact.DraggingBob1, "dragging_bob1"),
	Entry("bob 2", interact.DraggingBob2, "dragging_bob2"),
	Entry("unknown", interact.DragState(9), "unknown"),
)

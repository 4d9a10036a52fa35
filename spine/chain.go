// Package spine implements a follow-the-leader kinematic chain.
//
// A Chain is an ordered list of joints kept a fixed distance apart. Moving the
// head with Resolve drags every following joint behind it in a single O(n)
// pass, while limiting how sharply consecutive joints may bend. Because the
// pass is not an iterative relaxation, curvature lags behind abrupt target
// changes instead of snapping, which is what gives the swimming motion.
package spine

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/fishtank/vecmath"
)

// Joint is a position and heading at a fixed index along the chain.
// Angle points "forward", from this joint toward the one before it.
type Joint struct {
	Pos   vecmath.Vec
	Angle float64
}

// Chain is an ordered sequence of joints with a fixed link length and bend limit.
type Chain struct {
	joints          []Joint
	linkSize        float64
	angleConstraint float64
}

// New creates a chain with its head at origin and the remaining joints laid
// out straight below it, linkSize apart. All headings start at zero.
// jointCount is raised to 1 if smaller and angleConstraint is clamped to [0, 2Pi].
func New(origin vecmath.Vec, jointCount int, linkSize, angleConstraint float64) *Chain {
	if jointCount < 1 {
		jointCount = 1
	}

	c := &Chain{
		joints:          make([]Joint, jointCount),
		linkSize:        linkSize,
		angleConstraint: vecmath.ClampConstraint(angleConstraint),
	}

	c.joints[0] = Joint{Pos: origin}
	for i := 1; i < jointCount; i++ {
		prev := c.joints[i-1].Pos
		c.joints[i] = Joint{Pos: vecmath.V(prev.X, prev.Y+linkSize)}
	}
	return c
}

// Resolve moves the head to target and drags the rest of the chain behind it.
//
// The head's heading becomes the direction of travel. Every following joint
// turns toward its predecessor, limited to angleConstraint of deviation from
// the predecessor's heading, and is placed exactly linkSize behind it.
func (c *Chain) Resolve(target vecmath.Vec) {
	head := &c.joints[0]
	// A zero-length move has no direction; keep the previous heading.
	if step := r2.Sub(target, head.Pos); step.X != 0 || step.Y != 0 {
		head.Angle = vecmath.Heading(step)
	}
	head.Pos = target

	for i := 1; i < len(c.joints); i++ {
		prev := c.joints[i-1]
		cur := &c.joints[i]

		raw := vecmath.Heading(r2.Sub(prev.Pos, cur.Pos))
		cur.Angle = vecmath.ConstrainAngle(raw, prev.Angle, c.angleConstraint)
		cur.Pos = r2.Sub(prev.Pos, vecmath.FromAngle(cur.Angle, c.linkSize))
	}
}

// Len returns the number of joints.
func (c *Chain) Len() int {
	return len(c.joints)
}

// Joint returns the joint at index i.
func (c *Chain) Joint(i int) Joint {
	return c.joints[i]
}

// Joints returns a copy of all joints, head first.
func (c *Chain) Joints() []Joint {
	out := make([]Joint, len(c.joints))
	copy(out, c.joints)
	return out
}

// Head returns the head joint position.
func (c *Chain) Head() vecmath.Vec {
	return c.joints[0].Pos
}

// LinkSize returns the enforced distance between consecutive joints.
func (c *Chain) LinkSize() float64 {
	return c.linkSize
}

// AngleConstraint returns the maximum heading deviation between consecutive joints.
func (c *Chain) AngleConstraint() float64 {
	return c.angleConstraint
}

package spatialmath

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// cylinder is a collision geometry that represents a solid cylinder whose axis is the local z axis
// and whose center is the pose origin.
type cylinder struct {
	pose       Pose
	radius     float64
	halfLength float64
	label      string
}

// NewCylinder instantiates a new cylinder Geometry.
func NewCylinder(offset Pose, radius, length float64, label string) (Geometry, error) {
	if radius <= 0 || length <= 0 {
		return nil, newBadGeometryDimensionsError(&cylinder{})
	}
	return &cylinder{offset, radius, length / 2, label}, nil
}

func (c *cylinder) MarshalJSON() ([]byte, error) {
	config, err := NewGeometryConfig(c)
	if err != nil {
		return nil, err
	}
	return json.Marshal(config)
}

// String returns a human readable string that represents the cylinder.
func (c *cylinder) String() string {
	pt := c.pose.Point()
	return fmt.Sprintf("Type: Cylinder | Position: X:%.3f, Y:%.3f, Z:%.3f | Radius: %.3f | Length: %.3f",
		pt.X, pt.Y, pt.Z, c.radius, 2*c.halfLength)
}

// Label returns the label of this cylinder.
func (c *cylinder) Label() string {
	return c.label
}

// SetLabel sets the label of this cylinder.
func (c *cylinder) SetLabel(label string) {
	c.label = label
}

// Pose returns the pose of the cylinder.
func (c *cylinder) Pose() Pose {
	return c.pose
}

// Transform premultiplies the cylinder pose with a transform, allowing the cylinder to be moved in space.
func (c *cylinder) Transform(toPremultiply Pose) Geometry {
	return &cylinder{Compose(toPremultiply, c.pose), c.radius, c.halfLength, c.label}
}

func (c *cylinder) SignedDistanceToPoint(pt r3.Vector) float64 {
	local := toLocal(c.pose, pt)
	dRadial := math.Hypot(local.X, local.Y) - c.radius
	dAxial := math.Abs(local.Z) - c.halfLength
	outside := math.Hypot(math.Max(dRadial, 0), math.Max(dAxial, 0))
	inside := math.Min(math.Max(dRadial, dAxial), 0)
	return outside + inside
}

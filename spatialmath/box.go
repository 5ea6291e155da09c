package spatialmath

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// box is a collision geometry that represents a 3D rectangular prism, it has a pose and half size that fully define it.
type box struct {
	center   Pose
	halfSize r3.Vector
	label    string
}

// NewBox instantiates a new box Geometry.
func NewBox(pose Pose, dims r3.Vector, label string) (Geometry, error) {
	if dims.X <= 0 || dims.Y <= 0 || dims.Z <= 0 {
		return nil, newBadGeometryDimensionsError(&box{})
	}
	return &box{pose, dims.Mul(0.5), label}, nil
}

func (b *box) MarshalJSON() ([]byte, error) {
	config, err := NewGeometryConfig(b)
	if err != nil {
		return nil, err
	}
	return json.Marshal(config)
}

// String returns a human readable string that represents the box.
func (b *box) String() string {
	pt := b.center.Point()
	return fmt.Sprintf("Type: Box | Position: X:%.3f, Y:%.3f, Z:%.3f | Dims: X:%.3f, Y:%.3f, Z:%.3f",
		pt.X, pt.Y, pt.Z, 2*b.halfSize.X, 2*b.halfSize.Y, 2*b.halfSize.Z)
}

// SetLabel sets the label of this box.
func (b *box) SetLabel(label string) {
	b.label = label
}

// Label returns the label of this box.
func (b *box) Label() string {
	return b.label
}

// Pose returns the pose of the box.
func (b *box) Pose() Pose {
	return b.center
}

// Transform premultiplies the box pose with a transform, allowing the box to be moved in space.
func (b *box) Transform(toPremultiply Pose) Geometry {
	return &box{Compose(toPremultiply, b.center), b.halfSize, b.label}
}

func (b *box) SignedDistanceToPoint(pt r3.Vector) float64 {
	local := toLocal(b.center, pt)
	q := local.Abs().Sub(b.halfSize)
	outside := maxVec(q).Norm()
	inside := math.Min(math.Max(q.X, math.Max(q.Y, q.Z)), 0)
	return outside + inside
}

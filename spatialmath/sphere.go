package spatialmath

import (
	"encoding/json"
	"fmt"

	"github.com/golang/geo/r3"
)

// sphere is a collision geometry that represents a sphere, it has a pose and a radius that fully define it.
type sphere struct {
	pose   Pose
	radius float64
	label  string
}

// NewSphere instantiates a new sphere Geometry.
func NewSphere(offset Pose, radius float64, label string) (Geometry, error) {
	if radius <= 0 {
		return nil, newBadGeometryDimensionsError(&sphere{})
	}
	return &sphere{offset, radius, label}, nil
}

func (s *sphere) MarshalJSON() ([]byte, error) {
	config, err := NewGeometryConfig(s)
	if err != nil {
		return nil, err
	}
	return json.Marshal(config)
}

// String returns a human readable string that represents the sphere.
func (s *sphere) String() string {
	pt := s.pose.Point()
	return fmt.Sprintf("Type: Sphere | Position: X:%.3f, Y:%.3f, Z:%.3f | Radius: %.3f", pt.X, pt.Y, pt.Z, s.radius)
}

// Label returns the labels of the sphere.
func (s *sphere) Label() string {
	return s.label
}

// SetLabel sets the label of the sphere.
func (s *sphere) SetLabel(label string) {
	s.label = label
}

// Pose returns the pose of the sphere.
func (s *sphere) Pose() Pose {
	return s.pose
}

// Radius returns the radius of the sphere.
func (s *sphere) Radius() float64 {
	return s.radius
}

// Transform premultiplies the sphere pose with a transform, allowing the sphere to be moved in space.
func (s *sphere) Transform(toPremultiply Pose) Geometry {
	return &sphere{Compose(toPremultiply, s.pose), s.radius, s.label}
}

func (s *sphere) SignedDistanceToPoint(pt r3.Vector) float64 {
	return pt.Sub(s.pose.Point()).Norm() - s.radius
}

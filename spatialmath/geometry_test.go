package spatialmath

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestGeometryDimensions(t *testing.T) {
	_, err := NewSphere(NewZeroPose(), 0, "")
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewBox(NewZeroPose(), r3.Vector{X: 1, Y: -1, Z: 1}, "")
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewCylinder(NewZeroPose(), 1, 0, "")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestSignedDistances(t *testing.T) {
	s, err := NewSphere(NewPoseFromPoint(r3.Vector{X: 1, Y: 0, Z: 0}), 0.5, "s")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, s.SignedDistanceToPoint(r3.Vector{}), test.ShouldAlmostEqual, 0.5)
	test.That(t, s.SignedDistanceToPoint(r3.Vector{X: 1, Y: 0, Z: 0}), test.ShouldAlmostEqual, -0.5)

	// box rotated 90 degrees about z swaps its x and y extents
	b, err := NewBox(NewPose(r3.Vector{}, &R4AA{Theta: math.Pi / 2, RX: 0, RY: 0, RZ: 1}), r3.Vector{X: 2, Y: 4, Z: 6}, "b")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, b.SignedDistanceToPoint(r3.Vector{X: 3, Y: 0, Z: 0}), test.ShouldAlmostEqual, 1.)
	test.That(t, b.SignedDistanceToPoint(r3.Vector{X: 0, Y: 3, Z: 0}), test.ShouldAlmostEqual, 2.)
	test.That(t, b.SignedDistanceToPoint(r3.Vector{}), test.ShouldAlmostEqual, -1.)
	test.That(t, b.SignedDistanceToPoint(r3.Vector{X: 3, Y: 2, Z: 3}), test.ShouldAlmostEqual, math.Sqrt2)

	c, err := NewCylinder(NewZeroPose(), 1, 2, "c")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, c.SignedDistanceToPoint(r3.Vector{X: 3, Y: 0, Z: 0}), test.ShouldAlmostEqual, 2.)
	test.That(t, c.SignedDistanceToPoint(r3.Vector{X: 0, Y: 0, Z: 3}), test.ShouldAlmostEqual, 2.)
	test.That(t, c.SignedDistanceToPoint(r3.Vector{X: 0, Y: 0, Z: 0.5}), test.ShouldAlmostEqual, -0.5)
	test.That(t, c.SignedDistanceToPoint(r3.Vector{X: 4, Y: 0, Z: 5}), test.ShouldAlmostEqual, 5.)
}

func TestGeometryTransform(t *testing.T) {
	s, err := NewSphere(NewPoseFromPoint(r3.Vector{X: 1, Y: 0, Z: 0}), 0.5, "s")
	test.That(t, err, test.ShouldBeNil)
	moved := s.Transform(NewPose(r3.Vector{X: 0, Y: 0, Z: 1}, &R4AA{Theta: math.Pi / 2, RX: 0, RY: 0, RZ: 1}))
	test.That(t, R3VectorAlmostEqual(moved.Pose().Point(), r3.Vector{X: 0, Y: 1, Z: 1}, 1e-12), test.ShouldBeTrue)
	test.That(t, moved.Label(), test.ShouldEqual, "s")
	moved.SetLabel("t")
	test.That(t, moved.Label(), test.ShouldEqual, "t")
	test.That(t, s.Label(), test.ShouldEqual, "s")
}

func TestGeometryConfigRoundTrip(t *testing.T) {
	offset := NewPose(r3.Vector{X: 0.1, Y: 0.2, Z: 0.3}, &EulerAngles{Roll: 0.1, Pitch: 0.2, Yaw: 0.3})
	b, err := NewBox(offset, r3.Vector{X: 1, Y: 2, Z: 3}, "table")
	test.That(t, err, test.ShouldBeNil)
	s, err := NewSphere(offset, 0.2, "ball")
	test.That(t, err, test.ShouldBeNil)
	c, err := NewCylinder(offset, 0.2, 1.5, "post")
	test.That(t, err, test.ShouldBeNil)

	for _, g := range []Geometry{b, s, c} {
		data, err := json.Marshal(g)
		test.That(t, err, test.ShouldBeNil)
		var config GeometryConfig
		test.That(t, json.Unmarshal(data, &config), test.ShouldBeNil)
		parsed, err := config.ParseConfig()
		test.That(t, err, test.ShouldBeNil)
		test.That(t, parsed.Label(), test.ShouldEqual, g.Label())
		test.That(t, PoseAlmostEqualEps(parsed.Pose(), g.Pose(), 1e-9), test.ShouldBeTrue)
		point := r3.Vector{X: 1, Y: -1, Z: 2}
		test.That(t, parsed.SignedDistanceToPoint(point), test.ShouldAlmostEqual, g.SignedDistanceToPoint(point))
	}
}

func TestGeometryConfigErrors(t *testing.T) {
	_, err := (&GeometryConfig{}).ParseConfig()
	test.That(t, err, test.ShouldNotBeNil)
	_, err = (&GeometryConfig{Type: "capsule"}).ParseConfig()
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewGeometriesFromConfigs([]GeometryConfig{{Type: SphereType, R: 1}, {Type: BoxType}})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "geometry 1")

	geometries, err := NewGeometriesFromConfigs([]GeometryConfig{{Type: SphereType, R: 1}})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(geometries), test.ShouldEqual, 1)
}

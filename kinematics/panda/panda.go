// Package panda implements forward kinematics and closed form inverse kinematics for the Franka Emika Panda arm
// using its modified Denavit-Hartenberg parameters. Distances are in meters and angles in radians.
package panda

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/robofin/referenceframe"
	"go.viam.com/robofin/spatialmath"
)

// DoF is the number of revolute joints.
const DoF = 7

// Link names reported by LinkPoses.
const (
	Link0       = "panda_link0"
	Link1       = "panda_link1"
	Link2       = "panda_link2"
	Link3       = "panda_link3"
	Link4       = "panda_link4"
	Link5       = "panda_link5"
	Link6       = "panda_link6"
	Link7       = "panda_link7"
	Link8       = "panda_link8"
	Hand        = "panda_hand"
	LeftFinger  = "panda_leftfinger"
	RightFinger = "panda_rightfinger"
)

// LinkNames lists every link LinkPoses places, base first.
var LinkNames = []string{Link0, Link1, Link2, Link3, Link4, Link5, Link6, Link7, Link8, Hand, LeftFinger, RightFinger}

const (
	d1     = 0.333
	d3     = 0.316
	a4     = 0.0825
	d5     = 0.384
	a7     = 0.088
	flange = 0.107

	// fingerOffset is the height of the finger joints above the hand.
	fingerOffset = 0.0584
	// handYaw rotates the flange onto the hand.
	handYaw = -math.Pi / 4
)

type dhLink struct {
	a, d, alpha float64
}

var chain = [DoF]dhLink{
	{0, d1, 0},
	{0, 0, -math.Pi / 2},
	{0, d3, math.Pi / 2},
	{a4, 0, math.Pi / 2},
	{-a4, d5, -math.Pi / 2},
	{0, 0, math.Pi / 2},
	{a7, 0, math.Pi / 2},
}

var (
	flangePose = spatialmath.NewPoseFromModifiedDH(0, flange, 0, 0)
	handPose   = spatialmath.NewPoseFromOrientation(&spatialmath.R4AA{Theta: handYaw, RZ: 1})
)

// jointPoses returns the pose of link1 through link8 for the joint values q.
func jointPoses(q []float64) [DoF + 1]spatialmath.Pose {
	var poses [DoF + 1]spatialmath.Pose
	current := spatialmath.NewZeroPose()
	for i, link := range chain {
		current = spatialmath.Compose(current, spatialmath.NewPoseFromModifiedDH(link.a, link.d, link.alpha, q[i]))
		poses[i] = current
	}
	poses[DoF] = spatialmath.Compose(current, flangePose)
	return poses
}

func flangeFK(q []float64) spatialmath.Pose {
	return jointPoses(q)[DoF]
}

func checkInputs(inputs []referenceframe.Input) ([]float64, error) {
	if len(inputs) != DoF {
		return nil, referenceframe.NewIncorrectDoFError(len(inputs), DoF)
	}
	q := referenceframe.InputsToFloats(inputs)
	for i, v := range q {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.Errorf("joint %d value %f is not finite", i, v)
		}
	}
	return q, nil
}

// LinkPoses returns the base frame pose of every link in LinkNames. The fingers are each opened by prismatic.
func LinkPoses(inputs []referenceframe.Input, prismatic float64) (map[string]spatialmath.Pose, error) {
	q, err := checkInputs(inputs)
	if err != nil {
		return nil, err
	}
	joints := jointPoses(q)
	hand := spatialmath.Compose(joints[DoF], handPose)
	poses := map[string]spatialmath.Pose{
		Link0: spatialmath.NewZeroPose(),
		Hand:  hand,
		LeftFinger: spatialmath.Compose(hand, spatialmath.NewPoseFromPoint(
			r3.Vector{X: 0, Y: prismatic, Z: fingerOffset})),
		// the right finger is the left finger mirrored about the hand z axis
		RightFinger: spatialmath.Compose(hand, spatialmath.NewPose(
			r3.Vector{X: 0, Y: -prismatic, Z: fingerOffset},
			&spatialmath.R4AA{Theta: math.Pi, RZ: 1})),
	}
	for i, name := range LinkNames[1 : DoF+2] {
		poses[name] = joints[i]
	}
	return poses, nil
}

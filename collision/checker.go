// Package collision approximates a robot by spheres fixed to its links and tests them against obstacle geometry.
package collision

import (
	"math"
	"slices"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"

	"go.viam.com/robofin/referenceframe"
	"go.viam.com/robofin/spatialmath"
)

// Sphere is a sphere expressed in the frame of the link it is attached to. Distances are in meters.
type Sphere struct {
	Center [3]float64 `json:"center"`
	Radius float64    `json:"radius"`
}

func (s Sphere) center() r3.Vector {
	return r3.Vector{X: s.Center[0], Y: s.Center[1], Z: s.Center[2]}
}

// SphereModel maps link names to the spheres attached to them.
type SphereModel map[string][]Sphere

// Validate reports every sphere with a non-positive radius.
func (m SphereModel) Validate() error {
	var err error
	for _, link := range lo.Keys(m) {
		for i, s := range m[link] {
			if s.Radius <= 0 {
				err = multierr.Append(err, errors.Errorf("sphere %d of link %q has non-positive radius %f", i, link, s.Radius))
			}
		}
	}
	return err
}

// LinkPoser places every link of a robot in the base frame for a configuration and finger opening.
type LinkPoser func(inputs []referenceframe.Input, prismatic float64) (map[string]spatialmath.Pose, error)

// Checker tests a sphere model against obstacles. It is immutable and safe for concurrent use.
type Checker struct {
	poser LinkPoser
	model SphereModel
	links []string
}

// NewChecker returns a Checker for model. Every link in model must be placed by poser.
func NewChecker(poser LinkPoser, model SphereModel) (*Checker, error) {
	if poser == nil {
		return nil, errors.New("link poser is required")
	}
	if err := model.Validate(); err != nil {
		return nil, err
	}
	links := lo.Keys(model)
	slices.Sort(links)
	return &Checker{poser: poser, model: model, links: links}, nil
}

// Spheres returns the model's spheres placed in the base frame, labeled with their link name.
func (c *Checker) Spheres(inputs []referenceframe.Input, prismatic float64) ([]spatialmath.Geometry, error) {
	poses, err := c.poser(inputs, prismatic)
	if err != nil {
		return nil, err
	}
	var spheres []spatialmath.Geometry
	for _, link := range c.links {
		pose, ok := poses[link]
		if !ok {
			return nil, errors.Errorf("no pose for link %q", link)
		}
		for _, s := range c.model[link] {
			sphere, err := spatialmath.NewSphere(spatialmath.NewPoseFromPoint(s.center()), s.Radius, link)
			if err != nil {
				return nil, err
			}
			spheres = append(spheres, sphere.Transform(pose))
		}
	}
	return spheres, nil
}

// Collides reports whether any sphere comes within buffer of any obstacle.
func (c *Checker) Collides(
	inputs []referenceframe.Input,
	prismatic float64,
	obstacles []spatialmath.Geometry,
	buffer float64,
) (bool, error) {
	if len(obstacles) == 0 {
		return false, nil
	}
	distance, err := c.MinDistance(inputs, prismatic, obstacles)
	if err != nil {
		return false, err
	}
	return distance < buffer, nil
}

// MinDistance returns the smallest clearance between the sphere model and the obstacles. It is negative when they
// overlap and +Inf when there are no obstacles.
func (c *Checker) MinDistance(inputs []referenceframe.Input, prismatic float64, obstacles []spatialmath.Geometry) (float64, error) {
	poses, err := c.poser(inputs, prismatic)
	if err != nil {
		return 0, err
	}
	closest := math.Inf(1)
	for _, link := range c.links {
		pose, ok := poses[link]
		if !ok {
			return 0, errors.Errorf("no pose for link %q", link)
		}
		for _, s := range c.model[link] {
			center := spatialmath.Compose(pose, spatialmath.NewPoseFromPoint(s.center())).Point()
			for _, obstacle := range obstacles {
				if d := obstacle.SignedDistanceToPoint(center) - s.Radius; d < closest {
					closest = d
				}
			}
		}
	}
	return closest, nil
}

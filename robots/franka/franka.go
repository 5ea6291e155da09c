// Package franka provides the Franka Emika Panda robot profiles: the simulated arm, the real arm with its tighter
// joint windows, and the two finger gripper. The constants are embedded from franka_constants.json.
package franka

import (
	_ "embed" // for embedding the constants file
	"encoding/json"
	"slices"
	"sync"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"

	"go.viam.com/robofin/collision"
	"go.viam.com/robofin/kinematics"
	"go.viam.com/robofin/kinematics/panda"
	"go.viam.com/robofin/logging"
)

// Profile names present in the embedded constants.
const (
	SimName     = "franka"
	RealName    = "franka_real"
	GripperName = "franka_gripper"
)

// Frame names shared by the arm profiles.
const (
	FrameLink8       = panda.Link8
	FrameHand        = panda.Hand
	FrameGripper     = "right_gripper"
	FrameGraspTarget = "panda_grasptarget"
)

//go:embed franka_constants.json
var frankaConstantsJSON []byte

type constantsFile struct {
	Profiles map[string]kinematics.ProfileConfig `json:"profiles"`
	Spheres  collision.SphereModel               `json:"collision_spheres"`
}

type constants struct {
	profiles map[string]*kinematics.Profile
	spheres  collision.SphereModel
}

var (
	loadOnce   sync.Once
	loaded     *constants
	errLoading error
)

func load() (*constants, error) {
	loadOnce.Do(func() {
		loaded, errLoading = parseConstants(frankaConstantsJSON)
	})
	return loaded, errLoading
}

func parseConstants(data []byte) (*constants, error) {
	var file constantsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "failed to parse franka constants")
	}
	var err error
	profiles := make(map[string]*kinematics.Profile, len(file.Profiles))
	for key, cfg := range file.Profiles {
		if key != cfg.Name {
			err = multierr.Append(err, errors.Errorf("profile %q is stored under %q", cfg.Name, key))
			continue
		}
		profile, perr := kinematics.NewProfile(cfg)
		if perr != nil {
			err = multierr.Append(err, perr)
			continue
		}
		profiles[key] = profile
	}
	for _, link := range lo.Keys(file.Spheres) {
		if !slices.Contains(panda.LinkNames, link) {
			err = multierr.Append(err, errors.Errorf("collision spheres given for unknown link %q", link))
		}
	}
	err = multierr.Append(err, file.Spheres.Validate())
	if err != nil {
		return nil, err
	}
	return &constants{profiles: profiles, spheres: file.Spheres}, nil
}

// ProfileNames lists the embedded profiles in sorted order.
func ProfileNames() ([]string, error) {
	c, err := load()
	if err != nil {
		return nil, err
	}
	names := lo.Keys(c.profiles)
	slices.Sort(names)
	return names, nil
}

// LoadProfile returns the embedded profile with the given name.
func LoadProfile(name string) (*kinematics.Profile, error) {
	c, err := load()
	if err != nil {
		return nil, err
	}
	profile, ok := c.profiles[name]
	if !ok {
		return nil, errors.Errorf("no franka profile named %q", name)
	}
	return profile, nil
}

// SphereModel returns a copy of the arm's collision spheres keyed by link.
func SphereModel() (collision.SphereModel, error) {
	c, err := load()
	if err != nil {
		return nil, err
	}
	return lo.MapValues(c.spheres, func(spheres []collision.Sphere, _ string) []collision.Sphere {
		return slices.Clone(spheres)
	}), nil
}

// NewRobotFromProfile builds a robot for any embedded profile, attaching the panda solver when the profile supports
// kinematics.
func NewRobotFromProfile(name string, logger logging.Logger) (*kinematics.Robot, error) {
	profile, err := LoadProfile(name)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewBlankLogger(name)
	}
	var solver kinematics.Solver
	if profile.Supports(kinematics.CapabilityKinematics) {
		solver = panda.NewSolver()
	}
	robot, err := kinematics.NewRobot(profile, solver, logger)
	if err != nil {
		return nil, err
	}
	logger.Debugw("robot ready", "profile", name, "dof", profile.DoF(), "frames", profile.SupportedFrames())
	return robot, nil
}

// NewRobot returns the simulated arm.
func NewRobot(logger logging.Logger) (*kinematics.Robot, error) {
	return NewRobotFromProfile(SimName, logger)
}

// NewRealRobot returns the physical arm, whose fourth and sixth joints have narrower limits.
func NewRealRobot(logger logging.Logger) (*kinematics.Robot, error) {
	return NewRobotFromProfile(RealName, logger)
}

// NewGripper returns the gripper, which supports no kinematics or sampling operations.
func NewGripper(logger logging.Logger) (*kinematics.Robot, error) {
	return NewRobotFromProfile(GripperName, logger)
}

// NewCollisionChecker returns a sphere model checker for the arm.
func NewCollisionChecker() (*collision.Checker, error) {
	model, err := SphereModel()
	if err != nil {
		return nil, err
	}
	return collision.NewChecker(panda.LinkPoses, model)
}

// Package cli contains the franka-ik command line tool: forward and inverse kinematics, random sampling and
// collision free search against the embedded Franka profiles, with JSON results on stdout.
package cli

import (
	"encoding/json"
	"io"
	"math/rand/v2"
	"os"
	"strconv"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"github.com/yosuke-furukawa/json5/encoding/json5"

	"go.viam.com/robofin/kinematics"
	"go.viam.com/robofin/logging"
	"go.viam.com/robofin/referenceframe"
	"go.viam.com/robofin/robots/franka"
	"go.viam.com/robofin/spatialmath"
	"go.viam.com/robofin/utils"
)

const (
	// Flags.
	flagProfile = "profile"
	flagSeed    = "seed"
	flagDebug   = "debug"
	flagDegrees = "degrees"
	flagFrame   = "frame"
	flagPinned  = "pinned"
	flagMethod  = "method"
	flagRequest = "request"
)

// NewApp returns the franka-ik application. Results are written to out.
func NewApp(out io.Writer) *cli.App {
	frameFlag := &cli.StringFlag{
		Name:  flagFrame,
		Usage: "end effector `FRAME`, defaults to the profile's default frame",
	}
	return &cli.App{
		Name:   "franka-ik",
		Usage:  "solve Franka Panda kinematics",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  flagProfile,
				Value: franka.SimName,
				Usage: "robot profile to load",
			},
			&cli.Uint64Flag{
				Name:  flagSeed,
				Usage: "seed for random sampling, unseeded when absent",
			},
			&cli.BoolFlag{
				Name:  flagDegrees,
				Usage: "read and write joint values in degrees instead of radians",
			},
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "profiles",
				Usage:  "list the available robot profiles",
				Action: profilesAction,
			},
			{
				Name:      "fk",
				Usage:     "compute the pose of a frame for a joint configuration",
				ArgsUsage: "[--] <joint>...",
				Flags:     []cli.Flag{frameFlag},
				Action:    fkAction,
			},
			{
				Name:      "ik",
				Usage:     "solve for every configuration reaching a pose with the last joint pinned",
				ArgsUsage: "<pose json>",
				Flags: []cli.Flag{
					frameFlag,
					&cli.Float64Flag{
						Name:     flagPinned,
						Usage:    "value of the last joint",
						Required: true,
					},
				},
				Action: ikAction,
			},
			{
				Name:  "random",
				Usage: "sample a random configuration and report its pose",
				Flags: []cli.Flag{
					frameFlag,
					&cli.StringFlag{
						Name:  flagMethod,
						Usage: "perturb the neutral configuration with " + kinematics.SampleNormal + " or " + kinematics.SampleUniform + " noise",
					},
				},
				Action: randomAction,
			},
			{
				Name:  "search",
				Usage: "search for a collision free inverse kinematics solution",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     flagRequest,
						Usage:    "request `FILE`, - for stdin",
						Required: true,
					},
				},
				Action: searchAction,
			},
		},
	}
}

// poseConfig is the JSON form of a pose: a translation in meters and an axis angle rotation. Pose arguments and
// requests are parsed as JSON5 so they may carry comments and trailing commas.
type poseConfig struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Theta float64 `json:"theta"`
	RX    float64 `json:"rx"`
	RY    float64 `json:"ry"`
	RZ    float64 `json:"rz"`
}

func (cfg poseConfig) pose() spatialmath.Pose {
	return spatialmath.NewPose(
		r3.Vector{X: cfg.X, Y: cfg.Y, Z: cfg.Z},
		&spatialmath.R4AA{Theta: cfg.Theta, RX: cfg.RX, RY: cfg.RY, RZ: cfg.RZ},
	)
}

type poseResult struct {
	Frame         string             `json:"frame"`
	Configuration []float64          `json:"configuration"`
	Pose          map[string]float64 `json:"pose"`
}

type ikResult struct {
	Frame     string      `json:"frame"`
	Pinned    float64     `json:"pinned"`
	Solutions [][]float64 `json:"solutions"`
}

type searchRequest struct {
	Pose      poseConfig                   `json:"pose"`
	Frame     string                       `json:"frame,omitempty"`
	Prismatic float64                      `json:"prismatic"`
	Buffer    float64                      `json:"buffer"`
	Retries   *int                         `json:"retries,omitempty"`
	Obstacles []spatialmath.GeometryConfig `json:"obstacles"`
}

type searchResult struct {
	Found         bool      `json:"found"`
	Configuration []float64 `json:"configuration"`
	Attempts      int       `json:"attempts"`
	Candidates    int       `json:"candidates"`
}

// session is the state every action builds from the global flags.
type session struct {
	logger  logging.Logger
	robot   *kinematics.Robot
	rSeed   *rand.Rand
	degrees bool
}

func newSession(c *cli.Context) (*session, error) {
	level := logging.INFO
	if c.Bool(flagDebug) {
		level = logging.DEBUG
	}
	logger := logging.NewStderrLogger("franka-ik", level)
	robot, err := franka.NewRobotFromProfile(c.String(flagProfile), logger)
	if err != nil {
		return nil, err
	}
	var rSeed *rand.Rand
	if c.IsSet(flagSeed) {
		seed := c.Uint64(flagSeed)
		rSeed = rand.New(rand.NewPCG(seed, seed))
	}
	return &session{logger: logger, robot: robot, rSeed: rSeed, degrees: c.Bool(flagDegrees)}, nil
}

// input converts a joint value given on the command line to radians.
func (s *session) input(v float64) referenceframe.Input {
	if s.degrees {
		v = utils.DegToRad(v)
	}
	return referenceframe.Input{Value: v}
}

// joints converts a configuration to the units joint values are printed in.
func (s *session) joints(inputs []referenceframe.Input) []float64 {
	values := referenceframe.InputsToFloats(inputs)
	if s.degrees {
		for i, v := range values {
			values[i] = utils.RadToDeg(v)
		}
	}
	return values
}

func (s *session) frame(c *cli.Context) string {
	if frame := c.String(flagFrame); frame != "" {
		return frame
	}
	return s.robot.DefaultFrame()
}

func writeJSON(c *cli.Context, v interface{}) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (s *session) parseJoints(args []string) ([]referenceframe.Input, error) {
	inputs := make([]referenceframe.Input, len(args))
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "joint %d", i)
		}
		inputs[i] = s.input(v)
	}
	return inputs, nil
}

func profilesAction(c *cli.Context) error {
	names, err := franka.ProfileNames()
	if err != nil {
		return err
	}
	return writeJSON(c, names)
}

func fkAction(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	inputs, err := s.parseJoints(c.Args().Slice())
	if err != nil {
		return err
	}
	frame := s.frame(c)
	pose, err := s.robot.ForwardKinematics(inputs, frame)
	if err != nil {
		return err
	}
	return writeJSON(c, poseResult{Frame: frame, Configuration: s.joints(inputs), Pose: spatialmath.PoseMap(pose)})
}

func ikAction(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	if c.NArg() != 1 {
		return errors.New("expected exactly one pose argument")
	}
	var cfg poseConfig
	if err := json5.Unmarshal([]byte(c.Args().First()), &cfg); err != nil {
		return errors.Wrap(err, "failed to parse pose")
	}
	frame := s.frame(c)
	pinned := c.Float64(flagPinned)
	solutions, err := s.robot.InverseKinematics(cfg.pose(), s.input(pinned), frame)
	if err != nil {
		return err
	}
	s.logger.Debugw("inverse kinematics", "frame", frame, "pinned", pinned, "solutions", len(solutions))
	result := ikResult{Frame: frame, Pinned: pinned, Solutions: [][]float64{}}
	for _, solution := range solutions {
		result.Solutions = append(result.Solutions, s.joints(solution))
	}
	return writeJSON(c, result)
}

func randomAction(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	var inputs []referenceframe.Input
	if method := c.String(flagMethod); method != "" {
		inputs, err = s.robot.RandomNeutral(method, s.rSeed)
	} else {
		inputs, err = s.robot.RandomConfiguration(s.rSeed)
	}
	if err != nil {
		return err
	}
	frame := s.frame(c)
	pose, err := s.robot.ForwardKinematics(inputs, frame)
	if err != nil {
		return err
	}
	return writeJSON(c, poseResult{Frame: frame, Configuration: s.joints(inputs), Pose: spatialmath.PoseMap(pose)})
}

func readRequest(c *cli.Context) (*searchRequest, error) {
	path := c.String(flagRequest)
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(c.App.Reader)
	} else {
		//nolint:gosec
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read request")
	}
	var req searchRequest
	if err := json5.Unmarshal(data, &req); err != nil {
		return nil, errors.Wrap(err, "failed to parse request")
	}
	return &req, nil
}

func searchAction(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}
	req, err := readRequest(c)
	if err != nil {
		return err
	}
	obstacles, err := spatialmath.NewGeometriesFromConfigs(req.Obstacles)
	if err != nil {
		return err
	}
	checker, err := franka.NewCollisionChecker()
	if err != nil {
		return err
	}
	retries := kinematics.DefaultMaxRetries
	if req.Retries != nil {
		retries = *req.Retries
	}
	s.logger.Infow("searching", "frame", req.Frame, "obstacles", len(obstacles), "retries", retries)
	found, err := s.robot.CollisionFreeIK(c.Context, req.Pose.pose(), kinematics.CollisionFreeRequest{
		Prismatic:  req.Prismatic,
		Checker:    checker,
		Obstacles:  obstacles,
		Buffer:     req.Buffer,
		Frame:      req.Frame,
		MaxRetries: retries,
	}, s.rSeed)
	if err != nil {
		return err
	}
	return writeJSON(c, searchResult{
		Found:         found.Found,
		Configuration: s.joints(found.Configuration),
		Attempts:      found.Attempts,
		Candidates:    found.Candidates,
	})
}

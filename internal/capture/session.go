// Package capture orchestrates a point-cloud capture session: one
// static pass over the room geometry plus a sampling pass per frame
// for animated objects, with one PCD file written per frame.
package capture

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/meshcap/meshcap/internal/logger"
	"github.com/meshcap/meshcap/internal/sampler"
	"github.com/meshcap/meshcap/internal/scene"
	"github.com/meshcap/meshcap/pkg/formats"
	"github.com/meshcap/meshcap/pkg/math"
)

// MeshProvider enumerates scene objects and poses them per frame. The
// orchestrator never performs global scene lookups itself.
type MeshProvider interface {
	Objects() []*scene.Object
	SetTime(t float64)
}

// State is the capture session lifecycle.
type State int

const (
	StateIdle State = iota
	StateStaticPass
	StateCapturing
	StateDone
)

// Options configures a capture session.
type Options struct {
	Policy         *sampler.DensityPolicy
	Seed           int64
	RoomKeyword    string // objects matching this form the room bounds
	DynamicKeyword string // objects matching this are re-sampled per frame
	CacheStatic    bool   // sample static objects once and reuse
	SeparateStatic bool   // write static points to their own file
	Workers        int    // 0 = NumCPU
	Duration       float64
	Rate           float64
	OutputDir      string
	Subfolder      string // frame files go to OutputDir/Subfolder
	LabelMode      formats.PCDLabelMode
}

// staticCloudDir is where the separate static cloud is written.
const staticCloudDir = "scene_point_cloud"

// Session drives one capture run. It is not safe for concurrent use;
// parallelism happens inside, per frame.
type Session struct {
	provider MeshProvider
	opts     Options

	state       State
	bounds      math.Box3
	staticCache []formats.PCDPoint
	manifest    Manifest
}

// NewSession creates a session over the given provider.
func NewSession(provider MeshProvider, opts Options) *Session {
	return &Session{
		provider: provider,
		opts:     opts,
		state:    StateIdle,
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Manifest returns capture statistics, valid once Run has returned.
func (s *Session) Manifest() Manifest {
	return s.manifest
}

// FrameCount returns the number of frames this session will capture.
func (s *Session) FrameCount() int {
	n := int(s.opts.Duration * s.opts.Rate)
	if n < 1 {
		n = 1
	}
	return n
}

// Run executes the capture. Per-frame write failures are logged and
// skipped; only the static-pass setup can fail the run. Cancelling ctx
// stops the session between frames without leaving partial frame
// files behind.
func (s *Session) Run(ctx context.Context) error {
	frames := s.FrameCount()
	static, dynamic := s.classify()

	logger.Info("capture session starting",
		zap.Int("frames", frames),
		zap.Float64("rate", s.opts.Rate),
		zap.Int("static_objects", len(static)),
		zap.Int("dynamic_objects", len(dynamic)),
		zap.Int64("seed", s.opts.Seed),
	)

	s.state = StateStaticPass
	s.provider.SetTime(0)
	s.bounds = s.roomBounds(static)

	if s.opts.CacheStatic || s.opts.SeparateStatic {
		s.staticCache = s.sampleObjects(static)
		logger.Info("static scene sampled",
			zap.Int("points", len(s.staticCache)))
	}

	if s.opts.SeparateStatic {
		path := filepath.Join(s.opts.OutputDir, staticCloudDir, "scene.pcd")
		if err := writeCloud(path, s.staticCache, s.opts.LabelMode); err != nil {
			return fmt.Errorf("writing static cloud: %w", err)
		}
		s.manifest.StaticFile = path
		s.manifest.StaticPoints = len(s.staticCache)
	}

	s.manifest.Frames = frames
	s.manifest.Rate = s.opts.Rate
	s.manifest.Seed = s.opts.Seed

	s.state = StateCapturing
	for frame := 0; frame < frames; frame++ {
		if err := ctx.Err(); err != nil {
			logger.Warn("capture cancelled",
				zap.Int("frames_completed", frame))
			return err
		}

		t := float64(frame) / s.opts.Rate
		s.provider.SetTime(t)

		points := s.framePoints(dynamic)

		path := filepath.Join(s.opts.OutputDir, s.opts.Subfolder,
			fmt.Sprintf("frame_%03d.pcd", frame))
		if err := writeCloud(path, points, s.opts.LabelMode); err != nil {
			// Recoverable: skip this frame, keep the session going.
			logger.Error("frame write failed, skipping",
				zap.Int("frame", frame),
				zap.String("path", path),
				zap.Error(err))
			s.manifest.FramePoints = append(s.manifest.FramePoints, 0)
			continue
		}

		s.manifest.FramePoints = append(s.manifest.FramePoints, len(points))
		logger.Debug("frame written",
			zap.Int("frame", frame),
			zap.Float64("time", t),
			zap.Int("points", len(points)))
	}

	if err := s.writeManifest(); err != nil {
		logger.Error("manifest write failed", zap.Error(err))
	}

	// Release the cache; a Done session holds no point data.
	s.staticCache = nil
	s.state = StateDone

	logger.Info("capture session finished", zap.Int("frames", frames))
	return nil
}

// framePoints assembles the merged cloud for the current frame: the
// static contribution (cached, re-sampled, or absent when written
// separately) concatenated with freshly sampled dynamic objects. No
// ordering is guaranteed between the two groups.
func (s *Session) framePoints(dynamic []*scene.Object) []formats.PCDPoint {
	var points []formats.PCDPoint

	if !s.opts.SeparateStatic {
		if s.opts.CacheStatic {
			points = append(points, s.staticCache...)
		} else {
			static, _ := s.classify()
			points = append(points, s.sampleObjects(static)...)
		}
	}

	return append(points, s.sampleObjects(dynamic)...)
}

// classify splits the provider's objects into static and dynamic sets
// by the dynamic-object keyword.
func (s *Session) classify() (static, dynamic []*scene.Object) {
	for _, obj := range s.provider.Objects() {
		if s.opts.DynamicKeyword != "" && containsFold(obj.Name, s.opts.DynamicKeyword) {
			dynamic = append(dynamic, obj)
		} else {
			static = append(static, obj)
		}
	}
	return static, dynamic
}

// roomBounds unions the bounds of all static objects matching the room
// keyword. Without a match the filter degrades to an effectively
// unbounded box and every sample passes.
func (s *Session) roomBounds(static []*scene.Object) math.Box3 {
	bounds := math.EmptyBox3()
	found := false

	for _, obj := range static {
		if s.opts.RoomKeyword == "" || !containsFold(obj.Name, s.opts.RoomKeyword) {
			continue
		}
		if obj.Mesh.IsEmpty() {
			continue
		}
		ext := newExtractor(obj)
		bounds = bounds.Union(ext.Bounds())
		found = true
	}

	if !found {
		logger.Warn("no room object found, spatial filtering disabled",
			zap.String("room_keyword", s.opts.RoomKeyword))
		return math.InfiniteBox3()
	}

	logger.Info("room bounds computed",
		zap.Any("min", bounds.Min),
		zap.Any("max", bounds.Max))
	return bounds
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

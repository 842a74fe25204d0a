// Package sunburst maps a size tree onto concentric ring segments. It is a
// pure function of the focus node and the viewport: same tree in, same
// angles out, which is what makes the geometry testable.
package sunburst

import (
	"math"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"

	"scorch/internal/domain"
)

const (
	FullCircle      = 2 * math.Pi
	DefaultMaxDepth = 5
	// DefaultMinSweep is the visibility floor in radians. Anything thinner
	// would be unreachable by pointer interaction, so it is folded into a
	// residual segment instead of being rendered at zero width.
	DefaultMinSweep = 0.01

	// ResidualName labels the synthetic segment that aggregates children
	// below the visibility floor. It is not drillable.
	ResidualName = "(other)"
)

type Viewport struct {
	MaxDepth   int
	MinSweep   float64
	StartAngle float64
}

func DefaultViewport() Viewport {
	return Viewport{MaxDepth: DefaultMaxDepth, MinSweep: DefaultMinSweep}
}

// Segment is one ring arc. Angles are radians; radii are normalized to
// [0,1] with one ring per depth level. PathID is a stable 64-bit identity
// for the renderer boundary, derived from the name path.
type Segment struct {
	Path       []string
	PathID     uint64
	Name       string
	SizeBytes  int64
	Kind       domain.Kind
	State      domain.ScanState
	Category   domain.Category
	Protected  bool
	Residual   bool
	Depth      int
	StartAngle float64
	Sweep      float64
	InnerR     float64
	OuterR     float64
}

func (segment Segment) EndAngle() float64 {
	return segment.StartAngle + segment.Sweep
}

func PathID(path []string) uint64 {
	return xxhash.Sum64String(strings.Join(path, "/"))
}

// Build lays out the focus node as a full-circle center plus up to MaxDepth
// rings of children. It is always a full recompute from the given snapshot;
// sibling geometry shifts whenever any sibling's size changes, so there is
// nothing to patch incrementally.
func Build(focus *domain.Node, viewport Viewport) []Segment {
	if focus == nil {
		return nil
	}
	if viewport.MaxDepth <= 0 {
		viewport.MaxDepth = DefaultMaxDepth
	}
	ringWidth := 1.0 / float64(viewport.MaxDepth+1)

	segments := []Segment{{
		Path:       nil,
		PathID:     PathID(nil),
		Name:       focus.Name,
		SizeBytes:  focus.SizeBytes,
		Kind:       focus.Kind,
		State:      focus.State,
		Category:   domain.Categorize(focus.Name, focus.Kind),
		Protected:  focus.Protected,
		Depth:      0,
		StartAngle: viewport.StartAngle,
		Sweep:      FullCircle,
		InnerR:     0,
		OuterR:     ringWidth,
	}}

	buildRing(focus, nil, 1, viewport.StartAngle, FullCircle, viewport, ringWidth, &segments)
	return segments
}

func buildRing(parent *domain.Node, path []string, depth int, start, sweep float64,
	viewport Viewport, ringWidth float64, segments *[]Segment) {

	if depth > viewport.MaxDepth || sweep <= 0 || parent.SizeBytes <= 0 {
		return
	}

	children := orderedChildren(parent)
	angle := start
	var skippedBytes int64
	for _, child := range children {
		share := float64(child.SizeBytes) / float64(parent.SizeBytes) * sweep
		if share < viewport.MinSweep {
			// Everything below the floor lands in the residual segment,
			// keeping the ring's angles summing to exactly the parent span.
			skippedBytes += child.SizeBytes
			continue
		}
		childPath := append(append([]string(nil), path...), child.Name)
		*segments = append(*segments, Segment{
			Path:       childPath,
			PathID:     PathID(childPath),
			Name:       child.Name,
			SizeBytes:  child.SizeBytes,
			Kind:       child.Kind,
			State:      child.State,
			Category:   domain.Categorize(child.Name, child.Kind),
			Protected:  child.Protected,
			Depth:      depth,
			StartAngle: angle,
			Sweep:      share,
			InnerR:     ringWidth * float64(depth),
			OuterR:     ringWidth * float64(depth+1),
		})
		if child.IsDir() && len(child.Children) > 0 {
			buildRing(child, childPath, depth+1, angle, share, viewport, ringWidth, segments)
		}
		angle += share
	}

	residual := start + sweep - angle
	if residual > 1e-9 {
		*segments = append(*segments, Segment{
			Path:       nil,
			PathID:     0,
			Name:       ResidualName,
			SizeBytes:  skippedBytes,
			Residual:   true,
			Depth:      depth,
			StartAngle: angle,
			Sweep:      residual,
			InnerR:     ringWidth * float64(depth),
			OuterR:     ringWidth * float64(depth+1),
		})
	}
}

// orderedChildren copies and sorts so layout stays deterministic even for
// Pending or Partial directories whose children the builder has not
// finalized yet. Size descending, ties by name ascending.
func orderedChildren(parent *domain.Node) []*domain.Node {
	children := append([]*domain.Node(nil), parent.Children...)
	sort.SliceStable(children, func(i, j int) bool {
		left, right := children[i], children[j]
		if left.SizeBytes != right.SizeBytes {
			return left.SizeBytes > right.SizeBytes
		}
		return left.Name < right.Name
	})
	return children
}

// SegmentAt resolves a polar coordinate to the segment containing it,
// or nil. Radius is in the same normalized [0,1] space as the segments.
func SegmentAt(segments []Segment, angle, radius float64) *Segment {
	normalized := math.Mod(angle, FullCircle)
	if normalized < 0 {
		normalized += FullCircle
	}
	for i := range segments {
		segment := &segments[i]
		if radius < segment.InnerR || radius >= segment.OuterR {
			continue
		}
		if segment.Depth == 0 {
			return segment
		}
		if normalized >= segment.StartAngle && normalized < segment.EndAngle() {
			return segment
		}
	}
	return nil
}

// Ring filters segments at one depth, in angular order.
func Ring(segments []Segment, depth int) []Segment {
	ring := make([]Segment, 0, len(segments))
	for _, segment := range segments {
		if segment.Depth == depth {
			ring = append(ring, segment)
		}
	}
	sort.SliceStable(ring, func(i, j int) bool {
		return ring[i].StartAngle < ring[j].StartAngle
	})
	return ring
}

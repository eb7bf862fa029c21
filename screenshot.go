package scrollsync

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// NodeState is the animated state of one node at snapshot time.
type NodeState struct {
	X, Y       float64
	Scale      float64
	Rotation   float64
	Alpha      float64
	Visible    bool
	Fill       Color
	Border     Color
	Text       string // revealed text of RoleText nodes
	DashOffset float64
}

// Snapshot records page state at one frame. Test scripts take them with the
// "snapshot" action; headless tests compare them without rendering.
type Snapshot struct {
	Label       string
	Frame       FrameContext
	PathLength  float64
	DrawnLength float64
	Nodes       map[string]NodeState
}

// Snapshot captures the state of every named node and the connector and
// stores it under label. Nodes sharing a name keep the last one in tree
// order.
func (p *Page) Snapshot(label string) Snapshot {
	snap := Snapshot{
		Label:       label,
		Frame:       p.frame,
		PathLength:  p.engine.Path().TotalLength,
		DrawnLength: p.engine.DrawnLength(),
		Nodes:       make(map[string]NodeState),
	}
	p.root.Walk(func(n *Node) {
		if n.Name == "" {
			return
		}
		snap.Nodes[n.Name] = NodeState{
			X: n.X, Y: n.Y,
			Scale:      n.ScaleX,
			Rotation:   n.Rotation,
			Alpha:      n.Alpha,
			Visible:    n.Visible,
			Fill:       n.Fill,
			Border:     n.Border,
			Text:       n.VisibleText(),
			DashOffset: n.DashOffset,
		}
	})
	p.snapshots = append(p.snapshots, snap)
	return snap
}

// Snapshots returns every snapshot taken so far, oldest first.
func (p *Page) Snapshots() []Snapshot {
	return p.snapshots
}

// Screenshot queues a labeled screenshot to be captured at the end of the
// next Draw call. The resulting PNG is written to ScreenshotDir with a
// timestamped filename.
func (p *Page) Screenshot(label string) {
	p.screenshotQueue = append(p.screenshotQueue, label)
}

// flushScreenshots captures the rendered frame once and saves it under every
// queued label. Called at the end of Page.Draw.
func (p *Page) flushScreenshots(screen *ebiten.Image) {
	if len(p.screenshotQueue) == 0 {
		return
	}
	labels := p.screenshotQueue
	p.screenshotQueue = nil

	b := screen.Bounds()
	pix := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pix)
	paths, err := saveScreenshots(p.ScreenshotDir, time.Now(), labels, unpremultiply(pix, b.Dx(), b.Dy()))
	if err != nil {
		debugf("screenshot: %v", err)
	}
	for _, path := range paths {
		debugf("screenshot %s", path)
	}
}

// unpremultiply converts ebiten's premultiplied RGBA pixels to an NRGBA
// image.
func unpremultiply(pix []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	copy(img.Pix, pix)
	for i := 0; i+3 < len(img.Pix); i += 4 {
		a := int(img.Pix[i+3])
		if a == 0 || a == 255 {
			continue
		}
		for c := i; c < i+3; c++ {
			img.Pix[c] = uint8(min(int(img.Pix[c])*255/a, 255))
		}
	}
	return img
}

// saveScreenshots writes img once per label into dir and returns the paths
// written. Labels that sanitize to the same name get a numeric suffix so a
// frame never overwrites its own earlier file.
func saveScreenshots(dir string, at time.Time, labels []string, img *image.NRGBA) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	stamp := at.Format("20060102_150405")
	seen := make(map[string]int, len(labels))
	var (
		paths []string
		errs  []error
	)
	for _, label := range labels {
		name := stamp + "_" + sanitizeLabel(label)
		seen[name]++
		if n := seen[name]; n > 1 {
			name = fmt.Sprintf("%s_%d", name, n)
		}
		path := filepath.Join(dir, name+".png")
		if err := writePNG(path, img); err != nil {
			errs = append(errs, err)
			continue
		}
		paths = append(paths, path)
	}
	return paths, errors.Join(errs...)
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

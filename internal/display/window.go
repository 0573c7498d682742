package display

import (
	"log/slog"
	"math"
	"strconv"
	"sync"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/osdui/internal/model"
	"github.com/jmylchreest/osdui/internal/osd"
	"github.com/jmylchreest/osdui/internal/style"
)

// Layer namespaces. Compositors blur layers by namespace, e.g. Hyprland's
// `layerrule = blur, osdui-blur`.
const (
	Namespace     = "osdui"
	NamespaceBlur = "osdui-blur"
)

const (
	fallbackIcon = "dialog-information-symbolic"

	// Per-window providers sit above the display-wide theme.
	stylePriority = gtk.STYLE_PROVIDER_PRIORITY_APPLICATION + 10
	showPriority  = gtk.STYLE_PROVIDER_PRIORITY_APPLICATION + 20
)

// Window is the OSD overlay of one monitor.
type Window struct {
	window  *gtk.Window
	display *gdk.Display
	monitor model.Monitor
	logger  *slog.Logger

	// Widgets
	root    *gtk.Box
	box     *gtk.Box
	icon    *gtk.Image
	label   *gtk.Label
	level   *gtk.LevelBar
	numeric *gtk.Label

	styleCSS *gtk.CSSProvider
	showCSS  *gtk.CSSProvider
	selector string

	// State
	square   bool
	rotated  bool
	blur     bool
	tx, ty   float64
	closed   bool
	levelMu  sync.Mutex
	levelFns map[int]func(float64)
	nextFn   int
}

var _ osd.Presenter = (*Window)(nil)

// NewWindow creates the hidden overlay window for a monitor.
func NewWindow(app *gtk.Application, display *gdk.Display, m model.Monitor, native *gdk.Monitor, logger *slog.Logger) *Window {
	if logger == nil {
		logger = slog.Default()
	}

	w := &Window{
		display:  display,
		monitor:  m,
		logger:   logger.With("monitor", m.Index),
		selector: "window." + monitorClass(m.Index) + " ." + style.ClassBox,
		styleCSS: gtk.NewCSSProvider(),
		showCSS:  gtk.NewCSSProvider(),
		levelFns: make(map[int]func(float64)),
	}

	w.window = gtk.NewWindow()
	if app != nil {
		w.window.SetApplication(app)
	}
	w.window.SetDecorated(false)
	w.window.SetResizable(false)
	w.window.SetCanTarget(false)
	w.window.AddCSSClass("osd-window")
	w.window.AddCSSClass(monitorClass(m.Index))

	layershell.InitForWindow(w.window)
	layershell.SetLayer(w.window, layershell.LayerShellLayerOverlay)
	layershell.SetExclusiveZone(w.window, -1)
	layershell.SetKeyboardMode(w.window, layershell.LayerShellKeyboardModeNone)
	layershell.SetNamespace(w.window, Namespace)
	layershell.SetAnchor(w.window, layershell.LayerShellEdgeTop, true)
	layershell.SetAnchor(w.window, layershell.LayerShellEdgeLeft, true)
	if native != nil {
		layershell.SetMonitor(w.window, native)
	}

	w.buildUI()

	gtk.StyleContextAddProviderForDisplay(display, w.styleCSS, stylePriority)
	gtk.StyleContextAddProviderForDisplay(display, w.showCSS, showPriority)

	return w
}

func monitorClass(index int) string {
	return "osd-monitor-" + strconv.Itoa(index)
}

// buildUI creates the widget tree: icon, then label over level bar, then the
// numeric level.
func (w *Window) buildUI() {
	w.root = gtk.NewBox(gtk.OrientationHorizontal, 0)
	w.root.AddCSSClass("osd-root")

	w.box = gtk.NewBox(gtk.OrientationHorizontal, 0)
	w.box.AddCSSClass(style.ClassBox)
	w.box.SetHAlign(gtk.AlignCenter)
	w.box.SetVAlign(gtk.AlignCenter)
	w.box.SetHExpand(true)
	w.box.SetVExpand(true)

	w.icon = gtk.NewImage()
	w.icon.AddCSSClass(style.ClassIcon)
	w.icon.SetFromIconName(fallbackIcon)
	w.box.Append(w.icon)

	vbox := gtk.NewBox(gtk.OrientationVertical, 0)
	vbox.SetVAlign(gtk.AlignCenter)
	vbox.SetHExpand(true)

	w.label = gtk.NewLabel("")
	w.label.AddCSSClass(style.ClassLabel)
	w.label.SetXAlign(0)
	vbox.Append(w.label)

	w.level = gtk.NewLevelBar()
	w.level.AddCSSClass(style.ClassLevel)
	w.level.SetMinValue(0)
	w.level.SetMaxValue(1)
	w.level.SetHExpand(true)
	vbox.Append(w.level)

	w.box.Append(vbox)

	w.numeric = gtk.NewLabel("")
	w.numeric.AddCSSClass(style.ClassNumeric)
	w.numeric.SetXAlign(1)
	w.numeric.SetVisible(false)
	w.box.Append(w.numeric)

	w.root.Append(w.box)
	w.window.SetChild(w.root)
}

// SetContent sets icon, label and level from the request.
func (w *Window) SetContent(req model.ShowRequest) {
	icon := req.Icon
	if icon == "" {
		icon = fallbackIcon
	}
	w.icon.SetFromIconName(icon)
	w.label.SetText(req.Label)
	w.label.SetVisible(req.HasLabel)
	w.level.SetVisible(req.HasLevel)

	if !req.HasLevel {
		return
	}
	level := req.Level
	if math.IsNaN(level) || level < 0 {
		level = 0
	}
	w.level.SetMaxValue(math.Max(1, level/100))
	w.level.SetValue(level / 100)
	w.numeric.SetText(strconv.Itoa(model.DisplayedLevel(level)))
	w.notifyLevel(level)
}

// Apply loads the computed style for this monitor.
func (w *Window) Apply(d style.Descriptor) {
	w.styleCSS.LoadFromString(d.CSS(w.selector))
}

// SetVisibility shows or hides the optional parts.
func (w *Window) SetVisibility(v osd.Visibility) {
	w.icon.SetVisible(v.Icon)
	w.label.SetVisible(v.Label)
	w.level.SetVisible(v.LevelBar)
	w.numeric.SetVisible(v.Numeric)
}

// SetSquare forces the box into a square of its natural width.
func (w *Window) SetSquare(on bool) {
	w.square = on
	w.box.SetSizeRequest(-1, -1)
	if !on {
		return
	}
	width, _ := w.naturalSize()
	w.box.SetSizeRequest(width, width)
}

// BoxSize returns the box size the next show will use.
func (w *Window) BoxSize() (float64, float64) {
	width, height := w.naturalSize()
	if w.square {
		return float64(width), float64(width)
	}
	return float64(width), float64(height)
}

func (w *Window) naturalSize() (int, int) {
	_, width, _, _ := w.box.Measure(gtk.OrientationHorizontal, -1)
	_, height, _, _ := w.box.Measure(gtk.OrientationVertical, width)
	return width, height
}

// SetShowState loads the show-time overrides.
func (w *Window) SetShowState(st style.ShowState) {
	w.rotated = st.Rotation != 0
	w.showCSS.LoadFromString(style.ShowCSS(w.selector, st))
}

// SetTranslation moves the box center away from the monitor center.
func (w *Window) SetTranslation(x, y float64) {
	w.tx, w.ty = x, y
}

// SetBlur switches the layer namespace. The surface is remapped when visible
// since the namespace is only read when the layer surface is created.
func (w *Window) SetBlur(on bool) {
	if on == w.blur {
		return
	}
	w.blur = on

	ns := Namespace
	if on {
		ns = NamespaceBlur
	}
	visible := w.window.IsVisible()
	if visible {
		w.window.SetVisible(false)
	}
	layershell.SetNamespace(w.window, ns)
	if visible {
		w.window.SetVisible(true)
	}
	w.logger.Debug("layer namespace changed", "namespace", ns)
}

// Show positions and maps the window.
func (w *Window) Show() {
	if w.closed {
		return
	}
	w.updateGeometry()
	w.window.Present()
}

// updateGeometry sizes the surface so a rotated box fits, then places it
// with layer-shell margins so the box center lands on the translated
// monitor center.
func (w *Window) updateGeometry() {
	width, height := w.BoxSize()
	if w.rotated {
		side := int(math.Ceil(math.Max(width, height)))
		w.root.SetSizeRequest(side, side)
	} else {
		w.root.SetSizeRequest(-1, -1)
	}

	_, ww, _, _ := w.root.Measure(gtk.OrientationHorizontal, -1)
	_, wh, _, _ := w.root.Measure(gtk.OrientationVertical, ww)

	left := float64(w.monitor.Width)/2 + w.tx - float64(ww)/2
	top := float64(w.monitor.Height)/2 + w.ty - float64(wh)/2
	layershell.SetMargin(w.window, layershell.LayerShellEdgeLeft, int(math.Round(left)))
	layershell.SetMargin(w.window, layershell.LayerShellEdgeTop, int(math.Round(top)))
}

// Hide unmaps the window.
func (w *Window) Hide() {
	w.window.SetVisible(false)
}

// Reset drops every computed style, rotation and translation.
func (w *Window) Reset() {
	w.styleCSS.LoadFromString("")
	w.showCSS.LoadFromString("")
	w.box.SetSizeRequest(-1, -1)
	w.root.SetSizeRequest(-1, -1)
	w.square = false
	w.rotated = false
	w.tx, w.ty = 0, 0
	w.SetBlur(false)
	w.SetVisibility(osd.Visibility{Icon: true, Label: true, LevelBar: true})
}

// SubscribeLevel calls fn whenever SetContent changes the level.
func (w *Window) SubscribeLevel(fn func(percent float64)) func() {
	w.levelMu.Lock()
	id := w.nextFn
	w.nextFn++
	w.levelFns[id] = fn
	w.levelMu.Unlock()

	return func() {
		w.levelMu.Lock()
		delete(w.levelFns, id)
		w.levelMu.Unlock()
	}
}

func (w *Window) notifyLevel(percent float64) {
	w.levelMu.Lock()
	fns := make([]func(float64), 0, len(w.levelFns))
	for _, fn := range w.levelFns {
		fns = append(fns, fn)
	}
	w.levelMu.Unlock()
	for _, fn := range fns {
		fn(percent)
	}
}

// Close removes the window's style providers and destroys it.
func (w *Window) Close() {
	if w.closed {
		return
	}
	w.closed = true
	gtk.StyleContextRemoveProviderForDisplay(w.display, w.styleCSS)
	gtk.StyleContextRemoveProviderForDisplay(w.display, w.showCSS)
	w.window.Destroy()
}

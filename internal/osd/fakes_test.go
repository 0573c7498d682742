package osd

import (
	"time"

	"github.com/jmylchreest/osdui/internal/model"
	"github.com/jmylchreest/osdui/internal/ring"
	"github.com/jmylchreest/osdui/internal/style"
)

type fakeTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() { t.stopped = true }

func (t *fakeTimer) live() bool { return !t.stopped && !t.fired }

// fire runs the callback regardless of Stop, like a timer racing its cancel.
func (t *fakeTimer) fire() {
	t.fired = true
	t.fn()
}

type fakeScheduler struct {
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	t := &fakeTimer{delay: d, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeScheduler) live() []*fakeTimer {
	var out []*fakeTimer
	for _, t := range s.timers {
		if t.live() {
			out = append(out, t)
		}
	}
	return out
}

func (s *fakeScheduler) fireLive() {
	for _, t := range s.live() {
		t.fire()
	}
}

type fakePresenter struct {
	monitor model.Monitor
	width   float64
	height  float64

	content    []model.ShowRequest
	applied    []style.Descriptor
	visibility Visibility
	square     bool
	showStates []style.ShowState
	x, y       float64
	blur       bool
	blurCalls  int
	visible    bool
	shows      int
	hides      int
	resets     int

	levelFns     map[int]func(float64)
	nextLevelID  int
	levelCancels int
}

func (p *fakePresenter) SetContent(req model.ShowRequest) {
	p.content = append(p.content, req)
	if req.HasLevel {
		for _, fn := range p.levelFns {
			fn(req.Level)
		}
	}
}

func (p *fakePresenter) Apply(d style.Descriptor)   { p.applied = append(p.applied, d) }
func (p *fakePresenter) SetVisibility(v Visibility) { p.visibility = v }
func (p *fakePresenter) SetSquare(on bool)          { p.square = on }

func (p *fakePresenter) BoxSize() (float64, float64) {
	if p.square {
		return p.width, p.width
	}
	return p.width, p.height
}

func (p *fakePresenter) SetShowState(st style.ShowState) { p.showStates = append(p.showStates, st) }
func (p *fakePresenter) SetTranslation(x, y float64)     { p.x, p.y = x, y }

func (p *fakePresenter) SetBlur(on bool) {
	p.blur = on
	p.blurCalls++
}

func (p *fakePresenter) Show() {
	p.visible = true
	p.shows++
}

func (p *fakePresenter) Hide() {
	p.visible = false
	p.hides++
}

func (p *fakePresenter) Reset() {
	p.resets++
	p.square = false
	p.x, p.y = 0, 0
}

func (p *fakePresenter) SubscribeLevel(fn func(float64)) func() {
	if p.levelFns == nil {
		p.levelFns = make(map[int]func(float64))
	}
	id := p.nextLevelID
	p.nextLevelID++
	p.levelFns[id] = fn
	return func() {
		if _, ok := p.levelFns[id]; ok {
			delete(p.levelFns, id)
			p.levelCancels++
		}
	}
}

func (p *fakePresenter) lastShowState() style.ShowState {
	if len(p.showStates) == 0 {
		return style.ShowState{}
	}
	return p.showStates[len(p.showStates)-1]
}

type fakeFactory struct {
	presenters map[int]*fakePresenter
	attached   []int
	detached   []int
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{presenters: make(map[int]*fakePresenter)}
}

func (f *fakeFactory) Attach(m model.Monitor) Presenter {
	p := &fakePresenter{monitor: m, width: 200, height: 100}
	f.presenters[m.Index] = p
	f.attached = append(f.attached, m.Index)
	return p
}

func (f *fakeFactory) Detach(index int) {
	f.detached = append(f.detached, index)
}

type fakeMonitors struct {
	monitors []model.Monitor
	subs     map[int]func()
	nextID   int
	cancels  int
}

func (m *fakeMonitors) Monitors() []model.Monitor {
	return append([]model.Monitor(nil), m.monitors...)
}

func (m *fakeMonitors) Subscribe(fn func()) func() {
	if m.subs == nil {
		m.subs = make(map[int]func())
	}
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	return func() {
		if _, ok := m.subs[id]; ok {
			delete(m.subs, id)
			m.cancels++
		}
	}
}

func (m *fakeMonitors) change(monitors ...model.Monitor) {
	m.monitors = monitors
	for _, fn := range m.subs {
		fn()
	}
}

type fakeClip struct {
	set  bool
	sets []bool
	err  error
}

func (c *fakeClip) IsSet() bool { return c.set }

func (c *fakeClip) Set(on bool) error {
	c.sets = append(c.sets, on)
	if c.err != nil {
		return c.err
	}
	c.set = on
	return nil
}

type fakeRing struct {
	writes []string
	err    error
}

func (r *fakeRing) Write(svg string) error {
	if r.err != nil {
		return r.err
	}
	r.writes = append(r.writes, svg)
	return nil
}

func (r *fakeRing) Path() string { return "/tmp/osdui/ring.svg" }

type fakeBoxes struct {
	box   ring.Box
	saves []ring.Box
}

func (b *fakeBoxes) RingBox() ring.Box { return b.box }

func (b *fakeBoxes) SaveRingBox(box ring.Box) error {
	b.box = box
	b.saves = append(b.saves, box)
	return nil
}

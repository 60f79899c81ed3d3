package core

// Test doubles for the hardware interfaces. The link fake records every
// byte shifted out and plays back queued response bytes, so register
// traffic and status reads can be checked without timing dependencies.

type fakeGPIO struct {
	levels  map[GPIOPin]bool
	outputs map[GPIOPin]bool
	inputs  map[GPIOPin]bool
	log     []pinEvent
}

type pinEvent struct {
	pin   GPIOPin
	value bool
}

func newFakeGPIO() *fakeGPIO {
	return &fakeGPIO{
		levels:  make(map[GPIOPin]bool),
		outputs: make(map[GPIOPin]bool),
		inputs:  make(map[GPIOPin]bool),
	}
}

func (g *fakeGPIO) ConfigureOutput(pin GPIOPin) error {
	g.outputs[pin] = true
	return nil
}

func (g *fakeGPIO) ConfigureInputPullUp(pin GPIOPin) error {
	g.inputs[pin] = true
	return nil
}

func (g *fakeGPIO) SetPin(pin GPIOPin, value bool) error {
	g.levels[pin] = value
	g.log = append(g.log, pinEvent{pin, value})
	return nil
}

func (g *fakeGPIO) ReadPin(pin GPIOPin) bool {
	return g.levels[pin]
}

// setInput drives a simulated input level (home flag, stall line).
func (g *fakeGPIO) setInput(pin GPIOPin, value bool) {
	g.levels[pin] = value
}

type fakeLink struct {
	sent      []byte
	responses []byte
	idleCalls int
}

func (l *fakeLink) Transfer(b byte) (byte, error) {
	l.sent = append(l.sent, b)
	if len(l.responses) == 0 {
		return 0, nil
	}
	r := l.responses[0]
	l.responses = l.responses[1:]
	return r, nil
}

func (l *fakeLink) WaitIdle() {
	l.idleCalls++
}

// queueResponse enqueues the three wire bytes that unpack to rd.
func (l *fakeLink) queueResponse(rd uint32) {
	l.responses = append(l.responses,
		byte(rd>>12), byte(rd>>4), byte(rd<<4))
}

type fakeStepTimer struct {
	reloads []uint32
	enabled bool
}

func (t *fakeStepTimer) SetReload(ticks uint32) {
	t.reloads = append(t.reloads, ticks)
}

func (t *fakeStepTimer) Enable()  { t.enabled = true }
func (t *fakeStepTimer) Disable() { t.enabled = false }

func (t *fakeStepTimer) lastReload() uint32 {
	if len(t.reloads) == 0 {
		return 0
	}
	return t.reloads[len(t.reloads)-1]
}

type fakeReporter struct {
	reports []StatusReport
}

func (r *fakeReporter) ReportStatus(sr StatusReport) {
	r.reports = append(r.reports, sr)
}

// newTestDriver assembles a driver model on fakes with zero guard delay.
func newTestDriver() (*TMC260, *fakeLink, *fakeGPIO) {
	link := &fakeLink{}
	gpio := newFakeGPIO()
	bus := &Bus{Link: link, GPIO: gpio, CSPin: 13, Guard: func() {}}
	drv := NewTMC260(bus, gpio, TMC260Pins{
		Enable:    0,
		HasEnable: true,
		Dir:       1,
		Step:      2,
	})
	return drv, link, gpio
}

// newTestController assembles a controller plus all of its fakes.
func newTestController() (*Controller, *TMC260, *fakeLink, *fakeGPIO, *fakeStepTimer, *fakeReporter) {
	drv, link, gpio := newTestDriver()
	timer := &fakeStepTimer{}
	rep := &fakeReporter{}
	ctrl := NewController(drv, timer, gpio, ControllerConfig{
		HomePin:  21,
		StallPin: 22,
		Reporter: rep,
	})
	return ctrl, drv, link, gpio, timer, rep
}

package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

var (
	// debugPrintln is the global debug print function (set by platform code)
	debugPrintln DebugWriter = func(s string) {}

	// debugEnabled controls whether debug output is active
	debugEnabled bool
)

// SetDebugWriter sets the platform-specific debug output function.
// Targets redirect this to UART or USB; tests capture it.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// DebugPrintln writes a debug message using the platform-specific writer
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// DebugLEDs mirrors controller events on the board's indicator LEDs, the
// way the bring-up firmware did. All methods tolerate a zero value.
type DebugLEDs struct {
	GPIO GPIODriver

	Red    GPIOPin
	Orange GPIOPin
	Green  GPIOPin
	Blue   GPIOPin

	state [4]bool
}

// LED indices for Toggle/Set/Clear
const (
	LEDRed = iota
	LEDOrange
	LEDGreen
	LEDBlue
)

func (l *DebugLEDs) pin(led int) (GPIOPin, bool) {
	if l == nil || l.GPIO == nil {
		return 0, false
	}
	switch led {
	case LEDRed:
		return l.Red, true
	case LEDOrange:
		return l.Orange, true
	case LEDGreen:
		return l.Green, true
	case LEDBlue:
		return l.Blue, true
	}
	return 0, false
}

// Set drives the LED on.
func (l *DebugLEDs) Set(led int) {
	if pin, ok := l.pin(led); ok {
		l.state[led] = true
		_ = l.GPIO.SetPin(pin, true)
	}
}

// Clear drives the LED off.
func (l *DebugLEDs) Clear(led int) {
	if pin, ok := l.pin(led); ok {
		l.state[led] = false
		_ = l.GPIO.SetPin(pin, false)
	}
}

// Toggle flips the LED.
func (l *DebugLEDs) Toggle(led int) {
	if pin, ok := l.pin(led); ok {
		l.state[led] = !l.state[led]
		_ = l.GPIO.SetPin(pin, l.state[led])
	}
}

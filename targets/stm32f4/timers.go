//go:build stm32f4disc

package main

import (
	"device/stm32"
	"runtime/interrupt"

	"tiltstep/core"
)

// Timer assignment: TIM9 is the step timer, reprogrammed per pulse by the
// controller; TIM10 provides the fixed supervisory tick. The step timer is
// prescaled to half the core clock, the rate core.StepReloadForHz values
// are scaled to, so reloads land in ARR unchanged.
const (
	stepTimerPrescale = 1                                    // core clock / 2
	tickTimerPrescale = core.SystemCoreClockHz/1_000_000 - 1 // 1 MHz count
)

// tim9StepTimer implements core.StepTimer on TIM9.
type tim9StepTimer struct{}

func (tim9StepTimer) SetReload(ticks uint32) {
	stm32.TIM9.ARR.Set(ticks)
}

func (tim9StepTimer) Enable() {
	stm32.TIM9.CNT.Set(0)
	stm32.TIM9.CR1.SetBits(stm32.TIM_CR1_CEN)
}

func (tim9StepTimer) Disable() {
	stm32.TIM9.CR1.ClearBits(stm32.TIM_CR1_CEN)
}

// initTimers enables both timer peripherals and hooks their update
// interrupts to the controller's event methods. The step timer starts
// disabled; the homing entry action enables it.
func initTimers() {
	stm32.RCC.APB2ENR.SetBits(stm32.RCC_APB2ENR_TIM9EN | stm32.RCC_APB2ENR_TIM10EN)

	// Step timer: reload set by the state machine.
	stm32.TIM9.PSC.Set(stepTimerPrescale)
	stm32.TIM9.ARR.Set(core.StepReloadForHz(core.DefaultStepFreqHz))
	stm32.TIM9.DIER.SetBits(stm32.TIM_DIER_UIE)

	// Supervisory tick at StateMachineHz.
	stm32.TIM10.PSC.Set(tickTimerPrescale)
	stm32.TIM10.ARR.Set(1_000_000/core.StateMachineHz - 1)
	stm32.TIM10.DIER.SetBits(stm32.TIM_DIER_UIE)
	stm32.TIM10.CR1.SetBits(stm32.TIM_CR1_CEN)

	// Step pulses must preempt the supervisory tick so telemetry reads
	// never stretch a pulse interval.
	stepInt := interrupt.New(stm32.IRQ_TIM1_BRK_TIM9, handleStepTimer)
	stepInt.SetPriority(0x40)
	stepInt.Enable()

	tickInt := interrupt.New(stm32.IRQ_TIM1_UP_TIM10, handleTickTimer)
	tickInt.SetPriority(0xc0)
	tickInt.Enable()
}

func handleStepTimer(interrupt.Interrupt) {
	if stm32.TIM9.SR.HasBits(stm32.TIM_SR_UIF) {
		stm32.TIM9.SR.ClearBits(stm32.TIM_SR_UIF)
		controller.StepTimerTick()
	}
}

func handleTickTimer(interrupt.Interrupt) {
	if stm32.TIM10.SR.HasBits(stm32.TIM_SR_UIF) {
		stm32.TIM10.SR.ClearBits(stm32.TIM_SR_UIF)
		controller.Tick()
	}
}

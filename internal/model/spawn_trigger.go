package model

import "fmt"

// SpawnTrigger decides when the instances of a spawn area exist.
// The value alone determines activation; no other lookup is needed.
type SpawnTrigger uint8

const (
	// TriggerAutomatic: instances are kept alive permanently.
	TriggerAutomatic SpawnTrigger = iota
	// TriggerWandering: like automatic, but instances roam the whole map.
	TriggerWandering
	// TriggerAutomaticDuringEvent: instances exist only while the map's event window is open.
	TriggerAutomaticDuringEvent
	// TriggerAutomaticDuringWave: instances exist while the area's wave is running.
	TriggerAutomaticDuringWave
	// TriggerOnceAtEventStart: spawned once when the event starts, not respawned.
	TriggerOnceAtEventStart
	// TriggerOnceAtWaveStart: spawned once when the wave starts, not respawned.
	TriggerOnceAtWaveStart
	// TriggerManuallyForEvent: spawned by event logic on demand.
	TriggerManuallyForEvent
)

var spawnTriggerNames = [...]string{
	TriggerAutomatic:            "automatic",
	TriggerWandering:            "wandering",
	TriggerAutomaticDuringEvent: "automatic_during_event",
	TriggerAutomaticDuringWave:  "automatic_during_wave",
	TriggerOnceAtEventStart:     "once_at_event_start",
	TriggerOnceAtWaveStart:      "once_at_wave_start",
	TriggerManuallyForEvent:     "manually_for_event",
}

func (t SpawnTrigger) String() string {
	if int(t) < len(spawnTriggerNames) {
		return spawnTriggerNames[t]
	}
	return fmt.Sprintf("SpawnTrigger(%d)", uint8(t))
}

// Valid reports whether t is a known trigger.
func (t SpawnTrigger) Valid() bool {
	return int(t) < len(spawnTriggerNames)
}

// IsEventBound reports whether the area is only active inside an event window.
func (t SpawnTrigger) IsEventBound() bool {
	switch t {
	case TriggerAutomaticDuringEvent, TriggerOnceAtEventStart, TriggerManuallyForEvent,
		TriggerAutomaticDuringWave, TriggerOnceAtWaveStart:
		return true
	}
	return false
}

// IsWaveBound reports whether the area belongs to a wave of an event.
func (t SpawnTrigger) IsWaveBound() bool {
	return t == TriggerAutomaticDuringWave || t == TriggerOnceAtWaveStart
}

// MarshalText implements encoding.TextMarshaler.
func (t SpawnTrigger) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("unknown spawn trigger %d", uint8(t))
	}
	return []byte(spawnTriggerNames[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty text means automatic.
func (t *SpawnTrigger) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*t = TriggerAutomatic
		return nil
	}
	for i, name := range spawnTriggerNames {
		if name == string(text) {
			*t = SpawnTrigger(i)
			return nil
		}
	}
	return fmt.Errorf("unknown spawn trigger %q", text)
}

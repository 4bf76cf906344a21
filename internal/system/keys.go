package system

// KeyF4 is the evdev code from linux/input-event-codes.h.
const KeyF4 uint16 = 62

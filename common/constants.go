package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// Gravity is the magnitude of the gravity vector in pixels/s^2.
	// The sign of the active direction is owned by the player controller.
	Gravity = 1800.0

	// TickRate is the fixed simulation rate the host loop runs at.
	TickRate = 60.0
)

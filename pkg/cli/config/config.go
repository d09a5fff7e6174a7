package config

// confirmDeletes controls whether delete commands ask before sending the request.
// It is on by default. Wrappers that run kmctl non-interactively can call
// SetConfirmDeletes(false).
var confirmDeletes = true

// SetConfirmDeletes configures whether delete commands prompt for confirmation.
func SetConfirmDeletes(enabled bool) {
	confirmDeletes = enabled
}

// GetConfirmDeletes returns the current confirmation setting.
// Delete commands combine it with their --yes flag.
func GetConfirmDeletes() bool {
	return confirmDeletes
}

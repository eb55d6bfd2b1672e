package ports

// Prompter asks the user to confirm destructive operations.
type Prompter interface {
	// IsInteractive returns true if running in an interactive terminal.
	IsInteractive() bool

	// Confirm asks a yes/no question. Anything but an explicit yes is a no.
	Confirm(question string) (bool, error)
}

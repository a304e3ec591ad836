package model

// Prompter reads answers from the user during interactive resolution.
type Prompter interface {
	// Ask shows message and returns one answer line.
	Ask(message string) (string, error)
	// Say shows an informational line.
	Say(line string)
}

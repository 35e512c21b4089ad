package model

// BatchOutcome is the result of obfuscating one file of a batch.
type BatchOutcome struct {
	Source  Path
	Output  Path
	Renamed int
	Err     error
}

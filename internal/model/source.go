// Package model defines the data structures shared by the remediation engine.
package model

// Path represents a file system path.
type Path string

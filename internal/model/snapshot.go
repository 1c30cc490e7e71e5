package model

// BackupSnapshot describes one timestamped copy of a file tree.
type BackupSnapshot struct {
	Timestamp string   `json:"timestamp" yaml:"timestamp"`
	Root      Path     `json:"root" yaml:"root"`
	Dir       Path     `json:"dir" yaml:"-"`
	Manifest  []string `json:"manifest" yaml:"manifest"`
}

package controller

import (
	m "github.com/mouse-blink/mender/internal/model"
)

// Message types.
type fileDoneMsg struct {
	summary m.FileSummary
}

type finishMsg struct{}

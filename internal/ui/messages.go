package ui

import (
	"time"

	"scorch/internal/services"
)

type scanResultMsg struct {
	result services.ScanResult
	err    error
}

type deleteResultMsg struct {
	result services.DeleteResult
	err    error
}

type volumeMsg struct {
	total uint64
	used  uint64
	err   error
}

type tickMsg time.Time

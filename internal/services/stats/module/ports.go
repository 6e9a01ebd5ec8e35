package module

import dom "tipline/internal/services/stats/domain"

// Ports holds the ports exposed by the stats module
type Ports struct {
	Recorder dom.RecorderPort
	Reader   dom.ReaderPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

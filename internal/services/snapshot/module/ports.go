package module

import dom "tipline/internal/services/snapshot/domain"

// Ports holds the ports exposed by the snapshot module
type Ports struct {
	Worker   dom.WorkerPort
	Enqueuer dom.EnqueuePort
}

package demo

import (
	"strings"
	"sync"

	"placenet/internal/common"
	"placenet/internal/domain/application"
)

// syntheticPrefix marks identifiers that must never reach persistence.
const syntheticPrefix = "00000000-"

func IsSyntheticID(id common.UUID) bool {
	return strings.HasPrefix(id.String(), syntheticPrefix)
}

// Overlay records status overrides for synthetic applications. It is owned
// by the pipeline service instance, starts empty, and is never persisted.
type Overlay struct {
	mu       sync.Mutex
	statuses map[common.UUID]application.Status
}

func NewOverlay() *Overlay {
	return &Overlay{statuses: make(map[common.UUID]application.Status)}
}

func (o *Overlay) Get(id common.UUID) (application.Status, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	status, ok := o.statuses[id]
	return status, ok
}

func (o *Overlay) Set(id common.UUID, status application.Status) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.statuses[id] = status
}

func (o *Overlay) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.statuses = make(map[common.UUID]application.Status)
}

package checkout

import "time"

func (o *Orchestrator) SetClock(now func() time.Time) {
	o.now = now
}

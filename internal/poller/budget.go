// internal/poller/budget.go
package poller

// errorBudget counts consecutive fetch failures for one poll session.
// It knows nothing about snapshot content: pass/fail history only.
// It tolerates brief blips while preventing retry storms against a
// backend that is down.
type errorBudget struct {
	max         int
	consecutive int
}

// record books one fetch outcome. Success resets the streak; failure
// extends it. stop is true once the streak reaches the maximum.
func (b *errorBudget) record(ok bool) (stop bool, count int) {
	if ok {
		b.consecutive = 0
		return false, 0
	}
	b.consecutive++
	return b.consecutive >= b.max, b.consecutive
}

func (b *errorBudget) reset() {
	b.consecutive = 0
}

func (b *errorBudget) count() int {
	return b.consecutive
}

package service

import "log"

// compensator collects undo actions as durable rows are created. On a
// later stage failure Unwind runs them in reverse order (link rows ->
// media rows -> certification_user rows -> certification row). OTP claims
// are deliberately never registered here: a claimed OTP stays claimed.
type compensator struct {
	reqID string
	undos []undoAction
}

type undoAction struct {
	label string
	fn    func() error
}

func newCompensator(reqID string) *compensator {
	return &compensator{reqID: reqID}
}

func (k *compensator) Push(label string, fn func() error) {
	k.undos = append(k.undos, undoAction{label: label, fn: fn})
}

// Unwind runs the registered undos last-in-first-out. Failures are logged
// and do not stop the unwind, nor do they mask the original error.
func (k *compensator) Unwind() {
	for i := len(k.undos) - 1; i >= 0; i-- {
		u := k.undos[i]
		if err := u.fn(); err != nil {
			log.Printf("[%s] compensation %q failed: %v", k.reqID, u.label, err)
		} else {
			log.Printf("[%s] compensated: %s", k.reqID, u.label)
		}
	}
	k.undos = nil
}

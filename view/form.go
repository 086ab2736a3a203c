package view

import "sync"

// FormState is the submission state of one form.
type FormState int

const (
	FormIdle FormState = iota
	// FormSubmitting disables the triggering control; Begin refuses a second
	// submission until the first resolves.
	FormSubmitting
	FormSubmitError
)

// Form serializes submissions for a single form-level resource. A
// submission resolves to exactly one of Succeed or Fail; the machine
// ignores whichever arrives second.
type Form struct {
	mu     sync.Mutex
	state  FormState
	errMsg string
}

// NewForm returns an idle form.
func NewForm() *Form {
	return &Form{}
}

// Begin attempts to start a submission. It returns false while one is
// already in flight, making re-triggered submits a no-op with no duplicate
// network call.
func (f *Form) Begin() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == FormSubmitting {
		return false
	}
	f.state = FormSubmitting
	f.errMsg = ""
	return true
}

// Succeed resolves the in-flight submission back to idle.
func (f *Form) Succeed() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != FormSubmitting {
		return
	}
	f.state = FormIdle
}

// Fail resolves the in-flight submission to an error with a user-visible
// message. Retry is a manual re-submit.
func (f *Form) Fail(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != FormSubmitting {
		return
	}
	f.state = FormSubmitError
	f.errMsg = msg
}

// State returns the current submission state.
func (f *Form) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Error returns the submit error message, or "" outside FormSubmitError.
func (f *Form) Error() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != FormSubmitError {
		return ""
	}
	return f.errMsg
}

package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"
)

// Sender is a mock implementation of tui.Sender
type Sender struct {
	mock.Mock
}

// SendLEDFrame provides a mock function with given fields: data, priority, duration
func (_m *Sender) SendLEDFrame(data []byte, priority int, duration time.Duration) error {
	ret := _m.Called(data, priority, duration)

	var r0 error
	if rf, ok := ret.Get(0).(func([]byte, int, time.Duration) error); ok {
		r0 = rf(data, priority, duration)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

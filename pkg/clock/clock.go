// Package clock 提供可替换的时间源，便于测试记录的创建时间
package clock

import (
	"sync"
	"time"
)

// Clock 时间源接口
type Clock interface {
	Now() time.Time
}

// RealClock 系统时间，统一返回 UTC
type RealClock struct{}

// NewRealClock 创建系统时间源
func NewRealClock() Clock {
	return RealClock{}
}

// Now 返回当前 UTC 时间
func (RealClock) Now() time.Time {
	return time.Now().UTC()
}

// MockClock 测试用时间源，可手动设置与推进
type MockClock struct {
	mu      sync.Mutex
	current time.Time
}

// NewMockClock 创建从 start 开始的测试时间源
func NewMockClock(start time.Time) *MockClock {
	return &MockClock{current: start}
}

// Now 返回当前模拟时间
func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Set 设置当前模拟时间
func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = t
}

// Advance 推进模拟时间
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.current.Add(d)
}

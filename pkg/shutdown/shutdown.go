// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package shutdown

import (
	"sync"

	"github.com/google/wire"
)

// ProviderSet 提供优雅关闭状态
var ProviderSet = wire.NewSet(NewManager)

// Manager tracks whether the process has started draining. Health checks
// consult it so load balancers stop routing menu traffic before the
// listener closes.
type Manager struct {
	once sync.Once
	done chan struct{}
}

func NewManager() *Manager {
	return &Manager{done: make(chan struct{})}
}

// IsShuttingDown reports whether Shutdown has been called.
func (m *Manager) IsShuttingDown() bool {
	select {
	case <-m.done:
		return true
	default:
		return false
	}
}

// Shutdown marks the process as draining. Only the first call returns true.
func (m *Manager) Shutdown() bool {
	triggered := false
	m.once.Do(func() {
		close(m.done)
		triggered = true
	})
	return triggered
}

// Done is closed once Shutdown has been called.
func (m *Manager) Done() <-chan struct{} {
	return m.done
}

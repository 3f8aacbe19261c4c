package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-waste-sync/internal/adapter"
	"github.com/MKhiriev/go-waste-sync/internal/logger"
	"github.com/MKhiriev/go-waste-sync/models"
)

type connectivityListener struct {
	id int
	fn func(from, to models.ConnectivityState)
}

type connectivityMonitor struct {
	mu          sync.Mutex
	state       models.ConnectivityState
	lastChanged time.Time
	listeners   []connectivityListener
	nextID      int

	clock  Clock
	logger *logger.Logger
}

// NewConnectivityMonitor starts in the unknown state.
func NewConnectivityMonitor(clock Clock, logger *logger.Logger) ConnectivityMonitor {
	if clock == nil {
		clock = time.Now
	}
	return &connectivityMonitor{
		state:       models.ConnectivityUnknown,
		lastChanged: clock(),
		clock:       clock,
		logger:      logger,
	}
}

func (m *connectivityMonitor) Report(online bool) {
	to := models.ConnectivityOffline
	if online {
		to = models.ConnectivityOnline
	}

	m.mu.Lock()
	from := m.state
	if from == to {
		m.mu.Unlock()
		return
	}
	m.state = to
	m.lastChanged = m.clock()
	listeners := make([]connectivityListener, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	m.logger.Info().Str("func", "*connectivityMonitor.Report").
		Str("from", string(from)).Str("to", string(to)).Msg("connectivity changed")

	for _, l := range listeners {
		l.fn(from, to)
	}
}

// Probe treats any HTTP answer as reachable, including 503 from a server
// that lost its database.
func (m *connectivityMonitor) Probe(ctx context.Context, pinger adapter.Pinger) models.ConnectivityState {
	err := pinger.Ping(ctx)
	if err != nil && errors.Is(err, adapter.ErrServerUnreachable) {
		m.logger.Debug().Err(err).Str("func", "*connectivityMonitor.Probe").Msg("server unreachable")
		m.Report(false)
	} else {
		m.Report(true)
	}
	return m.State()
}

func (m *connectivityMonitor) State() models.ConnectivityState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *connectivityMonitor) LastChanged() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastChanged
}

func (m *connectivityMonitor) Online() bool {
	return m.State() == models.ConnectivityOnline
}

func (m *connectivityMonitor) Subscribe(fn func(from, to models.ConnectivityState)) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners = append(m.listeners, connectivityListener{id: id, fn: fn})
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			for i, l := range m.listeners {
				if l.id == id {
					m.listeners = append(m.listeners[:i:i], m.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// wentOnline reports whether a transition is a trigger for flush and refresh.
func wentOnline(from, to models.ConnectivityState) bool {
	return to == models.ConnectivityOnline && from != models.ConnectivityOnline
}

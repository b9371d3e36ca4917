package collector

import (
	"fmt"

	"github.com/qepting91/jamcomments/internal/domain"
)

const (
	ModeRemote = "remote"
	ModeMock   = "mock"
)

// NewCollector selects the correct implementation based on the mode
func NewCollector(mode string, opts Options) (domain.Collector, error) {
	switch mode {
	case ModeRemote, "":
		return NewRemoteClient(opts), nil
	case ModeMock:
		return NewMockClient(), nil
	default:
		return nil, &domain.ConfigurationError{
			Message: fmt.Sprintf("unknown COLLECTOR_MODE: %s (use '%s' or '%s')", mode, ModeRemote, ModeMock),
		}
	}
}

package natsgath

import (
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/programme-lv/batchjudge/internal/gatherer/msggath"
)

// New creates a reporter that publishes progress messages to subject.
// Messages of one job are published under <subject>.<contestant>.<problem>
// and run summaries under <subject>.run.
func New(nc *nats.Conn, subject string, log *slog.Logger) *msggath.Reporter {
	return msggath.New(&natsSender{nc: nc, subject: subject}, log)
}

// Connect dials url and returns the reporter with a function that flushes
// pending messages and closes the connection.
func Connect(url string, subject string, log *slog.Logger) (*msggath.Reporter, func(), error) {
	nc, err := nats.Connect(url,
		nats.Name("batchjudge"),
		nats.MaxReconnects(5),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to nats at %s: %w", url, err)
	}
	closeFn := func() {
		if err := nc.Drain(); err != nil {
			nc.Close()
		}
	}
	return New(nc, subject, log), closeFn, nil
}

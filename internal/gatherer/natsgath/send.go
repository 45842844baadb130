package natsgath

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/programme-lv/batchjudge/api"
	"github.com/programme-lv/batchjudge/internal/gatherer/msggath"
)

type natsSender struct {
	nc      *nats.Conn
	subject string
}

func (s *natsSender) Send(msg msggath.Message) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	return s.nc.Publish(subjectFor(s.subject, msg), b)
}

type keyed interface {
	Key() api.SubmissionKey
}

func subjectFor(base string, msg msggath.Message) string {
	if k, ok := msg.(keyed); ok {
		if key := k.Key(); key.Contestant != "" {
			return base + "." + token(key.Contestant) + "." + token(key.Problem)
		}
	}
	return base + ".run"
}

// token replaces characters NATS gives a meaning in subjects.
func token(s string) string {
	b := []byte(s)
	for i, c := range b {
		switch c {
		case '.', '*', '>', ' ', '\t':
			b[i] = '_'
		}
	}
	return string(b)
}

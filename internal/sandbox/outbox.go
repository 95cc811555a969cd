package sandbox

import (
	"sync"
	"time"
)

// Mail is a message the sandbox would have sent by email. Password reset
// mails carry the uid and token of the reset link.
type Mail struct {
	To      string    `json:"to"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	UID     string    `json:"uid,omitempty"`
	Token   string    `json:"token,omitempty"`
	SentAt  time.Time `json:"sent_at"`
}

type outbox struct {
	mu    sync.Mutex
	mails []Mail
}

func (o *outbox) send(m Mail) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.mails = append(o.mails, m)
}

// list returns the mails addressed to to, or every mail when to is empty.
func (o *outbox) list(to string) []Mail {
	o.mu.Lock()
	defer o.mu.Unlock()

	if to == "" {
		return append([]Mail{}, o.mails...)
	}
	out := []Mail{}
	for _, m := range o.mails {
		if emailKey(m.To) == emailKey(to) {
			out = append(out, m)
		}
	}
	return out
}

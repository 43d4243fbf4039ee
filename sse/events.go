package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Event names written to the client.
const (
	EventValue    = "value"
	EventFinished = "finished"
	EventFailure  = "failure"
)

// eventWriter formats SSE frames and flushes after each one.
type eventWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
	seq     uint64
}

// value writes v as the next numbered value event.
func (ew *eventWriter) value(data []byte) error {
	ew.seq++
	return ew.frame(strconv.FormatUint(ew.seq, 10), EventValue, data)
}

// final writes a terminal event carrying body as JSON.
func (ew *eventWriter) final(event string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return ew.frame("", event, data)
}

func (ew *eventWriter) comment(text string) error {
	if _, err := fmt.Fprintf(ew.w, ": %s %d\n\n", text, time.Now().Unix()); err != nil {
		return err
	}
	ew.flusher.Flush()
	return nil
}

func (ew *eventWriter) frame(id, event string, data []byte) error {
	if id != "" {
		if _, err := fmt.Fprintf(ew.w, "id: %s\n", id); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(ew.w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	ew.flusher.Flush()
	return nil
}

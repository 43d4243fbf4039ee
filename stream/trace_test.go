package stream

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/kbukum/rxkit/logger"
)

func traceLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid log line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func messages(lines []map[string]interface{}) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i], _ = l["message"].(string)
	}
	return out
}

func TestTrace_FiniteStream(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, &buf, "")

	got := mustCollect(t, Trace(Range(1, 2), "numbers", WithLogger(log)))
	if !sliceEqual(got, []int{1, 2}) {
		t.Fatalf("trace must not alter values, got %v", got)
	}

	lines := traceLines(t, &buf)
	want := []string{"receive subscription", "receive value", "receive value", "receive finished"}
	if !sliceEqual(messages(lines), want) {
		t.Fatalf("got %v, want %v", messages(lines), want)
	}
	for _, l := range lines {
		if l[logger.FieldStream] != "numbers" {
			t.Errorf("expected stream=numbers, got %v", l[logger.FieldStream])
		}
		if l[logger.FieldSubscriptionID] == nil {
			t.Error("expected subscription id on every line")
		}
		if l["level"] != "debug" {
			t.Errorf("expected default level debug, got %v", l["level"])
		}
	}
	if lines[2][logger.FieldValue] != float64(2) {
		t.Errorf("expected value 2, got %v", lines[2][logger.FieldValue])
	}
}

func TestTrace_CancelAndFailure(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "info", Format: "json"}, &buf, "")

	mustCollect(t, FirstWhere(Trace(Range(1, 9), "numbers", WithLogger(log), WithTraceLevel("info")),
		func(n int) bool { return n == 2 }))
	msgs := messages(traceLines(t, &buf))
	if msgs[len(msgs)-1] != "receive cancel" {
		t.Errorf("expected trailing receive cancel, got %v", msgs)
	}

	buf.Reset()
	Record(Trace(Fail[int](errors.New("boom")), "broken", WithLogger(log), WithTraceLevel("info")))
	lines := traceLines(t, &buf)
	last := lines[len(lines)-1]
	if last["message"] != "receive failure" || last["error"] != "boom" {
		t.Errorf("unexpected failure line %v", last)
	}
}

func TestTrace_BelowLoggerLevelIsSilent(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "warn", Format: "json"}, &buf, "")
	mustCollect(t, Trace(Of(1), "quiet", WithLogger(log)))
	if buf.Len() != 0 {
		t.Errorf("expected no output at debug with a warn logger, got %q", buf.String())
	}
}

func TestHandleEvents_HookOrder(t *testing.T) {
	var events []string
	p := HandleEvents(Of(1), Hooks[int]{
		OnSubscribe:  func(Subscription) { events = append(events, "subscribe") },
		OnValue:      func(int) { events = append(events, "value") },
		OnCompletion: func(Completion) { events = append(events, "completion") },
		OnCancel:     func() { events = append(events, "cancel") },
	})
	mustCollect(t, p)

	want := []string{"subscribe", "value", "completion"}
	if !sliceEqual(events, want) {
		t.Errorf("got %v, want %v", events, want)
	}
}

func TestHandleEvents_CancelDuringCompletionHook(t *testing.T) {
	cancels := 0
	sp := &spy[int]{}
	HandleEvents(Of(1), Hooks[int]{
		OnCompletion: func(Completion) { sp.sub.Cancel() },
		OnCancel:     func() { cancels++ },
	}).Subscribe(sp)

	if cancels != 0 {
		t.Errorf("OnCancel ran %d times after the completion was claimed", cancels)
	}
	if len(sp.completions) != 1 || !sp.completions[0].IsFinished() {
		t.Errorf("expected one Finished, got %v", sp.completions)
	}
}

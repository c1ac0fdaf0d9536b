package transcribe

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"
)

func TestBuffer(t *testing.T) {
	var b Buffer
	if b.Answer() != "" || b.Status() != "Listening..." {
		t.Fatalf("empty buffer: answer %q status %q", b.Answer(), b.Status())
	}

	b.Add(Segment{Text: "I have"})
	if b.Answer() != "I have" {
		t.Errorf("interim Answer = %q", b.Answer())
	}
	if b.Status() != "Listening: I have" {
		t.Errorf("Status = %q", b.Status())
	}

	b.Add(Segment{Text: "I have five years", Final: true})
	b.Add(Segment{Text: "of"})
	if b.Answer() != "I have five years" {
		t.Errorf("Answer = %q, want final text only", b.Answer())
	}
	if b.Interim() != "of" {
		t.Errorf("Interim = %q", b.Interim())
	}

	b.Add(Segment{Text: " of experience ", Final: true})
	if b.Answer() != "I have five years of experience" {
		t.Errorf("Answer = %q", b.Answer())
	}
	if b.Status() != "Listening..." {
		t.Errorf("Status after final = %q", b.Status())
	}

	b.Reset()
	if b.Answer() != "" {
		t.Errorf("Answer after Reset = %q", b.Answer())
	}
}

func TestNoop(t *testing.T) {
	var tr Transcriber = Noop{}
	if tr.Available() || tr.Active() {
		t.Error("Noop reports available or active")
	}
	if _, err := tr.Start(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Start = %v, want ErrUnavailable", err)
	}
	if err := tr.Stop(); err != nil {
		t.Errorf("Stop = %v", err)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("CAREERPREP_STT_COMMAND", "whisper-stream --model base")
	cfg := ConfigFromEnv()
	if len(cfg.Command) != 3 || cfg.Command[0] != "whisper-stream" {
		t.Errorf("Command = %q", cfg.Command)
	}
	if !cfg.Enabled() {
		t.Error("Enabled = false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	t.Setenv("CAREERPREP_STT_COMMAND", "")
	if _, ok := New(ConfigFromEnv()).(Noop); !ok {
		t.Error("New without a command should return Noop")
	}
}

func TestCommand_Missing(t *testing.T) {
	c := NewCommand(Config{Command: []string{"careerprep-no-such-recognizer"}})
	if c.Available() {
		t.Fatal("missing program reported available")
	}
	if _, err := c.Start(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Start = %v, want ErrUnavailable", err)
	}
}

func TestCommand_ReadsSegments(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	script := `printf '%s\n' '{"text":"hello"}' 'not json' '{"text":"hello world","final":true,"confidence":0.9}'`
	c := NewCommand(Config{Command: []string{"sh", "-c", script}, StopTimeout: time.Second})

	ch, err := c.Start(context.Background())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	var b Buffer
	var got []Segment
	for seg := range ch {
		got = append(got, seg)
		b.Add(seg)
	}
	if len(got) != 2 {
		t.Fatalf("got %d segments, want 2: %+v", len(got), got)
	}
	if !got[1].Final || got[1].Confidence < 0.89 {
		t.Errorf("second segment = %+v", got[1])
	}
	if b.Answer() != "hello world" {
		t.Errorf("Answer = %q", b.Answer())
	}

	deadline := time.Now().Add(time.Second)
	for c.Active() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if c.Active() {
		t.Error("still active after program exit")
	}
}

func TestCommand_StopAndRestart(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}
	c := NewCommand(Config{Command: []string{"sleep", "30"}, StopTimeout: 2 * time.Second})

	ch, err := c.Start(context.Background())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !c.Active() {
		t.Error("not active after Start")
	}
	if _, err := c.Start(context.Background()); !errors.Is(err, ErrActive) {
		t.Errorf("second Start = %v, want ErrActive", err)
	}

	if err := c.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if _, open := <-ch; open {
		t.Error("channel not closed after Stop")
	}
	if c.Active() {
		t.Error("active after Stop")
	}
	if err := c.Stop(); err != nil {
		t.Errorf("second Stop = %v", err)
	}
}

package interview

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/arjun222-afk/careerprep/internal/screen"
	"github.com/arjun222-afk/careerprep/internal/transcribe"
	"github.com/arjun222-afk/careerprep/internal/ui/components"
)

// toggleVoice starts or stops speech capture into the answer field.
func (s *InterviewScreen) toggleVoice() tea.Cmd {
	if !s.transcriber.Available() {
		return s.notice.Show(components.NoticeInfo, transcribe.UnsupportedMessage)
	}
	if s.transcriber.Active() {
		s.stopVoice()
		return nil
	}

	ch, err := s.transcriber.Start(context.Background())
	if err != nil {
		s.logger.Warn("failed to start transcription", "err", err)
		return s.notice.Show(components.NoticeError, err.Error())
	}
	s.capture++
	s.segments = ch
	s.buffer.Reset()
	if v := s.answer.Value(); v != "" {
		s.buffer.Add(transcribe.Segment{Text: v, Final: true})
	}
	return waitSegment(ch, s.capture)
}

// stopVoice ends capture, keeping whatever text reached the answer field.
func (s *InterviewScreen) stopVoice() {
	if s.segments == nil && !s.transcriber.Active() {
		return
	}
	s.capture++
	s.segments = nil
	if err := s.transcriber.Stop(); err != nil {
		s.logger.Warn("failed to stop transcription", "err", err)
	}
}

// listening reports whether segments are being captured.
func (s *InterviewScreen) listening() bool {
	return s.segments != nil
}

func waitSegment(ch <-chan transcribe.Segment, capture int) tea.Cmd {
	return func() tea.Msg {
		seg, ok := <-ch
		return segmentMsg{Capture: capture, Segment: seg, Closed: !ok}
	}
}

func (s *InterviewScreen) handleSegment(msg segmentMsg) (screen.Screen, tea.Cmd) {
	if msg.Capture != s.capture || s.segments == nil {
		return s, nil
	}
	if msg.Closed {
		s.segments = nil
		return s, nil
	}
	s.buffer.Add(msg.Segment)
	s.answer.SetValue(s.buffer.Answer())
	return s, waitSegment(s.segments, s.capture)
}

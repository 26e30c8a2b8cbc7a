package mailer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMessage(t *testing.T) {
	s := NewSMTP(Config{Host: "smtp.example.org", Port: 587})

	msg := Message{
		Subject: "Email from visitor@example.com",
		From:    "relay@example.org",
		To:      []string{"owner@example.org"},
		Body:    "This is a test message.",
	}
	result := s.formatMessage(msg)

	cases := []struct {
		name string
		want string
	}{
		{"from header", "From: relay@example.org\r\n"},
		{"to header", "To: owner@example.org\r\n"},
		{"subject header", "Subject: Email from visitor@example.com\r\n"},
		{"mime header", "MIME-Version: 1.0\r\n"},
		{"content type header", "Content-Type: text/plain; charset=UTF-8\r\n"},
		{"body after blank line", "\r\n\r\nThis is a test message.\r\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Contains(t, result, tc.want)
		})
	}
}

func TestFormatMessageMultipleRecipients(t *testing.T) {
	s := NewSMTP(Config{})
	result := s.formatMessage(Message{To: []string{"a@example.org", "b@example.org"}})
	assert.Contains(t, result, "To: a@example.org, b@example.org\r\n")
}

func TestSendUsesSeam(t *testing.T) {
	s := NewSMTP(Config{})

	var captured Message
	s.sendFn = func(_ context.Context, msg Message) error {
		captured = msg
		return nil
	}

	msg := Message{Subject: "s", From: "f@example.org", To: []string{"t@example.org"}, Body: "b"}
	require.NoError(t, s.Send(context.Background(), msg))
	assert.Equal(t, msg, captured)
}

func TestSendPropagatesTransportError(t *testing.T) {
	s := NewSMTP(Config{})
	want := errors.New("connection reset")
	s.sendFn = func(context.Context, Message) error { return want }

	err := s.Send(context.Background(), Message{To: []string{"t@example.org"}})
	assert.ErrorIs(t, err, want)
}

func TestSendRejectsEmptyRecipients(t *testing.T) {
	s := NewSMTP(Config{Host: "smtp.example.org", Port: 587})

	err := s.Send(context.Background(), Message{From: "f@example.org"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "no recipients"))
}

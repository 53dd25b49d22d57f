package notify

import "context"

// NopSender drops every message. Used when no messaging bot is configured.
type NopSender struct{}

func (NopSender) SendMessage(context.Context, string) error { return nil }

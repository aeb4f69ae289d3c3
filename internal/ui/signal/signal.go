// Package signal carries bus topics into the Bubble Tea program as messages.
package signal

import (
	tea "github.com/charmbracelet/bubbletea"

	"studyhub/internal/platform/events"
)

type NotificationsChangedMsg struct{}

type ProgressChangedMsg struct{}

type SessionChangedMsg struct{}

type TimerChangedMsg struct{}

// Sender is the part of *tea.Program used for forwarding.
type Sender interface {
	Send(msg tea.Msg)
}

// Forward subscribes to every topic the views react to and re-raises each
// signal as a message. The returned func removes all subscriptions.
func Forward(sub events.Subscriber, to Sender) func() {
	topics := map[events.Topic]tea.Msg{
		events.NotificationsChanged: NotificationsChangedMsg{},
		events.ProgressChanged:      ProgressChangedMsg{},
		events.SessionChanged:       SessionChangedMsg{},
		events.TimerChanged:         TimerChangedMsg{},
	}
	unsubs := make([]func(), 0, len(topics))
	for topic, msg := range topics {
		msg := msg
		unsubs = append(unsubs, sub.Subscribe(topic, func() {
			// Send blocks until the program reads the message.
			go to.Send(msg)
		}))
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

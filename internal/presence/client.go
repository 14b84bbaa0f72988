package presence

import (
	"time"

	"github.com/hugolgst/rich-go/client"
)

// Activity is what a Client pushes to the presence service.
type Activity struct {
	StartedAt  time.Time
	Details    string
	State      string
	LargeImage string
	LargeText  string
}

// Client is a connection to an external presence service.
type Client interface {
	Login(clientID string) error
	SetActivity(a Activity) error
	Logout()
}

// DiscordClient talks to a local Discord instance over its IPC socket.
type DiscordClient struct{}

func (DiscordClient) Login(clientID string) error {
	return client.Login(clientID)
}

func (DiscordClient) SetActivity(a Activity) error {
	act := client.Activity{
		Details:    a.Details,
		State:      a.State,
		LargeImage: a.LargeImage,
		LargeText:  a.LargeText,
	}
	if !a.StartedAt.IsZero() {
		start := a.StartedAt
		act.Timestamps = &client.Timestamps{Start: &start}
	}
	return client.SetActivity(act)
}

func (DiscordClient) Logout() {
	client.Logout()
}

// NopClient accepts everything and sends nothing.
type NopClient struct{}

func (NopClient) Login(string) error        { return nil }
func (NopClient) SetActivity(Activity) error { return nil }
func (NopClient) Logout()                    {}

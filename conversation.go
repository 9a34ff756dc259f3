package main

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

// Conversation is the slice of the chat transport the interactive flows need:
// posting text to the channel and waiting on the next reply from one user.
// Tests inject a scripted implementation instead of a live Discord session.
type Conversation interface {
	Send(text string)
	// Await blocks until userID posts in the conversation's channel or the
	// timeout elapses; ok is false on timeout.
	Await(userID string, timeout time.Duration) (reply string, ok bool)
}

// discordConversation relays channel messages into a buffered feed for the
// lifetime of one flow
type discordConversation struct {
	session   *discordgo.Session
	channelID string
	feed      chan *discordgo.MessageCreate
	remove    func()
}

func newDiscordConversation(s *discordgo.Session, channelID string) *discordConversation {
	c := &discordConversation{
		session:   s,
		channelID: channelID,
		feed:      make(chan *discordgo.MessageCreate, 100),
	}

	c.remove = s.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		// Ignore all messages created by self and bots
		if m.Author.ID == s.State.User.ID || m.Author.Bot {
			return
		}

		// Only react on current flow channel
		if m.ChannelID != channelID {
			return
		}

		select {
		case c.feed <- m:
		default:
			// Feed full, drop rather than block the gateway handler
		}
	})

	return c
}

func (c *discordConversation) Send(text string) {
	msgSend(c.session, c.channelID, text)
}

func (c *discordConversation) Await(userID string, timeout time.Duration) (string, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case m := <-c.feed:
			if m.Author.ID != userID {
				continue
			}
			return m.Content, true
		case <-timer.C:
			return "", false
		}
	}
}

// Close detaches the flow's message handler from the session
func (c *discordConversation) Close() {
	c.remove()
}

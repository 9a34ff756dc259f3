package main

import (
	"bytes"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
)

// Player type for ranking list
type Player struct {
	Name  string
	Score int
}

// Sort the score map into a ranking list; ties resolve by name so the
// ordering stays stable between runs
func ranking(players map[string]int) (result []Player) {

	for k, v := range players {
		result = append(result, Player{k, v})
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Score != result[j].Score {
			return result[i].Score > result[j].Score
		}
		return result[i].Name < result[j].Name
	})

	return
}

// Helper function to truncate long strings (Discord field limit)
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) > n && len(s) >= 6 {
		s = string([]rune(s)[:n-6]) + " [...]"
	}

	return s
}

// Helper function to upper-case the first rune of a name
func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}

	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

// Send a given message to channel
func msgSend(s *discordgo.Session, cid string, msg string) (sent *discordgo.Message) {

	// Try thrice in case of timeouts
	retryErr := retryOnServerError(func() error {
		var err error
		sent, err = s.ChannelMessageSend(cid, msg)
		return err
	})
	if retryErr != nil {
		log.Println("ERROR, Could not send message:", retryErr)
	}

	return
}

// Send a file attachment to channel
func fileSend(s *discordgo.Session, cid string, name string, data *bytes.Buffer) (sent *discordgo.Message) {

	// Try thrice in case of timeouts
	retryErr := retryOnServerError(func() error {
		var err error
		sent, err = s.ChannelFileSend(cid, name, data)
		return err
	})
	if retryErr != nil {
		log.Println("ERROR, Could not send file:", retryErr)
	}

	return
}

// Send an embedded message type to Discord
func embedSend(s *discordgo.Session, cid string, embed *discordgo.MessageEmbed) (sent *discordgo.Message) {

	// Try thrice in case of timeouts
	retryErr := retryOnServerError(func() error {
		var err error
		sent, err = s.ChannelMessageSendEmbed(cid, embed)
		return err
	})
	if retryErr != nil {
		log.Println("ERROR, Could not send embed:", retryErr)
	}

	return
}

// Try API thrice in case of timeouts
func retryOnServerError(f func() error) (err error) {

	for i := 0; i < 3; i++ {
		err = f()
		if err != nil {
			if strings.HasPrefix(err.Error(), "HTTP 5") {
				// Wait and retry if Discord server related
				time.Sleep(1 * time.Second)
				continue
			} else {
				break
			}
		} else {
			// In case of no error, return
			return
		}
	}

	return
}

// Determine if given line is a bot command
func isBotCommand(s string) bool {

	if len(s) < len(cmdPrefix) {
		return false
	}

	return strings.EqualFold(s[:len(cmdPrefix)], cmdPrefix)
}

// Return the duration since the bot started running formatted nicely
func Uptime() string {
	t := time.Since(Settings.TimeStarted)

	days := t / (24 * time.Hour)
	t = t % (24 * time.Hour)

	hours := t / time.Hour
	t = t % time.Hour

	mins := t / time.Minute

	var parts []string

	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if mins > 0 {
		parts = append(parts, fmt.Sprintf("%dm", mins))
	}

	if len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%ds", t/time.Second))
	}

	return fmt.Sprintf("Uptime: **%s** ", strings.Join(parts, ""))
}

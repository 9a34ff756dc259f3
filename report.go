package main

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Show every category together with its subcategories
func showCategories(s *discordgo.Session, cid string, store *Store) (sent *discordgo.Message) {

	listings := store.Categories()
	if len(listings) == 0 {
		return msgSend(s, cid, fmt.Sprintf("No quizzes available yet. Ask an admin to run `%screatequiz`.", cmdPrefix))
	}

	var lines []string
	for _, listing := range listings {
		lines = append(lines, fmt.Sprintf("🔹 %s → %s", capitalize(listing.Name), strings.Join(listing.Subcategories, ", ")))
	}

	embed := &discordgo.MessageEmbed{
		Type:        "rich",
		Title:       "Available Categories",
		Color:       0xFADE40,
		Description: truncate(strings.Join(lines, "\n"), DISCORD_DESC_MAX),
	}

	return embedSend(s, cid, embed)
}

// Show the top ten scores, as a PNG scorecard when a font is installed
func showLeaderboard(s *discordgo.Session, cid string, store *Store) (sent *discordgo.Message) {

	top := store.Top(10)
	if len(top) == 0 {
		return msgSend(s, cid, "🏆 No scores yet!")
	}

	if img := GenerateScorecard("Leaderboard", top); img != nil {
		return fileSend(s, cid, "leaderboard.png", img)
	}

	embed := &discordgo.MessageEmbed{
		Type:        "rich",
		Title:       "📊 Leaderboard",
		Color:       0xFADE40,
		Description: truncate(formatRanking(top), DISCORD_DESC_MAX),
	}

	return embedSend(s, cid, embed)
}

// Render ranked scores one line per entry
func formatRanking(top []Player) string {
	var b strings.Builder
	for i, p := range top {
		fmt.Fprintf(&b, "**%d.** **%s** - %d points\n", i+1, p.Name, p.Score)
	}
	return b.String()
}

// Show the caller's cumulative total
func showOwnScore(s *discordgo.Session, cid string, store *Store, username string) (sent *discordgo.Message) {
	return msgSend(s, cid, fmt.Sprintf("🎯 Your total score: %d", store.Score(username)))
}

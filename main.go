package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Path to folder containing resources
const RESOURCES_FOLDER = "./resources/"

// Notification when attempting admin commands without permission
const ADMIN_ONLY_MSG = "⛔ This command is for server administrators only, "

// Discord API string limits
const DISCORD_DESC_MAX = 2048

// This bot's command prefix for message parsing, set from config
var cmdPrefix = "!"

// Persistence store shared by all command handlers
var store *Store

// Ongoing keeps track of active interactive flows and their channels
var Ongoing struct {
	sync.RWMutex
	ChannelID map[string]bool
}

// General bot settings (READ ONLY after startup)
var Settings struct {
	Owner       *discordgo.User // Bot owner account
	TimeStarted time.Time       // Bot startup time
	Timeouts    Timeouts        // Reply windows for interactive flows
}

var (
	tokenFlag  string
	configPath string
)

func init() {
	flag.StringVar(&tokenFlag, "t", "", "Bot Token")
	flag.StringVar(&configPath, "c", "./config.yaml", "Config file path")

	Ongoing.ChannelID = make(map[string]bool)
}

func main() {
	flag.Parse()

	cfg := loadConfig(configPath)
	cmdPrefix = cfg.Discord.Prefix
	Settings.TimeStarted = time.Now()
	Settings.Timeouts = cfg.timeouts()

	// Token resolution order: flag, environment, config file
	token := cfg.Discord.Token
	if env := os.Getenv("BOT_TOKEN"); env != "" {
		token = env
	}
	if tokenFlag != "" {
		token = tokenFlag
	}
	if len(token) == 0 {
		flag.Usage()
		return
	}

	if err := os.MkdirAll(cfg.Storage.Dir, 0755); err != nil {
		log.Fatalln("ERROR, Could not create data directory:", err)
	}
	store = NewStore(cfg.Storage.Dir)

	// The scorecard font is optional
	loadFont()

	// Initiate a new session using Bot Token for authentication
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		log.Fatalln("ERROR, Failed to create Discord session:", err)
	}

	// Enable all intents for now
	session.Identify.Intents = discordgo.MakeIntent(discordgo.IntentsAll)

	// Open a websocket connection to Discord and begin listening
	err = session.Open()
	if err != nil {
		log.Fatalln("ERROR, Couldn't open websocket connection:", err)
	}

	// Figure out the owner of the bot for admin commands
	app, err := session.Application("@me")
	if err != nil {
		log.Fatalln("ERROR, Couldn't get app:", err)
	}
	Settings.Owner = app.Owner

	// Register the messageCreate func as a callback for MessageCreate events
	session.AddHandler(messageCreate)

	// Wait here until CTRL-C or other term signal is received
	log.Println("NOTICE, Bot is now running. Press CTRL-C to exit.")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	// Cleanly close down the Discord session.
	session.Close()
}

// This function will be called (due to AddHandler above) every time a new
// message is created on any channel that the authenticated bot has access to
func messageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {

	// Ignore all messages created by bots to avoid loops
	if m.Author.Bot {
		return
	}

	if !isBotCommand(m.Content) {
		return
	}

	// Split up the message to parse the input string
	input := strings.Fields(strings.TrimSpace(m.Content))
	var command string
	if len(input) >= 1 {
		command = strings.ToLower(input[0][len(cmdPrefix):])
	}

	switch command {
	case "help":
		showHelp(s, m)
	case "lists":
		showCategories(s, m.ChannelID, store)
	case "leaderboardx":
		showLeaderboard(s, m.ChannelID, store)
	case "myscore":
		showOwnScore(s, m.ChannelID, store, displayName(m.Author))
	case "uptime":
		msgSend(s, m.ChannelID, Uptime())
	case "ongoing":
		if isAdmin(s, m) {
			msgOngoing(s, m.ChannelID)
		} else {
			msgSend(s, m.ChannelID, ADMIN_ONLY_MSG+m.Author.Mention())
		}
	case "start":
		if len(input) != 3 {
			msgSend(s, m.ChannelID, fmt.Sprintf("Usage: `%sstart <category> <subcategory>`", cmdPrefix))
			break
		}
		go runStart(s, m, strings.ToLower(input[1]), strings.ToLower(input[2]))
	case "createquiz":
		if !isAdmin(s, m) {
			msgSend(s, m.ChannelID, ADMIN_ONLY_MSG+m.Author.Mention())
			break
		}
		go runCreate(s, m)
	case "deletequiz":
		if !isAdmin(s, m) {
			msgSend(s, m.ChannelID, ADMIN_ONLY_MSG+m.Author.Mention())
			break
		}
		go runDelete(s, m)
	}
}

// runStart wires a Discord conversation into the quiz session runner
func runStart(s *discordgo.Session, m *discordgo.MessageCreate, category, subcategory string) {

	if err := startFlow(s, m.ChannelID); err != nil {
		msgSend(s, m.ChannelID, "⚠️ Another quiz or setup flow is already running in this channel.")
		return
	}
	defer stopFlow(s, m.ChannelID)

	conv := newDiscordConversation(s, m.ChannelID)
	defer conv.Close()

	_, err := runQuizSession(conv, store, m.Author.ID, displayName(m.Author), category, subcategory, Settings.Timeouts.Question)
	switch err {
	case ErrAlreadyAttempted:
		msgSend(s, m.ChannelID, "❌ You have already attempted this quiz! You cannot take it again.")
	case ErrUnknownQuiz:
		msgSend(s, m.ChannelID, fmt.Sprintf("Invalid category or subcategory! Use `%slists` to see available options.", cmdPrefix))
	}
}

// runCreate wires a Discord conversation into the quiz authoring flow
func runCreate(s *discordgo.Session, m *discordgo.MessageCreate) {

	if err := startFlow(s, m.ChannelID); err != nil {
		msgSend(s, m.ChannelID, "⚠️ Another quiz or setup flow is already running in this channel.")
		return
	}
	defer stopFlow(s, m.ChannelID)

	conv := newDiscordConversation(s, m.ChannelID)
	defer conv.Close()

	runCreateQuiz(conv, store, m.Author.ID, Settings.Timeouts)
}

// runDelete wires a Discord conversation into the quiz deletion flow
func runDelete(s *discordgo.Session, m *discordgo.MessageCreate) {

	if err := startFlow(s, m.ChannelID); err != nil {
		msgSend(s, m.ChannelID, "⚠️ Another quiz or setup flow is already running in this channel.")
		return
	}
	defer stopFlow(s, m.ChannelID)

	conv := newDiscordConversation(s, m.ChannelID)
	defer conv.Close()

	runDeleteQuiz(conv, store, m.Author.ID, Settings.Timeouts)
}

// displayName follows the classic name#discriminator identity used as the
// leaderboard key
func displayName(u *discordgo.User) string {
	return u.Username + "#" + u.Discriminator
}

// Checks for the Administrator permission bit or bot ownership
func isAdmin(s *discordgo.Session, m *discordgo.MessageCreate) bool {

	if Settings.Owner != nil && m.Author.ID == Settings.Owner.ID {
		return true
	}

	perms, err := s.State.UserChannelPermissions(m.Author.ID, m.ChannelID)
	if err != nil {
		log.Println("ERROR, Could not resolve permissions:", err)
		return false
	}

	return perms&discordgo.PermissionAdministrator != 0
}

// Start interactive flow in given channel
func startFlow(s *discordgo.Session, channelID string) (err error) {
	count := 0

	Ongoing.Lock()
	_, exists := Ongoing.ChannelID[channelID]
	if !exists {
		Ongoing.ChannelID[channelID] = true
	} else {
		err = fmt.Errorf("channel flow already ongoing")
	}
	count = len(Ongoing.ChannelID)
	Ongoing.Unlock()

	updateStatus(s, count)

	return
}

// Stop ongoing flow in given channel
func stopFlow(s *discordgo.Session, channelID string) {
	count := 0

	Ongoing.Lock()
	delete(Ongoing.ChannelID, channelID)
	count = len(Ongoing.ChannelID)
	Ongoing.Unlock()

	updateStatus(s, count)
}

// Update bot's user status to reflect running quizzes
func updateStatus(s *discordgo.Session, count int) {
	var status string
	if count == 1 {
		status = "1 quiz"
	} else if count >= 2 {
		status = fmt.Sprintf("%d quizzes", count)
	}

	if err := s.UpdateGameStatus(0, status); err != nil {
		log.Println("ERROR, Could not update status:", err)
	}
}

// Send ongoing flow info to channel
func msgOngoing(s *discordgo.Session, cid string) (sent *discordgo.Message) {

	var sessions []string

	Ongoing.RLock()
	for channelID := range Ongoing.ChannelID {
		sessions = append(sessions, "<#"+channelID+">")
	}
	Ongoing.RUnlock()

	if len(sessions) == 0 {
		return msgSend(s, cid, "No ongoing quizzes.")
	}

	return msgSend(s, cid, fmt.Sprintf("Ongoing quizzes: %s\n", strings.Join(sessions, ", ")))
}

// Show bot help message in channel
func showHelp(s *discordgo.Session, m *discordgo.MessageCreate) (sent *discordgo.Message) {

	var fields []*discordgo.MessageEmbedField

	fields = append(fields, &discordgo.MessageEmbedField{
		Name:   "Taking a quiz",
		Value:  fmt.Sprintf("Type `%sstart <category> <subcategory>` to begin. Each question gives you one reply within the time limit. One attempt per quiz!", cmdPrefix),
		Inline: false,
	})

	fields = append(fields, &discordgo.MessageEmbedField{
		Name:   "Browsing",
		Value:  fmt.Sprintf("`%slists` shows all categories, `%sleaderboardx` the top ten, `%smyscore` your own total.", cmdPrefix, cmdPrefix, cmdPrefix),
		Inline: false,
	})

	fields = append(fields, &discordgo.MessageEmbedField{
		Name:   "Admin commands",
		Value:  fmt.Sprintf("`%screatequiz` builds a quiz interactively, `%sdeletequiz` removes one. Server administrators only.", cmdPrefix, cmdPrefix),
		Inline: false,
	})

	embed := &discordgo.MessageEmbed{
		Type:        "rich",
		Title:       "🎓 Quiz Keeper Bot",
		Description: "Category quizzes with a persistent leaderboard!",
		Color:       0xFADE40,
		Fields:      fields,
	}

	if Settings.Owner != nil {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Owner: %s#%s", Settings.Owner.Username, Settings.Owner.Discriminator)}
	}

	return embedSend(s, m.ChannelID, embed)
}

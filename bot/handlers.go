/* handlers.go
 * Contains testable handler methods that accept the DiscordSession interface,
 * the runtime session is adapted onto these in bot_runtime.go
 * Authors: Zachary Bower
 */

package bot

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/go-andiamo/splitter"
	"go.mongodb.org/mongo-driver/mongo"

	"survivor-pool/api/shared"
)

// newMessageHandler routes messages to the appropriate handler.
// botUserID is the bot's user ID to prevent self-responses
func (b *Bot) newMessageHandler(session DiscordSession, message *discordgo.MessageCreate, botUserID string) {
	// Prevent bot from responding to its own messages
	if message.Author.ID == botUserID {
		return
	}

	switch {
	case startsWith(message.Content, "$help"):
		b.helpHandler(session, message)

	case startsWith(message.Content, "$week"):
		b.weekHandler(session, message)

	case startsWith(message.Content, "$pick"):
		b.pickHandler(session, message)

	case startsWith(message.Content, "$status"):
		b.statusHandler(session, message)

	case startsWith(message.Content, "$standings"):
		b.standingsHandler(session, message)

	case startsWith(message.Content, "$audit"):
		b.auditHandler(session, message)

	case startsWith(message.Content, "$fix"):
		b.fixHandler(session, message)
	}
}

// helpHandler handles the $help command
// Preconditions: None
// Postconditions: Help message is sent to the discord channel
func (b *Bot) helpHandler(session DiscordSession, message *discordgo.MessageCreate) {
	var res strings.Builder
	res.WriteString("Survivor Pool Bot v1.0\n")
	res.WriteString("`$week`: shows the current week and the teams playing in it. Use this list to make your pick\n")
	res.WriteString("`$pick team`: sets your pick for the current week. A week 1 pick is required to enter the pool\n")
	res.WriteString("There is fuzzy matching on names, however you should try and have a close match for the best results. Names that contain two or more words need to be encased in \" (e.g. \"Detroit Lions\")\n")
	res.WriteString("`$status`: shows whether you are still alive and lists your winning picks so far\n")
	res.WriteString("`$standings`: shows the whole pool, who is alive, who is out and in which week\n")
	res.WriteString("`$audit userId`: recomputes a participant's season from raw results and reports any drift from their stored status. Read only\n")
	res.WriteString("`$fix userId`: runs the same audit and then writes the verified corrections\n")
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// weekHandler handles the $week command, posting the current week number and its teams
// Preconditions: Receives the session and the discordgo message
// Postconditions: Sends the week summary to the discord channel
func (b *Bot) weekHandler(session DiscordSession, message *discordgo.MessageCreate) {
	week := b.APIPtr.CurrentWeek()

	teams, err := b.APIPtr.GetWeekTeams()
	if err != nil {
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("It is week %d, but the week's games are not loaded yet", week))
		return
	}

	var res strings.Builder
	res.WriteString(fmt.Sprintf("It is week %d. Teams playing this week:\n", week))
	for _, team := range teams {
		res.WriteString(fmt.Sprintf("- %s\n", team))
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// pickHandler handles the $pick command, validating and storing the user's pick
// for the current week
// Preconditions: Receives the session and the discordgo message
// Postconditions: The user's pick is stored if the team is valid, else an error
// message is sent to the discord channel
func (b *Bot) pickHandler(session DiscordSession, message *discordgo.MessageCreate) {
	user := shared.User{UserID: message.Author.ID, Username: message.Author.Username}

	// we use splitter here instead of go's built in splitter so team names that
	// contain spaces e.g. "Detroit Lions" are recognised as one token not two
	spaceSplitter, _ := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	msg, _ := spaceSplitter.Split(message.Content)
	if len(msg) < 2 {
		session.ChannelMessageSend(message.ChannelID, "Usage: $pick team")
		return
	}
	team := strings.Trim(msg[1], "\"")

	res, err := b.APIPtr.SetWeeklyPick(user, team)
	if err != nil {
		log.Println(err)
		res = fmt.Sprintf("An error occured setting %s's pick: %s", user.Username, err)
	}
	session.ChannelMessageSend(message.ChannelID, res)
}

// statusHandler handles the $status command
// Preconditions: Receives the session and the discordgo message
// Postconditions: Sends the user's survival status and winning picks to the
// discord channel
func (b *Bot) statusHandler(session DiscordSession, message *discordgo.MessageCreate) {
	user := shared.User{UserID: message.Author.ID, Username: message.Author.Username}
	res, err := b.APIPtr.CheckParticipant(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			res = fmt.Sprintf("%s does not have any picks stored. Use $pick to make your week's pick\n", user.Username)
		} else {
			log.Println(err)
			res = fmt.Sprintf("An error occured checking %s's status", user.Username)
		}
	}
	session.ChannelMessageSend(message.ChannelID, res)
}

// standingsHandler handles the $standings command, posting the whole pool view
// Preconditions: Receives the session and the discordgo message
// Postconditions: Sends the pool standings to the discord channel
func (b *Bot) standingsHandler(session DiscordSession, message *discordgo.MessageCreate) {
	snapshot, err := b.APIPtr.GetPoolSnapshot()
	if err != nil {
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, "An error occured getting the pool standings")
		return
	}

	var res strings.Builder
	res.WriteString(fmt.Sprintf("Week %d standings for %s\n", snapshot.CurrentWeek, snapshot.Pool))
	res.WriteString(fmt.Sprintf("Alive (%d):\n", snapshot.Summary.Alive))
	for _, state := range snapshot.Alive {
		res.WriteString(fmt.Sprintf("- %s (%d winning picks)\n", state.Name, len(state.WinningPicks)))
	}
	res.WriteString(fmt.Sprintf("Eliminated (%d):\n", snapshot.Summary.Eliminated))
	for _, state := range snapshot.Eliminated {
		res.WriteString(fmt.Sprintf("- %s (week %d, %s)\n", state.Name, state.EliminatedWeek, state.EliminatedBy))
	}
	if snapshot.Summary.NotParticipating > 0 {
		res.WriteString(fmt.Sprintf("Not participating (%d):\n", snapshot.Summary.NotParticipating))
		for _, state := range snapshot.NotParticipating {
			res.WriteString(fmt.Sprintf("- %s\n", state.Name))
		}
	}
	if snapshot.Summary.Errors > 0 {
		res.WriteString(fmt.Sprintf("%d participant(s) could not be evaluated this run\n", snapshot.Summary.Errors))
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// auditHandler handles the $audit command. Read only, the report says what $fix
// would change
// Preconditions: Receives the session and the discordgo message
// Postconditions: Sends the audit report summary to the discord channel
func (b *Bot) auditHandler(session DiscordSession, message *discordgo.MessageCreate) {
	fields := strings.Fields(message.Content)
	if len(fields) < 2 {
		session.ChannelMessageSend(message.ChannelID, "Usage: $audit userId")
		return
	}

	report, err := b.APIPtr.RunAudit(fields[1])
	if err != nil {
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("An error occured auditing %s: %s", fields[1], err))
		return
	}

	var res strings.Builder
	res.WriteString(fmt.Sprintf("Audit of %s in %s\n", report.SignalParticipant, report.Pool))
	for _, match := range report.BugPatterns {
		res.WriteString(fmt.Sprintf("- %s: %s\n", match.Kind, match.Detail))
	}
	if len(report.AffectedUsers) > 0 {
		res.WriteString(fmt.Sprintf("The same pattern(s) affect %d other participant(s):\n", len(report.AffectedUsers)))
		for _, match := range report.AffectedUsers {
			res.WriteString(fmt.Sprintf("- %s: %s\n", match.ParticipantID, match.Detail))
		}
	}
	res.WriteString(fmt.Sprintf("%d of %d finding(s) verified on recheck\n",
		len(report.VerificationResults.Verified),
		len(report.VerificationResults.Verified)+len(report.VerificationResults.Failed)))
	for _, recommendation := range report.Recommendations {
		res.WriteString(fmt.Sprintf("Recommendation: %s\n", recommendation))
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// fixHandler handles the $fix command, running an audit and then applying the
// verified corrections
// Preconditions: Receives the session and the discordgo message
// Postconditions: Corrective writes are applied and the outcome is sent to the
// discord channel
func (b *Bot) fixHandler(session DiscordSession, message *discordgo.MessageCreate) {
	fields := strings.Fields(message.Content)
	if len(fields) < 2 {
		session.ChannelMessageSend(message.ChannelID, "Usage: $fix userId")
		return
	}

	report, err := b.APIPtr.RunAudit(fields[1])
	if err != nil {
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("An error occured auditing %s: %s", fields[1], err))
		return
	}

	outcome, err := b.APIPtr.ApplyCorrections(report, message.Author.Username)
	if err != nil {
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, "An error occured applying corrections")
		return
	}

	var res strings.Builder
	res.WriteString(fmt.Sprintf("Corrected %d participant(s)", outcome.Corrected))
	if outcome.Skipped > 0 {
		res.WriteString(fmt.Sprintf(", skipped %d needing manual review", outcome.Skipped))
	}
	res.WriteString("\n")
	for _, errMsg := range outcome.Errors {
		res.WriteString(fmt.Sprintf("- failed: %s\n", errMsg))
	}
	session.ChannelMessageSend(message.ChannelID, res.String())
}

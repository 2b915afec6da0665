// Package discord connects the search engine and navigation controller to
// Discord: it registers the /search command, relays reaction events, and
// delivers rendered pages as embeds with reaction controls.
//
// Nothing outside this package imports the Discord SDK; the rest of the bot
// only sees message references, controls, and rendered pages.
package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/usestring/scribebot/internal/config"
	"github.com/usestring/scribebot/internal/i18n"
	"github.com/usestring/scribebot/internal/nav"
	"github.com/usestring/scribebot/internal/render"
	"github.com/usestring/scribebot/internal/search"
	"github.com/usestring/scribebot/internal/session"
	"github.com/usestring/scribebot/internal/timeparse"
	"github.com/usestring/scribebot/pkg/blossom"
)

// Reaction emoji used as navigation controls.
const (
	emojiFirst    = "⏮️" // ⏮️
	emojiPrevious = "◀️" // ◀️
	emojiNext     = "▶️" // ▶️
	emojiLast     = "⏭️" // ⏭️
)

// controlEmoji maps controls to the emoji attached to messages.
var controlEmoji = map[render.Control]string{
	render.ControlFirst:    emojiFirst,
	render.ControlPrevious: emojiPrevious,
	render.ControlNext:     emojiNext,
	render.ControlLast:     emojiLast,
}

// parseControl maps a reaction emoji back to a control. Discord sometimes
// reports the emoji without the trailing variation selector, so both forms
// are accepted.
func parseControl(emojiName string) (render.Control, bool) {
	switch strings.TrimSuffix(emojiName, "️") {
	case strings.TrimSuffix(emojiFirst, "️"):
		return render.ControlFirst, true
	case strings.TrimSuffix(emojiPrevious, "️"):
		return render.ControlPrevious, true
	case strings.TrimSuffix(emojiNext, "️"):
		return render.ControlNext, true
	case strings.TrimSuffix(emojiLast, "️"):
		return render.ControlLast, true
	}
	return "", false
}

// Bot is the Discord-facing half of scribebot. It implements nav.Sink.
type Bot struct {
	session *discordgo.Session
	engine  *search.Engine
	nav     *nav.Controller
	strings *i18n.Localizer
	guildID string

	// ctx is the root context set by Run; handlers inherit it because the
	// SDK does not pass one through.
	ctx context.Context
}

// New creates the bot and registers its event handlers. The navigation
// controller is attached separately because it needs the bot as its sink.
func New(cfg *config.Config, engine *search.Engine, strings *i18n.Localizer) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("creating Discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsDirectMessageReactions

	b := &Bot{
		session: s,
		engine:  engine,
		strings: strings,
		guildID: cfg.DiscordGuildID,
		ctx:     context.Background(),
	}
	s.AddHandler(b.handleInteraction)
	s.AddHandler(b.handleReactionAdd)
	return b, nil
}

// AttachController wires the navigation controller in. Must be called
// before Run.
func (b *Bot) AttachController(controller *nav.Controller) {
	b.nav = controller
}

// Run opens the gateway connection, registers the /search command, and
// blocks until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.ctx = ctx

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("opening gateway: %w", err)
	}
	defer func() {
		if err := b.session.Close(); err != nil {
			slog.Warn("closing gateway", slog.String("error", err.Error()))
		}
	}()

	appID := b.session.State.User.ID
	cmd, err := b.session.ApplicationCommandCreate(appID, b.guildID, searchCommand())
	if err != nil {
		return fmt.Errorf("registering /search command: %w", err)
	}
	defer func() {
		if err := b.session.ApplicationCommandDelete(appID, b.guildID, cmd.ID); err != nil {
			slog.Warn("removing /search command", slog.String("error", err.Error()))
		}
	}()

	slog.Info("connected to Discord", slog.String("user", b.session.State.User.Username))
	<-ctx.Done()
	return nil
}

// searchCommand describes the /search application command.
func searchCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "search",
		Description: "Search for transcriptions that contain the given text.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "query",
				Description: "The text to search for (case-insensitive).",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "user",
				Description: "Only show transcriptions by this volunteer.",
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "after",
				Description: "Only show transcriptions created after this time, e.g. 2021-09-13 or '2 weeks'.",
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "before",
				Description: "Only show transcriptions created before this time.",
			},
		},
	}
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	data := i.ApplicationCommandData()
	if data.Name != "search" {
		return
	}

	var queryText, username, afterStr, beforeStr string
	for _, opt := range data.Options {
		switch opt.Name {
		case "query":
			queryText = opt.StringValue()
		case "user":
			username = opt.StringValue()
		case "after":
			afterStr = opt.StringValue()
		case "before":
			beforeStr = opt.StringValue()
		}
	}

	// The placeholder message goes out before the corpus query so its ID can
	// serve as the session key.
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: searchingPlaceholder(b.strings, queryText),
		},
	}); err != nil {
		slog.Error("acknowledging /search", slog.String("error", err.Error()))
		return
	}

	msg, err := s.InteractionResponse(i.Interaction)
	if err != nil {
		slog.Error("fetching /search response message", slog.String("error", err.Error()))
		return
	}
	ref := session.MessageRef{ChannelID: msg.ChannelID, MessageID: msg.ID}

	after, before, timeframe, err := timeparse.ParseConstraints(afterStr, beforeStr, time.Now().UTC())
	if err != nil {
		b.editText(i.Interaction, b.strings.Sprintf("search.invalid_time", badTimeInput(afterStr, beforeStr, err)))
		return
	}

	var authorID *int
	if username != "" {
		authorID, err = b.engine.ResolveAuthor(b.ctx, username)
		if errors.Is(err, blossom.ErrVolunteerNotFound) {
			b.editText(i.Interaction, b.strings.Sprintf("search.unknown_user", username))
			return
		}
		if err != nil {
			slog.Error("resolving volunteer", slog.String("username", username), slog.String("error", err.Error()))
			b.editText(i.Interaction, b.strings.Get("search.upstream_error"))
			return
		}
	}

	page, err := b.engine.StartSearch(b.ctx, ref, session.Query{
		Text:           queryText,
		AuthorID:       authorID,
		After:          after,
		Before:         before,
		TimeframeLabel: timeframe,
		RequesterID:    requesterID(i),
	})
	if err != nil {
		slog.Error("search failed", slog.String("error", err.Error()))
		b.editText(i.Interaction, b.strings.Get("search.upstream_error"))
		return
	}

	content := ""
	embeds := []*discordgo.MessageEmbed{embedFor(page)}
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &content,
		Embeds:  &embeds,
	}); err != nil {
		slog.Error("editing /search response", slog.String("error", err.Error()))
		return
	}

	if err := b.SetControls(b.ctx, ref, page.Controls); err != nil {
		slog.Warn("attaching controls", slog.String("error", err.Error()))
	}
}

func (b *Bot) handleReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if s.State.User != nil && r.UserID == s.State.User.ID {
		return
	}
	control, ok := parseControl(r.Emoji.Name)
	if !ok {
		return
	}

	ref := session.MessageRef{ChannelID: r.ChannelID, MessageID: r.MessageID}
	if err := b.nav.HandleReaction(b.ctx, ref, control, r.UserID); err != nil {
		slog.Warn("handling navigation reaction",
			slog.String("message_id", r.MessageID),
			slog.String("error", err.Error()),
		)
	}
}

// Update implements nav.Sink.
func (b *Bot) Update(_ context.Context, ref session.MessageRef, page *render.Page) error {
	embeds := []*discordgo.MessageEmbed{embedFor(page)}
	_, err := b.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel: ref.ChannelID,
		ID:      ref.MessageID,
		Embeds:  &embeds,
	})
	return err
}

// ClearControls implements nav.Sink.
func (b *Bot) ClearControls(_ context.Context, ref session.MessageRef) error {
	return b.session.MessageReactionsRemoveAll(ref.ChannelID, ref.MessageID)
}

// SetControls implements nav.Sink. Reactions are added one by one because
// their on-screen order is their insertion order.
func (b *Bot) SetControls(_ context.Context, ref session.MessageRef, controls []render.Control) error {
	for _, control := range controls {
		if err := b.session.MessageReactionAdd(ref.ChannelID, ref.MessageID, controlEmoji[control]); err != nil {
			return fmt.Errorf("adding %s control: %w", control, err)
		}
	}
	return nil
}

// searchingPlaceholder is the interim message content shown while the corpus
// query runs.
func searchingPlaceholder(strings *i18n.Localizer, queryText string) string {
	return strings.Sprintf("search.searching", queryText)
}

// editText replaces the placeholder response with a plain text message.
func (b *Bot) editText(interaction *discordgo.Interaction, text string) {
	if _, err := b.session.InteractionResponseEdit(interaction, &discordgo.WebhookEdit{
		Content: &text,
	}); err != nil {
		slog.Error("editing response", slog.String("error", err.Error()))
	}
}

// embedFor converts a rendered page into a Discord embed.
func embedFor(page *render.Page) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       page.Title,
		Description: page.Description,
	}
	if page.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: page.Footer}
	}
	return embed
}

// requesterID extracts the invoking user's ID from an interaction, which
// carries it differently in guild channels and direct messages.
func requesterID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// badTimeInput picks whichever constraint failed for the error message.
func badTimeInput(afterStr, beforeStr string, err error) string {
	if strings.Contains(err.Error(), "'after'") {
		return afterStr
	}
	return beforeStr
}

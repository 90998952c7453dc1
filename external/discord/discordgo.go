package discord

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/bwmarrin/discordgo"
	discordpkg "github.com/foxseedlab/rostersearch/internal/discord"
	"github.com/foxseedlab/rostersearch/internal/search"
)

const guildBansPageLimit = 1000

type Client struct {
	session   *discordgo.Session
	token     string
	botUserID string
}

func NewClient(token string) discordpkg.Client {
	return &Client{
		token: token,
	}
}

func (c *Client) Connect(ctx context.Context) error {
	_ = ctx
	s, err := discordgo.New("Bot " + c.token)
	if err != nil {
		return err
	}
	c.session = s
	s.Identify.Intents = discordgo.MakeIntent(
		discordgo.IntentsGuilds |
			discordgo.IntentsGuildMembers |
			discordgo.IntentsGuildPresences |
			discordgo.IntentsGuildVoiceStates |
			discordgo.IntentsGuildMessageReactions,
	)
	s.State.TrackMembers = true
	s.State.TrackPresences = true
	s.State.TrackVoice = true
	if err := s.Open(); err != nil {
		return err
	}
	userID, err := c.GetBotUserID()
	if err != nil {
		return err
	}
	c.botUserID = userID
	return nil
}

func (c *Client) Close() error {
	if c.session != nil {
		return c.session.Close()
	}
	return nil
}

func (c *Client) SendChannelMessage(channelID, content string) error {
	_, err := c.session.ChannelMessageSend(channelID, content)
	return err
}

func (c *Client) CreateMessage(channelID, content string) (discordpkg.MessageRef, error) {
	msg, err := c.session.ChannelMessageSend(channelID, content)
	if err != nil {
		return discordpkg.MessageRef{}, err
	}
	return discordpkg.MessageRef{ChannelID: msg.ChannelID, MessageID: msg.ID}, nil
}

func (c *Client) EditMessage(ref discordpkg.MessageRef, content string) error {
	_, err := c.session.ChannelMessageEdit(ref.ChannelID, ref.MessageID, content)
	return err
}

func (c *Client) AddReaction(ref discordpkg.MessageRef, emoji string) error {
	return c.session.MessageReactionAdd(ref.ChannelID, ref.MessageID, emoji)
}

func (c *Client) RemoveUserReaction(ref discordpkg.MessageRef, emoji, userID string) error {
	return c.session.MessageReactionRemove(ref.ChannelID, ref.MessageID, emoji, userID)
}

func (c *Client) ClearReactions(ref discordpkg.MessageRef) error {
	return c.session.MessageReactionsRemoveAll(ref.ChannelID, ref.MessageID)
}

func (c *Client) OnReactionAdd(filter discordpkg.ReactionFilter, handler func(discordpkg.ReactionEvent)) func() {
	return c.session.AddHandler(func(_ *discordgo.Session, r *discordgo.MessageReactionAdd) {
		if r == nil || r.MessageReaction == nil {
			return
		}
		ev := discordpkg.ReactionEvent{
			ChannelID: r.ChannelID,
			MessageID: r.MessageID,
			UserID:    r.UserID,
			Emoji:     r.Emoji.Name,
		}
		if !filter.Matches(ev) {
			return
		}
		handler(ev)
	})
}

func (c *Client) RegisterSlashCommandHandler(handler func(discordpkg.SlashCommandEvent)) {
	c.session.AddHandler(func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
		if ic == nil || ic.Type != discordgo.InteractionApplicationCommand {
			return
		}
		data := ic.ApplicationCommandData()
		if data.Name == "" {
			return
		}
		userID := ""
		if ic.Member != nil && ic.Member.User != nil {
			userID = ic.Member.User.ID
		}
		if userID == "" && ic.User != nil {
			userID = ic.User.ID
		}
		if userID == "" {
			return
		}
		slog.Info("slash command interaction received", "guild_id", ic.GuildID, "channel_id", ic.ChannelID, "command", data.Name, "user_id", userID)
		handler(discordpkg.SlashCommandEvent{
			GuildID:     ic.GuildID,
			ChannelID:   ic.ChannelID,
			CommandName: data.Name,
			UserID:      userID,
			Options:     commandOptions(data.Options),
			RespondEphemeral: func(content string) error {
				return s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
					Type: discordgo.InteractionResponseChannelMessageWithSource,
					Data: &discordgo.InteractionResponseData{
						Content: content,
						Flags:   discordgo.MessageFlagsEphemeral,
					},
				})
			},
		})
	})
}

func commandOptions(opts []*discordgo.ApplicationCommandInteractionDataOption) discordpkg.SlashCommandOptions {
	out := make(discordpkg.SlashCommandOptions, len(opts))
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt.Type {
		case discordgo.ApplicationCommandOptionString:
			out[opt.Name] = opt.StringValue()
		case discordgo.ApplicationCommandOptionBoolean:
			out[opt.Name] = opt.BoolValue()
		case discordgo.ApplicationCommandOptionInteger:
			out[opt.Name] = opt.IntValue()
		}
	}
	return out
}

func (c *Client) UpsertGuildSlashCommands(guildID string, defs []discordpkg.SlashCommandDefinition) error {
	appID := c.applicationID()
	if appID == "" {
		return fmt.Errorf("discord application id is not available")
	}
	existing, err := c.session.ApplicationCommands(appID, guildID)
	if err != nil {
		return err
	}
	existingByName := make(map[string]*discordgo.ApplicationCommand, len(existing))
	for _, cmd := range existing {
		if cmd == nil || cmd.Name == "" {
			continue
		}
		existingByName[cmd.Name] = cmd
	}
	for _, def := range defs {
		if err := c.upsertGuildSlashCommand(appID, guildID, def, existingByName); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) upsertGuildSlashCommand(appID, guildID string, def discordpkg.SlashCommandDefinition, existingByName map[string]*discordgo.ApplicationCommand) error {
	if def.Name == "" {
		return nil
	}
	payload := toApplicationCommand(def)
	cmd, ok := existingByName[def.Name]
	if !ok {
		_, err := c.session.ApplicationCommandCreate(appID, guildID, payload)
		return err
	}
	if commandUpToDate(cmd, payload) {
		return nil
	}
	_, err := c.session.ApplicationCommandEdit(appID, guildID, cmd.ID, payload)
	return err
}

func toApplicationCommand(def discordpkg.SlashCommandDefinition) *discordgo.ApplicationCommand {
	options := make([]*discordgo.ApplicationCommandOption, 0, len(def.Options))
	for _, opt := range def.Options {
		options = append(options, &discordgo.ApplicationCommandOption{
			Type:        optionType(opt.Type),
			Name:        opt.Name,
			Description: opt.Description,
			Required:    opt.Required,
		})
	}
	return &discordgo.ApplicationCommand{
		Name:        def.Name,
		Description: def.Description,
		Options:     options,
	}
}

func optionType(t discordpkg.SlashCommandOptionType) discordgo.ApplicationCommandOptionType {
	switch t {
	case discordpkg.SlashCommandOptionBool:
		return discordgo.ApplicationCommandOptionBoolean
	case discordpkg.SlashCommandOptionInt:
		return discordgo.ApplicationCommandOptionInteger
	default:
		return discordgo.ApplicationCommandOptionString
	}
}

func commandUpToDate(existing, want *discordgo.ApplicationCommand) bool {
	if existing.Description != want.Description || len(existing.Options) != len(want.Options) {
		return false
	}
	for i, opt := range want.Options {
		got := existing.Options[i]
		if got == nil || got.Name != opt.Name || got.Type != opt.Type || got.Description != opt.Description || got.Required != opt.Required {
			return false
		}
	}
	return true
}

// GuildMembers snapshots the gateway cache; presences and voice states live beside members in it.
func (c *Client) GuildMembers(guildID string) ([]search.Member, error) {
	if c.session == nil || c.session.State == nil {
		return nil, fmt.Errorf("discord session is not initialized")
	}
	guild, err := c.session.State.Guild(guildID)
	if err != nil {
		return nil, fmt.Errorf("guild %s is not cached: %w", guildID, err)
	}

	c.session.State.RLock()
	defer c.session.State.RUnlock()

	presences := make(map[string]*discordgo.Presence, len(guild.Presences))
	for _, p := range guild.Presences {
		if p != nil && p.User != nil {
			presences[p.User.ID] = p
		}
	}
	voiceChannels := make(map[string]string, len(guild.VoiceStates))
	for _, vs := range guild.VoiceStates {
		if vs != nil && vs.ChannelID != "" {
			voiceChannels[vs.UserID] = vs.ChannelID
		}
	}

	members := make([]search.Member, 0, len(guild.Members))
	for _, m := range guild.Members {
		if m == nil || m.User == nil {
			continue
		}
		members = append(members, search.Member{
			User:           toSearchUser(m.User),
			Nick:           m.Nick,
			Roles:          slices.Clone(m.Roles),
			VoiceChannelID: voiceChannels[m.User.ID],
			Activities:     toSearchActivities(presences[m.User.ID]),
		})
	}
	return members, nil
}

// RequestGuildMembers asks the gateway to stream the full member list into the cache.
func (c *Client) RequestGuildMembers(guildID string) {
	if c.session == nil {
		return
	}
	go func() {
		if err := c.session.RequestGuildMembers(guildID, "", 0, "", true); err != nil {
			slog.Warn("failed to request guild members", "error", err, "guild_id", guildID)
		}
	}()
}

func (c *Client) GuildBans(ctx context.Context, guildID string) ([]search.Ban, error) {
	if c.session == nil {
		return nil, fmt.Errorf("discord session is not initialized")
	}
	var bans []search.Ban
	after := ""
	for {
		page, err := c.session.GuildBans(guildID, guildBansPageLimit, "", after, discordgo.WithContext(ctx))
		if err != nil {
			return nil, err
		}
		for _, b := range page {
			if b == nil || b.User == nil {
				continue
			}
			bans = append(bans, search.Ban{User: toSearchUser(b.User), Reason: b.Reason})
		}
		cursor := lastBanUserID(page)
		if len(page) < guildBansPageLimit || cursor == "" {
			return bans, nil
		}
		after = cursor
	}
}

// lastBanUserID is the paging cursor: the last user id on the page, skipping malformed entries.
func lastBanUserID(page []*discordgo.GuildBan) string {
	for i := len(page) - 1; i >= 0; i-- {
		if b := page[i]; b != nil && b.User != nil && b.User.ID != "" {
			return b.User.ID
		}
	}
	return ""
}

func toSearchUser(u *discordgo.User) search.User {
	return search.User{
		ID:            u.ID,
		Username:      u.Username,
		Discriminator: u.Discriminator,
		Bot:           u.Bot,
	}
}

func toSearchActivities(p *discordgo.Presence) []search.Activity {
	if p == nil {
		return nil
	}
	activities := make([]search.Activity, 0, len(p.Activities))
	for _, a := range p.Activities {
		if a == nil {
			continue
		}
		activities = append(activities, search.Activity{
			Name:      a.Name,
			State:     a.State,
			Details:   a.Details,
			SmallText: a.Assets.SmallText,
			LargeText: a.Assets.LargeText,
			EmojiName: a.Emoji.Name,
		})
	}
	return activities
}

func (c *Client) GetBotUserID() (string, error) {
	if c.botUserID != "" {
		return c.botUserID, nil
	}
	if c.session == nil {
		return "", fmt.Errorf("discord session is not initialized")
	}
	if c.session.State != nil && c.session.State.User != nil && c.session.State.User.ID != "" {
		c.botUserID = c.session.State.User.ID
		return c.botUserID, nil
	}
	u, err := c.session.User("@me")
	if err != nil {
		return "", err
	}
	c.botUserID = u.ID
	return c.botUserID, nil
}

func (c *Client) applicationID() string {
	if c.session == nil || c.session.State == nil {
		return ""
	}
	if c.session.State.Application != nil && c.session.State.Application.ID != "" {
		return c.session.State.Application.ID
	}
	if c.session.State.User != nil {
		return c.session.State.User.ID
	}
	return ""
}

func (c *Client) Run() error {
	select {}
}

package data

import (
	"encoding/json"

	"github.com/diamondburned/arikawa/v3/discord"
)

// User is a user record as stored by the data service. Counters are decimal
// strings because they exceed the range of a float64.
type User struct {
	ID             discord.UserID  `json:"id"`
	IsPatron       bool            `json:"isPatron"`
	PatronEmoji    *string         `json:"patronEmoji,omitempty"`
	Rep            string          `json:"rep"`
	Fishies        string          `json:"fishies"`
	LastRep        *int64          `json:"lastRep,omitempty"`
	LastFishies    *int64          `json:"lastFishies,omitempty"`
	LastfmUsername *string         `json:"lastfmUsername,omitempty"`
	ProfileData    json.RawMessage `json:"profileData,omitempty"`
}

// GuildConfig is a guild's settings. Updates replace the whole record.
type GuildConfig struct {
	ID               discord.GuildID `json:"id"`
	Prefix           *string         `json:"prefix,omitempty"`
	JoinMsg          *string         `json:"joinMsg,omitempty"`
	JoinMsgEnabled   bool            `json:"joinMsgEnabled"`
	JoinReact        *string         `json:"joinReact,omitempty"`
	LeaveMsg         *string         `json:"leaveMsg,omitempty"`
	LeaveMsgEnabled  bool            `json:"leaveMsgEnabled"`
	MsgChannel       *string         `json:"msgChannel,omitempty"`
	InviteGuard      bool            `json:"inviteGuard"`
	LogMsg           *string         `json:"logMsg,omitempty"`
	LogMsgEnabled    bool            `json:"logMsgEnabled"`
	LogMod           *string         `json:"logMod,omitempty"`
	LogModEnabled    bool            `json:"logModEnabled"`
	LogMember        *string         `json:"logMember,omitempty"`
	LogMemberEnabled bool            `json:"logMemberEnabled"`
	MuteRole         *string         `json:"muteRole,omitempty"`
	MuteDuration     *string         `json:"muteDuration,omitempty"`
	WarnDmText       *string         `json:"warnDmText,omitempty"`
	WarnDmEnabled    bool            `json:"warnDmEnabled"`
	MuteDmText       *string         `json:"muteDmText,omitempty"`
	MuteDmEnabled    bool            `json:"muteDmEnabled"`
	MaxMention       *string         `json:"maxMention,omitempty"`
	DisabledChannels []string        `json:"disabledChannels"`
}

// clone returns a deep copy so callers can edit a config without touching the
// cached entry.
func (g *GuildConfig) clone() *GuildConfig {
	c := *g
	for _, p := range []**string{
		&c.Prefix, &c.JoinMsg, &c.JoinReact, &c.LeaveMsg, &c.MsgChannel,
		&c.LogMsg, &c.LogMod, &c.LogMember, &c.MuteRole, &c.MuteDuration,
		&c.WarnDmText, &c.MuteDmText, &c.MaxMention,
	} {
		if *p != nil {
			v := **p
			*p = &v
		}
	}
	if g.DisabledChannels != nil {
		c.DisabledChannels = append([]string(nil), g.DisabledChannels...)
	}

	return &c
}

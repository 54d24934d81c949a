// Package user holds the player profile: identity, icon, and the level
// progression fed by harvest experience.
package user

import (
	"github.com/verdant-games/gardensim/internal/level"
)

// User is one player's profile.
type User struct {
	Username string
	Icon     string
	Levels   *level.LevelSystem
}

// ErrorUsername marks the profile returned when stored user data cannot be
// trusted.
const ErrorUsername = "Error User"

// New creates a profile at level 1 with the given growth rate.
func New(username, icon string, growthRate float64) *User {
	return &User{Username: username, Icon: icon, Levels: level.New(growthRate)}
}

// ErrorUser returns the malformed-data sentinel profile.
func ErrorUser() *User {
	return &User{Username: ErrorUsername, Icon: "❌", Levels: level.New(1)}
}

// IsError reports whether u is the malformed-data sentinel.
func (u *User) IsError() bool {
	return u == nil || u.Username == ErrorUsername
}

// AddExperience forwards harvest experience into the level system and
// returns levels gained.
func (u *User) AddExperience(exp int) int {
	return u.Levels.AddExperience(exp)
}

// Level returns the current level.
func (u *User) Level() int {
	return u.Levels.Level
}

// Data is the storage shape of a profile.
type Data struct {
	Username string     `json:"username"`
	Icon     string     `json:"icon"`
	Levels   level.Data `json:"levels"`
}

// ToData flattens the profile for storage.
func (u *User) ToData() Data {
	return Data{Username: u.Username, Icon: u.Icon, Levels: u.Levels.ToData()}
}

// FromData rebuilds a profile from storage. A record without a username is
// unusable and comes back as the sentinel; a bad level block alone falls
// back to level defaults.
func FromData(d Data) *User {
	if d.Username == "" {
		return ErrorUser()
	}
	return &User{Username: d.Username, Icon: d.Icon, Levels: level.FromData(d.Levels)}
}

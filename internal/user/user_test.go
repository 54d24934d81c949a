package user

import (
	"testing"

	"github.com/verdant-games/gardensim/internal/level"
)

func TestNewUser(t *testing.T) {
	u := New("gardener", "🌻", 1)
	if u.IsError() {
		t.Fatalf("a fresh user must not be the sentinel")
	}
	if u.Level() != 1 {
		t.Fatalf("users start at level 1, got %d", u.Level())
	}
}

func TestAddExperienceLevelsUp(t *testing.T) {
	u := New("gardener", "🌻", 1)
	if gained := u.AddExperience(250); gained != 1 {
		t.Fatalf("250 exp should gain one level, got %d", gained)
	}
	if u.Level() != 2 || u.Levels.CurrentExp != 50 {
		t.Fatalf("expected level 2 with 50 exp, got level %d exp %d", u.Level(), u.Levels.CurrentExp)
	}
}

func TestRoundTrip(t *testing.T) {
	u := New("gardener", "🌻", 2)
	u.AddExperience(400)
	back := FromData(u.ToData())
	if back.Username != "gardener" || back.Icon != "🌻" {
		t.Fatalf("identity should survive the round trip")
	}
	if back.Level() != u.Level() || back.Levels.CurrentExp != u.Levels.CurrentExp {
		t.Fatalf("levels should survive the round trip")
	}
}

func TestFromDataMissingUsername(t *testing.T) {
	back := FromData(Data{Icon: "🌻"})
	if !back.IsError() {
		t.Fatalf("a record without a username should come back as the sentinel")
	}
}

func TestFromDataBadLevels(t *testing.T) {
	back := FromData(Data{Username: "gardener", Levels: level.Data{Level: -3, GrowthRate: -1}})
	if back.IsError() {
		t.Fatalf("a bad level block alone should not poison the profile")
	}
	if back.Level() != 1 || back.Levels.GrowthRate != 1 {
		t.Fatalf("bad level data should fall back to defaults, got %+v", back.Levels)
	}
}

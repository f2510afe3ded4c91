package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/guild-support-bot/internal/domain"
)

func TestIsStaffCaseInsensitive(t *testing.T) {
	assert.True(t, IsStaff([]string{"Staff"}))
	assert.True(t, IsStaff([]string{"STAFF"}))
	assert.True(t, IsStaff([]string{"Verified", "staff"}))
	assert.False(t, IsStaff([]string{"Verified"}))
	assert.False(t, IsStaff(nil))
	assert.False(t, IsStaff([]string{}))
}

func TestIsVerifiedCaseInsensitive(t *testing.T) {
	assert.True(t, IsVerified([]string{"verified"}))
	assert.True(t, IsVerified([]string{"VeRiFiEd"}))
	assert.False(t, IsVerified([]string{"staff", "members"}))
	assert.False(t, IsVerified(nil))
}

func TestFindIgnoresCase(t *testing.T) {
	guild := domain.Guild{Roles: []domain.Role{
		{ID: 10, Name: "Staff"},
		{ID: 11, Name: "Members"},
	}}

	role, ok := Find(guild, "staff")
	assert.True(t, ok)
	assert.Equal(t, int64(10), role.ID)

	_, ok = Find(guild, "verified")
	assert.False(t, ok)
}

func TestMentionFallsBackToBroadcast(t *testing.T) {
	guild := domain.Guild{Roles: []domain.Role{{ID: 7, Name: "Staff"}}}

	assert.Equal(t, "<@&7>", Mention(guild, "staff"))
	assert.Equal(t, BroadcastFallback, Mention(guild, "members"))
	assert.Equal(t, BroadcastFallback, Mention(domain.Guild{}, "staff"))
}

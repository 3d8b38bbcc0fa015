package service

import (
	"github.com/lost-and-found-api/internal/models"
)

// AnonymousAvatarURL replaces the avatar of an anonymous post owner wherever
// their identity is projected.
const AnonymousAvatarURL = "https://static.lostandfound.app/anonymous-avatar.png"

// shouldMask reports whether the author's identity must be hidden: the post
// is anonymous and the author is the post owner. Other participants in an
// anonymous post's threads are never masked.
func shouldMask(post *models.Post, authorID string) bool {
	return post.IsAnonymous && post.IsOwnedBy(authorID)
}

// maskIdentity produces the anonymous view of a user: the username stands in
// for the display name (falling back to the full name when no username is
// set) and the avatar is replaced by the anonymous constant. The user ID and
// email are withheld. Pure function of its inputs; the stored identity is
// never touched.
func maskIdentity(user *models.User) models.PublicUser {
	displayName := user.Username
	if displayName == "" {
		displayName = user.FullName
	}
	return models.PublicUser{
		FullName:     displayName,
		Username:     user.Username,
		ProfileImage: AnonymousAvatarURL,
	}
}

// projectIdentity returns the author's public profile, masked when the post
// demands it.
func projectIdentity(user *models.User, post *models.Post) models.PublicUser {
	if shouldMask(post, user.ID) {
		return maskIdentity(user)
	}
	return user.PublicProfile()
}

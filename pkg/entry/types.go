// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package entry

// Type identifies an entry method kind as reported by the widget.
// The set is open on the host side; unknown values are carried through
// and classified as unsupported.
type Type string

// Known entry types.
const (
	TypeCustomAction   Type = "custom_action"
	TypeUploadAction   Type = "upload_action"
	TypeDownloadApp    Type = "download_app"
	TypeEmailSubscribe Type = "email_subscribe"
	TypeBlogComment    Type = "blog_comment"

	TypeSteamEnter     Type = "steam_enter"
	TypeSteamPlayGame  Type = "steam_play_game"
	TypeSteamJoinGroup Type = "steam_join_group"

	TypeFacebookEnter Type = "facebook_enter"
	TypeFacebookVisit Type = "facebook_visit"
	TypeFacebookMedia Type = "facebook_media"

	TypeInstagramEnter  Type = "instagram_enter"
	TypeInstagramVisit  Type = "instagram_visit_profile"
	TypeInstagramChoose Type = "instagram_choose"

	TypeTwitchEnter  Type = "twitchtv_enter"
	TypeTwitchFollow Type = "twitchtv_follow"

	TypeTwitterEnter    Type = "twitter_enter"
	TypeTwitterFollow   Type = "twitter_follow"
	TypeTwitterTweet    Type = "twitter_tweet"
	TypeTwitterRetweet  Type = "twitter_retweet"
	TypeTwitterHashtags Type = "twitter_hashtags"

	TypeYoutubeEnter     Type = "youtube_enter"
	TypeYoutubeVisit     Type = "youtube_visit"
	TypeYoutubeWatch     Type = "youtube_watch"
	TypeYoutubeSubscribe Type = "youtube_subscribe"
	TypeYoutubeVideoLink Type = "youtube_video_link"

	TypeVimeoWatch Type = "vimeo_watch"

	TypePinterestVisit  Type = "pinterest_visit"
	TypePinterestFollow Type = "pinterest_follow"
	TypePinterestPin    Type = "pinterest_pin"

	TypeSoundcloudFollow Type = "soundcloud_follow"
	TypeTumblrFollow     Type = "tumblr_follow"
	TypeTumblrReblog     Type = "tumblr_reblog"
)

// KnownTypes lists every entry type the engine recognizes.
var KnownTypes = []Type{
	TypeCustomAction, TypeUploadAction, TypeDownloadApp, TypeEmailSubscribe, TypeBlogComment,
	TypeSteamEnter, TypeSteamPlayGame, TypeSteamJoinGroup,
	TypeFacebookEnter, TypeFacebookVisit, TypeFacebookMedia,
	TypeInstagramEnter, TypeInstagramVisit, TypeInstagramChoose,
	TypeTwitchEnter, TypeTwitchFollow,
	TypeTwitterEnter, TypeTwitterFollow, TypeTwitterTweet, TypeTwitterRetweet, TypeTwitterHashtags,
	TypeYoutubeEnter, TypeYoutubeVisit, TypeYoutubeWatch, TypeYoutubeSubscribe, TypeYoutubeVideoLink,
	TypeVimeoWatch,
	TypePinterestVisit, TypePinterestFollow, TypePinterestPin,
	TypeSoundcloudFollow, TypeTumblrFollow, TypeTumblrReblog,
}

// IsKnown reports whether t is one of KnownTypes.
func IsKnown(t Type) bool {
	for _, k := range KnownTypes {
		if k == t {
			return true
		}
	}
	return false
}

// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package classify

import (
	"fmt"
	"strings"
	"sync"

	"github.com/babooppa6/gleamSolver/pkg/entry"
	"github.com/babooppa6/gleamSolver/pkg/policy"
)

// Kind names the handler strategy an entry is routed to.
type Kind string

const (
	KindClick       Kind = "click"
	KindVideo       Kind = "video"
	KindChoice      Kind = "choice"
	KindQuestion    Kind = "question"
	KindMedia       Kind = "media"
	KindGroup       Kind = "group"
	KindUpload      Kind = "upload"
	KindUnsupported Kind = "unsupported"
)

// Kinds lists every routable handler kind.
var Kinds = []Kind{KindClick, KindVideo, KindChoice, KindQuestion, KindMedia, KindGroup, KindUpload}

// ParseKind validates a handler kind name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown handler kind %q", s)
}

// Variant refines how a choice is written back to the host.
type Variant string

const (
	VariantNone     Variant = ""
	VariantSingle   Variant = "single"
	VariantCheckbox Variant = "checkbox"
	VariantImage    Variant = "image"
)

// Route is the classification outcome for one entry.
type Route struct {
	Kind    Kind
	Tier    policy.Tier
	Variant Variant
}

// Supported reports whether the route leads to a handler.
func (r Route) Supported() bool {
	return r.Kind != KindUnsupported
}

func (r Route) String() string {
	if r.Variant != VariantNone {
		return fmt.Sprintf("%s/%s (%s)", r.Kind, r.Variant, r.Tier)
	}
	return fmt.Sprintf("%s (%s)", r.Kind, r.Tier)
}

// Fixed answer patterns for question entries that carry no pattern of their own.
const (
	// VideoLinkPattern matches a canonical video watch URL.
	VideoLinkPattern = `https://www\.youtube\.com/watch\?v=[A-Za-z0-9_-]{11}`
	// CommentPattern is a broad sentence-like pattern for blog comments.
	CommentPattern = `[A-Z][a-z]{3,8}( [a-z]{2,8}){2,5}[.!]`
	// FallbackPattern is used when an entry provides no pattern.
	FallbackPattern = `.+`
)

// Template and method-type markers used by custom actions.
const (
	templateUpload       = "upload"
	templateChooseImage  = "choose_image"
	templateCheckbox     = "checkbox"
	templateQuestion     = "question"
	templateVisit        = "visit"
	methodMultipleAnswer = "Multiple answers"
	methodAskQuestion    = "Ask a question"
	methodNone           = "None"
)

// Classifier maps entries to routes. Disabled entry types are routed as
// unsupported and therefore skipped.
type Classifier struct {
	mu       sync.RWMutex
	disabled map[entry.Type]bool
}

// New creates a classifier with the given entry types disabled.
func New(disabled ...entry.Type) *Classifier {
	c := &Classifier{}
	c.SetDisabled(disabled)
	return c
}

// SetDisabled replaces the set of disabled entry types.
func (c *Classifier) SetDisabled(types []entry.Type) {
	set := make(map[entry.Type]bool, len(types))
	for _, t := range types {
		set[t] = true
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.disabled = set
}

// Disabled reports whether the entry type is disabled.
func (c *Classifier) Disabled(t entry.Type) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.disabled[t]
}

// Classify routes an entry to a handler kind and tier.
func (c *Classifier) Classify(e *entry.Entry) Route {
	if e == nil || c.Disabled(e.Type) {
		return Route{Kind: KindUnsupported}
	}
	return Classify(e)
}

// Classify routes an entry using the built-in table only.
func Classify(e *entry.Entry) Route {
	switch e.Type {
	// Always-safe tier.
	case entry.TypeFacebookEnter, entry.TypeFacebookVisit,
		entry.TypeInstagramEnter, entry.TypeInstagramVisit,
		entry.TypeTwitchEnter, entry.TypeTwitterEnter,
		entry.TypeYoutubeEnter, entry.TypeYoutubeVisit,
		entry.TypeSteamEnter, entry.TypeSteamPlayGame,
		entry.TypePinterestVisit, entry.TypeDownloadApp:
		return Route{Kind: KindClick, Tier: policy.TierSafe}
	case entry.TypeYoutubeWatch, entry.TypeVimeoWatch:
		return Route{Kind: KindVideo, Tier: policy.TierSafe}
	case entry.TypeSteamJoinGroup:
		return Route{Kind: KindGroup, Tier: policy.TierSafe}

	// Disqualification-risk tier.
	case entry.TypeCustomAction:
		return classifyCustom(e)
	case entry.TypeBlogComment, entry.TypeYoutubeVideoLink:
		return Route{Kind: KindQuestion, Tier: policy.TierRisky}
	case entry.TypeUploadAction:
		return Route{Kind: KindUpload, Tier: policy.TierRisky}

	// Irretractable tier.
	case entry.TypeTwitterFollow, entry.TypeTwitterTweet,
		entry.TypeTwitterRetweet, entry.TypeTwitterHashtags,
		entry.TypeTwitchFollow, entry.TypeYoutubeSubscribe,
		entry.TypeEmailSubscribe,
		entry.TypePinterestFollow, entry.TypePinterestPin,
		entry.TypeSoundcloudFollow,
		entry.TypeTumblrFollow, entry.TypeTumblrReblog:
		return Route{Kind: KindClick, Tier: policy.TierIrretractable}
	case entry.TypeFacebookMedia, entry.TypeInstagramChoose:
		return Route{Kind: KindMedia, Tier: policy.TierIrretractable}

	default:
		return Route{Kind: KindUnsupported}
	}
}

func classifyCustom(e *entry.Entry) Route {
	template := strings.ToLower(e.Template)

	switch {
	case strings.Contains(template, templateUpload):
		return Route{Kind: KindUpload, Tier: policy.TierRisky}
	case template == templateChooseImage:
		return Route{Kind: KindChoice, Tier: policy.TierRisky, Variant: VariantImage}
	case strings.TrimSpace(e.Config6) != "":
		if template == templateCheckbox || e.MethodType == methodMultipleAnswer {
			return Route{Kind: KindChoice, Tier: policy.TierRisky, Variant: VariantCheckbox}
		}
		return Route{Kind: KindChoice, Tier: policy.TierRisky, Variant: VariantSingle}
	case e.AnswerPattern() != "", template == templateQuestion, e.MethodType == methodAskQuestion:
		return Route{Kind: KindQuestion, Tier: policy.TierRisky}
	case e.MethodType == methodNone, template == templateVisit:
		return Route{Kind: KindClick, Tier: policy.TierRisky}
	default:
		return Route{Kind: KindUnsupported}
	}
}

// AnswerPattern returns the pattern a generated answer must satisfy.
func AnswerPattern(e *entry.Entry) string {
	switch e.Type {
	case entry.TypeYoutubeVideoLink:
		return VideoLinkPattern
	case entry.TypeBlogComment:
		return CommentPattern
	}
	if p := e.AnswerPattern(); p != "" {
		return p
	}
	return FallbackPattern
}

// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package steam

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

const noGroupsMarker = "you belong to 0 groups"

// ErrNoGroupList is returned when a page carries no recognizable group list,
// typically a login page.
var ErrNoGroupList = errors.New("steam: page has no group list")

// ParseGroups extracts group names from the user's group list page.
func ParseGroups(body string) ([]string, error) {
	if strings.Contains(strings.ToLower(body), noGroupsMarker) {
		return []string{}, nil
	}

	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse group list: %w", err)
	}

	var groups []string
	found := false
	var walk func(n *html.Node, inBlock bool)
	walk = func(n *html.Node, inBlock bool) {
		if n.Type == html.ElementNode {
			if hasClass(n, "groupBlock") {
				inBlock = true
				found = true
			}
			if inBlock && n.Data == "a" && hasClass(n, "linkTitle") {
				if name := groupName(attr(n, "href")); name != "" {
					groups = append(groups, name)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inBlock)
		}
	}
	walk(doc, false)

	if !found {
		return nil, ErrNoGroupList
	}
	return groups, nil
}

// groupName strips the group URL prefix from an href.
func groupName(href string) string {
	href = strings.TrimSpace(href)
	for _, prefix := range []string{"https://steamcommunity.com/groups/", "http://steamcommunity.com/groups/", "/groups/"} {
		if strings.HasPrefix(href, prefix) {
			return strings.Trim(strings.TrimPrefix(href, prefix), "/")
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// Package content generates the decorative article shown beneath the snow.
// Generation never fails from the caller's point of view: any problem yields
// the fixed fallback article.
package content

import "context"

// Content is a short article with a headline and hashtags.
type Content struct {
	Headline string   `json:"headline"`
	Body     string   `json:"body"`
	Tags     []string `json:"tags"`
}

type Generator interface {
	Generate(ctx context.Context) Content
}

// Fallback returns the article used whenever generation fails.
func Fallback() Content {
	return Content{
		Headline: "Winter Wonderland Awaits",
		Body: "Experience the magic of the season with our immersive snowfall engine. " +
			"As the digital flakes descend, imagine yourself in a cozy cabin, safe from the biting cold, " +
			"watching the serene dance of nature through a frosted pane. " +
			"This simulation brings the chill of the arctic directly to your browser without the frostbite.",
		Tags: []string{"#Winter", "#Tech", "#Snow"},
	}
}

// Static always returns the same content.
type Static Content

func (s Static) Generate(context.Context) Content {
	c := Content(s)
	c.Tags = append([]string(nil), s.Tags...)
	return c
}

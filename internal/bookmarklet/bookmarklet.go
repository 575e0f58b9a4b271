// Package bookmarklet renders the snow engine as a self-contained script that
// can be injected into any web page, plus the page that installs it.
package bookmarklet

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/dchest/jsmin"

	"github.com/san-kum/frostframe/internal/snow"
)

//go:embed script.js.tmpl
var scriptSource string

var scriptTmpl = template.Must(template.New("script").Parse(scriptSource))

const DefaultTitle = "FrostFrame"

// Range describes an HTML range input.
type Range struct {
	Min, Max, Step float64
}

var (
	CountRange = Range{Min: 50, Max: 1000, Step: 50}
	SpeedRange = Range{Min: 0.5, Max: 5, Step: 0.5}
)

type Options struct {
	Title    string
	Config   snow.Config
	WindGain float64
}

type scriptData struct {
	Title          string
	Config         snow.Config
	WindGain       float64
	TurbulenceFreq float64
	TurbulenceAmp  float64
	RespawnY       float64
	LateralDrift   float64
	Count, Speed   Range
}

func (o Options) data() scriptData {
	d := scriptData{
		Title:          strings.TrimSpace(o.Title),
		Config:         o.Config.Sanitize(),
		WindGain:       o.WindGain,
		TurbulenceFreq: snow.TurbulenceFreq,
		TurbulenceAmp:  snow.TurbulenceAmp,
		RespawnY:       snow.RespawnY,
		LateralDrift:   snow.LateralDrift,
		Count:          CountRange,
		Speed:          SpeedRange,
	}
	if d.Title == "" {
		d.Title = DefaultTitle
	}
	if d.WindGain <= 0 {
		d.WindGain = snow.DefaultWindGain
	}
	return d
}

// Script returns the readable script.
func Script(opts Options) (string, error) {
	var buf bytes.Buffer
	if err := scriptTmpl.Execute(&buf, opts.data()); err != nil {
		return "", fmt.Errorf("render script: %w", err)
	}
	return buf.String(), nil
}

// Minified returns the script passed through jsmin.
func Minified(opts Options) (string, error) {
	src, err := Script(opts)
	if err != nil {
		return "", err
	}
	out, err := jsmin.Minify([]byte(src))
	if err != nil {
		return "", fmt.Errorf("minify script: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// URL returns the minified script as a javascript: URL suitable for a
// bookmark.
func URL(opts Options) (string, error) {
	src, err := Minified(opts)
	if err != nil {
		return "", err
	}
	return "javascript:" + EncodeURIComponent(src), nil
}

// EncodeURIComponent escapes s the way the browser function of the same name
// does: everything except A-Z a-z 0-9 and -_.!~*'() is percent-encoded as
// UTF-8.
func EncodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

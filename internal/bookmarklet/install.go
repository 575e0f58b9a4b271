package bookmarklet

import (
	"fmt"
	"html/template"
	"io"
)

var pageTmpl = template.Must(template.New("install").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Install {{.Title}}</title>
<style>
body { font-family: sans-serif; background: #0f172a; color: #e2e8f0; display: flex; justify-content: center; padding: 48px 16px; }
main { background: #fff; color: #1f2937; border-radius: 16px; max-width: 520px; overflow: hidden; box-shadow: 0 20px 40px rgba(0,0,0,0.4); }
header { background: linear-gradient(90deg, #2563eb, #3b82f6); color: #fff; padding: 24px; }
header p { color: #dbeafe; margin: 4px 0 0; }
section { padding: 24px; }
.drop { border: 2px dashed #e5e7eb; border-radius: 12px; padding: 24px; text-align: center; background: #f9fafb; }
.link { display: inline-block; padding: 12px 24px; background: #111827; color: #fff; border-radius: 999px; font-weight: 600; text-decoration: none; cursor: move; }
.hint { font-size: 10px; color: #9ca3af; margin-top: 12px; }
footer { padding: 16px; border-top: 1px solid #e5e7eb; text-align: center; font-size: 12px; color: #9ca3af; background: #f9fafb; }
</style>
</head>
<body>
<main>
<header>
<h1>Take it with you</h1>
<p>Install {{.Title}} on any website.</p>
</header>
<section>
<h3>How to install</h3>
<p>Drag the button below to your browser's <strong>Bookmarks Bar</strong>. You can also click it now to test!</p>
<div class="drop">
<a class="link" href="{{.Href}}" title="Drag to bookmarks or click to test">&#10052; {{.Title}} Activate</a>
<p class="hint">&larr; Drag this button to your bookmarks bar</p>
</div>
<h4>Try it out</h4>
<ol>
<li>Navigate to <a href="https://google.com" target="_blank" rel="noopener noreferrer">Google.com</a> or any other site.</li>
<li>Click the <strong>{{.Title}} Activate</strong> bookmark you just created.</li>
<li>Enjoy the snow! (Controls will appear in the bottom right).</li>
</ol>
</section>
<footer>100% client-side JavaScript. No data is collected.</footer>
</main>
</body>
</html>
`))

// WriteInstallPage writes an HTML page carrying the draggable bookmarklet.
func WriteInstallPage(w io.Writer, opts Options) error {
	href, err := URL(opts)
	if err != nil {
		return err
	}
	data := struct {
		Title string
		Href  template.URL
	}{
		Title: opts.data().Title,
		Href:  template.URL(href),
	}
	if err := pageTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render install page: %w", err)
	}
	return nil
}

// Package templates holds the HTML components served by the web package.
package templates

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/JonMunkholm/customerlookup/internal/core"
	"github.com/a-h/templ"
)

// StatusParams feeds the status page.
type StatusParams struct {
	Source       string
	Limiter      core.LimiterStatus
	AuditEnabled bool
	ShowRecent   bool
	Recent       []core.LookupEntry
	RecentError  string
	Now          time.Time
}

// StatusPage renders the operator landing page.
func StatusPage(p StatusParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		ew := &errWriter{w: w}

		ew.printf(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		ew.printf(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		ew.printf(`<title>Customer Lookup</title>%s</head><body>`, pageStyle)
		ew.printf(`<main><h1>Customer Lookup</h1>`)

		ew.printf(`<section><h2>Service</h2><dl>`)
		ew.printf(`<dt>Sheet source</dt><dd>%s</dd>`, templ.EscapeString(p.Source))
		ew.printf(`<dt>Lookups in flight</dt><dd>%d of %d</dd>`, p.Limiter.Active, p.Limiter.MaxConcurrent)
		ew.printf(`<dt>Audit log</dt><dd>%s</dd>`, enabledLabel(p.AuditEnabled))
		ew.printf(`<dt>Rendered</dt><dd>%s</dd>`, p.Now.UTC().Format(time.RFC3339))
		ew.printf(`</dl></section>`)

		if p.AuditEnabled {
			ew.printf(`<section><h2>Recent lookups</h2>`)
			switch {
			case !p.ShowRecent:
				ew.printf(`<p class="muted">Send an API key to view recent lookups.</p>`)
			case p.RecentError != "":
				if ew.err == nil {
					ew.err = ErrorAlert(p.RecentError, "", "").Render(ctx, w)
				}
			case len(p.Recent) == 0:
				ew.printf(`<p class="muted">No lookups recorded yet.</p>`)
			default:
				ew.printf(`<table><thead><tr><th>Time</th><th>Caller</th><th>Mode</th><th>Status</th><th>Customer</th><th>ms</th></tr></thead><tbody>`)
				for _, e := range p.Recent {
					ew.printf(`<tr><td>%s</td><td>%s</td><td>%s</td><td class="%s">%s</td><td>%s</td><td>%d</td></tr>`,
						e.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
						templ.EscapeString(e.CallerKind),
						templ.EscapeString(string(e.Mode)),
						templ.EscapeString(string(e.Status)),
						templ.EscapeString(string(e.Status)),
						templ.EscapeString(e.CustomerName),
						e.DurationMs,
					)
				}
				ew.printf(`</tbody></table>`)
			}
			ew.printf(`</section>`)
		}

		ew.printf(`<footer>POST /api/customer-lookup &middot; GET /healthz</footer></main></body></html>`)
		return ew.err
	})
}

// ErrorAlert renders an error box with an optional action and support code.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		ew := &errWriter{w: w}
		ew.printf(`<div class="alert" role="alert"><strong>%s</strong>`, templ.EscapeString(message))
		if action != "" {
			ew.printf(`<p>%s</p>`, templ.EscapeString(action))
		}
		if code != "" {
			ew.printf(`<p class="muted">Error code: %s</p>`, templ.EscapeString(code))
		}
		ew.printf(`</div>`)
		return ew.err
	})
}

func enabledLabel(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}

// errWriter stops writing after the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

const pageStyle = `<style>
body{font-family:system-ui,sans-serif;margin:0;background:#f7f7f8;color:#1f2328}
main{max-width:960px;margin:2rem auto;padding:0 1rem}
dl{display:grid;grid-template-columns:max-content 1fr;gap:.25rem 1rem}
dt{font-weight:600}
table{border-collapse:collapse;width:100%;background:#fff}
th,td{border-bottom:1px solid #ddd;padding:.4rem .6rem;text-align:left;font-size:.9rem}
.found{color:#1a7f37}.failed,.busy,.empty_source{color:#cf222e}
.muted{color:#666}
.alert{border:1px solid #cf222e;background:#ffebe9;padding:.75rem;border-radius:6px}
footer{margin-top:2rem;color:#666;font-size:.85rem}
</style>`

package server

import (
	"html/template"
	"net/http"
	"time"
)

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>inkshape</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #222; }
table { border-collapse: collapse; }
th, td { padding: 0.4rem 0.8rem; border: 1px solid #ccc; text-align: left; }
th { background: #f4f4f4; }
.empty { color: #888; }
code { background: #f4f4f4; padding: 0 0.2rem; }
</style>
</head>
<body>
<h1>inkshape sessions</h1>
{{if .Sessions}}
<table>
<tr><th>ID</th><th>Mode</th><th>Strategy</th><th>Last result</th><th>Created</th><th>Canvas</th></tr>
{{range .Sessions}}
<tr>
<td><code>{{.ID}}</code></td>
<td>{{.Mode}}</td>
<td>{{.Strategy}}</td>
<td>{{if .LastResult}}{{.LastResult.Label}} ({{.LastResult.Confidence}}){{else}}&ndash;{{end}}</td>
<td>{{.CreatedAt.Format "15:04:05"}}</td>
<td><a href="/api/v1/sessions/{{.ID}}/canvas.png">canvas.png</a></td>
</tr>
{{end}}
</table>
{{else}}
<p class="empty">No sessions. Create one with
<code>POST /api/v1/sessions</code>.</p>
{{end}}
<p>{{.Now.Format "2006-01-02 15:04:05"}}</p>
</body>
</html>
`))

// handleIndex handles GET /
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	// Only handle exact root path
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	data := struct {
		Sessions []Session
		Now      time.Time
	}{
		Sessions: s.sessions.Views(),
		Now:      time.Now(),
	}

	if err := indexTmpl.Execute(w, data); err != nil {
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

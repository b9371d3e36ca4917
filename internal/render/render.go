// Package render turns a list of comments into an HTML fragment.
package render

import (
	"html/template"
	"strings"
	"time"

	"github.com/qepting91/jamcomments/internal/domain"
)

const commentsTemplate = `<section class="jamcomments comments">
{{- range .Comments}}
  <article class="comment" data-id="{{.ID}}">
    <p class="comment-meta">
      <span class="post-info-label">{{.Date}}
      by {{if .Website}}<a href="{{.Website}}" target="_blank"{{if $.NoFollow}} rel="nofollow"{{end}}>{{.Name}}</a>{{else}}{{.Name}}{{end}}</span>
    </p>
    <blockquote class="comment-text">
      {{.Text}}
    </blockquote>
  </article>
{{- end}}
</section>`

var tmpl = template.Must(template.New("comments").Parse(commentsTemplate))

type commentView struct {
	ID      string
	Date    string
	Name    string
	Website string
	Text    template.HTML
}

type pageView struct {
	Comments []commentView
	NoFollow bool
}

// Renderer holds the site-wide rendering settings
type Renderer struct {
	DateFormat string
	NoFollow   bool
	// Location used for dates; nil means UTC so output does not depend on the host.
	Location  *time.Location
	Formatter DateFormatter
}

func New(dateFormat string, noFollow bool) *Renderer {
	return &Renderer{DateFormat: dateFormat, NoFollow: noFollow}
}

// Render emits the comments in input order. Comment text is trusted and written verbatim.
func (r *Renderer) Render(comments domain.Collection) (string, error) {
	formatter := r.Formatter
	if formatter == nil {
		formatter = MomentFormatter{}
	}
	loc := r.Location
	if loc == nil {
		loc = time.UTC
	}

	view := pageView{
		Comments: make([]commentView, 0, len(comments)),
		NoFollow: r.NoFollow,
	}
	for _, c := range comments {
		view.Comments = append(view.Comments, commentView{
			ID:      c.ID.String(),
			Date:    formatter.Format(c.PostedAt.In(loc), r.DateFormat),
			Name:    c.Author.Name,
			Website: c.Author.Website,
			Text:    template.HTML(c.Text),
		})
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, view); err != nil {
		return "", &Error{Message: "failed to execute comments template", Cause: err}
	}
	return out.String(), nil
}

// Comments renders with the default formatter in UTC
func Comments(comments domain.Collection, dateFormat string, noFollow bool) (string, error) {
	return New(dateFormat, noFollow).Render(comments)
}

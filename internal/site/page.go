package site

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/thebar-catering/thebar-site/internal/forms"
	"github.com/thebar-catering/thebar-site/internal/i18n"
	"github.com/thebar-catering/thebar-site/internal/submissions"
)

// FormView is one form's state as the page shows it.
type FormView struct {
	Kind   submissions.FormKind
	Values map[string]string
	Errors map[string]string
	Notice *forms.Notice
}

// PageView is the data for one render of the landing page.
type PageView struct {
	Content Content
	Popup   FormView
	Contact FormView
}

// Page is the landing page. Every variant renders through it.
func Page(v PageView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &htmlWriter{w: w}
		p.raw(`<!DOCTYPE html><html lang="`)
		p.text(string(v.Content.Locale))
		p.raw(`"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		p.text(v.Content.Brand)
		p.raw(`</title></head><body>`)
		if p.err != nil {
			return p.err
		}
		for _, c := range []templ.Component{
			languageMenu(v.Content.Locale),
			hero(v.Content),
			packages(v.Content.Packages),
			testimonials(v.Content.Testimonials),
			formSection(v.Content, v.Popup),
			formSection(v.Content, v.Contact),
		} {
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		p.raw(`</body></html>`)
		return p.err
	})
}

func languageMenu(current i18n.Locale) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &htmlWriter{w: w}
		p.raw(`<nav class="languages">`)
		for _, l := range i18n.Locales() {
			if l == current {
				p.raw(`<strong>`)
				p.text(string(l))
				p.raw(`</strong> `)
				continue
			}
			p.raw(`<a href="/?lang=`)
			p.text(string(l))
			p.raw(`">`)
			p.text(string(l))
			p.raw(`</a> `)
		}
		p.raw(`</nav>`)
		return p.err
	})
}

func hero(c Content) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &htmlWriter{w: w}
		p.raw(`<header class="hero"><h1>`)
		p.text(c.Hero.Title)
		p.raw(`</h1><p>`)
		p.text(c.Hero.Subtitle)
		p.raw(`</p><a class="cta" href="#popup">`)
		p.text(c.Hero.CTA)
		p.raw(`</a></header>`)
		return p.err
	})
}

func packages(list []Package) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &htmlWriter{w: w}
		p.raw(`<section class="packages">`)
		for _, pkg := range list {
			p.raw(`<article><h3>`)
			p.text(pkg.Name)
			p.raw(`</h3><p>`)
			p.text(pkg.Description)
			p.raw(`</p><p class="price">`)
			p.text(pkg.Price)
			p.raw(`</p></article>`)
		}
		p.raw(`</section>`)
		return p.err
	})
}

func testimonials(list []Testimonial) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &htmlWriter{w: w}
		p.raw(`<section class="testimonials">`)
		for _, t := range list {
			p.raw(`<blockquote><p>`)
			p.text(t.Quote)
			p.raw(`</p><cite>`)
			p.text(t.Author)
			p.raw(`</cite></blockquote>`)
		}
		p.raw(`</section>`)
		return p.err
	})
}

type fieldSpec struct {
	name    string
	label   string
	input   string // text, email, tel, date, select, textarea
	options []string
}

func fieldsFor(c Content, kind submissions.FormKind) []fieldSpec {
	l := c.Labels
	if kind == submissions.FormPopup {
		return []fieldSpec{
			{name: submissions.FieldName, label: l.Name, input: "text"},
			{name: submissions.FieldPhone, label: l.Phone, input: "tel"},
			{name: submissions.FieldEmail, label: l.Email, input: "email"},
			{name: submissions.FieldDate, label: l.Date, input: "date"},
			{name: submissions.FieldService, label: l.Service, input: "select", options: c.Services},
		}
	}
	return []fieldSpec{
		{name: submissions.FieldName, label: l.Name, input: "text"},
		{name: submissions.FieldEmail, label: l.Email, input: "email"},
		{name: submissions.FieldPhone, label: l.Phone, input: "tel"},
		{name: submissions.FieldEventType, label: l.EventType, input: "select", options: c.EventTypes},
		{name: submissions.FieldMessage, label: l.Message, input: "textarea"},
	}
}

func formSection(c Content, v FormView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &htmlWriter{w: w}
		title := c.Labels.ContactTitle
		if v.Kind == submissions.FormPopup {
			title = c.Labels.PopupTitle
		}
		p.raw(`<section id="`)
		p.text(string(v.Kind))
		p.raw(`" class="form"><h2>`)
		p.text(title)
		p.raw(`</h2>`)
		if v.Notice != nil {
			p.raw(`<div role="status" class="notice notice-`)
			p.text(string(v.Notice.Level))
			p.raw(`">`)
			p.text(v.Notice.Message)
			p.raw(`</div>`)
		}
		p.raw(`<form method="post" action="/forms/`)
		p.text(string(v.Kind))
		p.raw(`?lang=`)
		p.text(string(c.Locale))
		p.raw(`" novalidate>`)
		for _, f := range fieldsFor(c, v.Kind) {
			p.field(f, v.Values[f.name], v.Errors[f.name])
		}
		p.raw(`<button type="submit">`)
		p.text(c.Labels.Submit)
		p.raw(`</button></form></section>`)
		return p.err
	})
}

// htmlWriter keeps the first write error so component bodies stay linear.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (p *htmlWriter) raw(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *htmlWriter) text(s string) {
	p.raw(templ.EscapeString(s))
}

func (p *htmlWriter) field(f fieldSpec, value, errMsg string) {
	p.raw(`<label>`)
	p.text(f.label)
	switch f.input {
	case "textarea":
		p.raw(`<textarea name="`)
		p.text(f.name)
		p.raw(`">`)
		p.text(value)
		p.raw(`</textarea>`)
	case "select":
		p.raw(`<select name="`)
		p.text(f.name)
		p.raw(`"><option value=""></option>`)
		for _, opt := range f.options {
			p.raw(`<option value="`)
			p.text(opt)
			p.raw(`"`)
			if opt == value {
				p.raw(` selected`)
			}
			p.raw(`>`)
			p.text(opt)
			p.raw(`</option>`)
		}
		p.raw(`</select>`)
	default:
		p.raw(`<input type="`)
		p.text(f.input)
		p.raw(`" name="`)
		p.text(f.name)
		p.raw(`" value="`)
		p.text(value)
		p.raw(`">`)
	}
	if errMsg != "" {
		p.raw(`<span class="error">`)
		p.text(errMsg)
		p.raw(`</span>`)
	}
	p.raw(`</label>`)
}

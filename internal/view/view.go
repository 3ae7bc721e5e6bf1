package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"
)

// Имена шаблонов
const (
	ListTodo          = "todo/list_todo.html"
	TodoDetail        = "todo/todo_detail.html"
	TodoForm          = "todo/todo_form.html"
	TodoConfirmDelete = "todo/todo_confirm_delete.html"
	Login             = "registration/login.html"
	Register          = "registration/register.html"
)

var pages = []string{ListTodo, TodoDetail, TodoForm, TodoConfirmDelete, Login, Register}

//go:embed templates
var files embed.FS

// Data - контекст шаблона
type Data map[string]any

type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"datetime": func(t time.Time) string {
		return t.Format("Jan 2, 2006, 15:04")
	},
}

func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		t, err := template.New("base.html").Funcs(funcs).ParseFS(files, "templates/base.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render рендерит в буфер, чтобы при ошибке не отдать половину страницы
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data Data) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base.html", data); err != nil {
		return fmt.Errorf("execute %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Form - значения и ошибки для повторного показа формы
type Form struct {
	Values         map[string]string
	Errors         map[string][]string
	NonFieldErrors []string
}

func (f Form) Value(name string) string {
	return f.Values[name]
}

func (f Form) FieldErrors(name string) []string {
	return f.Errors[name]
}

func (f Form) HasErrors() bool {
	return len(f.Errors) > 0 || len(f.NonFieldErrors) > 0
}

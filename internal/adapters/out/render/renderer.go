// Package render provides the built-in status-change template renderer.
// Storefronts with their own email design replace it behind
// ports.TemplateRenderer.
package render

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"storefront/internal/core/ports"
)

const statusChangeTemplate = `<html>
<body>
<p>Hi {{.Greeting}},</p>
<p>{{.Description}}</p>
<table>
{{range .Items}}<tr><td>{{.Name}}</td><td>{{.Quantity}} x {{.UnitPrice}}</td></tr>
{{end}}</table>
<p>Subtotal: {{.Subtotal}}<br>Shipping: {{.Shipping}}<br>Total: {{.Total}}</p>
{{if .Note}}<p>{{.Note}}</p>{{end}}
<p>Order reference: {{.OrderID}}</p>
</body>
</html>`

type templateData struct {
	Greeting    string
	Description string
	OrderID     string
	Note        string
	Items       []templateItem
	Subtotal    string
	Shipping    string
	Total       string
}

type templateItem struct {
	Name      string
	Quantity  int
	UnitPrice string
}

// Renderer builds subject and markup for status-change notifications from a
// single parsed template.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the built-in template.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("status_change").Parse(statusChangeTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse status change template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// RenderStatusChange implements ports.TemplateRenderer.
func (r *Renderer) RenderStatusChange(
	_ context.Context,
	data ports.StatusChangeData,
) (string, string, error) {
	subject := fmt.Sprintf("Order %s: %s", data.OrderID, data.Status.Title())

	greeting := data.CustomerName
	if greeting == "" {
		greeting = "there"
	}

	items := make([]templateItem, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, templateItem{
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().StringFixed(2),
		})
	}

	var body strings.Builder
	err := r.tmpl.Execute(&body, templateData{
		Greeting:    greeting,
		Description: data.Status.Description(),
		OrderID:     data.OrderID,
		Note:        data.Note,
		Items:       items,
		Subtotal:    data.Totals.Subtotal().StringFixed(2),
		Shipping:    data.Totals.Shipping().StringFixed(2),
		Total:       data.Totals.Total().StringFixed(2),
	})
	if err != nil {
		return "", "", fmt.Errorf("render status change: %w", err)
	}

	return subject, body.String(), nil
}

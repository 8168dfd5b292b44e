package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

const layoutHTML = `<!DOCTYPE html>
<html>
<body style="font-family: Helvetica, Arial, sans-serif; background: #F2F4F6; margin: 0; padding: 24px;">
  <table width="100%" cellpadding="0" cellspacing="0" style="max-width: 570px; margin: 0 auto; background: #FFFFFF;">
    <tr><td style="padding: 24px; text-align: center; font-size: 16px; font-weight: bold;">{{.Product}}</td></tr>
    <tr><td style="padding: 24px;">
      <h1 style="font-size: 19px;">Hi {{.Name}},</h1>
      <p>{{.Intro}}</p>
      <p>{{.Instructions}}</p>
      <p style="text-align: center;">
        <a href="{{.Link}}" style="background: #3182CE; color: #FFFFFF; padding: 10px 18px; text-decoration: none; border-radius: 3px;">{{.Button}}</a>
      </p>
      <p>Need help, or have questions? Reply to this email</p>
    </td></tr>
  </table>
</body>
</html>`

var layout = template.Must(template.New("layout").Parse(layoutHTML))

type layoutData struct {
	Product      string
	Name         string
	Intro        string
	Instructions string
	Button       string
	Link         string
}

// rendered is the subject and bodies produced for one notification.
type rendered struct {
	Subject string
	HTML    string
	Text    string
}

func render(kind Kind, name string, data Data, product, defaultLink string) (rendered, error) {
	tmpl, ok := catalog[kind]
	if !ok {
		return rendered{}, fmt.Errorf("unknown notification kind %q", kind)
	}

	ld := layoutData{
		Product:      product,
		Name:         name,
		Intro:        tmpl.intro(data, product),
		Instructions: tmpl.instructions,
		Button:       tmpl.button,
		Link:         data.Link,
	}
	if ld.Instructions == "" {
		ld.Instructions = fmt.Sprintf("To get started with %s, please click here:", product)
	}
	if ld.Button == "" {
		ld.Button = "Visit"
	}
	if ld.Link == "" {
		ld.Link = defaultLink
	}

	var buf bytes.Buffer
	if err := layout.Execute(&buf, ld); err != nil {
		return rendered{}, fmt.Errorf("failed to render %s email: %w", kind, err)
	}

	text := strings.Join([]string{
		"Hi " + name + ",",
		ld.Intro,
		ld.Instructions + " " + ld.Link,
		"Need help, or have questions? Reply to this email",
	}, "\n\n")

	return rendered{Subject: tmpl.subject, HTML: buf.String(), Text: text}, nil
}

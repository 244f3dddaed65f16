package markup

import (
	"fmt"
	"html/template"
	"math/rand/v2"
	"strings"

	"github.com/stvhwngwrtr/shopify-ai-showcase/internal/models"
)

const profileName = "SuperPossible"

// previewTemplate is a self-contained Instagram post frame: no external
// stylesheets or scripts, so a remote capture provider can render it from the
// markup alone. The product image reference is the only external resource and
// callers must pass a publicly reachable URL or a data URI.
var previewTemplate = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body { font-family: -apple-system, 'Helvetica Neue', Arial, sans-serif; background: #fff; }
.post { width: 100%; background: #fff; }
.header { display: flex; align-items: center; padding: 14px 12px; }
.avatar { width: 32px; height: 32px; border-radius: 50%; background: #8a3ab9; display: flex; align-items: center; justify-content: center; color: #fff; font-size: 16px; }
.names { margin-left: 10px; }
.profile { font-weight: 700; font-size: 14px; color: #000; }
.sponsored { font-size: 11px; color: #787878; }
.menu { margin-left: auto; color: #787878; letter-spacing: 2px; }
.post-image { width: 100%; display: block; }
.actions { display: flex; padding: 10px 12px; font-size: 22px; }
.actions .spacer { margin-left: auto; }
.likes { padding: 0 12px; font-weight: 700; font-size: 13px; }
.caption { padding: 4px 12px; font-size: 13px; line-height: 1.4; }
.caption .profile { margin-right: 4px; }
.timestamp { padding: 6px 12px 14px; font-size: 11px; color: #969696; }
</style>
</head>
<body>
<div class="post">
  <div class="header">
    <div class="avatar">&#9679;</div>
    <div class="names">
      <div class="profile">{{.ProfileName}}</div>
      <div class="sponsored">Sponsored</div>
    </div>
    <div class="menu">&#8943;</div>
  </div>
  <img src="{{.ImageURL}}" class="post-image" alt="{{.ProductName}}" crossorigin="anonymous">
  <div class="actions">
    <span>&#9825;</span>&nbsp;&nbsp;<span>&#128172;</span>&nbsp;&nbsp;<span>&#10148;</span>
    <span class="spacer">&#9671;</span>
  </div>
  <div class="likes">{{.Likes}} likes</div>
  {{if .Caption}}<div class="caption"><span class="profile">{{.ProfileName}}</span>{{.Caption}}</div>{{end}}
  <div class="timestamp">Just now</div>
</div>
</body>
</html>
`))

type previewData struct {
	ProfileName string
	ImageURL    string
	ProductName string
	Caption     string
	Likes       string
}

// Builder produces the renderable composition for a mockup request.
type Builder struct {
	likes func() int
}

func NewBuilder() *Builder {
	return &Builder{
		likes: func() int { return 500 + rand.IntN(4501) },
	}
}

// Build renders the preview markup and packages it with the structural fields
// the local raster tier needs.
func (b *Builder) Build(req *models.MockupRequest) (string, error) {
	var sb strings.Builder
	data := previewData{
		ProfileName: profileName,
		ImageURL:    req.ImageURL,
		ProductName: req.ProductName,
		Caption:     req.Caption,
		Likes:       formatThousands(b.likes()),
	}
	if err := previewTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render preview markup: %w", err)
	}
	return sb.String(), nil
}

func formatThousands(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%d,%03d", n/1000, n%1000)
}

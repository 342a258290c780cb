package styles

import (
	"image/color"

	glamouransi "github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/lucasb-eyer/go-colorful"
)

func colorHexPtr(c color.Color) *string {
	if c == nil {
		return nil
	}
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return nil
	}
	hex := cc.Hex()
	return &hex
}

// Glamour returns a Glamour style config for rendering task descriptions.
func (s Styles) Glamour() glamouransi.StyleConfig {
	p := s.Palette

	cfg := glamourstyles.LightStyleConfig
	if p.Dark {
		cfg = glamourstyles.DarkStyleConfig
	}

	fg := colorHexPtr(p.Foreground)
	primary := colorHexPtr(p.Primary)
	secondary := colorHexPtr(p.Secondary)
	muted := colorHexPtr(p.Muted)

	// Descriptions render inside the list, so drop the document margin.
	var margin uint
	cfg.Document.Margin = &margin
	cfg.Document.Color = fg
	cfg.Paragraph.Color = fg

	cfg.Heading.Color = primary
	cfg.H1.Color = primary
	cfg.H1.BackgroundColor = nil
	cfg.H2.Color = primary
	cfg.H3.Color = primary

	cfg.BlockQuote.Color = muted
	cfg.HorizontalRule.Color = muted
	cfg.Item.Color = fg
	cfg.Task.Ticked = "[✓] "
	cfg.Task.Unticked = "[ ] "

	cfg.Link.Color = secondary
	cfg.LinkText.Color = secondary
	cfg.Code.Color = secondary
	cfg.CodeBlock.Color = muted

	return cfg
}
